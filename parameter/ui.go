package parameter

// Layout & Margins
const (
	// PanelGap separates the board from the score panel
	PanelGap = 2

	// MenuTitle is drawn above the menu entries
	MenuTitle = "ALGO SNAKE"
)

// GlyphUpperHalf draws two grid rows per terminal row: foreground on top, background below
const GlyphUpperHalf = '▀'

// Banner and status texts
const (
	GameOverFormat = "Game Over, %s won! Esc for main menu."
	PausedText     = "PAUSED (p to resume)"
	HelpText       = "←/→ turn  p pause  Esc menu"
	ReplayText     = "REPLAY  Esc to quit"
)

// MenuEntries are the selectable main menu items in display order
var MenuEntries = []string{"Simulation", "Play", "Quit"}
