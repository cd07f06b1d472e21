package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/events"
	"github.com/lixenwraith/algo-snake/navigation"
	"github.com/lixenwraith/algo-snake/parameter"
	"github.com/lixenwraith/algo-snake/snake"
	"github.com/lixenwraith/algo-snake/status"
)

var (
	ErrUnknownAgent = errors.New("engine: unknown agent")
	ErrInvalidTurn  = errors.New("engine: heading must be a 90 degree turn")
	ErrNotExternal  = errors.New("engine: agent is not externally controlled")
	ErrBadLayout    = errors.New("engine: invalid starting layout")
)

// Options configures a new simulation
type Options struct {
	// Agents is the roster in iteration order; nil selects parameter.DefaultAgents
	Agents []parameter.AgentSpec

	// PlayerEnabled inserts parameter.PlayerAgent ahead of the roster
	PlayerEnabled bool

	// Snakes replaces Agents and PlayerEnabled with prebuilt bodies
	Snakes []*snake.Snake

	// Eatable pins the first eatable position instead of sampling it
	Eatable *core.Point

	// Seed drives eatable placement; 0 picks a time-based seed
	Seed uint64

	// Bounds defaults to parameter.GridBounds
	Bounds core.Bounds

	Logger  log.Logger
	Metrics *status.Registry
}

// TickReport is the outcome of one AdvanceTick
type TickReport struct {
	Tick       uint64
	Captured   []int
	Eliminated []int
	Over       bool
	WinnerID   int
}

// searchStats caches metric pointers for one strategy
type searchStats struct {
	expanded *atomic.Int64
	noPath   *atomic.Int64
	avgPath  *status.AtomicFloat
	queries  atomic.Int64
}

// Simulation owns the board, the agents and the eatable
// Single writer: callers serialize access (see Session)
type Simulation struct {
	ID     string
	Seed   uint64
	Start  time.Time
	bounds core.Bounds

	active     []*snake.Snake
	eliminated []*snake.Snake
	startCount int

	eatable Eatable
	occ     *navigation.Occupancy
	finders map[snake.Strategy]navigation.Finder
	pending map[int]core.Point

	rng    *rand.Rand
	tick   uint64
	over   bool
	winner *snake.Snake
	err    error

	queue   *events.EventQueue
	logger  log.Logger
	metrics *status.Registry

	statTicks        *atomic.Int64
	statCaptures     *atomic.Int64
	statEliminations *atomic.Int64
	statStraight     *atomic.Int64
	statTurn         *atomic.Int64
	statTickMicros   *status.AtomicFloat
	statWinner       *status.AtomicString
	search           map[snake.Strategy]*searchStats
}

// NewSimulation builds the roster, fills the occupancy grid and places the first eatable
func NewSimulation(opts Options) (*Simulation, error) {
	bounds := opts.Bounds
	if bounds == (core.Bounds{}) {
		bounds = parameter.GridBounds
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	snakes := opts.Snakes
	if snakes == nil {
		var err error
		snakes, err = buildRoster(opts)
		if err != nil {
			return nil, err
		}
	}

	s := &Simulation{
		ID:         uuid.NewString(),
		Seed:       seed,
		Start:      time.Now(),
		bounds:     bounds,
		active:     snakes,
		startCount: len(snakes),
		occ:        navigation.NewOccupancy(bounds.Max + 2),
		finders: map[snake.Strategy]navigation.Finder{
			snake.AStar:    navigation.NewAStar(),
			snake.BFS:      navigation.NewBFS(),
			snake.Dijkstra: navigation.NewDijkstra(),
		},
		pending: make(map[int]core.Point),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		queue:   events.NewEventQueue(),
		logger:  log.With(logger, "component", "engine"),
		metrics: metrics,
		search:  make(map[snake.Strategy]*searchStats),
	}
	s.cacheMetrics()

	ids := make(map[int]bool, len(snakes))
	for _, sn := range snakes {
		if ids[sn.ID] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrBadLayout, sn.ID)
		}
		ids[sn.ID] = true
		for _, c := range sn.Body {
			if !bounds.Contains(c) {
				return nil, fmt.Errorf("%w: %s segment %v out of bounds", ErrBadLayout, sn.Name, c)
			}
			if s.occ.Occupied(c) {
				return nil, fmt.Errorf("%w: %s overlaps at %v", ErrBadLayout, sn.Name, c)
			}
		}
		s.occ.AddBody(sn.Body)
	}

	if opts.Eatable != nil {
		if !bounds.Contains(*opts.Eatable) || s.occ.Occupied(*opts.Eatable) {
			return nil, fmt.Errorf("%w: eatable at %v", ErrBadLayout, *opts.Eatable)
		}
		s.eatable.At = *opts.Eatable
	} else if err := s.eatable.Place(s.rng, bounds, s.occ.Occupied); err != nil {
		return nil, err
	}
	s.emit(events.EventEatableMoved, &events.EatablePayload{At: s.eatable.At})

	level.Info(s.logger).Log("msg", "simulation created", "match", s.ID, "seed", seed, "agents", len(snakes))
	return s, nil
}

func buildRoster(opts Options) ([]*snake.Snake, error) {
	specs := opts.Agents
	if specs == nil {
		specs = parameter.DefaultAgents
	}
	if opts.PlayerEnabled {
		specs = append([]parameter.AgentSpec{parameter.PlayerAgent}, specs...)
	}
	out := make([]*snake.Snake, 0, len(specs))
	for i, spec := range specs {
		strategy, err := snake.ParseStrategy(spec.Strategy)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", spec.Name, err)
		}
		if !spec.Heading.IsUnit() {
			return nil, fmt.Errorf("%w: agent %q heading %v", ErrBadLayout, spec.Name, spec.Heading)
		}
		name := spec.Name
		if name == "" {
			name = strategy.String()
		}
		out = append(out, snake.New(i, name, spec.Start, spec.Heading, strategy, spec.SeeksShortest))
	}
	return out, nil
}

func (s *Simulation) cacheMetrics() {
	m := s.metrics
	s.statTicks = m.Ints.Get(status.KeyTicks)
	s.statCaptures = m.Ints.Get(status.KeyCaptures)
	s.statEliminations = m.Ints.Get(status.KeyEliminations)
	s.statStraight = m.Ints.Get(status.KeyFallbackStraight)
	s.statTurn = m.Ints.Get(status.KeyFallbackTurn)
	s.statTickMicros = m.Floats.Get(status.KeyTickMicros)
	s.statWinner = m.Strings.Get(status.KeyWinner)
	for strategy := range s.finders {
		key := strategy.Key()
		s.search[strategy] = &searchStats{
			expanded: m.Ints.Get(status.SearchKey(key, "expanded")),
			noPath:   m.Ints.Get(status.SearchKey(key, "no_path")),
			avgPath:  m.Floats.Get(status.SearchKey(key, "avg_path")),
		}
	}
}

func (s *Simulation) emit(t events.EventType, payload any) {
	s.queue.Push(events.GameEvent{Type: t, Tick: s.tick, Payload: payload})
}

// Events drains the pending events
func (s *Simulation) Events() []events.GameEvent {
	return s.queue.Consume()
}

// Tick returns the number of resolved ticks
func (s *Simulation) Tick() uint64 { return s.tick }

// Over reports whether the simulation has ended
func (s *Simulation) Over() bool { return s.over }

// Err returns the error that ended the simulation, if any
func (s *Simulation) Err() error { return s.err }

// Winner returns the surviving agent, nil when nobody won or the game is still running
func (s *Simulation) Winner() *snake.Snake { return s.winner }

// Eatable returns the current resource position
func (s *Simulation) Eatable() core.Point { return s.eatable.At }

// Bounds returns the traversable range
func (s *Simulation) Bounds() core.Bounds { return s.bounds }

// Active returns the agents still in play, in iteration order
func (s *Simulation) Active() []*snake.Snake { return s.active }

// Metrics returns the registry the simulation writes to
func (s *Simulation) Metrics() *status.Registry { return s.metrics }

// Agent finds an active agent by id
func (s *Simulation) Agent(id int) (*snake.Snake, bool) {
	for _, sn := range s.active {
		if sn.ID == id {
			return sn, true
		}
	}
	return nil, false
}

// Agents returns active agents followed by eliminated ones
func (s *Simulation) Agents() []*snake.Snake {
	out := make([]*snake.Snake, 0, len(s.active)+len(s.eliminated))
	out = append(out, s.active...)
	return append(out, s.eliminated...)
}

// WouldCollide reports whether sn's head may not enter cell this tick
// Out of bounds or any segment of any agent, except one segment on sn's own tail
func (s *Simulation) WouldCollide(sn *snake.Snake, cell core.Point) bool {
	if !s.bounds.Contains(cell) {
		return true
	}
	return s.occ.For(sn.Tail()).Blocked(cell)
}

// SetHeading queues a heading override for an external agent, applied before its next move
// Only 90 degree turns relative to the committed heading are accepted; the committed heading clears the override
func (s *Simulation) SetHeading(id int, heading core.Point) error {
	sn, ok := s.Agent(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownAgent, id)
	}
	if !sn.External() {
		return fmt.Errorf("%w: %s", ErrNotExternal, sn.Name)
	}
	if heading == sn.Heading {
		delete(s.pending, id)
		return nil
	}
	if !heading.IsUnit() || heading.X*sn.Heading.X+heading.Y*sn.Heading.Y != 0 {
		return fmt.Errorf("%w: %v from %v", ErrInvalidTurn, heading, sn.Heading)
	}
	s.pending[id] = heading
	return nil
}

// Turn rotates an external agent relative to its committed heading
func (s *Simulation) Turn(id int, t snake.Turn) error {
	sn, ok := s.Agent(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownAgent, id)
	}
	return s.SetHeading(id, t.Apply(sn.Heading))
}
