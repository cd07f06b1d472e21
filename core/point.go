package core

// Point is a grid cell coordinate, compared and hashed by value
type Point struct {
	X, Y int
}

// Unit headings in screen orientation (y grows downward)
var (
	Right = Point{X: 1, Y: 0}
	Left  = Point{X: -1, Y: 0}
	Down  = Point{X: 0, Y: 1}
	Up    = Point{X: 0, Y: -1}
)

// Cardinals lists the four unit headings in neighbor generation order
var Cardinals = [4]Point{Right, Left, Down, Up}

// Add returns p displaced by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the displacement from q to p
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Manhattan returns |dx| + |dy| between p and q
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Adjacent reports whether q is one cardinal step from p
func (p Point) Adjacent(q Point) bool {
	return p.Manhattan(q) == 1
}

// IsUnit reports whether p is an axis-aligned unit heading
func (p Point) IsUnit() bool {
	return abs(p.X)+abs(p.Y) == 1
}

// RotateCW turns a heading 90° clockwise on screen
func (p Point) RotateCW() Point {
	return Point{X: -p.Y, Y: p.X}
}

// RotateCCW turns a heading 90° counter-clockwise on screen
func (p Point) RotateCCW() Point {
	return Point{X: p.Y, Y: -p.X}
}

// Perpendicular returns the two headings orthogonal to p in fixed preference order:
// horizontal headings yield (Down, Up), vertical headings yield (Right, Left)
func (p Point) Perpendicular() [2]Point {
	if p.X != 0 {
		return [2]Point{Down, Up}
	}
	return [2]Point{Right, Left}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
