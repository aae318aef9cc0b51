package game

// minSnakeLength is the starting length and the floor for shrinking.
const minSnakeLength = 2

// Snake is the player's body, head first.
type Snake struct {
	body      []Point
	direction Direction
	pending   Direction

	sizeEventActive  bool
	preEventLength   int
	eatenDuringEvent int
}

// NewSnake returns a snake placed at the center of g.
func NewSnake(g Grid) *Snake {
	s := new(Snake)
	s.Reset(g)

	return s
}

// Reset puts a two-segment snake at the center heading right.
func (s *Snake) Reset(g Grid) {
	head := g.Center()

	s.body = []Point{head, {X: head.X - 1, Y: head.Y}}
	s.direction = Right
	s.pending = Right
	s.sizeEventActive = false
	s.preEventLength = 0
	s.eatenDuringEvent = 0
}

// Turn queues a new heading for the next move. Reversing onto the neck is
// ignored; the check is made against the last heading actually moved in.
func (s *Snake) Turn(d Direction) bool {
	if d == s.direction.Opposite() {
		return false
	}

	s.pending = d

	return true
}

// Advance applies the queued heading and pushes a new head.
func (s *Snake) Advance() Point {
	s.direction = s.pending
	head := s.Head().Add(s.direction.Delta())

	s.body = append(s.body, Point{})
	copy(s.body[1:], s.body)
	s.body[0] = head

	return head
}

// DropTail removes the last segment; called on moves without food.
func (s *Snake) DropTail() {
	if len(s.body) > 1 {
		s.body = s.body[:len(s.body)-1]
	}
}

// Ate records growth from food so a size event can be reverted fairly.
func (s *Snake) Ate() {
	if s.sizeEventActive {
		s.eatenDuringEvent++
	}
}

// GrowBy stacks n copies of the tail; they unfold as the snake moves.
func (s *Snake) GrowBy(n int) {
	tail := s.body[len(s.body)-1]
	for range n {
		s.body = append(s.body, tail)
	}
}

// ShrinkBy removes up to n tail segments without going below two.
func (s *Snake) ShrinkBy(n int) {
	keep := max(len(s.body)-n, minSnakeLength)
	if keep < len(s.body) {
		s.body = s.body[:keep]
	}
}

// BeginSizeEvent remembers the current length.
func (s *Snake) BeginSizeEvent() {
	s.sizeEventActive = true
	s.preEventLength = len(s.body)
	s.eatenDuringEvent = 0
}

// RevertSize restores the length from before the size event plus what was
// eaten during it.
func (s *Snake) RevertSize() {
	if !s.sizeEventActive {
		return
	}

	target := max(s.preEventLength+s.eatenDuringEvent, minSnakeLength)

	switch {
	case len(s.body) > target:
		s.body = s.body[:target]
	case len(s.body) < target:
		s.GrowBy(target - len(s.body))
	}

	s.sizeEventActive = false
	s.preEventLength = 0
	s.eatenDuringEvent = 0
}

// HitsSelf reports whether the head overlaps another segment.
func (s *Snake) HitsSelf() bool {
	head := s.body[0]
	for _, p := range s.body[1:] {
		if p == head {
			return true
		}
	}

	return false
}

// OutOf reports whether the head left the grid.
func (s *Snake) OutOf(g Grid) bool {
	return !g.Contains(s.body[0])
}

// Head returns the head cell.
func (s *Snake) Head() Point {
	return s.body[0]
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []Point {
	return append([]Point(nil), s.body...)
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.body)
}

// Direction returns the heading of the last move.
func (s *Snake) Direction() Direction {
	return s.direction
}

// Pending returns the heading queued for the next move.
func (s *Snake) Pending() Direction {
	return s.pending
}

// SizeEventActive reports whether a size event is being tracked.
func (s *Snake) SizeEventActive() bool {
	return s.sizeEventActive
}

// PreEventLength returns the length remembered by BeginSizeEvent.
func (s *Snake) PreEventLength() int {
	return s.preEventLength
}

// occupies reports whether p is a body cell.
func (s *Snake) occupies(p Point) bool {
	for _, b := range s.body {
		if b == p {
			return true
		}
	}

	return false
}
