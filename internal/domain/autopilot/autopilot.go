package autopilot

import "github.com/oshokin/snake-game/internal/domain/game"

// Pilot implements game.Pilot. The zero value is ready to use.
type Pilot struct{}

// New returns a pilot.
func New() *Pilot {
	return new(Pilot)
}

// Steer picks the heading for the next move.
func (p *Pilot) Steer(s *game.Session) (game.Direction, bool) {
	snake := s.Snake()
	grid := s.Grid()
	blocked := blockedCells(snake)
	head := snake.Head()

	back := snake.Direction().Opposite()

	if d, ok := pathToFood(grid, blocked, head, back, s.Food()); ok {
		next := head.Add(d.Delta())
		if reachable(grid, blocked, next) >= snake.Len() {
			return d, true
		}
	}

	best, bestSpace := snake.Direction(), -1

	for _, d := range game.Directions {
		next := head.Add(d.Delta())
		if d == back || !free(grid, blocked, next) {
			continue
		}

		if space := reachable(grid, blocked, next); space > bestSpace {
			best, bestSpace = d, space
		}
	}

	return best, bestSpace >= 0
}

// blockedCells marks the body except the tail, which moves away this turn.
func blockedCells(snake *game.Snake) map[game.Point]struct{} {
	body := snake.Body()
	blocked := make(map[game.Point]struct{}, len(body))

	for _, p := range body[:len(body)-1] {
		blocked[p] = struct{}{}
	}

	return blocked
}

func free(grid game.Grid, blocked map[game.Point]struct{}, p game.Point) bool {
	if !grid.Contains(p) {
		return false
	}

	_, taken := blocked[p]

	return !taken
}

// pathToFood returns the first step of a shortest path to any apple.
// The snake cannot reverse, so back is never a first step.
func pathToFood(
	grid game.Grid,
	blocked map[game.Point]struct{},
	head game.Point,
	back game.Direction,
	food *game.Food,
) (game.Direction, bool) {
	type node struct {
		pos   game.Point
		first game.Direction
	}

	seen := map[game.Point]struct{}{head: {}}
	queue := make([]node, 0, grid.Cells())

	for _, d := range game.Directions {
		next := head.Add(d.Delta())
		if d != back && free(grid, blocked, next) {
			seen[next] = struct{}{}
			queue = append(queue, node{pos: next, first: d})
		}
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if food.At(n.pos) {
			return n.first, true
		}

		for _, d := range game.Directions {
			next := n.pos.Add(d.Delta())
			if _, ok := seen[next]; ok || !free(grid, blocked, next) {
				continue
			}

			seen[next] = struct{}{}
			queue = append(queue, node{pos: next, first: n.first})
		}
	}

	return game.Right, false
}

// reachable counts free cells connected to start.
func reachable(grid game.Grid, blocked map[game.Point]struct{}, start game.Point) int {
	if !free(grid, blocked, start) {
		return 0
	}

	seen := map[game.Point]struct{}{start: {}}
	stack := []game.Point{start}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range game.Directions {
			next := p.Add(d.Delta())
			if _, ok := seen[next]; ok || !free(grid, blocked, next) {
				continue
			}

			seen[next] = struct{}{}
			stack = append(stack, next)
		}
	}

	return len(seen)
}
