package game

import "math/rand/v2"

// FoodKind tells what an apple does when eaten.
type FoodKind uint8

// Food kinds.
const (
	Normal FoodKind = iota
	Golden
)

func (k FoodKind) String() string {
	if k == Golden {
		return "golden"
	}

	return "normal"
}

// FoodItem is one apple on the grid.
type FoodItem struct {
	Pos  Point
	Kind FoodKind
}

// Food holds every apple on the grid.
type Food struct {
	grid  Grid
	rng   *rand.Rand
	items []FoodItem
}

// NewFood returns an empty food collection for g.
func NewFood(g Grid, rng *rand.Rand) *Food {
	return &Food{
		grid: g,
		rng:  rng,
	}
}

// Reset clears the grid and spawns one normal apple.
func (f *Food) Reset(snake *Snake) {
	f.items = f.items[:0]
	f.Spawn(Normal, snake)
}

// Spawn places an apple on a random free cell. It returns false when the
// snake and the other apples cover the whole grid.
func (f *Food) Spawn(kind FoodKind, snake *Snake) bool {
	free := f.freeCells(snake)
	if len(free) == 0 {
		return false
	}

	f.items = append(f.items, FoodItem{
		Pos:  free[f.rng.IntN(len(free))],
		Kind: kind,
	})

	return true
}

// SpawnMany places up to n apples and returns how many were placed.
func (f *Food) SpawnMany(kind FoodKind, n int, snake *Snake) int {
	placed := 0

	for range n {
		if !f.Spawn(kind, snake) {
			break
		}

		placed++
	}

	return placed
}

// AfterEat spawns the replacement apple and, one time in goldenChance,
// a golden one.
func (f *Food) AfterEat(snake *Snake, goldenChance int) {
	f.Spawn(Normal, snake)

	if goldenChance <= 1 || f.rng.IntN(goldenChance) == 0 {
		f.Spawn(Golden, snake)
	}
}

// Take removes and returns the apple at p.
func (f *Food) Take(p Point) (FoodItem, bool) {
	for i, item := range f.items {
		if item.Pos == p {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return item, true
		}
	}

	return FoodItem{}, false
}

// Items returns a copy of the apples on the grid.
func (f *Food) Items() []FoodItem {
	return append([]FoodItem(nil), f.items...)
}

// Len returns the number of apples.
func (f *Food) Len() int {
	return len(f.items)
}

// At reports whether an apple lies on p.
func (f *Food) At(p Point) bool {
	for _, item := range f.items {
		if item.Pos == p {
			return true
		}
	}

	return false
}

func (f *Food) freeCells(snake *Snake) []Point {
	taken := make(map[Point]struct{}, len(f.items)+snake.Len())
	for _, item := range f.items {
		taken[item.Pos] = struct{}{}
	}

	for _, p := range snake.body {
		taken[p] = struct{}{}
	}

	free := make([]Point, 0, f.grid.Cells()-len(taken))

	for y := range f.grid.Height {
		for x := range f.grid.Width {
			p := Point{X: x, Y: y}
			if _, ok := taken[p]; !ok {
				free = append(free, p)
			}
		}
	}

	return free
}
