package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// TestFoodNeverSpawnsOnSnakeOrFood fills most of a grid and checks every apple is on a free cell.
func TestFoodNeverSpawnsOnSnakeOrFood(t *testing.T) {
	t.Parallel()

	g := Grid{Width: 6, Height: 6}
	snake := NewSnake(g)
	snake.GrowBy(2)

	f := NewFood(g, testRand())
	require.Equal(t, 20, f.SpawnMany(Normal, 20, snake))

	seen := make(map[Point]struct{})

	for _, item := range f.Items() {
		require.True(t, g.Contains(item.Pos))
		require.False(t, snake.occupies(item.Pos), item.Pos)

		_, dup := seen[item.Pos]
		require.False(t, dup, item.Pos)
		seen[item.Pos] = struct{}{}
	}
}

// TestFoodFullGrid ensures spawning stops when no cell is left.
func TestFoodFullGrid(t *testing.T) {
	t.Parallel()

	g := Grid{Width: 4, Height: 4}
	snake := NewSnake(g)
	snake.body = snake.body[:0]

	for y := range g.Height {
		for x := range g.Width {
			if x != 3 || y != 3 {
				snake.body = append(snake.body, Point{X: x, Y: y})
			}
		}
	}

	f := NewFood(g, testRand())
	require.True(t, f.Spawn(Golden, snake))
	require.Equal(t, []FoodItem{{Pos: Point{X: 3, Y: 3}, Kind: Golden}}, f.Items())
	require.False(t, f.Spawn(Normal, snake))
	require.Zero(t, f.SpawnMany(Normal, 5, snake))
}

// TestFoodResetAndTake covers reset, take and after-eat spawning.
func TestFoodResetAndTake(t *testing.T) {
	t.Parallel()

	g := Grid{Width: 8, Height: 8}
	snake := NewSnake(g)
	f := NewFood(g, testRand())

	f.SpawnMany(Golden, 3, snake)
	f.Reset(snake)
	require.Equal(t, 1, f.Len())
	require.Equal(t, Normal, f.Items()[0].Kind)

	pos := f.Items()[0].Pos
	require.True(t, f.At(pos))

	item, ok := f.Take(pos)
	require.True(t, ok)
	require.Equal(t, pos, item.Pos)
	require.Zero(t, f.Len())

	_, ok = f.Take(pos)
	require.False(t, ok)

	// A chance of 1 always adds the golden apple.
	f.AfterEat(snake, 1)
	require.Equal(t, 2, f.Len())
	require.Equal(t, Normal, f.Items()[0].Kind)
	require.Equal(t, Golden, f.Items()[1].Kind)
}
