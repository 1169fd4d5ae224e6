package model

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/sheikhrachel/go-automata/pattern"
	"github.com/sheikhrachel/go-automata/rules"
)

func equalFields(a, b [][]int) bool {
	return slices.EqualFunc(a, b, func(x, y []int) bool { return slices.Equal(x, y) })
}

func TestSingleCellOnThreeByThreeTorus(t *testing.T) {
	for row := range 3 {
		for col := range 3 {
			g := NewGrid(3)
			g.Set(row, col, rules.Alive)

			counts := CountNeighbors(g)
			for r := range 3 {
				for c := range 3 {
					want := 1
					if r == row && c == col {
						want = 0
					}
					if counts[r][c] != want {
						t.Fatalf("alive (%d,%d): count at (%d,%d) = %d, expected %d", row, col, r, c, counts[r][c], want)
					}
				}
			}
		}
	}
}

func TestCountsWrapAcrossCorners(t *testing.T) {
	g := NewGrid(5)
	g.Set(0, 0, rules.Alive)

	counts := CountNeighbors(g)
	for _, c := range []pattern.Coord{{4, 4}, {4, 0}, {0, 4}, {1, 1}, {4, 1}, {1, 4}} {
		if counts[c.Row][c.Col] != 1 {
			t.Fatalf("count at %v = %d, expected 1", c, counts[c.Row][c.Col])
		}
	}
	if counts[2][2] != 0 {
		t.Fatalf("count at (2,2) = %d, expected 0", counts[2][2])
	}
}

func TestBlinkerColumnCounts(t *testing.T) {
	g := NewGrid(3)
	if err := g.SetPattern([]pattern.Coord{{0, 1}, {1, 1}, {2, 1}}); err != nil {
		t.Fatalf("SetPattern: %v", err)
	}

	counts := CountNeighbors(g)
	for r := range 3 {
		for c := range 3 {
			want := 3
			if c == 1 {
				want = 2
			}
			if counts[r][c] != want {
				t.Fatalf("count at (%d,%d) = %d, expected %d", r, c, counts[r][c], want)
			}
		}
	}
}

func TestDyingCellsAreNotCounted(t *testing.T) {
	g := NewGrid(4)
	g.Set(1, 1, rules.Dying)

	for _, row := range CountNeighbors(g) {
		for _, n := range row {
			if n != 0 {
				t.Fatalf("dying cell contributed to a neighbor count: %v", CountNeighbors(g))
			}
		}
	}
}

func TestGatherScatterParallelAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	for _, size := range []int{1, 2, 3, 7, 16, 33} {
		g := NewGrid(size)
		g.Randomize(0.4, rng)

		gather := CountNeighbors(g)
		scatter := ScatterCount(g)
		if !equalFields(gather, scatter) {
			t.Fatalf("size %d: gather %v != scatter %v", size, gather, scatter)
		}
		for _, workers := range []int{0, 1, 2, 3, 8, 64} {
			parallel, err := CountNeighborsParallel(g, workers)
			if err != nil {
				t.Fatalf("size %d workers %d: %v", size, workers, err)
			}
			if !equalFields(gather, parallel) {
				t.Fatalf("size %d workers %d: parallel counts differ", size, workers)
			}
		}
	}
}

func TestSingleCellBoardIsItsOwnNeighbor(t *testing.T) {
	g := NewGrid(1)
	g.Set(0, 0, rules.Alive)
	if got := CountNeighbors(g)[0][0]; got != 8 {
		t.Fatalf("1x1 alive cell count = %d, expected 8", got)
	}
	if got := ScatterCount(g)[0][0]; got != 8 {
		t.Fatalf("1x1 alive cell scatter count = %d, expected 8", got)
	}
}
