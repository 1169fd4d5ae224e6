package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-automata/pattern"
	"github.com/sheikhrachel/go-automata/rules"
	"github.com/sheikhrachel/go-automata/utils"
)

// Grid represents a square toroidal board
type Grid struct {
	size  int
	cells [][]rules.State
}

// NewGrid creates a new grid of size x size dead cells
func NewGrid(size int) *Grid {
	g := &Grid{}
	g.Reset(size)
	return g
}

// Size returns the side length of the grid
func (g *Grid) Size() int {
	return g.size
}

// Reset resizes the grid and clears every cell
func (g *Grid) Reset(size int) {
	g.size = size

	// Resize cells if needed
	if len(g.cells) != size {
		g.cells = make([][]rules.State, size)
	}
	for i := range g.cells {
		if len(g.cells[i]) != size {
			g.cells[i] = make([]rules.State, size)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear marks all cells dead
func (g *Grid) Clear() {
	for row := range g.cells {
		clear(g.cells[row])
	}
}

// InBounds reports whether (row, col) lies on the board
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// Set sets the state of a cell; out of range coordinates are ignored
func (g *Grid) Set(row, col int, s rules.State) {
	if g.InBounds(row, col) {
		g.cells[row][col] = s
	}
}

// Get returns the state of a cell; out of range coordinates read as dead
func (g *Grid) Get(row, col int) rules.State {
	if !g.InBounds(row, col) {
		return rules.Dead
	}
	return g.cells[row][col]
}

// Alive reports whether a cell is alive
func (g *Grid) Alive(row, col int) bool {
	return g.Get(row, col) == rules.Alive
}

// SetPattern clears the grid and marks every coordinate alive. It fails
// with an index error without touching the grid if any coordinate is off
// the board.
func (g *Grid) SetPattern(coords []pattern.Coord) error {
	for _, c := range coords {
		if !g.InBounds(c.Row, c.Col) {
			return errors.Wrapf(utils.ErrIndex, "[SetPattern] cell (%d,%d) outside %dx%d board", c.Row, c.Col, g.size, g.size)
		}
	}
	g.Clear()
	for _, c := range coords {
		g.cells[c.Row][c.Col] = rules.Alive
	}
	return nil
}

// Randomize clears the grid and makes each cell alive with probability p
func (g *Grid) Randomize(p float64, rng *rand.Rand) {
	for row := range g.cells {
		for col := range g.cells[row] {
			if rng.Float64() < p {
				g.cells[row][col] = rules.Alive
			} else {
				g.cells[row][col] = rules.Dead
			}
		}
	}
}

// CopyFrom overwrites g with the contents of src, resizing if needed
func (g *Grid) CopyFrom(src *Grid) {
	if g.size != src.size {
		g.Reset(src.size)
	}
	for row := range src.cells {
		copy(g.cells[row], src.cells[row])
	}
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.size)
	c.CopyFrom(g)
	return c
}

// Equal reports whether both grids hold the same states
func (g *Grid) Equal(o *Grid) bool {
	if g.size != o.size {
		return false
	}
	for row := range g.cells {
		for col := range g.cells[row] {
			if g.cells[row][col] != o.cells[row][col] {
				return false
			}
		}
	}
	return true
}

// CountLivingCells returns the total number of alive cells
func (g *Grid) CountLivingCells() int {
	return g.countState(rules.Alive)
}

// CountDyingCells returns the total number of dying cells
func (g *Grid) CountDyingCells() int {
	return g.countState(rules.Dying)
}

func (g *Grid) countState(s rules.State) (count int) {
	for row := range g.cells {
		for _, cell := range g.cells[row] {
			if cell == s {
				count++
			}
		}
	}
	return
}

// AliveCoords lists alive cells in row-major order
func (g *Grid) AliveCoords() []pattern.Coord {
	var coords []pattern.Coord
	for row := range g.cells {
		for col, cell := range g.cells[row] {
			if cell == rules.Alive {
				coords = append(coords, pattern.Coord{Row: row, Col: col})
			}
		}
	}
	return coords
}

// NextGeneration computes the following generation into a fresh grid.
// g is only read, so every cell sees the same pre-step snapshot. With
// workers > 1 the rows are split into bands evaluated concurrently.
func (g *Grid) NextGeneration(rule rules.Rule, pool *GridPool, workers int) (*Grid, error) {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.size)
	} else {
		next = NewGrid(g.size)
	}

	counts, err := CountNeighborsParallel(g, workers)
	if err != nil {
		GridToPool(next, pool)
		return nil, errors.Wrap(err, "[NextGeneration] failed to count neighbors")
	}

	err = forEachBand(g.size, workers, func(startRow, endRow int) error {
		for row := startRow; row < endRow; row++ {
			for col := range g.size {
				next.cells[row][col] = rule.Apply(counts[row][col], g.cells[row][col])
			}
		}
		return nil
	})
	if err != nil {
		GridToPool(next, pool)
		return nil, errors.Wrap(err, "[NextGeneration] failed to apply rule")
	}

	return next, nil
}
