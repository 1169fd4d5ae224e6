package model

import (
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-automata/rules"
)

// neighborOffsets lists the Moore neighborhood as (row, col) deltas.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// wrap reduces i modulo n into [0, n).
func wrap(i, n int) int {
	return (i%n + n) % n
}

func newCountField(size int) [][]int {
	counts := make([][]int, size)
	for i := range counts {
		counts[i] = make([]int, size)
	}
	return counts
}

// countAt gathers the number of alive neighbors of (row, col) on the torus.
// Dying cells are not counted.
func (g *Grid) countAt(row, col int) int {
	count := 0
	for _, off := range neighborOffsets {
		if g.cells[wrap(row+off[0], g.size)][wrap(col+off[1], g.size)] == rules.Alive {
			count++
		}
	}
	return count
}

// CountNeighbors returns, for every cell, how many of its 8 toroidal
// neighbors are alive. Each cell pulls from its neighbors.
func CountNeighbors(g *Grid) [][]int {
	counts := newCountField(g.size)
	for row := range g.size {
		for col := range g.size {
			counts[row][col] = g.countAt(row, col)
		}
	}
	return counts
}

// ScatterCount produces the same field as CountNeighbors by having each
// alive cell push into its 8 neighbors.
func ScatterCount(g *Grid) [][]int {
	counts := newCountField(g.size)
	for row := range g.size {
		for col := range g.size {
			if g.cells[row][col] != rules.Alive {
				continue
			}
			for _, off := range neighborOffsets {
				counts[wrap(row+off[0], g.size)][wrap(col+off[1], g.size)]++
			}
		}
	}
	return counts
}

// CountNeighborsParallel is CountNeighbors split into row bands. Workers
// only read g and write disjoint rows of the result.
func CountNeighborsParallel(g *Grid, workers int) ([][]int, error) {
	counts := newCountField(g.size)
	err := forEachBand(g.size, workers, func(startRow, endRow int) error {
		for row := startRow; row < endRow; row++ {
			for col := range g.size {
				counts[row][col] = g.countAt(row, col)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// forEachBand splits [0, rows) into at most workers contiguous bands and
// runs fn on each. A single band runs on the calling goroutine.
func forEachBand(rows, workers int, fn func(startRow, endRow int) error) error {
	if workers <= 1 || rows <= 1 {
		return fn(0, rows)
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (rows + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, rows)
		)
		if startRow >= rows {
			break
		}

		eg.Go(func() error {
			return fn(startRow, endRow)
		})
	}

	return eg.Wait()
}
