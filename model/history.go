package model

import (
	"crypto/md5"
	"encoding/hex"
)

const defaultHistoryLen = 5

// GetGridHash returns an MD5 hash of the grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	row := make([]byte, g.size)
	for _, cells := range g.cells {
		for col, cell := range cells {
			row[col] = byte(cell)
		}
		h.Write(row)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// History remembers the hashes of recent generations to detect boards that
// stopped changing or fell into a short cycle.
type History struct {
	hashes []string
	limit  int
}

// NewHistory keeps at most limit hashes; limit < 3 uses the default of 5.
func NewHistory(limit int) *History {
	if limit < 3 {
		limit = defaultHistoryLen
	}
	return &History{limit: limit}
}

// Record adds the grid's current state to the history
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, g.GetGridHash())
	if len(h.hashes) > h.limit {
		h.hashes = h.hashes[1:]
	}
}

// Clear forgets all recorded states
func (h *History) Clear() {
	h.hashes = h.hashes[:0]
}

// IsStagnant reports whether g repeats one of the last three recorded
// states, i.e. the board is static or oscillating with period 1 to 3.
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}

	currentHash := g.GetGridHash()
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == currentHash {
			return true
		}
	}
	return false
}
