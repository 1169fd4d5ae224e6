package model

import (
	"bufio"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-automata/rules"
)

const (
	gridPosBlock = "██"
	gridPosDying = "░░"
	gridPosEmpty = "  "

	macosClearCmd = "clear"
)

// TerminalRenderer draws grids as block characters
type TerminalRenderer struct {
	Out io.Writer
}

// NewTerminalRenderer renders to stdout
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout}
}

// Display renders the grid, one line per row
func (r *TerminalRenderer) Display(g *Grid) error {
	w := bufio.NewWriter(r.Out)
	for row := range g.size {
		for col := range g.size {
			switch g.cells[row][col] {
			case rules.Alive:
				w.WriteString(gridPosBlock)
			case rules.Dying:
				w.WriteString(gridPosDying)
			default:
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
	return errors.Wrap(w.Flush(), "[Display] failed to write frame")
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	cmd := exec.Command(macosClearCmd)
	cmd.Stdout = r.Out
	return errors.Wrap(cmd.Run(), "[Clear] failed to clear terminal")
}
