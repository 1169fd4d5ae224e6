package pattern

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-automata/utils"
)

// Coord is the position of one cell on the board.
type Coord struct {
	Row, Col int
}

// Parse reads whitespace separated "row col" pairs, one alive cell per pair.
// There is no header; order and line breaks do not matter. Bounds are not
// checked here since the board size is not known.
func Parse(r io.Reader) ([]Coord, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var (
		coords []Coord
		ints   []int
		tokens int
	)
	for sc.Scan() {
		tokens++
		tok := sc.Text()
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, errors.Wrapf(utils.ErrParse, "[Parse] token %d (%q) is not an integer", tokens, tok)
		}
		ints = append(ints, n)
		if len(ints) == 2 {
			coords = append(coords, Coord{Row: ints[0], Col: ints[1]})
			ints = ints[:0]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "[Parse] failed to read pattern")
	}
	if len(ints) != 0 {
		return nil, errors.Wrapf(utils.ErrParse, "[Parse] dangling row %d without a column", ints[0])
	}
	return coords, nil
}

// Load parses the pattern file at path.
func Load(path string) ([]Coord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to open file: %+v", path)
	}
	defer f.Close()

	coords, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to parse file: %+v", path)
	}
	return coords, nil
}

// Write emits one "row col" line per coordinate, in the format Parse reads.
func Write(w io.Writer, coords []Coord) error {
	bw := bufio.NewWriter(w)
	for _, c := range coords {
		if _, err := fmt.Fprintf(bw, "%d %d\n", c.Row, c.Col); err != nil {
			return errors.Wrap(err, "[Write] failed to write pattern")
		}
	}
	return errors.Wrap(bw.Flush(), "[Write] failed to flush pattern")
}
