package rules

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-automata/utils"
)

// MaxNeighbors is the size of the Moore neighborhood.
const MaxNeighbors = 8

const countMask uint16 = 1<<(MaxNeighbors+1) - 1

// State is the state of a single cell.
type State uint8

const (
	Dead State = iota
	Alive
	Dying
)

func (s State) String() string {
	switch s {
	case Dead:
		return "dead"
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Rule holds the birth and survival neighbor-count masks of an automaton.
// Bit i of a mask is set when a count of i triggers the transition.
type Rule struct {
	Survival   uint16
	Birth      uint16
	StateCount int
}

// Parse reads a rule of the form "<survival>/<birth>/<states>", e.g. "23/3/2".
// Either mask may be empty. The state count must be 2 or 3.
func Parse(s string) (Rule, error) {
	segments := strings.Split(s, "/")
	if len(segments) != 3 {
		return Rule{}, errors.Wrapf(utils.ErrParse, "[Parse] rule %q has %d segments, want 3", s, len(segments))
	}

	survival, err := parseMask(segments[0])
	if err != nil {
		return Rule{}, errors.Wrapf(err, "[Parse] survival segment of rule %q", s)
	}
	birth, err := parseMask(segments[1])
	if err != nil {
		return Rule{}, errors.Wrapf(err, "[Parse] birth segment of rule %q", s)
	}

	states, err := strconv.Atoi(segments[2])
	if err != nil {
		return Rule{}, errors.Wrapf(utils.ErrParse, "[Parse] state count %q of rule %q is not an integer", segments[2], s)
	}

	r := Rule{Survival: survival, Birth: birth, StateCount: states}
	if err = r.Validate(); err != nil {
		return Rule{}, errors.Wrapf(err, "[Parse] rule %q", s)
	}
	return r, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(s string) Rule {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

func parseMask(seg string) (uint16, error) {
	var mask uint16
	for _, ch := range seg {
		if ch < '0' || ch > '9' {
			return 0, errors.Wrapf(utils.ErrParse, "[parseMask] %q is not a digit", ch)
		}
		n := int(ch - '0')
		if n > MaxNeighbors {
			return 0, errors.Wrapf(utils.ErrValidation, "[parseMask] neighbor count %d exceeds %d", n, MaxNeighbors)
		}
		mask |= 1 << n
	}
	return mask, nil
}

// Validate reports whether the rule can drive an automaton.
func (r Rule) Validate() error {
	if r.StateCount != 2 && r.StateCount != 3 {
		return errors.Wrapf(utils.ErrValidation, "[Validate] state count must be 2 or 3, got %d", r.StateCount)
	}
	if r.Survival&^countMask != 0 || r.Birth&^countMask != 0 {
		return errors.Wrapf(utils.ErrValidation, "[Validate] masks may only hold counts 0-%d", MaxNeighbors)
	}
	return nil
}

// Survives reports whether an alive cell with count alive neighbors stays alive.
func (r Rule) Survives(count int) bool {
	return count >= 0 && count <= MaxNeighbors && r.Survival&(1<<count) != 0
}

// Born reports whether a dead, non-dying cell with count alive neighbors comes alive.
func (r Rule) Born(count int) bool {
	return count >= 0 && count <= MaxNeighbors && r.Birth&(1<<count) != 0
}

/*
Apply returns the next state of a cell given its current state and the
number of alive neighbors in the current generation.

With three states an alive cell always moves to Dying, and a dying cell
cannot be born in the following generation. Dying then decays to Dead.
*/
func (r Rule) Apply(count int, cur State) State {
	alive := cur == Alive
	if r.StateCount == 3 && alive {
		return Dying
	}
	if (alive && r.Survives(count)) || (cur == Dead && r.Born(count)) {
		return Alive
	}
	return Dead
}

// String renders the rule in the notation accepted by Parse.
func (r Rule) String() string {
	return maskString(r.Survival) + "/" + maskString(r.Birth) + "/" + strconv.Itoa(r.StateCount)
}

func maskString(mask uint16) string {
	var b strings.Builder
	for n := 0; n <= MaxNeighbors; n++ {
		if mask&(1<<n) != 0 {
			b.WriteByte(byte('0' + n))
		}
	}
	return b.String()
}
