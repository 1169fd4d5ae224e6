// Package engine runs a cellular automaton on a square toroidal board.
//
// An Engine owns its grid. All mutation goes through Step, Reset and
// Toggle, and readers only ever see whole generations.
package engine

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-automata/model"
	"github.com/sheikhrachel/go-automata/pattern"
	"github.com/sheikhrachel/go-automata/rules"
	"github.com/sheikhrachel/go-automata/utils"
)

// Error kinds returned by the engine.
var (
	ErrValidation = utils.ErrValidation
	ErrParse      = utils.ErrParse
	ErrIndex      = utils.ErrIndex
)

// Pattern is the initial condition an engine restores on Reset: either an
// explicit set of alive cells or a probability for fresh random fills.
type Pattern struct {
	coords      []pattern.Coord
	probability float64
	random      bool
}

// FromCoords seeds the board with exactly the given alive cells.
func FromCoords(coords []pattern.Coord) Pattern {
	return Pattern{coords: append([]pattern.Coord(nil), coords...)}
}

// FromProbability seeds every cell alive independently with probability p.
func FromProbability(p float64) Pattern {
	return Pattern{probability: p, random: true}
}

// IsRandom reports whether the pattern is probability seeded.
func (p Pattern) IsRandom() bool { return p.random }

// Probability returns the seeding probability of a random pattern.
func (p Pattern) Probability() float64 { return p.probability }

// Coords returns a copy of the explicit coordinates.
func (p Pattern) Coords() []pattern.Coord { return append([]pattern.Coord(nil), p.coords...) }

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes random fills deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(uint64(seed), 0))
	}
}

// WithWorkers evaluates each generation in n parallel row bands.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithGridPool sets the pool generation buffers are recycled through. A nil
// pool allocates a new grid every step.
func WithGridPool(pool *model.GridPool) Option {
	return func(e *Engine) {
		e.pool = pool
	}
}

// Engine is a running automaton.
type Engine struct {
	mu sync.RWMutex

	rule    rules.Rule
	size    int
	seed    Pattern
	initial *model.Grid // nil for random patterns

	grid       *model.Grid
	generation int

	pool    *model.GridPool
	rng     *rand.Rand
	workers int
}

// New builds an engine with the initial pattern applied.
func New(rule rules.Rule, size int, p Pattern, opts ...Option) (*Engine, error) {
	if size < 1 {
		return nil, errors.Wrapf(ErrValidation, "[New] size must be positive, got %d", size)
	}
	if err := rule.Validate(); err != nil {
		return nil, errors.Wrap(err, "[New] invalid rule")
	}
	if p.random && (math.IsNaN(p.probability) || p.probability < 0 || p.probability > 1) {
		return nil, errors.Wrapf(ErrValidation, "[New] probability must be within [0,1], got %v", p.probability)
	}

	e := &Engine{
		rule:    rule,
		size:    size,
		seed:    p,
		grid:    model.NewGrid(size),
		pool:    model.NewGridPool(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if p.random {
		e.grid.Randomize(p.probability, e.rng)
		return e, nil
	}

	if err := e.grid.SetPattern(p.coords); err != nil {
		return nil, errors.Wrap(err, "[New] invalid pattern")
	}
	e.initial = e.grid.Clone()
	return e, nil
}

// NewFromString parses rule and builds an engine.
func NewFromString(rule string, size int, p Pattern, opts ...Option) (*Engine, error) {
	r, err := rules.Parse(rule)
	if err != nil {
		return nil, errors.Wrap(err, "[NewFromString] failed to parse rule")
	}
	return New(r, size, p, opts...)
}

// Step advances the board by one generation. Every cell is evaluated
// against the same pre-step board, and the new board replaces the old one
// in a single swap.
func (e *Engine) Step() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.grid.NextGeneration(e.rule, e.pool, e.workers)
	if err != nil {
		return errors.Wrapf(err, "[Step] generation %d", e.generation+1)
	}

	prev := e.grid
	e.grid = next
	e.generation++
	model.GridToPool(prev, e.pool)
	return nil
}

// Reset restores the initial condition. Coordinate patterns come back
// exactly; probability patterns are drawn again. No cell is left dying.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initial != nil {
		e.grid.CopyFrom(e.initial)
	} else {
		e.grid.Randomize(e.seed.probability, e.rng)
	}
	e.generation = 0
}

// Toggle edits one cell: a dying cell becomes dead, otherwise the cell
// flips between alive and dead.
func (e *Engine) Toggle(row, col int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.grid.InBounds(row, col) {
		return errors.Wrapf(ErrIndex, "[Toggle] cell (%d,%d) outside %dx%d board", row, col, e.size, e.size)
	}
	switch e.grid.Get(row, col) {
	case rules.Dying, rules.Alive:
		e.grid.Set(row, col, rules.Dead)
	default:
		e.grid.Set(row, col, rules.Alive)
	}
	return nil
}

// Query returns the state of one cell.
func (e *Engine) Query(row, col int) (rules.State, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.grid.InBounds(row, col) {
		return rules.Dead, errors.Wrapf(ErrIndex, "[Query] cell (%d,%d) outside %dx%d board", row, col, e.size, e.size)
	}
	return e.grid.Get(row, col), nil
}

// Snapshot returns a copy of the current board.
func (e *Engine) Snapshot() *model.Grid {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Clone()
}

// AlivePattern lists the alive cells in row-major order.
func (e *Engine) AlivePattern() []pattern.Coord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.AliveCoords()
}

// Generation returns the number of steps since construction or the last Reset.
func (e *Engine) Generation() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.generation
}

// Population returns the alive and dying cell counts.
func (e *Engine) Population() (alive, dying int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.CountLivingCells(), e.grid.CountDyingCells()
}

// Size returns the side length of the board.
func (e *Engine) Size() int { return e.size }

// Rule returns the rule driving the automaton.
func (e *Engine) Rule() rules.Rule { return e.rule }

// InitialPattern returns the pattern Reset restores.
func (e *Engine) InitialPattern() Pattern { return e.seed }
