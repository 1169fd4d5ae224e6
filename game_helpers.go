package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-automata/engine"
	"github.com/sheikhrachel/go-automata/model"
	"github.com/sheikhrachel/go-automata/pattern"
	"github.com/sheikhrachel/go-automata/utils"
)

const defaultConfigFile = "config.json"

const usage = `Usage: go-automata [flags] [<size> <rule> <probability|pattern-file>]

Runs a cellular automaton on a size x size toroidal board.
The rule is "<survival digits>/<birth digits>/<states>", e.g. 23/3/2.
The third argument is used as a probability when it parses as a number,
otherwise as a file of "row col" pairs.

Flags:
`

// options are the command-line settings that are not part of utils.Config.
type options struct {
	configFile string
	print      bool
}

// parseArgs builds the run configuration. The config file is read first,
// then flags and positional arguments override it.
func parseArgs(args []string, stderr io.Writer) (utils.Config, options, error) {
	var opts options

	cfg := utils.DefaultConfig()
	fs := newFlagSet(&cfg, &opts, stderr)
	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}

	path := opts.configFile
	if path == "" {
		path = defaultConfigFile
	}
	fileCfg, err := utils.LoadConfig(path)
	switch {
	case err == nil:
		// Parse again so flags win over the file.
		cfg = fileCfg
		fs = newFlagSet(&cfg, &opts, io.Discard)
		if err = fs.Parse(args); err != nil {
			return cfg, opts, err
		}
	case opts.configFile == "" && os.IsNotExist(errors.Cause(err)):
		// No config file: defaults plus flags.
	default:
		return cfg, opts, err
	}

	if err = applyPositional(&cfg, fs.Args()); err != nil {
		return cfg, opts, err
	}
	return cfg, opts, cfg.Validate()
}

func newFlagSet(cfg *utils.Config, opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("go-automata", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	cfg.Bind(fs)
	fs.StringVar(&opts.configFile, "config", opts.configFile, "JSON config file (default "+defaultConfigFile+" if present)")
	fs.BoolVar(&opts.print, "print", opts.print, "run without animation and print the final alive cells")
	return fs
}

// applyPositional handles the "<size> <rule> <probability|file>" form.
func applyPositional(cfg *utils.Config, args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 3:
	default:
		return errors.Wrapf(utils.ErrParse, "[applyPositional] expected 3 arguments, got %d", len(args))
	}

	size, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Wrapf(utils.ErrParse, "[applyPositional] size %q is not an integer", args[0])
	}
	cfg.Size = size
	cfg.Rule = args[1]

	if p, err := strconv.ParseFloat(args[2], 64); err == nil {
		cfg.Probability = p
		cfg.PatternFile = ""
	} else {
		cfg.PatternFile = args[2]
	}
	return nil
}

// initializeEngine builds the automaton described by the configuration
func initializeEngine(config utils.Config) (*engine.Engine, error) {
	seed := engine.FromProbability(config.Probability)
	if config.PatternFile != "" {
		coords, err := pattern.Load(config.PatternFile)
		if err != nil {
			return nil, errors.Wrap(err, "[initializeEngine] failed to load pattern")
		}
		seed = engine.FromCoords(coords)
	}

	opts := []engine.Option{engine.WithWorkers(config.Workers)}
	if config.Seed != 0 {
		opts = append(opts, engine.WithSeed(config.Seed))
	}
	if !config.UseMemoryPool {
		opts = append(opts, engine.WithGridPool(nil))
	}

	e, err := engine.NewFromString(config.Rule, config.Size, seed, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeEngine] failed to create automaton")
	}
	return e, nil
}

// runHeadless steps the automaton config.MaxGenerations times and writes the
// alive cells in pattern file format.
func runHeadless(e *engine.Engine, config utils.Config, out io.Writer) error {
	for range config.MaxGenerations {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return pattern.Write(out, e.AlivePattern())
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, e *engine.Engine) {
	alive, _ := e.Population()
	seed := fmt.Sprintf("probability %.2f", config.Probability)
	if !e.InitialPattern().IsRandom() {
		seed = "pattern " + config.PatternFile
	}
	fmt.Fprintf(out, "Rule: %s | Board: %dx%d | Seed: %s | Workers: %d\n",
		e.Rule(), e.Size(), e.Size(), seed, config.Workers)
	fmt.Fprintf(out, "Initial living cells: %d\n", alive)
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// updateGameState records the current generation and reports whether the
// board is stagnant
func updateGameState(
	e *engine.Engine,
	history *model.History,
	lastFrameTime time.Time,
	stats *utils.Stats,
) (string, bool) {
	alive, dying := e.Population()
	stats.Update(e.Generation(), alive, dying, time.Since(lastFrameTime))

	snapshot := e.Snapshot()
	isStagnant := history.IsStagnant(snapshot)
	history.Record(snapshot)

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if alive == 0 && dying == 0 {
		status = "Extinct"
	}
	return status, isStagnant
}

// displayGameStatus shows the current game status
func displayGameStatus(out io.Writer, status string, e *engine.Engine, stats *utils.Stats) {
	fmt.Fprintf(out, "Gen: %d | Living: %d | Dying: %d | Density: %.1f%% | Status: %s\n",
		stats.TotalGenerations, stats.Population, stats.Dying,
		stats.Density(e.Size()*e.Size())*100, status)
	fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Restarts: %d | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Restarts, stats.Runtime().Seconds())
	fmt.Fprintln(out)
}

// checkRestartConditions determines if the board should be reset
func checkRestartConditions(alive, dying, stagnantCount int, config utils.Config) (bool, string) {
	if alive == 0 && dying == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}
