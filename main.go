package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-automata/engine"
	"github.com/sheikhrachel/go-automata/model"
	"github.com/sheikhrachel/go-automata/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	config, opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}

	e, err := initializeEngine(config)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	if opts.print {
		if err = runHeadless(e, config, stdout); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		return 0
	}

	if err = animate(e, config, stdout); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// animate renders generations to the terminal until the generation limit
// is reached or the process is interrupted.
func animate(e *engine.Engine, config utils.Config, out io.Writer) error {
	var (
		renderer = &model.TerminalRenderer{Out: out}
		history  = model.NewHistory(0)
		stats    = utils.NewStats()
	)
	displayGameInfo(out, config, e)
	time.Sleep(2 * time.Second)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var (
		stagnantCount = 0
		lastFrameTime = time.Now()
		ticker        = time.NewTicker(max(config.FrameRate, time.Millisecond))
	)
	defer ticker.Stop()

	for {
		frameStart := time.Now()
		if err := renderer.Clear(); err != nil {
			fmt.Fprintln(out, "Error clearing terminal:", err)
		}

		status, isStagnant := updateGameState(e, history, lastFrameTime, stats)
		lastFrameTime = frameStart
		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		displayGameStatus(out, status, e, stats)
		if err := renderer.Display(e.Snapshot()); err != nil {
			return err
		}

		if config.MaxGenerations > 0 && e.Generation() >= config.MaxGenerations {
			fmt.Fprintf(out, "\nReached maximum generations limit (%d)\n", config.MaxGenerations)
			return nil
		}

		alive, dying := e.Population()
		if shouldRestart, reason := checkRestartConditions(alive, dying, stagnantCount, config); shouldRestart && config.AutoRestart {
			fmt.Fprintf(out, "Restarting due to %s...\n", reason)
			e.Reset()
			history.Clear()
			stats.Restarts++
			stagnantCount = 0
		} else if err := e.Step(); err != nil {
			return err
		}

		select {
		case <-sigChan:
			fmt.Fprintln(out, "\nShutting down gracefully...")
			fmt.Fprintf(out, "Final stats: %d generations in %.1f seconds\n",
				stats.TotalGenerations, stats.Runtime().Seconds())
			fmt.Fprintf(out, "Average: %.1f gen/sec, %.1f avg population\n",
				stats.GenerationsPerSecond, stats.AveragePopulation)
			return nil
		case <-ticker.C:
		}
	}
}
