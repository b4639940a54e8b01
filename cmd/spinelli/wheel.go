package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/spinelli/internal/config"
	"github.com/raphi011/spinelli/internal/engine"
	"github.com/raphi011/spinelli/internal/log"
	"github.com/raphi011/spinelli/internal/output"
	"github.com/raphi011/spinelli/internal/ui/static"
	"github.com/raphi011/spinelli/internal/ui/styles"
	"github.com/raphi011/spinelli/internal/ui/wheelview"
	"github.com/raphi011/spinelli/internal/wheel"
)

// loadConfig returns the global config merged with the .spinelli.toml in
// dir. On error the returned config is still usable: defaults when the
// global file is broken, the global config when the local file is.
func loadConfig(dir string) (*config.Config, error) {
	global, err := config.Load()
	if err != nil {
		return &global, err
	}

	local, err := config.LoadLocal(dir)
	if err != nil {
		return &global, fmt.Errorf("%w (using global config)", err)
	}

	merged := config.MergeLocal(&global, local)
	if err := merged.Validate(); err != nil {
		path := filepath.Join(dir, config.LocalConfigFileName)
		return &global, fmt.Errorf("%s: %w (using global config)", path, err)
	}
	return merged, nil
}

// widgetOptions builds the wheel options from config. names, when given,
// replace the configured presets.
func widgetOptions(cfg *config.Config, names []string, logger *log.Logger) wheel.Options {
	presets := cfg.Presets
	if len(names) > 0 {
		presets = names
	}
	return wheel.Options{
		Palette:      wheel.Palette(cfg.Palette),
		Presets:      presets,
		FormatWinner: styles.FormatWinner,
		Logger:       logger,
	}
}

// checkNames rejects --name values that are blank after trimming.
func checkNames(names []string) error {
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("--name #%d cannot be empty", i+1)
		}
	}
	return nil
}

// runWheel shows the interactive wheel and reports the last winner after
// the user quits.
func runWheel(ctx context.Context, names []string, logFile string) error {
	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)

	if fd := os.Stderr.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return fmt.Errorf("the wheel needs a terminal on stderr; use 'spinelli pick' in scripts")
	}

	// The wheel owns stderr while it is shown, so debug output either goes
	// to a file or nowhere.
	uiLogger := log.New(io.Discard, false, false)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		uiLogger = log.New(f, true, false)
	}

	opts := wheelview.Options{
		Widget: widgetOptions(cfg, names, uiLogger),
		Engine: engine.ConfigFrom(*cfg),
	}
	if cfg.Pins.Sound {
		opts.Bell = os.Stderr
	}

	l.Debug("starting wheel", "segments", len(opts.Widget.Initial().Segments), "easing", cfg.Animation.Easing)
	m, err := wheelview.New(opts).Run()
	if err != nil {
		return err
	}

	w := m.Widget()
	if _, ok := w.LastWinner(); !ok {
		l.Debug("no spin completed")
		return nil
	}
	return reportWinners(ctx, w, reportOptions{JSON: jsonOutput, Copy: copyWinner})
}

type segmentJSON struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type resultJSON struct {
	Winner  segmentJSON    `json:"winner"`
	History []segmentJSON  `json:"history"`
	Tally   map[string]int `json:"tally"`
}

func toSegmentJSON(seg wheel.Segment) segmentJSON {
	return segmentJSON{Label: seg.Label, Color: seg.Color}
}

type reportOptions struct {
	JSON bool
	Copy bool
	// All prints every winner of the session in plain output, not just
	// the last one.
	All bool
	// Tally appends a win table to plain output.
	Tally bool
}

// reportWinners prints the session result to stdout.
func reportWinners(ctx context.Context, w *wheel.Widget, opts reportOptions) error {
	out := output.FromContext(ctx)
	l := log.FromContext(ctx)

	winner, ok := w.LastWinner()
	if !ok {
		return fmt.Errorf("no winner")
	}

	if opts.Copy {
		if err := clipboard.WriteAll(winner.Label); err != nil {
			l.Printf("Warning: failed to copy winner to clipboard: %v\n", err)
		} else {
			l.Debug("copied winner to clipboard", "label", winner.Label)
		}
	}

	history := w.History()
	if opts.JSON {
		res := resultJSON{
			Winner:  toSegmentJSON(winner),
			History: make([]segmentJSON, 0, len(history)),
			Tally:   w.Tally(),
		}
		for _, seg := range history {
			res.History = append(res.History, toSegmentJSON(seg))
		}
		return out.JSON(res)
	}

	winners := history
	if !opts.All {
		winners = history[len(history)-1:]
	}
	for _, seg := range winners {
		out.Println(seg.Label)
	}
	if opts.Tally {
		out.Println()
		out.Print(static.RenderTally(history))
	}
	return nil
}
