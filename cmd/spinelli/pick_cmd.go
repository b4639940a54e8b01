package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/spinelli/internal/config"
	"github.com/raphi011/spinelli/internal/engine"
	"github.com/raphi011/spinelli/internal/log"
	"github.com/raphi011/spinelli/internal/wheel"
)

func newPickCmd() *cobra.Command {
	var (
		seed  uint64
		times int
		tally bool
	)

	cmd := &cobra.Command{
		Use:     "pick [NAME...]",
		Short:   "Pick a winner without showing the wheel",
		GroupID: GroupCore,
		Args:    cobra.ArbitraryArgs,
		Long: `Pick a winner without showing the wheel.

Names given as arguments replace the configured presets. The same rules
as the interactive wheel apply: blank names are skipped and at least two
names are needed.`,
		Example: `  spinelli pick                  # Pick from the configured names
  spinelli pick Ann Ben Cid      # Pick from these names
  spinelli pick -t 20 --tally    # Twenty spins and a win table
  spinelli pick -t 5 --json      # Five spins with a tally
  spinelli pick --seed 42 a b c  # Reproducible pick`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var r *rand.Rand
			if cmd.Flags().Changed("seed") {
				r = rand.New(rand.NewPCG(seed, seed))
			} else {
				r = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
			}

			w, err := pick(ctx, args, times, r)
			if err != nil {
				return err
			}
			return reportWinners(ctx, w, reportOptions{JSON: jsonOutput, Copy: copyWinner, All: true, Tally: tally})
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed the random source for a reproducible pick")
	cmd.Flags().IntVarP(&times, "times", "t", 1, "Number of spins")
	cmd.Flags().BoolVar(&tally, "tally", false, "Print a win table after the winners")

	return cmd
}

// headlessControls collects what the widget would show on screen.
type headlessControls struct {
	result  string
	warning string
}

func (c *headlessControls) SetResult(text string) { c.result = text }
func (c *headlessControls) SetSpinEnabled(bool)   {}
func (c *headlessControls) NameValue() string     { return "" }
func (c *headlessControls) ClearName()            {}
func (c *headlessControls) FocusName()            {}
func (c *headlessControls) Warn(msg string)       { c.warning = msg }

// pick spins a headless wheel the given number of times.
func pick(ctx context.Context, names []string, times int, r *rand.Rand) (*wheel.Widget, error) {
	if times < 1 {
		return nil, fmt.Errorf("--times must be at least 1, got %d", times)
	}

	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)

	opts := widgetOptions(cfg, names, l)
	opts.FormatWinner = wheel.PlainWinner

	eng := engine.NewInstant(opts.Initial().Segments, r)
	ctl := &headlessControls{}
	w := wheel.New(opts, eng, ctl)

	for i := 0; i < times; i++ {
		if err := w.RequestSpin(); err != nil {
			if errors.Is(err, wheel.ErrTooFewSegments) {
				return nil, errors.New(ctl.warning)
			}
			return nil, err
		}
		l.Debug("pick", "spin", i+1, "result", ctl.result)
	}
	return w, nil
}
