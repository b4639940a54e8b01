package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/spinelli/internal/config"
	"github.com/raphi011/spinelli/internal/log"
	"github.com/raphi011/spinelli/internal/output"
	"github.com/raphi011/spinelli/internal/ui/styles"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOutput bool
	copyWinner bool

	// Shared state injected into commands
	workDir string
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// rootCmd runs the interactive wheel when called without a subcommand.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var (
		names   []string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "spinelli",
		Short: "Spin a prize wheel in your terminal",
		Long: `spinelli draws a prize wheel in the terminal and picks a random winner.

Add names with the input field, remove the most recent one, and spin.
The winner of the last spin is printed to stdout when you quit, so
winner=$(spinelli) works.`,
		Example: `  spinelli                       # Wheel with the configured names
  spinelli -n Ann -n Ben -n Cid  # Wheel with these names only
  spinelli --copy                # Copy the winner to the clipboard`,
		Args:                       cobra.NoArgs,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate mutually exclusive flags
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}

			// Create logger (stderr for diagnostics) once flags are parsed
			logger := log.New(os.Stderr, verbose, quiet)
			cmd.SetContext(log.WithLogger(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkNames(names); err != nil {
				return err
			}
			return runWheel(cmd.Context(), names, logFile)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	cmd.PersistentFlags().BoolVar(&copyWinner, "copy", false, "Copy the winner to the clipboard")

	cmd.Flags().StringArrayVarP(&names, "name", "n", nil, "Name on the wheel (repeatable, replaces configured presets)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write debug logs to this file while the wheel is shown")

	// Version flag
	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newPickCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Get working directory
	var err error
	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "spinelli: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Load global config, then per-directory overrides
	cfg, err := loadConfig(workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	styles.Init(cfg.Theme)

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithConfig(ctx, cfg)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'spinelli -h' for help")
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version information",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.FromContext(cmd.Context()).Println(versionString())
			return nil
		},
	}
}
