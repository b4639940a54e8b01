package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/spinelli/internal/config"
	"github.com/raphi011/spinelli/internal/log"
	"github.com/raphi011/spinelli/internal/output"
	"github.com/raphi011/spinelli/internal/ui/prompt"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage spinelli configuration.

Global config: ~/.config/spinelli/config.toml (or $SPINELLI_CONFIG)
Local config:  .spinelli.toml (in the current directory)`,
		Example: `  spinelli config init          # Create default global config
  spinelli config init --local  # Create local config in this directory
  spinelli config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config.
With --local, creates .spinelli.toml in the current directory.`,
		Example: `  spinelli config init           # Create global config
  spinelli config init --local   # Create local config
  spinelli config init -f        # Overwrite existing config
  spinelli config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			content := config.DefaultConfig()
			if local {
				content = config.DefaultLocalConfig()
			}
			if stdout {
				out.Print(content)
				return nil
			}

			var path string
			if local {
				path = filepath.Join(workDir, config.LocalConfigFileName)
			} else {
				var err error
				if path, err = config.Path(); err != nil {
					return err
				}
			}

			if !force && fileExists(path) && interactive() {
				res, err := prompt.Confirm(fmt.Sprintf("Overwrite %s?", path))
				if err != nil {
					return err
				}
				if !res.Confirmed {
					log.FromContext(cmd.Context()).Println("Aborted")
					return nil
				}
				force = true
			}

			if err := writeConfigFile(path, content, force); err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create .spinelli.toml instead of global config")

	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// interactive reports whether both stdin and stderr are terminals.
func interactive() bool {
	for _, f := range []*os.File{os.Stdin, os.Stderr} {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return false
		}
	}
	return true
}

// writeConfigFile writes content to path, creating parent directories.
// An existing file is only replaced when force is set.
func writeConfigFile(path, content string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Prints the global config merged with .spinelli.toml from the current
directory, as TOML (or JSON with --json).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				return out.JSON(cfg)
			}

			global := cfg.Path
			if global == "" {
				global = "(defaults)"
			}
			out.Printf("# Global config: %s\n", global)

			local, err := config.LoadLocal(workDir)
			if err != nil {
				l.Printf("Warning: failed to load local config: %v\n", err)
			}
			if local != nil {
				out.Printf("# Local config:  %s\n", filepath.Join(workDir, config.LocalConfigFileName))
			} else {
				out.Println("# Local config:  (none)")
			}
			out.Println()

			return toml.NewEncoder(out.Writer()).Encode(cfg)
		},
	}

	return cmd
}
