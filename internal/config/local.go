package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-directory override file.
const LocalConfigFileName = ".spinelli.toml"

// LocalConfig holds per-directory overrides from .spinelli.toml, so a team
// can keep its own name list next to its project.
// Nil slices and zero values indicate "not set" (inherit from global).
type LocalConfig struct {
	Presets   []string       `toml:"presets"`
	Palette   []string       `toml:"palette"`
	Animation LocalAnimation `toml:"animation"`
	Pins      LocalPins      `toml:"pins"`
}

// LocalAnimation holds local animation overrides
type LocalAnimation struct {
	Duration string `toml:"duration"`
	Spins    *int   `toml:"spins"`
	Easing   string `toml:"easing"`
}

// LocalPins holds local pin overrides
type LocalPins struct {
	Number *int  `toml:"number"`
	Sound  *bool `toml:"sound"`
}

// LoadLocal reads a .spinelli.toml from dir.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse failure. The merged result is validated
// by the caller through Config.Validate.
func LoadLocal(dir string) (*LocalConfig, error) {
	configFile := filepath.Join(dir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if err := validateEnum(local.Animation.Easing, "animation.easing", ValidEasings); err != nil {
		return nil, fmt.Errorf("%w in %s", err, configFile)
	}

	return &local, nil
}

// defaultLocalConfig is the template for spinelli config init --local
const defaultLocalConfig = `# spinelli local config (per-directory overrides)
# Settings here override the global config when spinelli runs in this directory.

presets = ["Alice", "Bob", "Charlie"]

# palette = ["#FFD700", "#FF6347"]

# [animation]
# duration = "4s"
# spins = 5
# easing = "spring"

# [pins]
# number = 0
# sound = false
`

// DefaultLocalConfig returns the default local configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}
