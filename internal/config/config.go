package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// ConfigEnvVar overrides the global config file location.
const ConfigEnvVar = "SPINELLI_CONFIG"

// WheelConfig holds wheel geometry and styling.
type WheelConfig struct {
	OuterRadius  int     `toml:"outer_radius"`  // in terminal rows
	InnerRadius  int     `toml:"inner_radius"`  // 0 = solid wheel
	TextColor    string  `toml:"text_color"`    // segment label color
	OutlineColor string  `toml:"outline_color"` // segment boundary color
	OutlineWidth int     `toml:"outline_width"` // 0 disables boundaries
	PointerAngle float64 `toml:"pointer_angle"` // degrees, 0 = top, clockwise
	CellAspect   float64 `toml:"cell_aspect"`   // cell width / height
}

// AnimationConfig holds spin animation parameters.
type AnimationConfig struct {
	Type     string `toml:"type"`     // only "spin-to-stop"
	Duration string `toml:"duration"` // Go duration, e.g. "8s"
	Spins    int    `toml:"spins"`    // full rotations before stopping
	Easing   string `toml:"easing"`
	FPS      int    `toml:"fps"`
}

// DurationValue returns the parsed animation duration.
// Invalid values are rejected by Validate, so callers can ignore the zero case.
func (a AnimationConfig) DurationValue() time.Duration {
	d, err := time.ParseDuration(a.Duration)
	if err != nil {
		return 0
	}
	return d
}

// PinsConfig holds the decorative pins drawn on the wheel rim.
type PinsConfig struct {
	Number int    `toml:"number"` // 0 disables pins
	Fill   string `toml:"fill"`
	Stroke string `toml:"stroke"`
	Sound  bool   `toml:"sound"` // ring the terminal bell when the pointer passes a pin
}

// ThemeConfig holds UI theme configuration.
type ThemeConfig struct {
	Name      string `toml:"name"` // preset family name
	Mode      string `toml:"mode"` // "auto", "light" or "dark"
	Primary   string `toml:"primary"`
	Accent    string `toml:"accent"`
	Success   string `toml:"success"`
	Error     string `toml:"error"`
	Muted     string `toml:"muted"`
	Normal    string `toml:"normal"`
	Info      string `toml:"info"`
	Warning   string `toml:"warning"`
	Highlight string `toml:"highlight"` // winner badge background
}

// Config holds the spinelli configuration
type Config struct {
	Presets   []string        `toml:"presets"`
	Palette   []string        `toml:"palette"`
	Wheel     WheelConfig     `toml:"wheel"`
	Animation AnimationConfig `toml:"animation"`
	Pins      PinsConfig      `toml:"pins"`
	Theme     ThemeConfig     `toml:"theme"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Presets: []string{"Alice", "Bob", "Charlie"},
		Palette: []string{"#FFD700", "#FF6347", "#ADFF2F", "#40E0D0", "#EE82EE", "#6A5ACD"},
		Wheel: WheelConfig{
			OuterRadius:  12,
			InnerRadius:  2,
			TextColor:    "#333333",
			OutlineColor: "#666666",
			OutlineWidth: 1,
			PointerAngle: 0,
			CellAspect:   0.5,
		},
		Animation: AnimationConfig{
			Type:     AnimationSpinToStop,
			Duration: "8s",
			Spins:    10,
			Easing:   EasingPower4Out,
			FPS:      30,
		},
		Pins: PinsConfig{
			Number: 16,
			Fill:   "silver",
			Stroke: "black",
		},
	}
}

// Path returns the path to the global config file.
// SPINELLI_CONFIG takes precedence over ~/.config/spinelli/config.toml.
func Path() (string, error) {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "spinelli", "config.toml"), nil
}

// Load reads the global config file.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from path. Keys missing from the file keep their
// default values.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML config data over the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

type ctxKey struct{}

// WithConfig attaches a config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns the defaults if none is attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}

// defaultConfig is the template written by spinelli config init.
const defaultConfig = `# spinelli configuration

# Names the wheel starts with
presets = ["Alice", "Bob", "Charlie"]

# Segment colors, cycled as names are added (hex or CSS color names)
palette = ["#FFD700", "#FF6347", "#ADFF2F", "#40E0D0", "#EE82EE", "#6A5ACD"]

[wheel]
outer_radius = 12        # rows
inner_radius = 2         # 0 draws a solid wheel
text_color = "#333333"
outline_color = "#666666"
outline_width = 1        # 0 hides segment boundaries
pointer_angle = 0        # degrees, 0 = top
cell_aspect = 0.5        # terminal cell width / height

[animation]
type = "spin-to-stop"
duration = "8s"
spins = 10
easing = "power4-out"    # power4-out, power2-out, linear, spring
fps = 30

[pins]
number = 16              # 0 hides pins
fill = "silver"
stroke = "black"
sound = false            # ring the terminal bell on every pin

# [theme]
# name = "default"       # none, default, dracula, nord, gruvbox, catppuccin
# mode = "auto"          # auto, light, dark
# accent = "#ff79c6"
# highlight = "#44475a"  # winner badge background
`

// DefaultConfig returns the default configuration template content.
func DefaultConfig() string {
	return defaultConfig
}
