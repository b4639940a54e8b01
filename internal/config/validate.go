package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Animation types and easing profiles.
const (
	AnimationSpinToStop = "spin-to-stop"

	EasingPower4Out = "power4-out"
	EasingPower2Out = "power2-out"
	EasingLinear    = "linear"
	EasingSpring    = "spring"
)

// Valid enum values for configuration fields.
var (
	ValidAnimationTypes = []string{AnimationSpinToStop}
	ValidEasings        = []string{EasingPower4Out, EasingPower2Out, EasingLinear, EasingSpring}
	ValidThemeNames     = []string{"none", "default", "dracula", "nord", "gruvbox", "catppuccin"}
	ValidThemeModes     = []string{"auto", "light", "dark"}
)

// Limits for wheel geometry.
const (
	MinOuterRadius = 4
	MaxOuterRadius = 40
	MaxFPS         = 120
)

// Validate checks the config for values the wheel cannot render.
func (c *Config) Validate() error {
	if len(c.Palette) == 0 {
		return fmt.Errorf("palette must contain at least one color")
	}
	for i, col := range c.Palette {
		if _, ok := ResolveColor(col); !ok {
			return fmt.Errorf("invalid palette[%d] %q: must be a hex color or a CSS color name", i, col)
		}
	}
	if len(c.Presets) == 0 {
		return fmt.Errorf("presets must contain at least one name")
	}
	for i, name := range c.Presets {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("invalid presets[%d]: name cannot be empty", i)
		}
	}

	if err := c.Wheel.validate(); err != nil {
		return err
	}
	if err := c.Animation.validate(); err != nil {
		return err
	}
	if err := c.Pins.validate(); err != nil {
		return err
	}

	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		return err
	}
	return validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes)
}

func (w WheelConfig) validate() error {
	if w.OuterRadius < MinOuterRadius || w.OuterRadius > MaxOuterRadius {
		return fmt.Errorf("invalid wheel.outer_radius %d: must be between %d and %d", w.OuterRadius, MinOuterRadius, MaxOuterRadius)
	}
	if w.InnerRadius < 0 || w.InnerRadius >= w.OuterRadius {
		return fmt.Errorf("invalid wheel.inner_radius %d: must be between 0 and outer_radius-1", w.InnerRadius)
	}
	if w.OutlineWidth < 0 {
		return fmt.Errorf("invalid wheel.outline_width %d: must not be negative", w.OutlineWidth)
	}
	if w.CellAspect <= 0 || w.CellAspect > 2 {
		return fmt.Errorf("invalid wheel.cell_aspect %v: must be in (0, 2]", w.CellAspect)
	}
	for field, col := range map[string]string{"wheel.text_color": w.TextColor, "wheel.outline_color": w.OutlineColor} {
		if _, ok := ResolveColor(col); !ok {
			return fmt.Errorf("invalid %s %q: must be a hex color or a CSS color name", field, col)
		}
	}
	return nil
}

func (a AnimationConfig) validate() error {
	if a.Type == "" {
		return fmt.Errorf("animation.type cannot be empty")
	}
	if err := validateEnum(a.Type, "animation.type", ValidAnimationTypes); err != nil {
		return err
	}
	if err := validateEnum(a.Easing, "animation.easing", ValidEasings); err != nil {
		return err
	}
	d, err := time.ParseDuration(a.Duration)
	if err != nil {
		return fmt.Errorf("invalid animation.duration %q: %w", a.Duration, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid animation.duration %q: must be positive", a.Duration)
	}
	if a.Spins < 0 {
		return fmt.Errorf("invalid animation.spins %d: must not be negative", a.Spins)
	}
	if a.FPS < 1 || a.FPS > MaxFPS {
		return fmt.Errorf("invalid animation.fps %d: must be between 1 and %d", a.FPS, MaxFPS)
	}
	return nil
}

func (p PinsConfig) validate() error {
	if p.Number < 0 {
		return fmt.Errorf("invalid pins.number %d: must not be negative", p.Number)
	}
	if p.Number == 0 {
		return nil
	}
	for field, col := range map[string]string{"pins.fill": p.Fill, "pins.stroke": p.Stroke} {
		if _, ok := ResolveColor(col); !ok {
			return fmt.Errorf("invalid %s %q: must be a hex color or a CSS color name", field, col)
		}
	}
	return nil
}

// isValidThemeName reports whether name is a known theme family.
func isValidThemeName(name string) bool {
	return slices.Contains(ValidThemeNames, name)
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
