package styles

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/spinelli/internal/config"
)

// Theme is the set of colors the wheel screen is drawn with.
type Theme struct {
	Primary   color.Color // button borders, title
	Accent    color.Color // focused control
	Success   color.Color // winner line
	Error     color.Color // warnings
	Muted     color.Color // disabled spin button, hints
	Normal    color.Color // button labels
	Info      color.Color // informational text
	Warning   color.Color // "Spinning..." line
	Highlight color.Color // background of the winner badge
}

// themeFamily groups light and dark variants of a theme
type themeFamily struct {
	Light *Theme // nil if no light variant
	Dark  *Theme // nil if no dark variant
}

// Dark presets
var (
	DefaultTheme = Theme{
		Primary:   lipgloss.Color("62"),
		Accent:    lipgloss.Color("212"),
		Success:   lipgloss.Color("82"),
		Error:     lipgloss.Color("196"),
		Muted:     lipgloss.Color("240"),
		Normal:    lipgloss.Color("252"),
		Info:      lipgloss.Color("244"),
		Warning:   lipgloss.Color("214"),
		Highlight: lipgloss.Color("236"),
	}

	DraculaTheme = Theme{
		Primary:   lipgloss.Color("#bd93f9"),
		Accent:    lipgloss.Color("#ff79c6"),
		Success:   lipgloss.Color("#50fa7b"),
		Error:     lipgloss.Color("#ff5555"),
		Muted:     lipgloss.Color("#6272a4"),
		Normal:    lipgloss.Color("#f8f8f2"),
		Info:      lipgloss.Color("#8be9fd"),
		Warning:   lipgloss.Color("#ffb86c"),
		Highlight: lipgloss.Color("#44475a"), // current line
	}

	NordTheme = Theme{
		Primary:   lipgloss.Color("#88c0d0"), // nord8
		Accent:    lipgloss.Color("#b48ead"), // nord15
		Success:   lipgloss.Color("#a3be8c"), // nord14
		Error:     lipgloss.Color("#bf616a"), // nord11
		Muted:     lipgloss.Color("#4c566a"), // nord3
		Normal:    lipgloss.Color("#eceff4"), // nord6
		Info:      lipgloss.Color("#81a1c1"), // nord9
		Warning:   lipgloss.Color("#ebcb8b"), // nord13
		Highlight: lipgloss.Color("#3b4252"), // nord1
	}

	GruvboxTheme = Theme{
		Primary:   lipgloss.Color("#83a598"),
		Accent:    lipgloss.Color("#d3869b"),
		Success:   lipgloss.Color("#b8bb26"),
		Error:     lipgloss.Color("#fb4934"),
		Muted:     lipgloss.Color("#665c54"),
		Normal:    lipgloss.Color("#ebdbb2"),
		Info:      lipgloss.Color("#8ec07c"),
		Warning:   lipgloss.Color("#fabd2f"),
		Highlight: lipgloss.Color("#3c3836"), // bg1
	}

	CatppuccinMochaTheme = Theme{
		Primary:   lipgloss.Color("#89b4fa"),
		Accent:    lipgloss.Color("#f5c2e7"),
		Success:   lipgloss.Color("#a6e3a1"),
		Error:     lipgloss.Color("#f38ba8"),
		Muted:     lipgloss.Color("#6c7086"),
		Normal:    lipgloss.Color("#cdd6f4"),
		Info:      lipgloss.Color("#94e2d5"),
		Warning:   lipgloss.Color("#fab387"),
		Highlight: lipgloss.Color("#313244"), // surface0
	}

	// NoneTheme leaves every color to the terminal. Bold and italic still
	// apply, and segment colors on the wheel are unaffected.
	NoneTheme = Theme{
		Primary:   lipgloss.NoColor{},
		Accent:    lipgloss.NoColor{},
		Success:   lipgloss.NoColor{},
		Error:     lipgloss.NoColor{},
		Muted:     lipgloss.NoColor{},
		Normal:    lipgloss.NoColor{},
		Info:      lipgloss.NoColor{},
		Warning:   lipgloss.NoColor{},
		Highlight: lipgloss.NoColor{},
	}
)

// Light presets
var (
	NordLightTheme = Theme{
		Primary:   lipgloss.Color("#5e81ac"), // nord10
		Accent:    lipgloss.Color("#b48ead"),
		Success:   lipgloss.Color("#a3be8c"),
		Error:     lipgloss.Color("#bf616a"),
		Muted:     lipgloss.Color("#9a9a9a"),
		Normal:    lipgloss.Color("#2e3440"), // nord0
		Info:      lipgloss.Color("#81a1c1"),
		Warning:   lipgloss.Color("#d08770"), // nord12
		Highlight: lipgloss.Color("#e5e9f0"), // nord5
	}

	GruvboxLightTheme = Theme{
		Primary:   lipgloss.Color("#076678"),
		Accent:    lipgloss.Color("#8f3f71"),
		Success:   lipgloss.Color("#79740e"),
		Error:     lipgloss.Color("#9d0006"),
		Muted:     lipgloss.Color("#928374"),
		Normal:    lipgloss.Color("#3c3836"),
		Info:      lipgloss.Color("#427b58"),
		Warning:   lipgloss.Color("#b57614"),
		Highlight: lipgloss.Color("#ebdbb2"), // bg1
	}

	CatppuccinLatteTheme = Theme{
		Primary:   lipgloss.Color("#1e66f5"),
		Accent:    lipgloss.Color("#ea76cb"),
		Success:   lipgloss.Color("#40a02b"),
		Error:     lipgloss.Color("#d20f39"),
		Muted:     lipgloss.Color("#9ca0b0"),
		Normal:    lipgloss.Color("#4c4f69"),
		Info:      lipgloss.Color("#179299"),
		Warning:   lipgloss.Color("#fe640b"),
		Highlight: lipgloss.Color("#ccd0da"), // surface0
	}
)

var themeFamilies = map[string]themeFamily{
	"none":       {Light: &NoneTheme, Dark: &NoneTheme},
	"default":    {Dark: &DefaultTheme},
	"dracula":    {Dark: &DraculaTheme},
	"nord":       {Light: &NordLightTheme, Dark: &NordTheme},
	"gruvbox":    {Light: &GruvboxLightTheme, Dark: &GruvboxTheme},
	"catppuccin": {Light: &CatppuccinLatteTheme, Dark: &CatppuccinMochaTheme},
}

// hasDarkBackground queries the terminal. Tests replace it.
var hasDarkBackground = func() bool {
	return lipgloss.HasDarkBackground(os.Stdin, os.Stderr)
}

var currentTheme = DefaultTheme

// Current returns the active theme.
func Current() Theme {
	return currentTheme
}

// Init selects the theme from config, applies per-color overrides and
// updates the package style variables. Call it after loading config and
// before the wheel view starts.
func Init(cfg config.ThemeConfig) {
	theme := selectTheme(cfg)

	overrides := []struct {
		value string
		dst   *color.Color
	}{
		{cfg.Primary, &theme.Primary},
		{cfg.Accent, &theme.Accent},
		{cfg.Success, &theme.Success},
		{cfg.Error, &theme.Error},
		{cfg.Muted, &theme.Muted},
		{cfg.Normal, &theme.Normal},
		{cfg.Info, &theme.Info},
		{cfg.Warning, &theme.Warning},
		{cfg.Highlight, &theme.Highlight},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dst = lipgloss.Color(o.value)
		}
	}

	currentTheme = theme
	applyTheme(theme)
}

// selectTheme picks the family variant for the configured mode. Unknown
// names and modes fall back to the defaults with a warning on stderr.
func selectTheme(cfg config.ThemeConfig) Theme {
	family, ok := themeFamilies[cfg.Name]
	if !ok {
		if cfg.Name != "" {
			fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using default (available: %s)\n",
				cfg.Name, strings.Join(config.ValidThemeNames, ", "))
		}
		family = themeFamilies["default"]
	}

	var dark bool
	switch cfg.Mode {
	case "light":
		dark = false
	case "dark":
		dark = true
	case "", "auto":
		dark = hasDarkBackground()
	default:
		fmt.Fprintf(os.Stderr, "Warning: unknown theme mode %q, using auto (available: %s)\n",
			cfg.Mode, strings.Join(config.ValidThemeModes, ", "))
		dark = hasDarkBackground()
	}

	preferred, other := family.Light, family.Dark
	if dark {
		preferred, other = family.Dark, family.Light
	}
	switch {
	case preferred != nil:
		return *preferred
	case other != nil:
		return *other
	default:
		return DefaultTheme
	}
}

// applyTheme updates the package color and style variables.
func applyTheme(t Theme) {
	Primary = t.Primary
	Accent = t.Accent
	Success = t.Success
	Error = t.Error
	Muted = t.Muted
	Normal = t.Normal
	Info = t.Info
	Warning = t.Warning
	Highlight = t.Highlight

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	InfoStyle = lipgloss.NewStyle().Foreground(t.Info).Italic(true)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)

	RoundedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)
}
