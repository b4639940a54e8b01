package config

import "strings"

// namedColors maps the CSS color names accepted in config files to hex.
var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#FFFFFF",
	"silver":    "#C0C0C0",
	"gray":      "#808080",
	"grey":      "#808080",
	"red":       "#FF0000",
	"green":     "#008000",
	"blue":      "#0000FF",
	"yellow":    "#FFFF00",
	"orange":    "#FFA500",
	"purple":    "#800080",
	"gold":      "#FFD700",
	"tomato":    "#FF6347",
	"turquoise": "#40E0D0",
	"violet":    "#EE82EE",
	"navy":      "#000080",
	"teal":      "#008080",
}

// ResolveColor normalizes a config color to "#RRGGBB".
// Accepts "#RGB", "#RRGGBB" and the CSS names in namedColors (case-insensitive).
func ResolveColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		return hex, true
	}
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	digits := s[1:]
	for _, r := range digits {
		if !isHexDigit(r) {
			return "", false
		}
	}
	switch len(digits) {
	case 6:
		return "#" + strings.ToUpper(digits), true
	case 3:
		var b strings.Builder
		b.WriteByte('#')
		for _, r := range strings.ToUpper(digits) {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return b.String(), true
	}
	return "", false
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
