package styles

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/spinelli/internal/config"
	"github.com/raphi011/spinelli/internal/wheel"
)

// SegmentColor converts a palette token to a lipgloss color.
// Unknown tokens render without color.
func SegmentColor(token string) lipgloss.Style {
	hex, ok := config.ResolveColor(token)
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// WinnerLabel renders a winner's label in its segment color on the theme
// highlight background.
func WinnerLabel(seg wheel.Segment) string {
	return SegmentColor(seg.Color).
		Bold(true).
		Background(Highlight).
		Padding(0, 1).
		Render(seg.Label)
}

// FormatWinner renders the result display message for a winner.
func FormatWinner(seg wheel.Segment) string {
	return fmt.Sprintf("Winner is: %s! 🎉", WinnerLabel(seg))
}
