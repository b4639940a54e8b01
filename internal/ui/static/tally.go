// Package static provides non-interactive terminal output components.
//
// It renders formatted output that does not require user interaction,
// such as the win tally printed by spinelli pick.
package static

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/spinelli/internal/ui/styles"
	"github.com/raphi011/spinelli/internal/wheel"
)

// TallyRow is one line of the win tally.
type TallyRow struct {
	Segment wheel.Segment
	Wins    int
}

// Tally counts wins per label in history, most wins first. Ties keep the
// order in which names first won. The color is the one of the first win.
func Tally(history []wheel.Segment) []TallyRow {
	var rows []TallyRow
	index := map[string]int{}
	for _, seg := range history {
		if i, ok := index[seg.Label]; ok {
			rows[i].Wins++
			continue
		}
		index[seg.Label] = len(rows)
		rows = append(rows, TallyRow{Segment: seg, Wins: 1})
	}
	slices.SortStableFunc(rows, func(a, b TallyRow) int {
		return cmp.Compare(b.Wins, a.Wins)
	})
	return rows
}

// RenderTally renders the win tally of a session as a borderless table
// with each name in its segment color.
func RenderTally(history []wheel.Segment) string {
	rows := Tally(history)
	if len(rows) == 0 {
		return ""
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		share := float64(r.Wins) / float64(len(history)) * 100
		cells = append(cells, []string{
			styles.SegmentColor(r.Segment.Color).Render(r.Segment.Label),
			fmt.Sprintf("%d", r.Wins),
			fmt.Sprintf("%.0f%%", share),
		})
	}

	var output strings.Builder

	t := table.New().
		Headers("NAME", "WINS", "SHARE").
		Rows(cells...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			if col > 0 {
				return s.Align(lipgloss.Right)
			}
			return s
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}
