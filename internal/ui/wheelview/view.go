package wheelview

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/raphi011/spinelli/internal/ui/styles"
)

var buttonLabels = map[focus]string{
	focusAdd:    "Add",
	focusRemove: "Remove",
	focusSpin:   "Spin",
}

func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

// render builds the screen as a string; empty once the user quit.
func (m *Model) render() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.AccentStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.engine.Frame())
	b.WriteString("\n\n")

	b.WriteString(m.resultLine())
	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(styles.ErrorStyle.Render(m.warning))
	}
	b.WriteString("\n\n")

	b.WriteString(m.controlsView())
	b.WriteString("\n\n")
	b.WriteString(m.helpView())

	return b.String()
}

func (m *Model) resultLine() string {
	if m.widget.Spinning() {
		return m.spinner.View() + " " + styles.WarningStyle.Render(m.result)
	}
	if m.result == "" {
		return styles.MutedStyle.Render(m.wheelSummary())
	}
	return styles.SuccessStyle.Render(m.result)
}

// wheelSummary lists the names on the wheel before the first spin.
func (m *Model) wheelSummary() string {
	labels := m.widget.State().Labels()
	return "On the wheel: " + strings.Join(labels, ", ")
}

func (m *Model) controlsView() string {
	label := "Name "
	if m.focus == focusInput {
		label = styles.AccentStyle.Render("Name ")
	}
	input := label + m.input.View()

	buttons := make([]string, 0, len(buttonLabels))
	for f := focusAdd; f < focusCount; f++ {
		buttons = append(buttons, m.buttonView(f))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
	return input + "\n" + row
}

func (m *Model) buttonView(f focus) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		MarginRight(1)

	switch {
	case f == focusSpin && !m.spinEnabled:
		style = style.BorderForeground(styles.Muted).Foreground(styles.Muted)
	case f == m.focus:
		style = style.BorderForeground(styles.Accent).Foreground(styles.Accent).Bold(true)
	default:
		style = style.BorderForeground(styles.Primary).Foreground(styles.Normal)
	}
	return style.Render(buttonLabels[f])
}

func (m *Model) helpView() string {
	if m.focus == focusInput {
		return m.help.ShortHelpView(m.keys.inputHelp())
	}
	return m.help.View(m.keys)
}
