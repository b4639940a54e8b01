// Package wheelview is the interactive terminal front end of the prize
// wheel.
//
// [Model] is a bubbletea program that owns a [wheel.Widget] and the
// [engine.Engine] it drives. It implements [wheel.Controls]: a name input,
// Add, Remove and Spin buttons, a result line and a status line for
// warnings. Spin animation frames are produced by a tick that calls
// Engine.Advance until the spin completes.
package wheelview

import (
	"fmt"
	"io"
	"os"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/spinelli/internal/engine"
	"github.com/raphi011/spinelli/internal/wheel"
)

// focus identifies the control that receives enter.
type focus int

const (
	focusInput focus = iota
	focusAdd
	focusRemove
	focusSpin
	focusCount
)

// frameMsg drives one animation frame.
type frameMsg time.Time

// Options configures a Model.
type Options struct {
	Widget wheel.Options
	Engine engine.Config
	// EngineOptions are passed to engine.New after the pin hook.
	EngineOptions []engine.Option
	// Bell receives a BEL byte whenever the pointer passes a pin. Nil
	// disables the sound.
	Bell  io.Writer
	Title string
}

// Model is the bubbletea model of the wheel screen.
type Model struct {
	widget *wheel.Widget
	engine *engine.Engine
	bell   io.Writer
	title  string

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	focus       focus
	result      string
	warning     string
	spinEnabled bool
	pinPending  bool
	quitting    bool
}

// New creates the wheel screen with its engine and widget.
func New(opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a name"
	ti.CharLimit = 64
	ti.SetWidth(30)
	inputStyles := ti.Styles()
	inputStyles.Cursor.Shape = tea.CursorBar
	inputStyles.Cursor.Blink = true
	ti.SetStyles(inputStyles)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	title := opts.Title
	if title == "" {
		title = "Spinelli"
	}

	m := &Model{
		bell:    opts.Bell,
		title:   title,
		input:   ti,
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeyMap(),
	}

	engineOpts := append([]engine.Option{engine.WithPinHook(m.onPin)}, opts.EngineOptions...)
	m.engine = engine.New(opts.Engine, opts.Widget.Initial().Segments, engineOpts...)
	m.widget = wheel.New(opts.Widget, m.engine, m)
	return m
}

// Widget returns the wheel controller bound to this screen.
func (m *Model) Widget() *wheel.Widget {
	return m.widget
}

// Run starts the program on stderr and blocks until the user quits. The
// TUI renders to stderr so stdout stays free for the winner
// (e.g. winner=$(spinelli) works).
func (m *Model) Run() (*Model, error) {
	profile := colorprofile.Detect(os.Stderr, os.Environ())

	p := tea.NewProgram(m,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wheel: %w", err)
	}
	return final.(*Model), nil
}

// wheel.Controls

// SetResult implements wheel.Controls.
func (m *Model) SetResult(text string) { m.result = text }

// SetSpinEnabled implements wheel.Controls.
func (m *Model) SetSpinEnabled(enabled bool) { m.spinEnabled = enabled }

// NameValue implements wheel.Controls.
func (m *Model) NameValue() string { return m.input.Value() }

// ClearName implements wheel.Controls.
func (m *Model) ClearName() { m.input.SetValue("") }

// FocusName implements wheel.Controls.
func (m *Model) FocusName() { m.setFocus(focusInput) }

// Warn implements wheel.Controls.
func (m *Model) Warn(msg string) { m.warning = msg }

func (m *Model) onPin() { m.pinPending = true }

func (m *Model) setFocus(f focus) {
	m.focus = (f + focusCount) % focusCount
	if m.focus == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// BubbleTea Model interface

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		running := m.engine.Advance(time.Time(msg))
		m.ringBell()
		if running {
			return m, m.nextFrame()
		}
		return m, nil

	case spinner.TickMsg:
		// Let the indicator stop once the wheel has.
		if !m.widget.Spinning() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// Warnings last until the next key press.
	m.warning = ""

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.Next):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.setFocus(m.focus - 1)
		return m, nil
	}

	if m.focus == focusInput {
		switch msg.String() {
		case "enter":
			// Consumed here: submitting a name never triggers another control.
			_ = m.widget.SubmitName()
			return m, nil
		case "esc":
			m.setFocus(focusAdd)
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Press):
		return m.press(m.focus)
	case key.Matches(msg, m.keys.Spin):
		return m.press(focusSpin)
	case key.Matches(msg, m.keys.Add):
		return m.press(focusAdd)
	case key.Matches(msg, m.keys.Remove):
		return m.press(focusRemove)
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

// press activates a button.
func (m *Model) press(f focus) (tea.Model, tea.Cmd) {
	switch f {
	case focusAdd:
		_ = m.widget.Add()
	case focusRemove:
		_ = m.widget.RemoveSegment()
	case focusSpin:
		if !m.spinEnabled {
			return m, nil
		}
		if err := m.widget.RequestSpin(); err != nil {
			return m, nil
		}
		if !m.widget.Spinning() {
			// The engine finished synchronously.
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, m.nextFrame())
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(m.engine.Interval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) ringBell() {
	if !m.pinPending {
		return
	}
	m.pinPending = false
	if m.bell != nil {
		_, _ = io.WriteString(m.bell, "\a")
	}
}
