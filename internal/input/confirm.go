package input

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var savingFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type savingTickMsg time.Time

type confirmState int

const (
	confirmIdle confirmState = iota
	confirmSaving
	confirmFailed
)

// confirmModel is the dialog's submit button. It refuses to start a second
// submission while one is in flight and displays the last failure.
type confirmModel struct {
	submitText string
	savingText string
	state      confirmState
	err        error
	errText    string
	focused    bool
	frame      int
}

func newConfirmModel(submitText, savingText string) confirmModel {
	return confirmModel{
		submitText: submitText,
		savingText: savingText,
	}
}

func (m confirmModel) Saving() bool {
	return m.state == confirmSaving
}

func (m confirmModel) Err() error {
	return m.err
}

// begin marks the control as saving. ok is false when a submission is
// already running.
func (m confirmModel) begin() (confirmModel, tea.Cmd, bool) {
	if m.state == confirmSaving {
		return m, nil, false
	}
	m.state = confirmSaving
	m.err = nil
	m.errText = ""
	m.frame = 0
	return m, m.tickCmd(), true
}

// fail records err and the message shown under the button.
func (m confirmModel) fail(err error, text string) confirmModel {
	m.state = confirmFailed
	m.err = err
	m.errText = text
	return m
}

func (m confirmModel) succeed() confirmModel {
	m.state = confirmIdle
	m.err = nil
	m.errText = ""
	return m
}

func (m confirmModel) tickCmd() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return savingTickMsg(t)
	})
}

func (m confirmModel) Update(msg tea.Msg) (confirmModel, tea.Cmd) {
	if _, ok := msg.(savingTickMsg); ok && m.state == confirmSaving {
		m.frame = (m.frame + 1) % len(savingFrames)
		return m, m.tickCmd()
	}
	return m, nil
}

func (m confirmModel) View() string {
	buttonStyle := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("241"))
	if m.focused {
		buttonStyle = buttonStyle.Background(lipgloss.Color("205")).Bold(true)
	}

	if m.state == confirmSaving {
		frameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
		return frameStyle.Render(savingFrames[m.frame]) + " " + buttonStyle.Render(m.savingText+"…")
	}

	view := buttonStyle.Render(m.submitText)
	if m.state == confirmFailed && m.errText != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		view += "\n" + errStyle.Render("✗ "+m.errText)
	}
	return view
}
