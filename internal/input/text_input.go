package input

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrEmptyInput is returned when a prompt is submitted blank.
var ErrEmptyInput = errors.New("no input provided")

// promptModel asks for one line of text. Submitting runs validate and keeps
// the prompt open with the error until the value is accepted.
type promptModel struct {
	title     string
	textInput textinput.Model
	validate  func(string) error
	err       error
	quitted   bool
	submitted bool
}

func newPromptModel(title, placeholder string, charLimit int, validate func(string) error) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if charLimit <= 0 {
		charLimit = 256
	}
	ti.CharLimit = charLimit
	ti.Width = 60

	if validate == nil {
		validate = requireValue
	}

	return promptModel{
		title:     title,
		textInput: ti,
		validate:  validate,
	}
}

func requireValue(value string) error {
	if value == "" {
		return ErrEmptyInput
	}
	return nil
}

func (m promptModel) Value() string {
	return strings.TrimSpace(m.textInput.Value())
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitted = true
			return m, tea.Quit
		case tea.KeyEnter:
			if err := m.validate(m.Value()); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.quitted || m.submitted {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("206")).
		Padding(1, 0)

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗ " + m.err.Error()))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(1, 0)

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: submit • esc: cancel"))

	return b.String()
}

// GetTextInput prompts the user for a non-empty line of text.
func GetTextInput(title, placeholder string) (string, error) {
	return Prompt(title, placeholder, 256, nil)
}

// Prompt asks for a line of text accepted by validate; a nil validate only
// rejects blank input.
func Prompt(title, placeholder string, charLimit int, validate func(string) error) (string, error) {
	finalModel, err := tea.NewProgram(newPromptModel(title, placeholder, charLimit, validate)).Run()
	if err != nil {
		return "", err
	}

	m := finalModel.(promptModel)
	if m.quitted || !m.submitted {
		return "", ErrSelectionCancelled
	}

	return m.Value(), nil
}
