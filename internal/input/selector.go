package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrSelectionCancelled is returned when a prompt is left without choosing.
var ErrSelectionCancelled = errors.New("selection cancelled")

type choiceKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

func (k choiceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Quit}
}

func (k choiceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var choiceKeys = choiceKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Choose: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "select")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("q", "quit")),
}

// choiceModel is a one-shot list prompt used by the CLI commands.
type choiceModel struct {
	title     string
	items     []string
	cursor    int
	confirmed bool
	quitted   bool
	help      help.Model
}

func newChoiceModel(title string, items []string) choiceModel {
	return choiceModel{
		title: title,
		items: items,
		help:  help.New(),
	}
}

func (m choiceModel) Init() tea.Cmd {
	return nil
}

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, choiceKeys.Quit):
		m.quitted = true
		return m, tea.Quit

	case key.Matches(keyMsg, choiceKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, choiceKeys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, choiceKeys.Choose):
		m.confirmed = true
		return m, tea.Quit
	}

	return m, nil
}

// choice returns the confirmed item.
func (m choiceModel) choice() (string, error) {
	if m.quitted || !m.confirmed || m.cursor >= len(m.items) {
		return "", ErrSelectionCancelled
	}
	return m.items[m.cursor], nil
}

func (m choiceModel) View() string {
	if m.quitted {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("206")).
		Padding(1, 0)

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(1, 0)

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(choiceKeys)))

	return b.String()
}

// SelectOption prompts the user to select one option from a list.
func SelectOption(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	if len(options) == 1 {
		return options[0], nil
	}

	finalModel, err := tea.NewProgram(newChoiceModel(title, options)).Run()
	if err != nil {
		return "", err
	}

	return finalModel.(choiceModel).choice()
}
