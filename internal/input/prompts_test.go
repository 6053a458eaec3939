package input

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestChoiceModel(t *testing.T) {
	var m tea.Model = newChoiceModel("Are you sure?", []string{"No, cancel", "Yes, delete everything"})

	m, _ = m.Update(keyPress(tea.KeyDown))
	m, _ = m.Update(keyPress(tea.KeyDown))
	assert.Contains(t, m.View(), "> Yes, delete everything")

	m, cmd := m.Update(keyPress(tea.KeyEnter))
	assert.True(t, hasQuit(runCmd(cmd)))

	choice, err := m.(choiceModel).choice()
	require.NoError(t, err)
	assert.Equal(t, "Yes, delete everything", choice)
}

func TestChoiceModelQuit(t *testing.T) {
	var m tea.Model = newChoiceModel("Pick", []string{"a", "b"})

	m, _ = m.Update(keyPress(tea.KeyEsc))

	_, err := m.(choiceModel).choice()
	assert.True(t, errors.Is(err, ErrSelectionCancelled))
	assert.Empty(t, m.View())
}

func TestSelectOptionShortcuts(t *testing.T) {
	_, err := SelectOption("Pick", nil)
	assert.Error(t, err)

	choice, err := SelectOption("Pick", []string{"only"})
	require.NoError(t, err)
	assert.Equal(t, "only", choice)
}

func TestPromptModelValidates(t *testing.T) {
	var m tea.Model = newPromptModel("Team name", "e.g., Acme Corp", 0, nil)

	m, cmd := m.Update(keyPress(tea.KeyEnter))
	assert.False(t, hasQuit(runCmd(cmd)))
	assert.Contains(t, m.View(), ErrEmptyInput.Error())

	m = typeText(m, "  Acme Corp ")
	m, cmd = m.Update(keyPress(tea.KeyEnter))
	assert.True(t, hasQuit(runCmd(cmd)))

	prompt := m.(promptModel)
	assert.True(t, prompt.submitted)
	assert.Equal(t, "Acme Corp", prompt.Value())
}

func TestPromptModelCustomValidation(t *testing.T) {
	tooLong := func(v string) error {
		if v == "" || len(v) > 3 {
			return errors.New("too long")
		}
		return nil
	}
	var m tea.Model = newPromptModel("Code", "", 10, tooLong)

	m = typeText(m, "abcd")
	m, _ = m.Update(keyPress(tea.KeyEnter))
	assert.Contains(t, m.View(), "too long")
	assert.False(t, m.(promptModel).submitted)
}
