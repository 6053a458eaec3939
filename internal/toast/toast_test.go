package toast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackLifecycle(t *testing.T) {
	s := NewStack(0)
	assert.Nil(t, s.Flush())
	assert.Empty(t, s.View())

	s.Success("saved")
	s.Error("failed")

	toasts := s.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, KindSuccess, toasts[0].Kind)
	assert.Equal(t, KindError, toasts[1].Kind)

	view := s.View()
	assert.True(t, strings.Contains(view, "saved"))
	assert.True(t, strings.Contains(view, "failed"))

	assert.NotNil(t, s.Flush())
	assert.Nil(t, s.Flush(), "toasts are only scheduled once")

	assert.True(t, s.Update(ExpiredMsg{ID: toasts[0].ID}))
	require.Len(t, s.Toasts(), 1)
	assert.Equal(t, "failed", s.Toasts()[0].Text)

	assert.False(t, s.Update("something else"))
}
