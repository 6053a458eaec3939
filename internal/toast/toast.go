package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/saltpay/stencil/internal/logging"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 4 * time.Second

// Notifier shows fire-and-forget notifications.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

type Toast struct {
	ID   int
	Kind Kind
	Text string
}

// ExpiredMsg removes a toast once its time is up.
type ExpiredMsg struct {
	ID int
}

// Stack is the visible toast list. It is only touched from a bubbletea
// Update loop and is not safe for concurrent use.
type Stack struct {
	ttl     time.Duration
	nextID  int
	toasts  []Toast
	pending []int
	log     zerolog.Logger
}

func NewStack(ttl time.Duration) *Stack {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Stack{ttl: ttl, log: logging.GetLogger("toast")}
}

func (s *Stack) Success(message string) {
	s.log.Info().Str("kind", "success").Msg(message)
	s.push(KindSuccess, message)
}

func (s *Stack) Error(message string) {
	s.log.Warn().Str("kind", "error").Msg(message)
	s.push(KindError, message)
}

func (s *Stack) push(kind Kind, message string) {
	s.nextID++
	s.toasts = append(s.toasts, Toast{ID: s.nextID, Kind: kind, Text: message})
	s.pending = append(s.pending, s.nextID)
}

// Toasts returns the visible toasts, oldest first.
func (s *Stack) Toasts() []Toast {
	return append([]Toast(nil), s.toasts...)
}

// Flush schedules expiry for toasts added since the last call.
func (s *Stack) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.pending))
	for _, id := range s.pending {
		id := id
		cmds = append(cmds, tea.Tick(s.ttl, func(time.Time) tea.Msg {
			return ExpiredMsg{ID: id}
		}))
	}
	s.pending = nil
	return tea.Batch(cmds...)
}

// Update handles ExpiredMsg and reports whether msg was consumed.
func (s *Stack) Update(msg tea.Msg) bool {
	expired, ok := msg.(ExpiredMsg)
	if !ok {
		return false
	}
	for i, t := range s.toasts {
		if t.ID == expired.ID {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			break
		}
	}
	return true
}

func (s *Stack) View() string {
	if len(s.toasts) == 0 {
		return ""
	}

	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	lines := make([]string, 0, len(s.toasts))
	for _, t := range s.toasts {
		switch t.Kind {
		case KindError:
			lines = append(lines, errorStyle.Render("✗ "+t.Text))
		default:
			lines = append(lines, successStyle.Render("✓ "+t.Text))
		}
	}
	return strings.Join(lines, "\n")
}
