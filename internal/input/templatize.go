package input

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/saltpay/stencil/internal/i18n"
	"github.com/saltpay/stencil/internal/logging"
	"github.com/saltpay/stencil/internal/model"
	"github.com/saltpay/stencil/internal/nav"
	"github.com/saltpay/stencil/internal/toast"
)

// ErrCancelled is returned when the dialog is closed without a template.
var ErrCancelled = errors.New("templatize cancelled")

const locationSelectorID = "templatize-location"

// DocumentService reads documents and turns them into templates.
type DocumentService interface {
	Get(id string) (*model.Document, error)
	Templatize(ctx context.Context, id string, params model.TemplatizeParams) (*model.Document, error)
}

// TemplatizeDeps are the collaborators of the templatize dialog.
type TemplatizeDeps struct {
	Documents   DocumentService
	Collections CollectionRepository
	Policies    PolicySet
	Team        model.Team
	Navigator   nav.Navigator
	Notifier    toast.Notifier
	Translator  i18n.Translator
	PageSize    int
}

// toastView is implemented by notifiers that render inside the dialog.
type toastView interface {
	View() string
	Flush() tea.Cmd
	Update(msg tea.Msg) bool
}

type templatizeResultMsg struct {
	template *model.Document
	err      error
}

type focusArea int

const (
	focusPublish focusArea = iota
	focusLocation
	focusSubmit
	focusCount
)

type templatizeKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Submit key.Binding
	Save   key.Binding
	Close  key.Binding
}

func (k templatizeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Toggle, k.Submit, k.Close}
}

func (k templatizeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Toggle, k.Submit, k.Save, k.Close}}
}

func newTemplatizeKeyMap() templatizeKeyMap {
	return templatizeKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Toggle: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space/p", "toggle published")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "create")),
		Close:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "close")),
	}
}

// templatizeModel is the "create template" dialog. It owns the publish flag
// and the destination collection and passes the latter down to the location
// selector.
type templatizeModel struct {
	deps     TemplatizeDeps
	document *model.Document

	publish      bool
	collectionID string

	focus    focusArea
	location locationModel
	confirm  confirmModel
	keys     templatizeKeyMap
	help     help.Model

	template *model.Document
	closed   bool
	log      zerolog.Logger
}

// NewTemplatizeModel opens the dialog for documentID. The document must be
// in the store.
func NewTemplatizeModel(deps TemplatizeDeps, documentID string) (templatizeModel, error) {
	doc, err := deps.Documents.Get(documentID)
	if err != nil {
		return templatizeModel{}, fmt.Errorf("document %q: %w", documentID, err)
	}
	if doc == nil {
		return templatizeModel{}, fmt.Errorf("document %q: %w", documentID, model.ErrNotFound)
	}

	location := newLocationModel(locationSelectorID, LocationDeps{
		Collections: deps.Collections,
		Policies:    deps.Policies,
		Team:        deps.Team,
		Notifier:    deps.Notifier,
		Translator:  deps.Translator,
		PageSize:    deps.PageSize,
	}, doc.CollectionID)

	return templatizeModel{
		deps:         deps,
		document:     doc,
		publish:      true,
		collectionID: doc.CollectionID,
		location:     location,
		confirm:      newConfirmModel(deps.Translator.T(i18n.CreateTemplate), deps.Translator.T(i18n.Creating)),
		keys:         newTemplatizeKeyMap(),
		help:         help.New(),
		log:          logging.GetLogger("templatize").With().Str("document", doc.ID).Logger(),
	}, nil
}

func (m templatizeModel) Publish() bool {
	return m.publish
}

func (m templatizeModel) CollectionID() string {
	return m.collectionID
}

// Template is the created template, nil until a submit succeeded.
func (m templatizeModel) Template() *model.Document {
	return m.template
}

func (m templatizeModel) Closed() bool {
	return m.closed
}

func (m templatizeModel) Init() tea.Cmd {
	return m.location.Init()
}

func (m templatizeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		var handled bool
		m, cmd, handled = m.handleKey(msg)
		cmds = append(cmds, cmd)
		if handled {
			return m, m.withToasts(cmds...)
		}

	case LocationSelectedMsg:
		if msg.SelectorID == m.location.ID() {
			m.collectionID = msg.CollectionID
			m.log.Debug().Str("collection", msg.CollectionID).Msg("Location selected")
		}

	case templatizeResultMsg:
		var cmd tea.Cmd
		m, cmd = m.handleResult(msg)
		cmds = append(cmds, cmd)

	case toast.ExpiredMsg:
		if stack, ok := m.deps.Notifier.(toastView); ok {
			stack.Update(msg)
		}
	}

	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	cmds = append(cmds, cmd)

	m.location = m.location.SetDefault(m.collectionID)
	m.location, cmd = m.location.Update(msg)
	cmds = append(cmds, cmd)

	return m, m.withToasts(cmds...)
}

// handleKey processes dialog-level keys. handled means the key must not
// reach the location selector.
func (m templatizeModel) handleKey(msg tea.KeyMsg) (templatizeModel, tea.Cmd, bool) {
	if m.location.Expanded() {
		if msg.String() == "ctrl+c" {
			return m.close()
		}
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		return m.close()

	case key.Matches(msg, m.keys.Next):
		m = m.moveFocus(1)
		return m, nil, true

	case key.Matches(msg, m.keys.Prev):
		m = m.moveFocus(-1)
		return m, nil, true

	case key.Matches(msg, m.keys.Save):
		m, cmd := m.submit()
		return m, cmd, true

	case m.focus == focusSubmit && key.Matches(msg, m.keys.Submit):
		m, cmd := m.submit()
		return m, cmd, true

	case m.focus == focusPublish && key.Matches(msg, m.keys.Toggle),
		m.focus != focusLocation && msg.String() == "p":
		if !m.confirm.Saving() {
			m.publish = !m.publish
		}
		return m, nil, true
	}

	return m, nil, false
}

func (m templatizeModel) close() (templatizeModel, tea.Cmd, bool) {
	m.closed = true
	m.log.Debug().Msg("Dialog closed")
	return m, tea.Quit, true
}

func (m templatizeModel) moveFocus(delta int) templatizeModel {
	next := m.focus
	for i := focusArea(0); i < focusCount; i++ {
		next = (next + focusArea(delta) + focusCount) % focusCount
		if next != focusLocation || m.location.Visible() {
			break
		}
	}
	m.focus = next
	m.location = m.location.SetFocused(next == focusLocation)
	m.confirm.focused = next == focusSubmit
	return m
}

// submit sends the current dialog state as one templatize call.
func (m templatizeModel) submit() (templatizeModel, tea.Cmd) {
	confirm, tick, ok := m.confirm.begin()
	if !ok {
		return m, nil
	}
	m.confirm = confirm

	docs := m.deps.Documents
	id := m.document.ID
	params := model.TemplatizeParams{CollectionID: m.collectionID, Publish: m.publish}
	m.log.Info().Str("collection", params.CollectionID).Bool("publish", params.Publish).Msg("Creating template")

	return m, tea.Batch(tick, func() tea.Msg {
		tmpl, err := docs.Templatize(context.Background(), id, params)
		return templatizeResultMsg{template: tmpl, err: err}
	})
}

func (m templatizeModel) handleResult(msg templatizeResultMsg) (templatizeModel, tea.Cmd) {
	if m.closed {
		m.log.Debug().Msg("Ignoring templatize result for closed dialog")
		return m, nil
	}

	err := msg.err
	if err == nil && msg.template == nil {
		err = model.ErrNoTemplate
	}
	if err != nil {
		m.log.Error().Err(err).Msg("Template creation failed")
		m.confirm = m.confirm.fail(err, m.deps.Translator.T(i18n.SubmitFailed, err))
		return m, nil
	}

	m.confirm = m.confirm.succeed()
	m.template = msg.template
	m.log.Info().Str("template", msg.template.ID).Msg("Template created")

	if m.deps.Navigator != nil {
		m.deps.Navigator.Push(nav.DocumentPath(msg.template))
	}
	if m.deps.Notifier != nil {
		m.deps.Notifier.Success(m.deps.Translator.T(i18n.TemplateCreated))
	}
	m.closed = true
	return m, tea.Quit
}

func (m templatizeModel) withToasts(cmds ...tea.Cmd) tea.Cmd {
	if stack, ok := m.deps.Notifier.(toastView); ok {
		cmds = append(cmds, stack.Flush())
	}
	return tea.Batch(cmds...)
}

func (m templatizeModel) View() string {
	if m.closed {
		return ""
	}

	t := m.deps.Translator
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("206")).
		Padding(1, 0)
	labelStyle := lipgloss.NewStyle().Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	b.WriteString(titleStyle.Render(t.T(i18n.CreateTemplate)))
	b.WriteString("\n")

	title := lipgloss.NewStyle().Bold(true).Render(m.document.TitleWithDefault())
	b.WriteString(lipgloss.NewStyle().Width(72).Render(t.T(i18n.TemplatizeIntro, title)))
	b.WriteString("\n\n")

	check := "[ ]"
	if m.publish {
		check = "[x]"
	}
	toggle := check + " " + t.T(i18n.Published)
	if m.focus == focusPublish {
		toggle = focusStyle.Render("> " + toggle)
	} else {
		toggle = "  " + toggle
	}
	b.WriteString(toggle)
	b.WriteString("\n")
	b.WriteString(noteStyle.Render("    " + t.T(i18n.PublishedNote)))
	b.WriteString("\n\n")

	if view := m.location.View(); view != "" {
		b.WriteString(labelStyle.Render(t.T(i18n.Location)))
		b.WriteString("\n")
		b.WriteString(view)
		b.WriteString("\n\n")
	} else if m.location.State() != LoadFetching && m.deps.Collections.IsLoaded() {
		b.WriteString(noteStyle.Render(t.T(i18n.NoLocationsAllowed)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.confirm.View())
	b.WriteString("\n")

	if stack, ok := m.deps.Notifier.(toastView); ok {
		if view := stack.View(); view != "" {
			b.WriteString("\n")
			b.WriteString(view)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(noteStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunTemplatize runs the dialog for documentID and returns the created
// template. Closing the dialog without one returns ErrCancelled.
func RunTemplatize(deps TemplatizeDeps, documentID string) (*model.Document, error) {
	m, err := NewTemplatizeModel(deps, documentID)
	if err != nil {
		return nil, err
	}

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, err
	}

	result := finalModel.(templatizeModel)
	if result.template == nil {
		return nil, ErrCancelled
	}
	return result.template, nil
}
