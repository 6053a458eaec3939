package input

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/saltpay/stencil/internal/i18n"
	"github.com/saltpay/stencil/internal/logging"
	"github.com/saltpay/stencil/internal/model"
	"github.com/saltpay/stencil/internal/store"
	"github.com/saltpay/stencil/internal/toast"
)

const defaultPageSize = 100

// CollectionRepository is the collection store the selector reads.
type CollectionRepository interface {
	IsLoaded() bool
	OrderedData() []model.Collection
	FetchPage(ctx context.Context, opts store.PageOptions) ([]model.Collection, error)
	Version() uint64
}

// PolicySet is a PolicySource whose changes can be detected.
type PolicySet interface {
	PolicySource
	Version() uint64
}

// LoadState tracks the selector's own collection fetch.
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadFetching
	LoadLoaded
	LoadErrored
)

func (s LoadState) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadFetching:
		return "fetching"
	case LoadLoaded:
		return "loaded"
	case LoadErrored:
		return "errored"
	}
	return fmt.Sprintf("LoadState(%d)", int(s))
}

// LocationSelectedMsg reports a location choice. CollectionID is "" for the
// workspace root.
type LocationSelectedMsg struct {
	SelectorID   string
	CollectionID string
}

// locationMountedMsg runs the first fetch check after Init.
type locationMountedMsg struct {
	selectorID string
}

type collectionsFetchedMsg struct {
	selectorID string
	err        error
}

// LocationDeps are the collaborators of the location selector.
type LocationDeps struct {
	Collections CollectionRepository
	Policies    PolicySet
	Team        model.Team
	Notifier    toast.Notifier
	Translator  i18n.Translator
	PageSize    int
}

type optionsMemo struct {
	valid              bool
	collectionsVersion uint64
	policiesVersion    uint64
	options            []Option
}

type locationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Select key.Binding
	Close  key.Binding
}

func newLocationKeyMap() locationKeyMap {
	return locationKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter", " ", "down", "j"), key.WithHelp("enter", "choose location")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close list")),
	}
}

// locationModel is the location dropdown. The chosen value is owned by the
// parent and passed in through SetDefault; the model itself only keeps its
// fetch state and the dropdown's open/cursor state.
type locationModel struct {
	id                  string
	deps                LocationDeps
	defaultCollectionID string

	state    LoadState
	fetchErr error

	focused  bool
	expanded bool
	cursor   int

	// fallbackSent is the default value a fallback selection was already
	// reported for.
	fallbackSent string

	memo *optionsMemo
	keys locationKeyMap
	log  zerolog.Logger
}

func newLocationModel(id string, deps LocationDeps, defaultCollectionID string) locationModel {
	if deps.PageSize <= 0 {
		deps.PageSize = defaultPageSize
	}
	return locationModel{
		id:                  id,
		deps:                deps,
		defaultCollectionID: defaultCollectionID,
		memo:                &optionsMemo{},
		keys:                newLocationKeyMap(),
		log:                 logging.GetLogger("location").With().Str("selector", id).Logger(),
	}
}

func (m locationModel) ID() string {
	return m.id
}

func (m locationModel) State() LoadState {
	return m.state
}

// Expanded reports whether the option list is open.
func (m locationModel) Expanded() bool {
	return m.expanded
}

// SetDefault passes down the parent's current collection id.
func (m locationModel) SetDefault(collectionID string) locationModel {
	m.defaultCollectionID = collectionID
	return m
}

func (m locationModel) SetFocused(focused bool) locationModel {
	m.focused = focused
	if !focused {
		m.expanded = false
	}
	return m
}

func (m locationModel) Init() tea.Cmd {
	id := m.id
	return func() tea.Msg { return locationMountedMsg{selectorID: id} }
}

func (m locationModel) Update(msg tea.Msg) (locationModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case collectionsFetchedMsg:
		if msg.selectorID == m.id {
			m.handleFetched(msg.err)
		}
	case tea.KeyMsg:
		if m.focused && m.Visible() {
			cmds = append(cmds, m.handleKey(msg))
		}
	}

	cmds = append(cmds, m.ensureFetched(), m.reconcile())
	return m, tea.Batch(cmds...)
}

// ensureFetched starts the single page fetch when the store is not loaded
// and no fetch has been attempted yet. An errored selector never retries.
func (m *locationModel) ensureFetched() tea.Cmd {
	if m.deps.Collections.IsLoaded() || m.state != LoadIdle {
		return nil
	}
	m.state = LoadFetching
	m.log.Debug().Int("limit", m.deps.PageSize).Msg("Fetching collections")

	id := m.id
	collections := m.deps.Collections
	opts := store.PageOptions{Limit: m.deps.PageSize}
	return func() tea.Msg {
		_, err := collections.FetchPage(context.Background(), opts)
		return collectionsFetchedMsg{selectorID: id, err: err}
	}
}

func (m *locationModel) handleFetched(err error) {
	if err != nil {
		m.state = LoadErrored
		m.fetchErr = err
		m.log.Error().Err(err).Msg("Collections could not be loaded")
		if m.deps.Notifier != nil {
			m.deps.Notifier.Error(m.deps.Translator.T(i18n.CollectionsFailed))
		}
		return
	}
	m.state = LoadLoaded
}

// reconcile reports a fallback selection when the parent's value is no
// longer among the options: the workspace when offered, else the first
// option.
func (m *locationModel) reconcile() tea.Cmd {
	if !m.Visible() {
		return nil
	}
	options := m.Options()
	current := valueFromCollectionID(m.defaultCollectionID)
	if indexOf(options, current) >= 0 {
		m.fallbackSent = ""
		return nil
	}
	if m.fallbackSent == current {
		return nil
	}
	m.fallbackSent = current

	fallback := options[0].Value
	if indexOf(options, WorkspaceValue) >= 0 {
		fallback = WorkspaceValue
	}
	m.log.Info().Str("stale", current).Str("fallback", fallback).Msg("Selected location is no longer available")
	return m.selectCmd(fallback)
}

func (m *locationModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	options := m.Options()

	if !m.expanded {
		if key.Matches(msg, m.keys.Open) {
			m.expanded = true
			m.cursor = max(indexOf(options, m.Value()), 0)
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		m.expanded = false
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.expanded = false
		if m.cursor >= 0 && m.cursor < len(options) && options[m.cursor].Value != m.Value() {
			return m.selectCmd(options[m.cursor].Value)
		}
	}
	return nil
}

// selectCmd reports value to the parent, translating the workspace sentinel.
func (m locationModel) selectCmd(value string) tea.Cmd {
	selected := LocationSelectedMsg{SelectorID: m.id, CollectionID: collectionIDFromValue(value)}
	return func() tea.Msg { return selected }
}

// Options returns the memoized option list, rebuilt when the collection or
// policy store changes. It is empty until the collection store is loaded.
func (m locationModel) Options() []Option {
	if !m.deps.Collections.IsLoaded() {
		return nil
	}
	cv, pv := m.deps.Collections.Version(), m.deps.Policies.Version()
	if m.memo.valid && m.memo.collectionsVersion == cv && m.memo.policiesVersion == pv {
		return m.memo.options
	}
	options := BuildOptions(m.deps.Collections.OrderedData(), m.deps.Policies, m.deps.Team, m.deps.Translator.T(i18n.Workspace))
	*m.memo = optionsMemo{valid: true, collectionsVersion: cv, policiesVersion: pv, options: options}
	return options
}

// Visible reports whether the selector renders: the store must be loaded,
// no fetch may be in flight and at least one option must exist.
func (m locationModel) Visible() bool {
	if m.state == LoadFetching || !m.deps.Collections.IsLoaded() {
		return false
	}
	return len(m.Options()) > 0
}

// Value is the option value shown as selected.
func (m locationModel) Value() string {
	return valueFromCollectionID(m.defaultCollectionID)
}

func (m locationModel) View() string {
	if !m.Visible() {
		return ""
	}

	options := m.Options()
	selected := indexOf(options, m.Value())

	boxStyle := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("241"))
	if m.focused {
		boxStyle = boxStyle.BorderForeground(lipgloss.Color("205"))
	}

	if !m.expanded {
		label := "—"
		if selected >= 0 {
			label = options[selected].Label()
		}
		return boxStyle.Render(label + " ▾")
	}

	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dividerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	for i, option := range options {
		if option.Divider {
			b.WriteString(dividerStyle.Render(strings.Repeat("┈", 20)))
			b.WriteString("\n")
		}
		marker := "  "
		if i == selected {
			marker = "✓ "
		}
		line := marker + option.Label()
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		if i < len(options)-1 {
			b.WriteString("\n")
		}
	}
	return boxStyle.Render(b.String())
}

func indexOf(options []Option, value string) int {
	for i, option := range options {
		if option.Value == value {
			return i
		}
	}
	return -1
}
