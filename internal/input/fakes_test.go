package input

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/saltpay/stencil/internal/model"
	"github.com/saltpay/stencil/internal/store"
	"github.com/stretchr/testify/require"
)

type fakeCollections struct {
	mu         sync.Mutex
	data       []model.Collection
	loaded     bool
	version    uint64
	fetchErr   error
	fetchCalls int
	lastOpts   store.PageOptions
}

func (f *fakeCollections) IsLoaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *fakeCollections) OrderedData() []model.Collection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Collection(nil), f.data...)
}

func (f *fakeCollections) FetchPage(_ context.Context, opts store.PageOptions) ([]model.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	f.lastOpts = opts
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	f.loaded = true
	f.version++
	return f.data, nil
}

func (f *fakeCollections) Version() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version
}

func (f *fakeCollections) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls
}

type fakePolicies struct {
	abilities map[string]model.Abilities
	version   uint64
}

func (p *fakePolicies) Abilities(subjectID string) model.Abilities {
	return p.abilities[subjectID]
}

func (p *fakePolicies) Version() uint64 {
	return p.version
}

func (p *fakePolicies) set(subjectID string, create bool) {
	if p.abilities == nil {
		p.abilities = map[string]model.Abilities{}
	}
	p.abilities[subjectID] = model.Abilities{Read: true, CreateDocument: create}
	p.version++
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) {
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Error(message string) {
	n.errors = append(n.errors, message)
}

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) Push(path string) {
	n.paths = append(n.paths, path)
}

type fakeDocuments struct {
	docs       map[string]*model.Document
	result     *model.Document
	err        error
	calls      int
	lastID     string
	lastParams model.TemplatizeParams
}

func (d *fakeDocuments) Get(id string) (*model.Document, error) {
	doc, ok := d.docs[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return doc, nil
}

func (d *fakeDocuments) Templatize(_ context.Context, id string, params model.TemplatizeParams) (*model.Document, error) {
	d.calls++
	d.lastID = id
	d.lastParams = params
	return d.result, d.err
}

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// drainTemplatize feeds every message produced by cmd back into m until
// nothing is left. Saving ticks and quit messages are recorded but not
// delivered.
func drainTemplatize(t *testing.T, m templatizeModel, cmd tea.Cmd) (templatizeModel, []tea.Msg) {
	t.Helper()

	var seen []tea.Msg
	queue := runCmd(cmd)
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 100, "message loop did not settle")

		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)

		switch msg.(type) {
		case savingTickMsg, tea.QuitMsg:
			continue
		}

		next, nextCmd := m.Update(msg)
		m = next.(templatizeModel)
		queue = append(queue, runCmd(nextCmd)...)
	}
	return m, seen
}

func drainLocation(t *testing.T, m locationModel, cmd tea.Cmd) (locationModel, []tea.Msg) {
	t.Helper()

	var seen []tea.Msg
	queue := runCmd(cmd)
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 100, "message loop did not settle")

		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)

		var nextCmd tea.Cmd
		m, nextCmd = m.Update(msg)
		queue = append(queue, runCmd(nextCmd)...)
	}
	return m, seen
}

func selections(msgs []tea.Msg) []LocationSelectedMsg {
	var selected []LocationSelectedMsg
	for _, msg := range msgs {
		if s, ok := msg.(LocationSelectedMsg); ok {
			selected = append(selected, s)
		}
	}
	return selected
}

func hasQuit(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}
