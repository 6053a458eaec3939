package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/saltpay/stencil/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnnouncer(t *testing.T, handler http.HandlerFunc) *Announcer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	a := NewAnnouncer(" #templates ")
	a.apiURL = server.URL
	a.client = server.Client()
	return a
}

func TestAnnounceTemplate(t *testing.T) {
	var got slackMessage
	var auth string
	a := newTestAnnouncer(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	published := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tmpl := &model.Document{ID: "t1", Title: "Incident review", PublishedAt: &published}

	err := a.AnnounceTemplate(context.Background(), tmpl, "https://docs.example.com/doc/incident-review-abc")
	require.NoError(t, err)

	assert.Equal(t, "Bearer xoxb-test", auth)
	assert.Equal(t, "#templates", got.Channel)
	assert.Contains(t, got.Text, "<https://docs.example.com/doc/incident-review-abc|Incident review>")
	assert.NotContains(t, got.Text, "draft")
}

func TestAnnounceTemplateAPIError(t *testing.T) {
	a := newTestAnnouncer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	})

	err := a.AnnounceTemplate(context.Background(), &model.Document{ID: "t1"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestAnnounceTemplateDisabled(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "")
	a := NewAnnouncer("#templates")

	assert.False(t, a.Enabled())
	assert.NoError(t, a.AnnounceTemplate(context.Background(), &model.Document{ID: "t1"}, ""))
}

func TestFormatMessageDraft(t *testing.T) {
	msg := formatMessage(&model.Document{ID: "t1"}, "")

	assert.True(t, strings.Contains(msg, "Untitled"))
	assert.True(t, strings.Contains(msg, "draft"))
}
