package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/saltpay/stencil/internal/logging"
	"github.com/saltpay/stencil/internal/model"
)

const slackAPIURL = "https://slack.com/api/chat.postMessage"

type slackMessage struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type slackResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Announcer posts newly created templates to a Slack channel.
type Announcer struct {
	token   string
	channel string
	apiURL  string
	client  *http.Client
	log     zerolog.Logger
}

// NewAnnouncer reads the bot token from SLACK_BOT_TOKEN.
func NewAnnouncer(channel string) *Announcer {
	return &Announcer{
		token:   os.Getenv("SLACK_BOT_TOKEN"),
		channel: strings.TrimSpace(channel),
		apiURL:  slackAPIURL,
		client:  http.DefaultClient,
		log:     logging.GetLogger("slack"),
	}
}

// Enabled reports whether both a token and a channel are configured.
func (a *Announcer) Enabled() bool {
	return a.token != "" && a.channel != ""
}

// AnnounceTemplate sends a message about tmpl. It is a no-op when the
// announcer is not configured.
func (a *Announcer) AnnounceTemplate(ctx context.Context, tmpl *model.Document, url string) error {
	if !a.Enabled() {
		a.log.Debug().Msg("Slack not configured, skipping announcement")
		return nil
	}
	if tmpl == nil {
		return model.ErrNoTemplate
	}

	if err := a.sendMessage(ctx, formatMessage(tmpl, url)); err != nil {
		a.log.Error().Err(err).Str("channel", a.channel).Msg("Slack announcement failed")
		return err
	}

	a.log.Info().Str("channel", a.channel).Str("template", tmpl.ID).Msg("Template announced")
	return nil
}

func formatMessage(tmpl *model.Document, url string) string {
	var sb strings.Builder
	sb.WriteString("📄 A new template is ready\n\n")
	if url != "" {
		sb.WriteString(fmt.Sprintf("• <%s|%s>\n", url, tmpl.TitleWithDefault()))
	} else {
		sb.WriteString(fmt.Sprintf("• %s\n", tmpl.TitleWithDefault()))
	}
	if !tmpl.Published() {
		sb.WriteString("\nIt is still a draft, publish it once it's ready ✍️")
	}
	return sb.String()
}

func (a *Announcer) sendMessage(ctx context.Context, text string) error {
	msg := slackMessage{
		Channel: a.channel,
		Text:    text,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var slackResp slackResponse
	if err := json.NewDecoder(resp.Body).Decode(&slackResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !slackResp.OK {
		return fmt.Errorf("slack API error: %s", slackResp.Error)
	}

	return nil
}
