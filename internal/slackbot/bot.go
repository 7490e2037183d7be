// Package slackbot polls a Slack channel and replies to
// "Wikipedia: <title>" messages with an article summary.
package slackbot

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

var logger = log.New(os.Stdout, "slackbot: ", log.LstdFlags)

const (
	pollLimit    = 10
	pollInterval = 2 * time.Second
	errorBackoff = 5 * time.Second
)

var reWikipedia = regexp.MustCompile(`(?i)^Wikipedia:\s*(.+)$`)

// API is the slice of the Slack client the bot needs. *slack.Client
// satisfies it.
type API interface {
	AuthTest() (*slack.AuthTestResponse, error)
	GetConversationHistory(params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
	UploadFileV2(params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

// Summarizer resolves an article title to a short summary.
type Summarizer interface {
	Summary(title string) (string, error)
}

// Bot is the polling loop state. Processed messages are tracked by
// timestamp+text so edits show up as new requests, same as reposts.
type Bot struct {
	api     API
	wiki    Summarizer
	channel string
	userID  string
	seen    map[string]struct{}
}

// New builds a bot for one channel.
func New(api API, wiki Summarizer, channel string) *Bot {
	return &Bot{
		api:     api,
		wiki:    wiki,
		channel: channel,
		seen:    make(map[string]struct{}),
	}
}

// Run polls the channel until the context is cancelled. Poll errors
// are logged and retried after a backoff.
func (b *Bot) Run(ctx context.Context) error {
	auth, err := b.api.AuthTest()
	if err != nil {
		return fmt.Errorf("slack auth test failed: %w", err)
	}
	b.userID = auth.UserID
	logger.Printf("Listening on channel %s as %s.", b.channel, auth.User)

	for {
		delay := pollInterval
		if err := b.Poll(); err != nil {
			logger.Printf("Poll failed: %v", err)
			delay = errorBackoff
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// Poll reads the latest messages once and answers any new Wikipedia
// requests.
func (b *Bot) Poll() error {
	history, err := b.api.GetConversationHistory(&slack.GetConversationHistoryParameters{
		ChannelID: b.channel,
		Limit:     pollLimit,
	})
	if err != nil {
		return err
	}

	for _, msg := range history.Messages {
		// Never answer ourselves or other bots.
		if msg.BotID != "" || msg.User == b.userID {
			continue
		}
		m := reWikipedia.FindStringSubmatch(msg.Text)
		if m == nil {
			continue
		}

		key := msg.Timestamp + ":" + msg.Text
		if _, done := b.seen[key]; done {
			continue
		}
		b.seen[key] = struct{}{}

		title := strings.TrimSpace(m[1])
		logger.Printf("Request: Wikipedia:%s", title)

		reply := b.answer(title)
		if _, _, err := b.api.PostMessage(b.channel, slack.MsgOptionText(reply, false)); err != nil {
			return fmt.Errorf("failed to post reply: %w", err)
		}
	}

	return nil
}

func (b *Bot) answer(title string) string {
	summary, err := b.wiki.Summary(title)
	if err != nil {
		logger.Printf("Lookup failed for %q: %v", title, err)
		return fmt.Sprintf("ça marche pas pour '%s' :(", title)
	}
	return fmt.Sprintf("*%s*\n\n%s", title, summary)
}

// UploadImages posts every regular file in dir to the channel.
func (b *Bot) UploadImages(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read image directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return err
		}
		_, err = b.api.UploadFileV2(slack.UploadFileV2Parameters{
			Channel:  b.channel,
			File:     filepath.Join(dir, e.Name()),
			Filename: e.Name(),
			Title:    e.Name(),
			FileSize: int(info.Size()),
		})
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", e.Name(), err)
		}
		logger.Printf("Uploaded %s.", e.Name())
	}

	return nil
}
