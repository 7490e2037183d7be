package slackbot

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const wikiUserAgent = "SlackBot/1.0 (https://slack.com; contact@example.com)"

// Answers longer than this get cut back to their first sentence.
const maxSummaryLen = 500

type wikiSummary struct {
	Extract     string `json:"extract"`
	Description string `json:"description"`
}

// Wikipedia fetches article summaries from the REST API, trying French
// first and falling back to English.
type Wikipedia struct {
	client *resty.Client
	bases  []string
}

// NewWikipedia builds a client with the default language endpoints.
func NewWikipedia() *Wikipedia {
	return &Wikipedia{
		client: resty.New().
			SetTimeout(5 * time.Second).
			SetHeader("User-Agent", wikiUserAgent),
		bases: []string{
			"https://fr.wikipedia.org",
			"https://en.wikipedia.org",
		},
	}
}

// Summary returns the first paragraph of the article, or its short
// description when no extract exists. Missing articles on one language
// fall through to the next.
func (w *Wikipedia) Summary(title string) (string, error) {
	escaped := url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	var lastErr error
	for _, base := range w.bases {
		var summary wikiSummary
		resp, err := w.client.R().
			SetResult(&summary).
			Get(base + "/api/rest_v1/page/summary/" + escaped)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode() == http.StatusNotFound {
			continue
		}
		if resp.IsError() {
			lastErr = fmt.Errorf("unexpected status %s from %s", resp.Status(), base)
			continue
		}

		if summary.Extract != "" {
			return firstParagraph(summary.Extract), nil
		}
		if summary.Description != "" {
			return summary.Description, nil
		}
	}

	if lastErr != nil {
		return "", lastErr
	}
	return "", fmt.Errorf("no summary found for %q", title)
}

// firstParagraph trims the extract to its first paragraph, and to its
// first sentence when the paragraph runs too long for a chat reply.
func firstParagraph(extract string) string {
	paragraph, _, _ := strings.Cut(extract, "\n")
	if len(paragraph) > maxSummaryLen {
		if sentence, _, found := strings.Cut(paragraph, ". "); found {
			return sentence + "."
		}
	}
	return paragraph
}
