// Package crawler walks the quotes site page by page, following the
// "Next" pagination link until it runs out.
package crawler

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/config"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/models"
)

var logger = log.New(os.Stdout, "crawler: ", log.LstdFlags|log.Lshortfile)

// Page is the parse result of a single listing page.
type Page struct {
	Quotes  []models.Quote
	NextURL string
	TopTags []string
}

// Run crawls every page starting from the configured URL. It returns
// all quotes found plus the top-ten tags from the first page.
func Run(cfg *config.CrawlerConfig) ([]models.Quote, []string, error) {
	f, err := newFetcher(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up fetcher: %w", err)
	}
	defer f.Close()

	var (
		allQuotes []models.Quote
		topTags   []string
	)

	currentURL := cfg.StartURL
	pageCount := 0

	for currentURL != "" {
		pageCount++
		logger.Printf("Scraping page %d: %s", pageCount, currentURL)

		html, err := f.Fetch(currentURL)
		if err != nil {
			return allQuotes, topTags, fmt.Errorf("failed to fetch %s: %w", currentURL, err)
		}

		page, err := ParsePage(html, currentURL, cfg.Selectors)
		if err != nil {
			return allQuotes, topTags, fmt.Errorf("failed to parse %s: %w", currentURL, err)
		}

		if len(page.Quotes) > 0 {
			allQuotes = append(allQuotes, page.Quotes...)
			logger.Printf("Found %d quotes on this page.", len(page.Quotes))
		} else {
			logger.Println("No quotes found on this page.")
		}

		// The tag cloud only renders on the first page.
		if pageCount == 1 && len(page.TopTags) > 0 {
			topTags = page.TopTags
			logger.Printf("Top ten tags: %d found.", len(topTags))
		}

		currentURL = page.NextURL
		if currentURL != "" {
			time.Sleep(time.Duration(cfg.DelayMs) * time.Millisecond)
		}
	}

	logger.Printf("Crawl finished: %d quotes across %d pages.", len(allQuotes), pageCount)
	return allQuotes, topTags, nil
}

// ParsePage extracts quotes, the top-ten tag cloud, and the absolute
// next-page URL from one listing page.
func ParsePage(html, pageURL string, sel config.QuoteSelectors) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Page{}, err
	}

	var page Page

	doc.Find(sel.Quote).Each(func(_ int, s *goquery.Selection) {
		var q models.Quote
		q.Text = strings.TrimSpace(s.Find(sel.Text).First().Text())
		q.Author = strings.TrimSpace(s.Find(sel.Author).First().Text())
		s.Find(sel.Tag).Each(func(_ int, tag *goquery.Selection) {
			q.Tags = append(q.Tags, strings.TrimSpace(tag.Text()))
		})
		// Quotes without text are markup noise.
		if q.Text != "" {
			page.Quotes = append(page.Quotes, q)
		}
	})

	doc.Find(sel.TopTag).Each(func(_ int, tag *goquery.Selection) {
		page.TopTags = append(page.TopTags, strings.TrimSpace(tag.Text()))
	})

	if href, ok := doc.Find(sel.NextLink).First().Attr("href"); ok {
		page.NextURL = resolveURL(pageURL, href)
	}

	return page, nil
}

// resolveURL makes a possibly-relative pagination href absolute.
func resolveURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	hrefURL, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(hrefURL).String()
}

// Stats summarizes a crawl for the CLI output.
type Stats struct {
	Quotes        int
	UniqueAuthors int
	UniqueTags    int
}

// Summarize computes crawl statistics.
func Summarize(quotes []models.Quote) Stats {
	authors := make(map[string]struct{})
	tags := make(map[string]struct{})
	for _, q := range quotes {
		if q.Author != "" {
			authors[q.Author] = struct{}{}
		}
		for _, t := range q.Tags {
			tags[t] = struct{}{}
		}
	}
	return Stats{Quotes: len(quotes), UniqueAuthors: len(authors), UniqueTags: len(tags)}
}
