package crawler

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/config"
)

// fetcher abstracts how a page's HTML is obtained. The quotes site is
// static, so the default is a plain HTTP client; use_browser switches
// to a headless browser for JS-rendered targets.
type fetcher interface {
	Fetch(url string) (string, error)
	Close()
}

func newFetcher(cfg *config.CrawlerConfig) (fetcher, error) {
	if cfg.UseBrowser {
		return newBrowserFetcher()
	}
	return newHTTPFetcher(), nil
}

type httpFetcher struct {
	client *resty.Client
}

func newHTTPFetcher() *httpFetcher {
	return &httpFetcher{
		client: resty.New().SetTimeout(10 * time.Second),
	}
}

func (f *httpFetcher) Fetch(url string) (string, error) {
	resp, err := f.client.R().Get(url)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("unexpected status %s", resp.Status())
	}
	return resp.String(), nil
}

func (f *httpFetcher) Close() {}

type browserFetcher struct {
	browser *rod.Browser
}

func newBrowserFetcher() (*browserFetcher, error) {
	l := launcher.New().Headless(true).NoSandbox(true)
	u, err := l.Launch()
	if err != nil {
		return nil, err
	}
	return &browserFetcher{
		browser: rod.New().ControlURL(u).MustConnect(),
	}, nil
}

func (f *browserFetcher) Fetch(url string) (string, error) {
	page, err := stealth.Page(f.browser)
	if err != nil {
		return "", err
	}
	defer page.MustClose()

	page = page.Timeout(90 * time.Second)
	if err := rod.Try(func() {
		page.MustNavigate(url)
		page.MustWaitStable()
	}); err != nil {
		return "", err
	}
	return page.HTML()
}

func (f *browserFetcher) Close() {
	f.browser.MustClose()
}
