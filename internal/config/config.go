package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppConfig holds infrastructure settings taken from environment
// variables. Credentials (SLACK_BOT_TOKEN, GEMINI_API_KEY) are read by
// the packages that need them.
type AppConfig struct {
	DBPath     string
	ConfigPath string
}

// FileConfig is the YAML file driving the three tools.
type FileConfig struct {
	Orders  OrdersConfig  `yaml:"orders"`
	Crawler CrawlerConfig `yaml:"crawler"`
	Slack   SlackConfig   `yaml:"slack"`
}

// OrdersConfig configures the batch receipt run.
type OrdersConfig struct {
	InputDir   string `yaml:"input_dir"`
	OutputFile string `yaml:"output_file"`
}

// CrawlerConfig configures the quotes crawl.
type CrawlerConfig struct {
	StartURL   string         `yaml:"start_url"`
	UseBrowser bool           `yaml:"use_browser"`
	DelayMs    int            `yaml:"delay_ms"`
	Selectors  QuoteSelectors `yaml:"selectors"`
}

// QuoteSelectors are the CSS selectors for the quotes site.
type QuoteSelectors struct {
	Quote    string `yaml:"quote"`
	Text     string `yaml:"text"`
	Author   string `yaml:"author"`
	Tag      string `yaml:"tag"`
	TopTag   string `yaml:"top_tag"`
	NextLink string `yaml:"next_link"`
}

// SlackConfig configures the polling bot.
type SlackConfig struct {
	Channel string `yaml:"channel"`
}

// GetAppConfig reads basic infrastructure settings from environment
// variables, with sensible local defaults.
func GetAppConfig() (AppConfig, error) {
	dbPath := os.Getenv("DB_PATH")
	configPath := os.Getenv("CONFIG_PATH")

	if dbPath == "" {
		dbPath = "./local-data/albert.db"
	}
	if configPath == "" {
		configPath = "config.yaml"
	}

	return AppConfig{
		DBPath:     dbPath,
		ConfigPath: configPath,
	}, nil
}

// LoadFileConfig reads and parses the YAML config, filling in defaults
// for anything the file leaves out.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file at '%s': %w", path, err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *FileConfig) applyDefaults() {
	if c.Orders.InputDir == "" {
		c.Orders.InputDir = "."
	}
	if c.Orders.OutputFile == "" {
		c.Orders.OutputFile = "all_orders.json"
	}
	if c.Crawler.StartURL == "" {
		c.Crawler.StartURL = "https://quotes.toscrape.com/"
	}
	if c.Crawler.DelayMs == 0 {
		c.Crawler.DelayMs = 500
	}
	s := &c.Crawler.Selectors
	if s.Quote == "" {
		s.Quote = "div.quote"
	}
	if s.Text == "" {
		s.Text = "span.text"
	}
	if s.Author == "" {
		s.Author = "small.author"
	}
	if s.Tag == "" {
		s.Tag = "div.tags a.tag"
	}
	if s.TopTag == "" {
		s.TopTag = "span.tag-item a.tag"
	}
	if s.NextLink == "" {
		s.NextLink = "li.next a"
	}
}
