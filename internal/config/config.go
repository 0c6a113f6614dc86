package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "TECHDIGEST_CONFIG"
	databaseDSNEnv   = "DATABASE_DSN"
	openAIAPIKeyEnv  = "OPENAI_API_KEY"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Collector CollectorConfig `yaml:"collector"`
	Enricher  EnricherConfig  `yaml:"enricher"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Output    OutputConfig    `yaml:"output"`
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Sources   []SourceConfig  `yaml:"sources"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CollectorConfig bounds the fetch worker pool.
type CollectorConfig struct {
	MaxWorkers        int `yaml:"maxWorkers"`
	OverallTimeoutSec int `yaml:"overallTimeoutSec"`
	FetchTimeoutSec   int `yaml:"fetchTimeoutSec"`
}

// OverallTimeout is the aggregate deadline across all fetch tasks.
func (c CollectorConfig) OverallTimeout() time.Duration {
	return time.Duration(c.OverallTimeoutSec) * time.Second
}

// FetchTimeout bounds a single upstream HTTP request.
func (c CollectorConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

// EnricherConfig bounds the summary worker pool.
type EnricherConfig struct {
	Workers        int `yaml:"workers"`
	ItemTimeoutSec int `yaml:"itemTimeoutSec"`
}

// ItemTimeout bounds one summary extraction.
func (c EnricherConfig) ItemTimeout() time.Duration {
	return time.Duration(c.ItemTimeoutSec) * time.Second
}

// OpenAIConfig enables the LLM summarizer when an API key is present.
type OpenAIConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// TelegramConfig wires the digest delivery chat.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   int64  `yaml:"chatId"`
}

// OutputConfig describes the JSON artifact and its publication repo.
type OutputConfig struct {
	JSONPath string `yaml:"jsonPath"`
	RepoDir  string `yaml:"repoDir"`
	Branch   string `yaml:"branch"`
}

// DatabaseConfig describes the optional digest archive.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines when the daily run fires.
type SchedulerConfig struct {
	CronExpression string `yaml:"cronExpression"`
}

// SourceConfig describes a single fetch target and its adapter strategy.
type SourceConfig struct {
	URL     string `yaml:"url"`
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Adapter string `yaml:"adapter"`
	Limit   int    `yaml:"limit"`
}

// Default returns the built-in configuration without file or environment
// overrides applied.
func Default() Config {
	return defaultConfig()
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultSources()
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatEnv); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err != nil {
			log.Printf("config: invalid %s: %v", telegramChatEnv, err)
		} else {
			c.Telegram.ChatID = id
		}
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Collector.MaxWorkers > 0 {
		base.Collector.MaxWorkers = override.Collector.MaxWorkers
	}
	if override.Collector.OverallTimeoutSec > 0 {
		base.Collector.OverallTimeoutSec = override.Collector.OverallTimeoutSec
	}
	if override.Collector.FetchTimeoutSec > 0 {
		base.Collector.FetchTimeoutSec = override.Collector.FetchTimeoutSec
	}

	if override.Enricher.Workers > 0 {
		base.Enricher.Workers = override.Enricher.Workers
	}
	if override.Enricher.ItemTimeoutSec > 0 {
		base.Enricher.ItemTimeoutSec = override.Enricher.ItemTimeoutSec
	}

	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.ChatID != 0 {
		base.Telegram.ChatID = override.Telegram.ChatID
	}

	if override.Output.JSONPath != "" {
		base.Output.JSONPath = override.Output.JSONPath
	}
	if override.Output.RepoDir != "" {
		base.Output.RepoDir = override.Output.RepoDir
	}
	if override.Output.Branch != "" {
		base.Output.Branch = override.Output.Branch
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Collector: CollectorConfig{MaxWorkers: 10, OverallTimeoutSec: 75, FetchTimeoutSec: 10},
		Enricher:  EnricherConfig{Workers: 6, ItemTimeoutSec: 8},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Output:    OutputConfig{JSONPath: "public/digest.json", Branch: "master"},
		Scheduler: SchedulerConfig{CronExpression: "0 4 * * *"},
		Sources:   defaultSources(),
	}
}

func defaultSources() []SourceConfig {
	return []SourceConfig{
		// Tech news
		{URL: "https://news.ycombinator.com", ID: "hn_top", Name: "Hacker News", Adapter: "hackernews", Limit: 8},
		{URL: "https://news.ycombinator.com/front", ID: "hn_front", Name: "Hacker News", Adapter: "hackernews", Limit: 8},
		{URL: "https://news.ycombinator.com/newest", ID: "hn_new", Name: "Hacker News", Adapter: "hackernews", Limit: 8},
		{URL: "https://techcrunch.com", ID: "techcrunch", Name: "TechCrunch", Adapter: "generic", Limit: 6},
		{URL: "https://www.theverge.com/tech", ID: "theverge", Name: "The Verge", Adapter: "generic", Limit: 6},
		{URL: "https://arstechnica.com", ID: "arstechnica", Name: "Ars Technica", Adapter: "generic", Limit: 6},
		{URL: "https://www.bloomberg.com/technology", ID: "bloomberg_tech", Name: "Bloomberg Tech", Adapter: "generic", Limit: 6},

		// Community
		{URL: "https://www.reddit.com/r/programming/hot", ID: "reddit_programming", Name: "r/programming", Adapter: "reddit", Limit: 6},
		{URL: "https://www.reddit.com/r/technology/hot", ID: "reddit_technology", Name: "r/technology", Adapter: "reddit", Limit: 6},
		{URL: "https://www.reddit.com/r/MachineLearning/hot", ID: "reddit_ml", Name: "r/MachineLearning", Adapter: "reddit", Limit: 6},
		{URL: "https://www.reddit.com/r/webdev/hot", ID: "reddit_webdev", Name: "r/webdev", Adapter: "reddit", Limit: 6},
		{URL: "https://www.producthunt.com/posts", ID: "producthunt", Name: "Product Hunt", Adapter: "generic", Limit: 6},
		{URL: "https://www.indiehackers.com", ID: "indiehackers", Name: "Indie Hackers", Adapter: "generic", Limit: 6},

		// India tech
		{URL: "https://yourstory.com/tech", ID: "yourstory", Name: "YourStory", Adapter: "generic", Limit: 6},
		{URL: "https://economictimes.indiatimes.com/tech", ID: "et_tech", Name: "Economic Times", Adapter: "generic", Limit: 6},
		{URL: "https://www.moneycontrol.com/technology", ID: "moneycontrol", Name: "Moneycontrol", Adapter: "generic", Limit: 6},
		{URL: "https://www.inc42.com", ID: "inc42", Name: "Inc42", Adapter: "generic", Limit: 6},

		// Dev and open source
		{URL: "https://github.com/trending", ID: "github_trending", Name: "GitHub Trending", Adapter: "github", Limit: 8},
		{URL: "https://dev.to", ID: "devto", Name: "Dev.to", Adapter: "generic", Limit: 6},
		{URL: "https://lobste.rs/rss", ID: "lobsters", Name: "Lobsters", Adapter: "rss", Limit: 6},

		// Research
		{URL: "https://arxiv.org/list/cs.AI/recent", ID: "arxiv_ai", Name: "ArXiv AI", Adapter: "generic", Limit: 6},
		{URL: "https://research.google/blog/rss/", ID: "google_research", Name: "Google Research", Adapter: "rss", Limit: 6},
		{URL: "https://deepmind.google/blog/rss.xml", ID: "deepmind", Name: "DeepMind", Adapter: "rss", Limit: 6},
	}
}
