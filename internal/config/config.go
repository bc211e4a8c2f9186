package config

import (
	"fmt"
	"time"
)

type Config struct {
	Timezone      string              `yaml:"timezone"`
	HTTP          HttpConfig          `yaml:"http"`
	Fetch         FetchConfig         `yaml:"fetch"`
	Sources       SourcesConfig       `yaml:"sources"`
	Storage       StorageConfig       `yaml:"storage"`
	Normalize     NormalizeConfig     `yaml:"normalize"`
	Newsletter    NewsletterConfig    `yaml:"newsletter"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type HttpConfig struct {
	UserAgent                 string `yaml:"user_agent"`
	TotalTimeoutMS            int    `yaml:"total_timeout_ms"`
	MaxIdleConnections        int    `yaml:"max_idle_connections"`
	MaxIdleConnectionsPerHost int    `yaml:"max_idle_connections_per_host"`
	IdleConnectionTimeoutS    int    `yaml:"idle_connection_timeout_s"`
}

type FetchConfig struct {
	MaxWorkersArticles    int `yaml:"max_workers_articles"`
	MaxWorkersNewsletters int `yaml:"max_workers_newsletters"`
	MaxWorkersSocial      int `yaml:"max_workers_social"`
	MaxRetries            int `yaml:"max_retries"`
	BackoffBaseS          int `yaml:"backoff_base_s"`
}

type SourcesConfig struct {
	FeedsFile       string `yaml:"feeds_file"`
	NewslettersFile string `yaml:"newsletters_file"`
	SocialFile      string `yaml:"social_file"`
	TopicsFile      string `yaml:"topics_file"`
}

type StorageConfig struct {
	ContentDir string `yaml:"content_dir"`
	RawDir     string `yaml:"raw_dir"`
}

type NormalizeConfig struct {
	SummaryLimit int `yaml:"summary_limit"`
	SocialLimit  int `yaml:"social_limit"`
}

type NewsletterConfig struct {
	Model            string `yaml:"model"`
	MaxTokens        int    `yaml:"max_tokens"`
	MaxItems         int    `yaml:"max_items"`
	FetchWorkers     int    `yaml:"fetch_workers"`
	FetchTimeoutMS   int    `yaml:"fetch_timeout_ms"`
	FetchDelayMS     int    `yaml:"fetch_delay_ms"`
	MaxConcurrent    int    `yaml:"max_concurrent_per_host"`
	RPM              int    `yaml:"rpm"`
	PromptFile       string `yaml:"prompt_file"`
	EditorPromptFile string `yaml:"editor_prompt_file"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

// Validation
func (c *Config) Validate() error {
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required")
	}
	if c.HTTP.TotalTimeoutMS <= 0 {
		return fmt.Errorf("http.total_timeout_ms must be > 0")
	}
	if c.Fetch.MaxWorkersArticles <= 0 {
		return fmt.Errorf("fetch.max_workers_articles must be > 0")
	}
	if c.Fetch.MaxWorkersNewsletters <= 0 {
		return fmt.Errorf("fetch.max_workers_newsletters must be > 0")
	}
	if c.Fetch.MaxWorkersSocial <= 0 {
		return fmt.Errorf("fetch.max_workers_social must be > 0")
	}
	if c.Fetch.MaxRetries <= 0 {
		return fmt.Errorf("fetch.max_retries must be > 0")
	}
	if c.Fetch.BackoffBaseS <= 0 {
		return fmt.Errorf("fetch.backoff_base_s must be > 0")
	}
	if c.Sources.FeedsFile == "" {
		return fmt.Errorf("sources.feeds_file is required")
	}
	if c.Sources.NewslettersFile == "" {
		return fmt.Errorf("sources.newsletters_file is required")
	}
	if c.Sources.SocialFile == "" {
		return fmt.Errorf("sources.social_file is required")
	}
	if c.Storage.ContentDir == "" {
		return fmt.Errorf("storage.content_dir is required")
	}
	if c.Storage.RawDir == "" {
		return fmt.Errorf("storage.raw_dir is required")
	}
	if c.Normalize.SummaryLimit <= 0 {
		return fmt.Errorf("normalize.summary_limit must be > 0")
	}
	if c.Normalize.SocialLimit <= 0 {
		return fmt.Errorf("normalize.social_limit must be > 0")
	}
	if c.Newsletter.Model == "" {
		return fmt.Errorf("newsletter.model is required")
	}
	if c.Newsletter.MaxTokens <= 0 {
		return fmt.Errorf("newsletter.max_tokens must be > 0")
	}
	if c.Newsletter.MaxItems <= 0 {
		return fmt.Errorf("newsletter.max_items must be > 0")
	}
	if c.Newsletter.FetchWorkers <= 0 {
		return fmt.Errorf("newsletter.fetch_workers must be > 0")
	}
	if c.Newsletter.FetchTimeoutMS <= 0 {
		return fmt.Errorf("newsletter.fetch_timeout_ms must be > 0")
	}
	if c.Newsletter.FetchDelayMS < 0 {
		return fmt.Errorf("newsletter.fetch_delay_ms must be >= 0")
	}
	if c.Newsletter.MaxConcurrent <= 0 {
		return fmt.Errorf("newsletter.max_concurrent_per_host must be > 0")
	}
	if c.Newsletter.RPM <= 0 {
		return fmt.Errorf("newsletter.rpm must be > 0")
	}
	if c.Observability.LogPath == "" {
		return fmt.Errorf("observability.log_path is required")
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	return nil
}

// Getters
func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetIdleConnectionTimeout() time.Duration {
	return time.Duration(c.HTTP.IdleConnectionTimeoutS) * time.Second
}

func (c *Config) GetBackoffBase() time.Duration {
	return time.Duration(c.Fetch.BackoffBaseS) * time.Second
}

func (c *Config) GetNewsletterFetchTimeout() time.Duration {
	return time.Duration(c.Newsletter.FetchTimeoutMS) * time.Millisecond
}

func (c *Config) GetNewsletterFetchDelay() time.Duration {
	return time.Duration(c.Newsletter.FetchDelayMS) * time.Millisecond
}

// Location загружает таймзону из конфига, UTC как fallback
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
