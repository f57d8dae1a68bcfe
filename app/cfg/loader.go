package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Content store configuration. The tokens are deliberately not marked
	// required: a missing token fails the first call that needs it, not
	// startup, so read-only deployments can run without write credentials.
	SpaceID         string `long:"space-id" env:"CONTENTFUL_SPACE_ID" description:"Content store space ID"`
	Environment     string `long:"environment" env:"CONTENTFUL_ENVIRONMENT" default:"master" description:"Content store environment name"`
	AccessToken     string `long:"access-token" env:"CONTENTFUL_ACCESS_TOKEN" description:"Content store delivery (read) token"`
	ManagementToken string `long:"management-token" env:"CONTENTFUL_MANAGEMENT_TOKEN" description:"Content store management (write) token"`
	DeliveryURL     string `long:"delivery-url" env:"CONTENTFUL_DELIVERY_URL" default:"https://cdn.contentful.com" description:"Content store delivery API base URL"`
	ManagementURL   string `long:"management-url" env:"CONTENTFUL_MANAGEMENT_URL" default:"https://api.contentful.com" description:"Content store management API base URL"`

	// Language model configuration
	OpenAIAPIKey  string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"API key for the language model provider"`
	OpenAIModel   string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o-mini" description:"Default chat completion model"`
	OpenAIBaseURL string `long:"openai-base-url" env:"OPENAI_BASE_URL" default:"https://api.openai.com/v1" description:"Language model provider base URL"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	DBPath            string `long:"db-path" env:"DB_PATH" default:"./alphanews.db" description:"Path to the SQLite submission log database"`
	StylesDir         string `long:"styles-dir" env:"STYLES_DIR" default:"./styles" description:"Directory containing rewrite style configuration files"`
	SourcesDir        string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing source feed configuration files"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for pipeline tasks"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"30" description:"Scheduler interval in seconds"`
	FeedCacheTTL      int    `long:"feed-cache-ttl" env:"FEED_CACHE_TTL" default:"60" description:"Feed reader cache TTL in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"AlphaNews/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SpaceID:           raw.SpaceID,
		Environment:       raw.Environment,
		AccessToken:       raw.AccessToken,
		ManagementToken:   raw.ManagementToken,
		DeliveryURL:       raw.DeliveryURL,
		ManagementURL:     raw.ManagementURL,
		OpenAIAPIKey:      raw.OpenAIAPIKey,
		OpenAIModel:       raw.OpenAIModel,
		OpenAIBaseURL:     raw.OpenAIBaseURL,
		Port:              raw.Port,
		DBPath:            raw.DBPath,
		StylesDir:         raw.StylesDir,
		SourcesDir:        raw.SourcesDir,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		FeedCacheTTL:      raw.FeedCacheTTL,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set replaces the global configuration. Intended for tests.
func Set(c *Cfg) {
	globalCfg = c
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
