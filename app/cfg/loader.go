package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Directories
	ConfigDir string `long:"config-dir" env:"CONFIG_DIR" default:"./config" description:"Directory containing sources, keywords, health-check and notification files"`
	OutputDir string `long:"output-dir" env:"OUTPUT_DIR" default:"./output" description:"Directory for JSON, Markdown and DOCX artifacts"`
	PagesDir  string `long:"pages-dir" env:"PAGES_DIR" default:"./docs" description:"Directory for the generated static page"`

	// Fetching
	CachePath    string `long:"cache-path" env:"CACHE_PATH" default:"./cache/feeds.db" description:"SQLite file backing the feed content cache (empty disables the cache)"`
	CacheTTL     int    `long:"cache-ttl" env:"CACHE_TTL" default:"3600" description:"Feed content cache TTL in seconds"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"10" description:"Feed fetch timeout in seconds"`
	UserAgent    string `long:"user-agent" env:"USER_AGENT" description:"User agent string for feed requests"`
	WorkerCount  int    `long:"worker-count" env:"WORKER_COUNT" default:"0" description:"Maximum concurrent source fetches (0 means unbounded)"`

	// Delivery
	WebhookURL         string `long:"webhook-url" env:"WEBHOOK_URL" description:"Webhook receiving the daily summary (config file takes precedence)"`
	PagesBucket        string `long:"pages-bucket" env:"PAGES_BUCKET" description:"Cloud Storage bucket the page is published to (optional)"`
	PagesPrefix        string `long:"pages-prefix" env:"PAGES_PREFIX" description:"Object name prefix inside the pages bucket"`
	GCSCredentialsFile string `long:"gcs-credentials-file" env:"GCS_CREDENTIALS_FILE" description:"Service account file for Cloud Storage (defaults to ADC)"`

	// Daemon
	Schedule     string `long:"schedule" env:"SCHEDULE" default:"0 */6 * * *" description:"Cron expression for the pipeline in serve mode"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port in serve mode"`
	BaseURL      string `long:"base-url" env:"BASE_URL" description:"Public base URL used for feed self links (optional)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the manual run endpoint (optional)"`

	// Application metadata
	LogFile  string `long:"log-file" env:"LOG_FILE" description:"Also append logs to this file"`
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for collected_at timestamps (e.g., UTC, Asia/Shanghai)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load reads .env (when present) and the environment. Command-line arguments
// are not consulted; stage selection belongs to the CLI.
func Load() (*Cfg, error) {
	_ = godotenv.Load()

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs([]string{}); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		ConfigDir:          raw.ConfigDir,
		OutputDir:          raw.OutputDir,
		PagesDir:           raw.PagesDir,
		CachePath:          raw.CachePath,
		CacheTTL:           time.Duration(raw.CacheTTL) * time.Second,
		FetchTimeout:       time.Duration(raw.FetchTimeout) * time.Second,
		UserAgent:          cmp.Or(raw.UserAgent, DefaultUserAgent),
		WorkerCount:        raw.WorkerCount,
		WebhookURL:         raw.WebhookURL,
		PagesBucket:        raw.PagesBucket,
		PagesPrefix:        raw.PagesPrefix,
		GCSCredentialsFile: raw.GCSCredentialsFile,
		Schedule:           raw.Schedule,
		Port:               raw.Port,
		BaseURL:            raw.BaseURL,
		APIAccessKey:       raw.APIAccessKey,
		LogFile:            raw.LogFile,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = 10 * time.Second
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func (c *Cfg) validate() error {
	nonNegativeFields := map[string]int{
		"cache ttl":     int(c.CacheTTL),
		"fetch timeout": int(c.FetchTimeout),
		"worker count":  c.WorkerCount,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
