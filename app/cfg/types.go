package cfg

import (
	"strings"
	"time"
)

type Cfg struct {
	// Directories
	ConfigDir string
	OutputDir string
	PagesDir  string

	// Fetching
	CachePath    string
	CacheTTL     time.Duration
	FetchTimeout time.Duration
	UserAgent    string
	WorkerCount  int

	// Delivery
	WebhookURL         string
	PagesBucket        string
	PagesPrefix        string
	GCSCredentialsFile string

	// Daemon
	Schedule     string
	Port         string
	BaseURL      string
	APIAccessKey string

	// Application metadata
	LogFile  string
	Timezone string
	Debug    bool
	Version  string
}

// PublicURL is the absolute URL of path on the API server, falling back to
// localhost when no base URL is configured.
func (c *Cfg) PublicURL(path string) string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/") + path
	}
	return "http://localhost:" + c.Port + path
}
