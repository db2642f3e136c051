package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when none of a config file's extensions exist.
var ErrNotFound = errors.New("config file not found")

const (
	SourcesName      = "rss-sources"
	HealthCheckName  = "health-check"
	KeywordsName     = "keywords"
	NotificationName = "notification"
	HealthStatusFile = "rss-health-status.json"
)

var extensions = []string{".json", ".yaml", ".yml"}

// Loader handles loading and validation of the pipeline's config files
type Loader struct {
	dir      string
	validate *validator.Validate
	logger   *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(dir string, logger *slog.Logger) *Loader {
	return &Loader{
		dir:      dir,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func (l *Loader) Dir() string {
	return l.dir
}

func (l *Loader) HealthStatusPath() string {
	return filepath.Join(l.dir, HealthStatusFile)
}

// Resolve returns the first existing file named base with a known extension.
func (l *Loader) Resolve(base string) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(l.dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s in %s: %w", base, l.dir, ErrNotFound)
}

// LoadSources loads the source list. A missing file is an error; enabled
// entries that fail validation are logged and left out.
func (l *Loader) LoadSources() ([]Source, error) {
	path, err := l.Resolve(SourcesName)
	if err != nil {
		return nil, err
	}

	var sources []Source
	if err := l.decodeFile(path, &sources); err != nil {
		return nil, err
	}

	valid := make([]Source, 0, len(sources))
	for i, source := range sources {
		source.Name = strings.TrimSpace(source.Name)
		source.URL = strings.TrimSpace(source.URL)
		if source.Category == "" {
			source.Category = "general"
		}

		// Disabled entries are never fetched, so drafts without a URL are fine.
		if source.IsEnabled() {
			if err := l.validate.Struct(source); err != nil {
				l.logger.Warn("Skipping invalid source", "path", path, "index", i, "name", source.Name, "error", err)
				continue
			}
		}

		valid = append(valid, source)
	}

	l.logger.Debug("Sources loaded", "path", path, "count", len(valid), "skipped", len(sources)-len(valid))
	return valid, nil
}

// LoadHealthCheckPolicy returns the defaults when no file exists.
func (l *Loader) LoadHealthCheckPolicy() (HealthCheckPolicy, error) {
	policy := DefaultHealthCheckPolicy()

	path, err := l.Resolve(HealthCheckName)
	if errors.Is(err, ErrNotFound) {
		l.logger.Debug("No health-check config, tracking disabled", "dir", l.dir)
		return policy, nil
	}
	if err != nil {
		return policy, err
	}

	if err := l.decodeFile(path, &policy); err != nil {
		return DefaultHealthCheckPolicy(), err
	}
	if err := l.validate.Struct(policy); err != nil {
		return DefaultHealthCheckPolicy(), fmt.Errorf("invalid health-check config %s: %w", path, err)
	}

	return policy, nil
}

// LoadKeywords returns ErrNotFound alongside empty keywords when no file exists.
func (l *Loader) LoadKeywords() (Keywords, error) {
	path, err := l.Resolve(KeywordsName)
	if err != nil {
		return Keywords{}, err
	}

	var keywords Keywords
	if err := l.decodeFile(path, &keywords); err != nil {
		return Keywords{}, err
	}
	if err := l.validate.Struct(keywords); err != nil {
		return Keywords{}, fmt.Errorf("invalid keywords config %s: %w", path, err)
	}

	keywords.Include = cleanKeywords(keywords.Include)
	keywords.Exclude = cleanKeywords(keywords.Exclude)

	return keywords, nil
}

// LoadNotification returns an enabled policy without a webhook when no file exists.
func (l *Loader) LoadNotification() (Notification, error) {
	path, err := l.Resolve(NotificationName)
	if errors.Is(err, ErrNotFound) {
		return Notification{}, nil
	}
	if err != nil {
		return Notification{}, err
	}

	var notification Notification
	if err := l.decodeFile(path, &notification); err != nil {
		return Notification{}, err
	}
	if err := l.validate.Struct(notification); err != nil {
		return Notification{}, fmt.Errorf("invalid notification config %s: %w", path, err)
	}

	return notification, nil
}

// decodeFile picks YAML or JSON by extension
func (l *Loader) decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON %s: %w", path, err)
		}
	}

	return nil
}

func cleanKeywords(keywords []string) []string {
	cleaned := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true
		cleaned = append(cleaned, keyword)
	}
	return cleaned
}
