package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return NewLoader(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoadSourcesJSON(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"rss-sources.json": `[
  {"name": "Tech Daily", "url": "https://tech.example.com/rss", "category": "tech"},
  {"name": "Paused", "url": "https://paused.example.com/rss", "enabled": false},
  {"name": "Full Text", "url": "https://full.example.com/atom", "extract_content": true}
]`,
	})

	sources, err := loader.LoadSources()
	if err != nil {
		t.Fatal(err)
	}

	if len(sources) != 3 {
		t.Fatalf("Expected 3 sources, got %d", len(sources))
	}
	if sources[0].Category != "tech" {
		t.Errorf("Expected category 'tech', got '%s'", sources[0].Category)
	}
	if !sources[0].IsEnabled() {
		t.Error("Expected source without enabled flag to be enabled")
	}
	if sources[1].IsEnabled() {
		t.Error("Expected explicitly disabled source to be disabled")
	}
	if sources[1].Category != "general" {
		t.Errorf("Expected default category 'general', got '%s'", sources[1].Category)
	}
	if !sources[2].ExtractContent {
		t.Error("Expected extract_content to be read")
	}
}

func TestLoadSourcesYAML(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"rss-sources.yaml": `
- name: "Tech Daily"
  url: "https://tech.example.com/rss"
  category: "tech"
  enabled: true
`,
	})

	sources, err := loader.LoadSources()
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 || sources[0].Name != "Tech Daily" {
		t.Errorf("Unexpected sources: %+v", sources)
	}
}

func TestLoadSourcesMissing(t *testing.T) {
	loader := newTestLoader(t, nil)

	_, err := loader.LoadSources()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoadSourcesSkipsInvalidEntries(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"rss-sources.json": `[
  {"name": "Good", "url": "https://example.com/feed"},
  {"name": "No URL"},
  {"name": "Bad URL", "url": "not a url"},
  {"name": "Draft", "url": "", "enabled": false},
  {"name": "Also Good", "url": "https://example.org/rss"}
]`,
	})

	sources, err := loader.LoadSources()
	if err != nil {
		t.Fatalf("Expected invalid entries to be skipped, got error: %v", err)
	}

	if len(sources) != 3 {
		t.Fatalf("Expected 3 sources, got %d: %+v", len(sources), sources)
	}
	if sources[0].Name != "Good" || sources[1].Name != "Draft" || sources[2].Name != "Also Good" {
		t.Errorf("Expected Good, Draft, Also Good in order, got %s, %s, %s", sources[0].Name, sources[1].Name, sources[2].Name)
	}
	if sources[1].IsEnabled() {
		t.Error("Expected draft source to stay disabled")
	}
}

func TestLoadSourcesMalformed(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"rss-sources.json": `[{"name": `,
	})

	if _, err := loader.LoadSources(); err == nil {
		t.Error("Expected parse error for malformed JSON")
	}
}

func TestLoadHealthCheckPolicyDefaults(t *testing.T) {
	loader := newTestLoader(t, nil)

	policy, err := loader.LoadHealthCheckPolicy()
	if err != nil {
		t.Fatal(err)
	}
	if policy.Enabled {
		t.Error("Expected tracking disabled without a config file")
	}
	if policy.FailureThreshold != 3 {
		t.Errorf("Expected default threshold 3, got %d", policy.FailureThreshold)
	}
	if policy.CheckInterval() != 24*time.Hour {
		t.Errorf("Expected default interval 24h, got %v", policy.CheckInterval())
	}
	if !policy.ShouldAutoDisable() {
		t.Error("Expected auto-disable by default")
	}
}

func TestLoadHealthCheckPolicyPartial(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"health-check.json": `{"enabled": true, "timeout_seconds": 5, "auto_disable": false}`,
	})

	policy, err := loader.LoadHealthCheckPolicy()
	if err != nil {
		t.Fatal(err)
	}
	if !policy.Enabled {
		t.Error("Expected tracking enabled")
	}
	if policy.FailureThreshold != 3 {
		t.Errorf("Expected threshold to keep its default, got %d", policy.FailureThreshold)
	}
	if policy.Timeout() != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", policy.Timeout())
	}
	if policy.ShouldAutoDisable() {
		t.Error("Expected auto-disable to be off")
	}
}

func TestLoadHealthCheckPolicyInvalid(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"health-check.yml": "enabled: true\nfailure_threshold: 0\n",
	})

	if _, err := loader.LoadHealthCheckPolicy(); err == nil {
		t.Error("Expected validation error for zero threshold")
	}
}

func TestLoadKeywords(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"keywords.yaml": `
include_keywords:
  - AI
  - " LLM "
  - AI
  - ""
exclude_keywords:
  - sponsored
scoring: presence
`,
	})

	keywords, err := loader.LoadKeywords()
	if err != nil {
		t.Fatal(err)
	}
	if len(keywords.Include) != 2 || keywords.Include[1] != "LLM" {
		t.Errorf("Expected cleaned include keywords [AI LLM], got %v", keywords.Include)
	}
	if len(keywords.Exclude) != 1 {
		t.Errorf("Expected 1 exclude keyword, got %v", keywords.Exclude)
	}
	if keywords.Mode() != ScoringPresence {
		t.Errorf("Expected presence scoring, got %s", keywords.Mode())
	}
	if keywords.Threshold() != DefaultMinScore {
		t.Errorf("Expected default threshold, got %v", keywords.Threshold())
	}
}

func TestLoadKeywordsInvalidMode(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"keywords.json": `{"include_keywords": ["AI"], "scoring": "magic"}`,
	})

	if _, err := loader.LoadKeywords(); err == nil {
		t.Error("Expected validation error for unknown scoring mode")
	}
}

func TestLoadKeywordsMissing(t *testing.T) {
	loader := newTestLoader(t, nil)

	keywords, err := loader.LoadKeywords()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if keywords.Mode() != ScoringFrequency {
		t.Errorf("Expected frequency scoring by default, got %s", keywords.Mode())
	}
}

func TestLoadNotification(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"notification.json": `{"webhook_url": "https://hooks.example.com/x", "notification_settings": {"enabled": false}}`,
	})

	notification, err := loader.LoadNotification()
	if err != nil {
		t.Fatal(err)
	}
	if notification.WebhookURL != "https://hooks.example.com/x" {
		t.Errorf("Unexpected webhook: %s", notification.WebhookURL)
	}
	if notification.IsEnabled() {
		t.Error("Expected notifications disabled")
	}

	missing := newTestLoader(t, nil)
	notification, err = missing.LoadNotification()
	if err != nil {
		t.Fatal(err)
	}
	if !notification.IsEnabled() {
		t.Error("Expected notifications enabled by default")
	}
}

func TestResolvePrefersJSON(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"keywords.json": `{"include_keywords": ["json"]}`,
		"keywords.yaml": "include_keywords: [yaml]\n",
	})

	keywords, err := loader.LoadKeywords()
	if err != nil {
		t.Fatal(err)
	}
	if keywords.Include[0] != "json" {
		t.Errorf("Expected the .json file to win, got %v", keywords.Include)
	}
}
