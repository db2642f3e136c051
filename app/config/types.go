package config

// Source is one configured RSS feed endpoint.
type Source struct {
	Name           string `json:"name" yaml:"name" validate:"required"`
	URL            string `json:"url" yaml:"url" validate:"required,url"`
	Category       string `json:"category" yaml:"category"`
	Enabled        *bool  `json:"enabled" yaml:"enabled"`
	ExtractContent bool   `json:"extract_content" yaml:"extract_content"` // fetch article pages for entries without a body
}

// HealthCheckPolicy controls probing and auto-disabling of sources.
type HealthCheckPolicy struct {
	Enabled            bool    `json:"enabled" yaml:"enabled"`
	FailureThreshold   int     `json:"failure_threshold" yaml:"failure_threshold" validate:"gte=1"`
	CheckIntervalHours float64 `json:"check_interval_hours" yaml:"check_interval_hours" validate:"gte=0"`
	TimeoutSeconds     float64 `json:"timeout_seconds" yaml:"timeout_seconds" validate:"gt=0"`
	AutoDisable        *bool   `json:"auto_disable" yaml:"auto_disable"`
}

type ScoringMode string

const (
	ScoringFrequency ScoringMode = "frequency"
	ScoringPresence  ScoringMode = "presence"
)

type Keywords struct {
	Include  []string    `json:"include_keywords" yaml:"include_keywords"`
	Exclude  []string    `json:"exclude_keywords" yaml:"exclude_keywords"`
	Scoring  ScoringMode `json:"scoring" yaml:"scoring" validate:"omitempty,oneof=frequency presence"`
	MinScore *float64    `json:"min_score" yaml:"min_score" validate:"omitempty,gte=0,lte=1"`
}

type Notification struct {
	WebhookURL string               `json:"webhook_url" yaml:"webhook_url" validate:"omitempty,url"`
	Settings   NotificationSettings `json:"notification_settings" yaml:"notification_settings"`
}

type NotificationSettings struct {
	Enabled *bool `json:"enabled" yaml:"enabled"`
}
