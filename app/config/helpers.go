package config

import (
	"time"
)

const DefaultMinScore = 0.005

func (s Source) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// CheckInterval returns the disable cool-down as time.Duration
func (p HealthCheckPolicy) CheckInterval() time.Duration {
	return time.Duration(p.CheckIntervalHours * float64(time.Hour))
}

// Timeout returns the probe timeout as time.Duration
func (p HealthCheckPolicy) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(p.TimeoutSeconds * float64(time.Second))
}

func (p HealthCheckPolicy) ShouldAutoDisable() bool {
	return p.AutoDisable == nil || *p.AutoDisable
}

func (k Keywords) Mode() ScoringMode {
	if k.Scoring == "" {
		return ScoringFrequency
	}
	return k.Scoring
}

func (k Keywords) Threshold() float64 {
	if k.MinScore == nil {
		return DefaultMinScore
	}
	return *k.MinScore
}

func (n Notification) IsEnabled() bool {
	return n.Settings.Enabled == nil || *n.Settings.Enabled
}

// DefaultHealthCheckPolicy mirrors an absent health-check file: tracking off,
// three failures before disabling, a 24 hour cool-down and a 10 second probe.
func DefaultHealthCheckPolicy() HealthCheckPolicy {
	return HealthCheckPolicy{
		Enabled:            false,
		FailureThreshold:   3,
		CheckIntervalHours: 24,
		TimeoutSeconds:     10,
	}
}
