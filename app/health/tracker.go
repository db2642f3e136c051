package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/news"
)

// Outcome is the result of evaluating one source before it is fetched.
// Status is the updated copy the caller writes back once all sources finish.
type Outcome struct {
	Decision Decision
	Status   Status
	Proceed  bool
	Record   *news.InvalidSourceRecord
}

type Tracker struct {
	policy config.HealthCheckPolicy
	prober Prober
	logger *slog.Logger
}

func NewTracker(policy config.HealthCheckPolicy, prober Prober, logger *slog.Logger) *Tracker {
	return &Tracker{
		policy: policy,
		prober: prober,
		logger: logger,
	}
}

func (t *Tracker) Enabled() bool {
	return t.policy.Enabled
}

// Decide picks what to do with a source given its current status.
func (t *Tracker) Decide(status Status, now time.Time) Decision {
	if !status.Disabled {
		return DecisionCheck
	}
	if status.LastDisabledTime == nil {
		return DecisionResetAndCheck
	}
	if now.Sub(*status.LastDisabledTime) < t.policy.CheckInterval() {
		return DecisionSkip
	}
	return DecisionResetAndCheck
}

// Evaluate probes the source unless it is cooling down. The passed status is
// not modified.
func (t *Tracker) Evaluate(ctx context.Context, source config.Source, status Status, now time.Time) Outcome {
	decision := t.Decide(status, now)

	switch decision {
	case DecisionSkip:
		t.logger.Debug("Skipping disabled source", "source", source.Name, "disabled_at", status.LastDisabledTime)
		return Outcome{Decision: decision, Status: status}
	case DecisionResetAndCheck:
		t.logger.Info("Re-checking disabled source", "source", source.Name)
		status.Disabled = false
		status.Failures = 0
	}

	checkedAt := now
	status.LastCheck = &checkedAt

	err := t.prober.Probe(ctx, source.URL, t.policy.Timeout())
	if err == nil {
		status.Failures = 0
		return Outcome{Decision: decision, Status: status, Proceed: true}
	}

	status.Failures++

	var reason string
	if status.Failures >= t.policy.FailureThreshold && t.policy.ShouldAutoDisable() {
		status.Disabled = true
		status.LastDisabledTime = &checkedAt
		reason = fmt.Sprintf("disabled after %d consecutive failures: %v", status.Failures, err)
		t.logger.Warn("Source disabled", "source", source.Name, "url", source.URL, "failures", status.Failures, "error", err)
	} else {
		reason = fmt.Sprintf("health check failed (%d/%d): %v", status.Failures, t.policy.FailureThreshold, err)
		t.logger.Warn("Health check failed", "source", source.Name, "url", source.URL, "failures", status.Failures, "error", err)
	}

	record := news.NewInvalidSourceRecord(source.Name, source.URL, reason, now)
	return Outcome{Decision: decision, Status: status, Record: &record}
}

// RecordFailure counts a fetch or parse failure that happened after a
// successful probe. The disable threshold is only applied on probes.
func RecordFailure(status Status) Status {
	status.Failures++
	return status
}
