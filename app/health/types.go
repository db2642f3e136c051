package health

import (
	"time"
)

// Status is the persisted health record of one source, keyed by URL.
type Status struct {
	Failures         int        `json:"failures"`
	LastCheck        *time.Time `json:"last_check"`
	Disabled         bool       `json:"disabled"`
	LastDisabledTime *time.Time `json:"last_disabled_time"`
}

type StatusMap map[string]Status

type Decision int

const (
	// DecisionCheck probes a source that is not disabled.
	DecisionCheck Decision = iota
	// DecisionResetAndCheck clears a disabled source whose cool-down elapsed, then probes it.
	DecisionResetAndCheck
	// DecisionSkip leaves a disabled source alone until its cool-down elapses.
	DecisionSkip
)

func (d Decision) String() string {
	switch d {
	case DecisionCheck:
		return "check"
	case DecisionResetAndCheck:
		return "reset-and-check"
	case DecisionSkip:
		return "skip"
	default:
		return "unknown"
	}
}
