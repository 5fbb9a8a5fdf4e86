package detect

import (
	"fmt"

	"logmon/internal/feature"
	"logmon/internal/types"
)

// Engine evaluates run-scoped thresholds
type Engine struct {
	failedThreshold int
}

// NewEngine creates a new detection engine. A failed-login alert fires when a
// run has strictly more failed logins than failedThreshold.
func NewEngine(failedThreshold int) *Engine {
	return &Engine{failedThreshold: failedThreshold}
}

// Evaluate returns the alerts a finished run triggers, in fixed order:
// failed logins, errors, criticals. Each threshold is independent.
func (e *Engine) Evaluate(run *feature.RunCounters) []types.Alert {
	var alerts []types.Alert

	// Rule 1: failed logins above threshold
	if run.FailedLogins > int64(e.failedThreshold) {
		alerts = append(alerts, types.Alert{
			Kind:     types.KindFailedLogins,
			Severity: types.SeverityWarning,
			Count:    run.FailedLogins,
			Message:  fmt.Sprintf("Multiple failed logins (%d)", run.FailedLogins),
		})
	}

	// Rule 2: any error
	if run.Errors > 0 {
		alerts = append(alerts, types.Alert{
			Kind:     types.KindErrors,
			Severity: types.SeverityWarning,
			Count:    run.Errors,
			Message:  fmt.Sprintf("%d error(s)", run.Errors),
		})
	}

	// Rule 3: any critical
	if run.Criticals > 0 {
		alerts = append(alerts, types.Alert{
			Kind:     types.KindCriticals,
			Severity: types.SeverityCritical,
			Count:    run.Criticals,
			Message:  fmt.Sprintf("%d critical issue(s)", run.Criticals),
		})
	}

	return alerts
}
