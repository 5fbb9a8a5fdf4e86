package detect

import (
	"testing"

	"logmon/internal/feature"
	"logmon/internal/types"
)

func TestEngine_FailedLoginBoundary(t *testing.T) {
	e := NewEngine(3)

	// F == T: no alert
	run := &feature.RunCounters{FailedLogins: 3}
	if alerts := e.Evaluate(run); len(alerts) != 0 {
		t.Errorf("Unexpected alert at threshold: %+v", alerts)
	}

	// F == T+1: alert
	run.FailedLogins = 4
	alerts := e.Evaluate(run)
	if len(alerts) != 1 {
		t.Fatalf("Expected 1 alert above threshold, got %d", len(alerts))
	}
	if alerts[0].Message != "Multiple failed logins (4)" {
		t.Errorf("Expected 'Multiple failed logins (4)', got '%s'", alerts[0].Message)
	}
	if alerts[0].Line() != "ALERT: Multiple failed logins (4)" {
		t.Errorf("Unexpected sink line '%s'", alerts[0].Line())
	}
}

func TestEngine_ZeroThreshold(t *testing.T) {
	e := NewEngine(0)

	if alerts := e.Evaluate(&feature.RunCounters{}); len(alerts) != 0 {
		t.Errorf("Expected no alert for an empty run, got %+v", alerts)
	}
	if alerts := e.Evaluate(&feature.RunCounters{FailedLogins: 1}); len(alerts) != 1 {
		t.Errorf("Expected alert for a single failure, got %+v", alerts)
	}
}

func TestEngine_IndependentRules(t *testing.T) {
	e := NewEngine(3)

	alerts := e.Evaluate(&feature.RunCounters{FailedLogins: 4, Errors: 1, Criticals: 2})
	if len(alerts) != 3 {
		t.Fatalf("Expected 3 alerts, got %d", len(alerts))
	}

	want := []struct {
		kind types.AlertKind
		line string
	}{
		{types.KindFailedLogins, "ALERT: Multiple failed logins (4)"},
		{types.KindErrors, "ALERT: 1 error(s)"},
		{types.KindCriticals, "CRITICAL: 2 critical issue(s)"},
	}
	for i, w := range want {
		if alerts[i].Kind != w.kind {
			t.Errorf("Alert %d: expected kind %s, got %s", i, w.kind, alerts[i].Kind)
		}
		if alerts[i].Line() != w.line {
			t.Errorf("Alert %d: expected '%s', got '%s'", i, w.line, alerts[i].Line())
		}
	}

	if alerts[2].Severity != types.SeverityCritical {
		t.Errorf("Expected critical severity, got %s", alerts[2].Severity)
	}
}
