package types

import "time"

// Severity defines how loudly an alert is raised
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// AlertKind identifies which threshold fired
type AlertKind string

const (
	KindFailedLogins AlertKind = "failed_logins"
	KindErrors       AlertKind = "errors"
	KindCriticals    AlertKind = "criticals"
)

// Alert is a single threshold crossing within a run
type Alert struct {
	Kind     AlertKind `json:"kind"`
	Severity Severity  `json:"severity"`
	Count    int64     `json:"count"`
	Message  string    `json:"message"` // e.g. "Multiple failed logins (4)"
}

// Line renders the alert the way it is stored in the alert sink.
func (a Alert) Line() string {
	if a.Severity == SeverityCritical {
		return "CRITICAL: " + a.Message
	}
	return "ALERT: " + a.Message
}

// Counts is the scalar part of a counter set, used for serialization
type Counts struct {
	FailedLogins int64            `json:"failed_logins"`
	Errors       int64            `json:"errors"`
	Criticals    int64            `json:"criticals"`
	Addresses    map[string]int64 `json:"addresses,omitempty"`
}

// RunRecord describes one completed run
type RunRecord struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Source      string    `json:"source"`
	StartOffset int64     `json:"start_offset"`
	EndOffset   int64     `json:"end_offset"`
	Counts      Counts    `json:"counts"`
	Alerts      []Alert   `json:"alerts"`
	Mode        string    `json:"mode"` // "single-scan" or "follow"
}

// Config represents the application configuration
type Config struct {
	Input struct {
		FilePath string `yaml:"file_path"`
	} `yaml:"input"`

	Detection struct {
		FailedThreshold int `yaml:"failed_threshold"`
	} `yaml:"detection"`

	Output struct {
		AlertLogPath string `yaml:"alert_log_path"`
		AuditLogPath string `yaml:"audit_log_path"` // JSON run journal, empty disables
		Color        bool   `yaml:"color"`
	} `yaml:"output"`

	Follow struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"` // e.g. 5s
	} `yaml:"follow"`

	State struct {
		DBPath string `yaml:"db_path"` // empty keeps cumulative counters in memory only
	} `yaml:"state"`

	Notification struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"notification"`

	Dashboard struct {
		Listen string `yaml:"listen"` // e.g. ":9090", empty disables
	} `yaml:"dashboard"`
}
