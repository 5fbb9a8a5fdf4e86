package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Input.FilePath != "system.log" {
		t.Errorf("Expected file 'system.log', got '%s'", cfg.Input.FilePath)
	}
	if cfg.Detection.FailedThreshold != 3 {
		t.Errorf("Expected threshold 3, got %d", cfg.Detection.FailedThreshold)
	}
	if !cfg.Output.Color {
		t.Error("Expected color to be enabled by default")
	}
	if cfg.Output.AlertLogPath != "alerts.log" {
		t.Errorf("Expected alert log 'alerts.log', got '%s'", cfg.Output.AlertLogPath)
	}
}

func TestLoadConfig_FileKeepsUnsetDefaults(t *testing.T) {
	path := writeFile(t, "config.yml", `
input:
  file_path: /var/log/auth.log
detection:
  failed_threshold: 0
follow:
  interval: 2s
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Input.FilePath != "/var/log/auth.log" {
		t.Errorf("Expected file '/var/log/auth.log', got '%s'", cfg.Input.FilePath)
	}
	if cfg.Detection.FailedThreshold != 0 {
		t.Errorf("Expected explicit threshold 0 to be kept, got %d", cfg.Detection.FailedThreshold)
	}
	if cfg.Follow.Interval != 2*time.Second {
		t.Errorf("Expected interval 2s, got %s", cfg.Follow.Interval)
	}
	if !cfg.Output.Color {
		t.Error("Expected color default to survive partial file")
	}
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	path := writeFile(t, "config.yml", "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error for empty file, got %v", err)
	}
	if cfg.Detection.FailedThreshold != 3 {
		t.Errorf("Expected threshold 3, got %d", cfg.Detection.FailedThreshold)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad threshold": "detection:\n  failed_threshold: lots\n",
		"unknown key":   "detection:\n  treshold: 4\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "config.yml", content)
			if _, err := LoadConfig(path); !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestApply_OverridesWin(t *testing.T) {
	file := "custom.log"
	threshold := 7
	interval := time.Second
	cfg := Apply(Default(), Overrides{
		FilePath:        &file,
		FailedThreshold: &threshold,
		NoColor:         true,
		Follow:          true,
		Interval:        &interval,
	})

	if cfg.Input.FilePath != file {
		t.Errorf("Expected file '%s', got '%s'", file, cfg.Input.FilePath)
	}
	if cfg.Detection.FailedThreshold != threshold {
		t.Errorf("Expected threshold %d, got %d", threshold, cfg.Detection.FailedThreshold)
	}
	if cfg.Output.Color {
		t.Error("Expected color disabled")
	}
	if !cfg.Follow.Enabled || cfg.Follow.Interval != interval {
		t.Errorf("Expected follow every %s, got enabled=%v interval=%s", interval, cfg.Follow.Enabled, cfg.Follow.Interval)
	}
}

func TestApply_NoOverridesKeepsConfig(t *testing.T) {
	base := Default()
	base.Detection.FailedThreshold = 10
	cfg := Apply(base, Overrides{})
	if cfg.Detection.FailedThreshold != 10 || !cfg.Output.Color {
		t.Errorf("Expected config unchanged, got %+v", cfg)
	}
}
