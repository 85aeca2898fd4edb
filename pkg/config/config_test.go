package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"winmatch/pkg/logger"
	"winmatch/pkg/matcher"

	"github.com/rs/zerolog"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(
		logger.WithLevel(zerolog.Disabled),
		logger.WithFile(filepath.Join(t.TempDir(), "test.log")),
	)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `{
		"poll_interval_seconds": 5,
		"notify_command": "my-notifier",
		"history_days": 7,
		"rules": [
			{
				"name": "editors",
				"match": "any",
				"windows": [
					{"class": "code", "mode": "partial"},
					{"title": "vim", "mode": "partial"}
				],
				"exclude": [
					{"title": "Settings", "mode": "full"}
				]
			}
		]
	}`)

	log := testLogger(t)
	cfg, err := loadConfigFromPath(path, log)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.GetPollInterval() != 5*time.Second {
		t.Errorf("poll interval = %v, want 5s", cfg.GetPollInterval())
	}
	if cfg.GetNotifyCommand() != "my-notifier" {
		t.Errorf("notify command = %q", cfg.GetNotifyCommand())
	}
	if cfg.GetHistoryDays() != 7 {
		t.Errorf("history days = %d, want 7", cfg.GetHistoryDays())
	}

	rule, ok := cfg.GetRule("editors")
	if !ok {
		t.Fatal("rule editors not compiled")
	}
	if !rule.Group.Match(matcher.Snapshot{Class: "code-oss", Title: "main.go"}) {
		t.Error("expected class criterion to match")
	}
	if rule.Group.Match(matcher.Snapshot{Class: "code", Title: "Settings"}) {
		t.Error("expected exclude entry to veto the match")
	}
}

func TestLoadDefaultsApplied(t *testing.T) {
	path := writeConfig(t, `{"rules": []}`)
	cfg, err := loadConfigFromPath(path, testLogger(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GetPollInterval() != 2*time.Second {
		t.Errorf("poll interval = %v, want the 2s default", cfg.GetPollInterval())
	}
	if cfg.GetHistoryDays() != 14 {
		t.Errorf("history days = %d, want the 14 day default", cfg.GetHistoryDays())
	}
}

func TestLoadAllCombinator(t *testing.T) {
	path := writeConfig(t, `{
		"rules": [{
			"name": "work-browser",
			"match": "all",
			"windows": [
				{"class": "firefox", "mode": "partial"},
				{"title": "jira", "mode": "partial"}
			]
		}]
	}`)
	cfg, err := loadConfigFromPath(path, testLogger(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rule, _ := cfg.GetRule("work-browser")
	if rule.Group.Op != matcher.All {
		t.Fatalf("op = %v, want All", rule.Group.Op)
	}
	if rule.Group.Match(matcher.Snapshot{Class: "firefox", Title: "cat videos"}) {
		t.Error("AND-rule matched with only one criterion satisfied")
	}
	if !rule.Group.Match(matcher.Snapshot{Class: "firefox", Title: "jira board"}) {
		t.Error("AND-rule missed a snapshot satisfying both children")
	}
}

func TestLoadBadRegexSurfacesPatternError(t *testing.T) {
	path := writeConfig(t, `{
		"rules": [{
			"name": "broken",
			"windows": [{"title": "([unclosed", "mode": "regex"}]
		}]
	}`)
	_, err := loadConfigFromPath(path, testLogger(t))
	if err == nil {
		t.Fatal("expected load to fail on a malformed pattern")
	}
	var perr *matcher.PatternError
	if !errors.As(err, &perr) {
		t.Errorf("err = %v, want a wrapped *PatternError", err)
	}
}

func TestLoadRejectsBadRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unnamed rule", `{"rules": [{"windows": [{"class": "x"}]}]}`},
		{"duplicate names", `{"rules": [
			{"name": "a", "windows": [{"class": "x"}]},
			{"name": "a", "windows": [{"class": "y"}]}
		]}`},
		{"unknown combinator", `{"rules": [{"name": "a", "match": "xor", "windows": []}]}`},
		{"unknown mode", `{"rules": [{"name": "a", "windows": [{"class": "x", "mode": "glob"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := loadConfigFromPath(path, testLogger(t)); err == nil {
				t.Error("expected load to fail")
			}
		})
	}
}

func TestDefaultConfigCompiles(t *testing.T) {
	cfg, err := DefaultConfig(testLogger(t))
	if err != nil {
		t.Fatalf("DefaultConfig: %v", err)
	}
	if len(cfg.GetRules()) == 0 {
		t.Fatal("default config has no rules")
	}
	if _, ok := cfg.GetRule("browsers"); !ok {
		t.Error("default config misses the browsers rule")
	}

	// The generated file must load back.
	data, err := cfg.marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := writeConfig(t, string(data))
	if _, err := loadConfigFromPath(path, testLogger(t)); err != nil {
		t.Errorf("generated default config does not load: %v", err)
	}
}
