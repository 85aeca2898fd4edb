package config

import (
	"time"

	"winmatch/pkg/logger"
	"winmatch/pkg/matcher"
)

// DefaultConfig creates a default configuration with a couple of example
// rules, so a generated config file is something to edit rather than a
// blank page.
func DefaultConfig(log *logger.Logger) (*Config, error) {
	log.Debug("Creating default configuration")

	config := &Config{
		pollInterval:  2 * time.Second,
		notifyCommand: "",
		historyDays:   14,
		ruleSpecs: []RuleSpec{
			{
				Name:  "browsers",
				Match: "any",
				Windows: []matcher.Criteria{
					{Class: "firefox", Mode: matcher.Partial},
					{Class: "chromium", Mode: matcher.Partial},
					{Class: "Google-chrome", Mode: matcher.Partial},
				},
				Exclude: []matcher.Criteria{
					{Title: "Picture-in-Picture", Mode: matcher.Full},
				},
			},
			{
				Name:  "terminals",
				Match: "any",
				Windows: []matcher.Criteria{
					{Class: "kitty", Mode: matcher.Full},
					{Class: "Alacritty", Mode: matcher.Full},
					{Class: "foot", Mode: matcher.Full},
				},
			},
		},
		log: log,
	}

	if err := config.compile(); err != nil {
		log.Error("Failed to compile default config rules", err)
		return nil, err
	}

	log.Info("Created default configuration",
		"rule_count", len(config.rules),
		"poll_interval", config.pollInterval)
	return config, nil
}
