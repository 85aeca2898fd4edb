package config

import (
	"encoding/json"
	"os"
	"time"

	"winmatch/pkg/logger"
)

// fileSchema is the JSON shape of the config file.
type fileSchema struct {
	PollIntervalSeconds int        `json:"poll_interval_seconds"`
	NotifyCommand       string     `json:"notify_command"`
	HistoryDays         int        `json:"history_days"`
	Rules               []RuleSpec `json:"rules"`
}

// LoadFromFile loads the configuration from a JSON file.
func (c *Config) LoadFromFile(path string, log *logger.Logger) error {
	log.Debug("Loading configuration from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read config file", err, "path", path)
		return err
	}
	log.Debug("Config file read successfully", "size_bytes", len(data))

	var temp fileSchema
	if err := json.Unmarshal(data, &temp); err != nil {
		log.Error("Failed to parse config JSON", err)
		return err
	}
	log.Debug("Config JSON parsed successfully")

	// Assign to private fields
	c.pollInterval = time.Duration(temp.PollIntervalSeconds) * time.Second
	c.notifyCommand = temp.NotifyCommand
	c.historyDays = temp.HistoryDays
	c.ruleSpecs = temp.Rules

	return c.compile()
}

// loadConfigFromPath loads the configuration from a file.
func loadConfigFromPath(path string, log *logger.Logger) (*Config, error) {
	config := &Config{log: log}
	if err := config.LoadFromFile(path, log); err != nil {
		return nil, err
	}
	return config, nil
}

// marshal renders the configurable fields back into the file schema, used
// when writing the generated default config.
func (c *Config) marshal() ([]byte, error) {
	return json.MarshalIndent(fileSchema{
		PollIntervalSeconds: int(c.pollInterval / time.Second),
		NotifyCommand:       c.notifyCommand,
		HistoryDays:         c.historyDays,
		Rules:               c.ruleSpecs,
	}, "", "    ")
}
