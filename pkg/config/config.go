package config

import (
	"fmt"
	"time"

	"winmatch/pkg/logger"
	"winmatch/pkg/matcher"
)

// RuleSpec is the JSON shape of one named window rule. Windows entries form
// the whitelist, Exclude entries the blacklist.
type RuleSpec struct {
	Name    string             `json:"name"`
	Match   string             `json:"match"` // "any" (default) or "all"
	Reverse bool               `json:"reverse,omitempty"`
	Windows []matcher.Criteria `json:"windows"`
	Exclude []matcher.Criteria `json:"exclude,omitempty"`
}

// Rule is a compiled rule ready for matching.
type Rule struct {
	Name  string
	Group *matcher.Group
}

// Config holds the application configuration.
type Config struct {
	// Configurable via JSON file (private fields to enforce immutability)
	pollInterval  time.Duration
	notifyCommand string
	historyDays   int
	ruleSpecs     []RuleSpec

	// Internal fields
	rules []Rule
	log   *logger.Logger
}

// New creates a new Config instance with the provided logger.
func New(log *logger.Logger) *Config {
	return &Config{log: log}
}

// GetPollInterval returns how often watched rules are re-evaluated.
func (c *Config) GetPollInterval() time.Duration {
	return c.pollInterval
}

// GetNotifyCommand returns the user-configured notification command.
func (c *Config) GetNotifyCommand() string {
	return c.notifyCommand
}

// GetHistoryDays returns how long stored rule events are kept.
func (c *Config) GetHistoryDays() int {
	return c.historyDays
}

// GetRules returns the compiled rules in config order.
func (c *Config) GetRules() []Rule {
	return c.rules
}

// GetRule looks up a compiled rule by name.
func (c *Config) GetRule(name string) (Rule, bool) {
	for _, r := range c.rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// compile builds a predicate tree per rule spec. A bad regex criterion
// fails the whole load with the matcher's *PatternError.
func (c *Config) compile() error {
	if c.pollInterval <= 0 {
		c.pollInterval = 2 * time.Second
	}
	if c.historyDays <= 0 {
		c.historyDays = 14
	}

	seen := make(map[string]bool, len(c.ruleSpecs))
	rules := make([]Rule, 0, len(c.ruleSpecs))
	for _, spec := range c.ruleSpecs {
		if spec.Name == "" {
			return fmt.Errorf("rule without a name")
		}
		if seen[spec.Name] {
			return fmt.Errorf("duplicate rule name %q", spec.Name)
		}
		seen[spec.Name] = true

		group, err := compileRule(spec)
		if err != nil {
			return fmt.Errorf("rule %q: %w", spec.Name, err)
		}
		rules = append(rules, Rule{Name: spec.Name, Group: group})
	}
	c.rules = rules

	if c.log != nil {
		c.log.Debug("Compiled rules", "count", len(rules))
	}
	return nil
}

func compileRule(spec RuleSpec) (*matcher.Group, error) {
	group := matcher.AnyOf()
	switch spec.Match {
	case "", "any":
	case "all":
		group.Op = matcher.All
	default:
		return nil, fmt.Errorf("unknown match combinator %q", spec.Match)
	}
	group.Reverse = spec.Reverse

	for _, criteria := range spec.Windows {
		leaf, err := matcher.NewLeaf(criteria)
		if err != nil {
			return nil, err
		}
		group.Add(leaf)
	}
	for _, criteria := range spec.Exclude {
		leaf, err := matcher.NewLeaf(criteria)
		if err != nil {
			return nil, err
		}
		group.AddBlacklist(leaf)
	}
	return group, nil
}
