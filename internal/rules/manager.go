package rules

import (
	"fmt"
	"time"

	"winmatch/internal/models"
	"winmatch/internal/scan"
	"winmatch/internal/storage"
	"winmatch/internal/wm"
	"winmatch/pkg/config"
	"winmatch/pkg/global"
	"winmatch/pkg/logger"
)

// Manager owns the compiled rules and answers queries about them: which
// windows a rule matches right now, which rules the focused window
// satisfies, and what transitions happened recently.
type Manager struct {
	scanner *scan.Scanner
	db      *storage.DB
	rules   []config.Rule
	cfg     *config.Config
	log     *logger.Logger
}

func NewManager(scanner *scan.Scanner, db *storage.DB) *Manager {
	cfg, log, _ := global.GetAll()

	// Trim stored events past the retention window in the background.
	retention := time.Duration(cfg.GetHistoryDays()) * 24 * time.Hour
	go func() {
		if err := db.Cleanup(retention); err != nil {
			log.Error("Failed to cleanup old rule events", err)
		}
	}()

	return &Manager{
		scanner: scanner,
		db:      db,
		rules:   cfg.GetRules(),
		cfg:     cfg,
		log:     log,
	}
}

// Rules returns the rules in config order.
func (m *Manager) Rules() []config.Rule {
	return m.rules
}

// MatchingWindows returns the windows currently matched by the named rule.
func (m *Manager) MatchingWindows(name string, mode wm.Mode) ([]wm.Window, error) {
	rule, ok := m.cfg.GetRule(name)
	if !ok {
		return nil, fmt.Errorf("unknown rule %q", name)
	}
	return m.scanner.Matches(rule.Group, mode)
}

// ActiveStates evaluates every rule against the focused window.
func (m *Manager) ActiveStates() (map[string]bool, error) {
	states := make(map[string]bool, len(m.rules))
	for _, rule := range m.rules {
		active, err := m.scanner.IsActive(rule.Group)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
		}
		states[rule.Name] = active
	}
	return states, nil
}

// RecordTransition stores a found/lost transition for a rule. The window is
// meaningful only for found transitions.
func (m *Manager) RecordTransition(rule string, active bool, w wm.Window) {
	kind := models.EventLost
	if active {
		kind = models.EventFound
	}
	ev := models.RuleEvent{
		Timestamp: time.Now(),
		Rule:      rule,
		Kind:      kind,
		Title:     w.Title,
		Class:     w.Class,
		PID:       w.PID,
	}
	if err := m.db.AddEvent(ev); err != nil {
		m.log.Error("Failed to record rule transition", err, "rule", rule)
	}
}

// History returns recent stored transitions, newest first. An empty rule
// name means all rules.
func (m *Manager) History(rule string, limit int) ([]models.RuleEvent, error) {
	return m.db.RecentEvents(rule, limit)
}
