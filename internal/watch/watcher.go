package watch

import (
	"fmt"
	"sync"
	"time"

	"winmatch/internal/rules"
	"winmatch/internal/wm"
	"winmatch/pkg/global"
	"winmatch/pkg/notify"
)

// Watcher polls the focused window and tracks, per rule, whether the rule
// is currently active, notifying and recording each transition.
type Watcher struct {
	manager  *rules.Manager
	wm       wm.WindowManager
	interval time.Duration
	mu       sync.RWMutex
	active   map[string]bool
	stopChan chan struct{}
	stopped  bool
}

// NewWatcher creates a rule watcher polling at the given interval.
func NewWatcher(manager *rules.Manager, windowManager wm.WindowManager, interval time.Duration) *Watcher {
	return &Watcher{
		manager:  manager,
		wm:       windowManager,
		interval: interval,
		active:   make(map[string]bool),
		stopChan: make(chan struct{}),
	}
}

// Check runs one evaluation pass over every rule.
func (w *Watcher) Check() error {
	log := global.GetLogger()
	notifier := global.GetNotifier()

	focused, err := w.wm.ActiveWindow()
	if err != nil {
		log.Error("Error reading focused window", err)
		return err
	}
	snap := focused.Snapshot()

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, rule := range w.manager.Rules() {
		active := focused != (wm.Window{}) && rule.Group.Match(snap)
		if active == w.active[rule.Name] {
			continue
		}
		w.active[rule.Name] = active

		if active {
			log.Info("Rule became active",
				"rule", rule.Name,
				"class", focused.Class,
				"title", focused.Title)
			notifier.Show(fmt.Sprintf("Rule %q active: %s", rule.Name, focused.Title), notify.Info)
			w.manager.RecordTransition(rule.Name, true, focused)
		} else {
			log.Info("Rule became inactive", "rule", rule.Name)
			notifier.Show(fmt.Sprintf("Rule %q inactive", rule.Name), notify.Info)
			w.manager.RecordTransition(rule.Name, false, wm.Window{})
		}
	}
	return nil
}

// ActiveStates returns a copy of the last observed per-rule states.
func (w *Watcher) ActiveStates() map[string]bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	states := make(map[string]bool, len(w.active))
	for name, active := range w.active {
		states[name] = active
	}
	return states
}

// Start begins the polling loop.
func (w *Watcher) Start() error {
	log := global.GetLogger()

	w.mu.Lock()
	if w.stopped {
		w.stopChan = make(chan struct{})
		w.stopped = false
	}
	w.mu.Unlock()

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.stopChan:
				log.Info("Rule watcher stopped")
				return
			case <-ticker.C:
				if err := w.Check(); err != nil {
					log.Error("Rule evaluation error", err)
				}
			}
		}
	}()

	log.Info("Rule watcher started", "interval", w.interval)
	return nil
}

// Stop stops the polling loop.
func (w *Watcher) Stop() error {
	log := global.GetLogger()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		log.Debug("Rule watcher already stopped")
		return nil
	}

	log.Info("Stopping rule watcher")
	close(w.stopChan)
	w.stopped = true

	return nil
}
