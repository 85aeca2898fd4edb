// Package scan drives window discovery for a predicate and visits the
// matches strictly sequentially, in the order the backend returned them.
package scan

import (
	"context"

	"winmatch/internal/wm"
	"winmatch/pkg/logger"
	"winmatch/pkg/matcher"
)

type Scanner struct {
	wm  wm.WindowManager
	log *logger.Logger
}

func NewScanner(manager wm.WindowManager, log *logger.Logger) *Scanner {
	return &Scanner{wm: manager, log: log}
}

// discover lists windows for mode and keeps those matching p, preserving
// backend order.
func (s *Scanner) discover(p matcher.Predicate, mode wm.Mode) ([]wm.Window, error) {
	windows, err := s.wm.List(mode)
	if err != nil {
		s.log.Error("Window discovery failed", err, "mode", mode.String())
		return nil, err
	}
	var matched []wm.Window
	for _, w := range windows {
		if p.Match(w.Snapshot()) {
			matched = append(matched, w)
		}
	}
	s.log.Debug("Discovery finished",
		"mode", mode.String(),
		"listed", len(windows),
		"matched", len(matched))
	return matched, nil
}

// Matches returns the windows currently matching p, in backend order.
func (s *Scanner) Matches(p matcher.Predicate, mode wm.Mode) ([]wm.Window, error) {
	return s.discover(p, mode)
}

// Each visits every matching window. The callback cannot stop the walk.
func (s *Scanner) Each(p matcher.Predicate, mode wm.Mode, fn func(wm.Window)) error {
	matched, err := s.discover(p, mode)
	if err != nil {
		return err
	}
	for _, w := range matched {
		fn(w)
	}
	return nil
}

// EachWhile visits matching windows until the callback returns false.
// It reports true iff every matching window was visited.
func (s *Scanner) EachWhile(p matcher.Predicate, mode wm.Mode, fn func(wm.Window) bool) (bool, error) {
	matched, err := s.discover(p, mode)
	if err != nil {
		return false, err
	}
	for _, w := range matched {
		if !fn(w) {
			return false, nil
		}
	}
	return true, nil
}

// EachContext is EachWhile for callbacks that block: exactly one callback is
// in flight at a time and it is awaited before the next window is visited,
// so a callback that closes or moves its window cannot race the walk. A
// callback error aborts the enumeration and propagates; cancelling ctx stops
// it between visits. Windows already visited keep their observed results.
func (s *Scanner) EachContext(ctx context.Context, p matcher.Predicate, mode wm.Mode, fn func(context.Context, wm.Window) (bool, error)) (bool, error) {
	matched, err := s.discover(p, mode)
	if err != nil {
		return false, err
	}
	for _, w := range matched {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		ok, err := fn(ctx, w)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// IsActive reports whether the currently focused window matches p.
func (s *Scanner) IsActive(p matcher.Predicate) (bool, error) {
	active, err := s.wm.ActiveWindow()
	if err != nil {
		return false, err
	}
	if active == (wm.Window{}) {
		return false, nil
	}
	return p.Match(active.Snapshot()), nil
}
