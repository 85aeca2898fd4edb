package matcher

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Criteria describes the fields a Leaf checks against a window snapshot.
// Zero values mean "no criterion", so an empty Criteria matches every
// window. Mode governs the string fields only.
type Criteria struct {
	Handle string `json:"handle,omitempty"`
	Title  string `json:"title,omitempty"`
	Class  string `json:"class,omitempty"`
	Exe    string `json:"exe,omitempty"`
	PID    int    `json:"pid,omitempty"`
	Mode   Mode   `json:"mode,omitempty"`
}

// Leaf matches a single window: every configured criterion must hold.
type Leaf struct {
	criteria Criteria

	// Compiled forms of the string criteria, set only in Regex mode.
	title *regexp.Regexp
	class *regexp.Regexp
	exe   *regexp.Regexp
}

// NewLeaf builds a leaf predicate. Regex criteria compile here, so a
// malformed pattern surfaces immediately as a *PatternError.
func NewLeaf(c Criteria) (*Leaf, error) {
	l := &Leaf{criteria: c}
	if c.Mode == Regex {
		var err error
		if l.title, err = compilePattern("title", c.Title); err != nil {
			return nil, err
		}
		if l.class, err = compilePattern("class", c.Class); err != nil {
			return nil, err
		}
		if l.exe, err = compilePattern("exe", c.Exe); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// MustLeaf is NewLeaf for criteria known to be valid, such as literals.
// It panics on a bad pattern.
func MustLeaf(c Criteria) *Leaf {
	l, err := NewLeaf(c)
	if err != nil {
		panic(err)
	}
	return l
}

func compilePattern(field, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Field: field, Pattern: pattern, Err: err}
	}
	return re, nil
}

// Criteria returns the criteria the leaf was built from.
func (l *Leaf) Criteria() Criteria { return l.criteria }

// Match reports whether every configured criterion holds for s. Handle and
// PID compare exactly regardless of Mode.
func (l *Leaf) Match(s Snapshot) bool {
	c := l.criteria
	if c.Handle != "" && c.Handle != s.Handle {
		return false
	}
	if c.PID != 0 && c.PID != s.PID {
		return false
	}
	if !matchField(c.Mode, c.Title, s.Title, l.title) {
		return false
	}
	if !matchField(c.Mode, c.Class, s.Class, l.class) {
		return false
	}
	return l.matchExe(s.ExePath)
}

func matchField(mode Mode, want, got string, re *regexp.Regexp) bool {
	if want == "" {
		return true
	}
	switch mode {
	case Full:
		return got == want
	case Regex:
		return re.MatchString(got)
	default:
		return strings.Contains(got, want)
	}
}

// matchExe also accepts the executable basename under Full mode, so a rule
// can say "firefox" without spelling the install prefix.
func (l *Leaf) matchExe(path string) bool {
	want := l.criteria.Exe
	if want == "" {
		return true
	}
	switch l.criteria.Mode {
	case Full:
		return path == want || filepath.Base(path) == want
	case Regex:
		return l.exe.MatchString(path)
	default:
		return strings.Contains(path, want)
	}
}
