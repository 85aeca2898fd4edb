// Package matcher implements the window predicate engine: leaf criteria over
// window metadata, combined through any-of/all-of groups with
// whitelist/blacklist logic and optional inversion.
package matcher

// Snapshot is an immutable capture of a window's matchable metadata.
// Handle is the backend-native window identifier (a Hyprland address or an
// X11 window id); it is empty when the backend could not provide one.
type Snapshot struct {
	Handle  string
	Title   string
	Class   string
	ExePath string
	PID     int
}

// Predicate decides whether a window snapshot is of interest. Match must be
// a pure function of the snapshot and the tree's current structure: no I/O,
// no mutation. Concurrent Match calls against an unmutated tree are safe;
// mutating a tree (Add, Remove, toggling Reverse) concurrently with anything
// else is the caller's job to lock around.
type Predicate interface {
	Match(Snapshot) bool
}
