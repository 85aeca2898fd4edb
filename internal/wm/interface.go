package wm

import "winmatch/pkg/matcher"

// Mode scopes window discovery.
type Mode int

const (
	// TopLevel lists windows on regular workspaces only.
	TopLevel Mode = iota
	// AllWindows also includes hidden and special-workspace windows.
	AllWindows
)

func (m Mode) String() string {
	if m == AllWindows {
		return "all"
	}
	return "top-level"
}

// Window is a live window reference plus the metadata captured when it was
// listed. ID is the backend-native identifier: a Hyprland address or an X11
// window id.
type Window struct {
	ID        string
	Class     string
	Title     string
	PID       int
	ExePath   string
	Workspace string
	Hidden    bool
}

// Snapshot converts the captured metadata into the matcher's value type.
func (w Window) Snapshot() matcher.Snapshot {
	return matcher.Snapshot{
		Handle:  w.ID,
		Title:   w.Title,
		Class:   w.Class,
		ExePath: w.ExePath,
		PID:     w.PID,
	}
}

// WindowManager is the discovery collaborator. List returns windows in
// backend order; that order is the visitation order the scanner guarantees.
type WindowManager interface {
	// Name returns the backend name for logging/display.
	Name() string
	// List returns every live window scoped by mode.
	List(mode Mode) ([]Window, error)
	// ActiveWindow returns the currently focused window, or a zero Window
	// when nothing has focus.
	ActiveWindow() (Window, error)
}
