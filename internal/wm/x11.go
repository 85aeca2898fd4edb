package wm

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"winmatch/pkg/logger"
)

type X11 struct {
	log *logger.Logger
}

func NewX11(log *logger.Logger) (*X11, error) {
	// Check if xdotool is available
	if _, err := exec.LookPath("xdotool"); err != nil {
		return nil, fmt.Errorf("xdotool is required for X11 support but was not found: %w", err)
	}
	return &X11{log: log}, nil
}

func (x *X11) Name() string {
	return "X11"
}

func (x *X11) List(mode Mode) ([]Window, error) {
	args := []string{"search"}
	if mode == TopLevel {
		args = append(args, "--onlyvisible")
	}
	// An empty pattern matches every window name.
	args = append(args, "--name", "")

	out, err := exec.Command("xdotool", args...).Output()
	if err != nil {
		// xdotool exits non-zero when the search matches nothing.
		if len(out) == 0 {
			return nil, nil
		}
		x.log.Error("xdotool search failed", err)
		return nil, fmt.Errorf("xdotool search failed: %w", err)
	}

	var windows []Window
	for _, id := range strings.Fields(string(out)) {
		windows = append(windows, x.describe(id))
	}
	return windows, nil
}

func (x *X11) ActiveWindow() (Window, error) {
	out, err := exec.Command("xdotool", "getactivewindow").Output()
	if err != nil {
		return Window{}, fmt.Errorf("failed to get active window: %w", err)
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		return Window{}, nil
	}
	return x.describe(id), nil
}

// describe fills in per-window metadata with one xdotool call per field.
// A field whose query fails stays empty; windows can vanish mid-listing.
func (x *X11) describe(id string) Window {
	w := Window{ID: id}
	if out, err := exec.Command("xdotool", "getwindowname", id).Output(); err == nil {
		w.Title = strings.TrimSpace(string(out))
	}
	if out, err := exec.Command("xdotool", "getwindowclassname", id).Output(); err == nil {
		w.Class = strings.TrimSpace(string(out))
	}
	if out, err := exec.Command("xdotool", "getwindowpid", id).Output(); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(out))); err == nil {
			w.PID = pid
			w.ExePath = exePath(pid)
		}
	}
	return w
}
