package wm

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"winmatch/pkg/logger"
)

type Hyprland struct {
	log *logger.Logger
}

func NewHyprland(log *logger.Logger) (*Hyprland, error) {
	// Check if hyprctl is available
	path, err := exec.LookPath("hyprctl")
	if err != nil {
		log.Error("hyprctl not found in PATH", err)
		return nil, fmt.Errorf("hyprctl not found in PATH: %w", err)
	}
	log.Debug("Found hyprctl", "path", path)

	return &Hyprland{log: log}, nil
}

func (h *Hyprland) Name() string {
	return "Hyprland"
}

type hyprClient struct {
	Address   string `json:"address"`
	Class     string `json:"class"`
	Title     string `json:"title"`
	PID       int    `json:"pid"`
	Hidden    bool   `json:"hidden"`
	Mapped    bool   `json:"mapped"`
	Workspace struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"workspace"`
}

func (c hyprClient) window() Window {
	hidden := c.Hidden || !c.Mapped || strings.HasPrefix(c.Workspace.Name, "special:")
	return Window{
		ID:        c.Address,
		Class:     c.Class,
		Title:     c.Title,
		PID:       c.PID,
		ExePath:   exePath(c.PID),
		Workspace: c.Workspace.Name,
		Hidden:    hidden,
	}
}

func (h *Hyprland) List(mode Mode) ([]Window, error) {
	cmd := exec.Command("hyprctl", "clients", "-j")
	output, err := cmd.CombinedOutput()
	if err != nil {
		h.log.Error("Failed to execute hyprctl", err, "output", string(output))
		return nil, fmt.Errorf("hyprctl error: %w", err)
	}
	if len(output) == 0 {
		return nil, nil
	}

	var clients []hyprClient
	if err := json.Unmarshal(output, &clients); err != nil {
		h.log.Error("Failed to parse hyprctl output", err, "output", string(output))
		return nil, fmt.Errorf("failed to parse hyprctl output: %w", err)
	}

	var windows []Window
	for _, c := range clients {
		w := c.window()
		if mode == TopLevel && w.Hidden {
			continue
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func (h *Hyprland) ActiveWindow() (Window, error) {
	cmd := exec.Command("hyprctl", "activewindow", "-j")
	output, err := cmd.CombinedOutput()
	if err != nil {
		h.log.Error("Failed to execute hyprctl", err, "output", string(output))
		return Window{}, fmt.Errorf("hyprctl error: %w", err)
	}

	var c hyprClient
	if err := json.Unmarshal(output, &c); err != nil {
		// hyprctl prints a plain message instead of JSON when nothing
		// has focus.
		h.log.Debug("No active window", "output", strings.TrimSpace(string(output)))
		return Window{}, nil
	}
	if c.Address == "" {
		return Window{}, nil
	}
	return c.window(), nil
}

// exePath resolves a process's executable through /proc. Best effort: an
// unreadable link leaves the field empty.
func exePath(pid int) string {
	if pid <= 0 {
		return ""
	}
	path, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid))
	if err != nil {
		return ""
	}
	return path
}
