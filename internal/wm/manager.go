package wm

import (
	"fmt"
	"os"

	"winmatch/pkg/global"
)

// Manager picks the window manager backend for the current session and
// exposes it as a WindowManager.
type Manager struct {
	wm WindowManager
}

// NewManager creates a window manager backend based on the session type.
func NewManager() (*Manager, error) {
	log := global.GetLogger()

	sessionType := os.Getenv("XDG_SESSION_TYPE")
	log.Info("Session type detected", "session", sessionType)

	var backend WindowManager
	var err error

	switch sessionType {
	case "wayland":
		if sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE"); sig != "" {
			log.Debug("Initializing compositor support", "type", "Hyprland")
			backend, err = NewHyprland(log)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize Hyprland support: %w", err)
			}
		} else {
			return nil, fmt.Errorf("unsupported Wayland compositor: only Hyprland is supported")
		}
	case "x11":
		log.Debug("Initializing compositor support", "type", "X11")
		backend, err = NewX11(log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize X11 support: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported session type: %s", sessionType)
	}

	log.Info("Window manager initialized", "name", backend.Name())
	return &Manager{wm: backend}, nil
}

func (m *Manager) Name() string {
	return m.wm.Name()
}

func (m *Manager) List(mode Mode) ([]Window, error) {
	return m.wm.List(mode)
}

func (m *Manager) ActiveWindow() (Window, error) {
	return m.wm.ActiveWindow()
}
