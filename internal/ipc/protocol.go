package ipc

import (
	"time"

	"winmatch/internal/models"
	"winmatch/internal/wm"
)

const socketPath = "/tmp/winmatch.sock"

type Request struct {
	Command string `json:"command"`
	Rule    string `json:"rule,omitempty"`
	All     bool   `json:"all,omitempty"` // include hidden windows
	Limit   int    `json:"limit,omitempty"`
}

type WindowInfo struct {
	ID        string `json:"id"`
	Class     string `json:"class"`
	Title     string `json:"title"`
	PID       int    `json:"pid,omitempty"`
	Workspace string `json:"workspace,omitempty"`
}

type EventInfo struct {
	Timestamp time.Time `json:"timestamp"`
	Rule      string    `json:"rule"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title,omitempty"`
	Class     string    `json:"class,omitempty"`
	PID       int       `json:"pid,omitempty"`
}

type Response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Windows []WindowInfo    `json:"windows,omitempty"`
	Active  map[string]bool `json:"active,omitempty"`
	Events  []EventInfo     `json:"events,omitempty"`
}

func windowInfos(windows []wm.Window) []WindowInfo {
	infos := make([]WindowInfo, 0, len(windows))
	for _, w := range windows {
		infos = append(infos, WindowInfo{
			ID:        w.ID,
			Class:     w.Class,
			Title:     w.Title,
			PID:       w.PID,
			Workspace: w.Workspace,
		})
	}
	return infos
}

func eventInfos(events []models.RuleEvent) []EventInfo {
	infos := make([]EventInfo, 0, len(events))
	for _, ev := range events {
		infos = append(infos, EventInfo{
			Timestamp: ev.Timestamp,
			Rule:      ev.Rule,
			Kind:      string(ev.Kind),
			Title:     ev.Title,
			Class:     ev.Class,
			PID:       ev.PID,
		})
	}
	return infos
}
