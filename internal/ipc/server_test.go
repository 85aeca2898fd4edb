package ipc

import (
	"encoding/json"
	"net"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"winmatch/internal/rules"
	"winmatch/internal/scan"
	"winmatch/internal/storage"
	"winmatch/internal/wm"
	"winmatch/pkg/config"
	"winmatch/pkg/global"
	"winmatch/pkg/logger"
)

type stubWM struct {
	windows []wm.Window
	active  wm.Window
}

func (s *stubWM) Name() string { return "stub" }

func (s *stubWM) List(wm.Mode) ([]wm.Window, error) { return s.windows, nil }

func (s *stubWM) ActiveWindow() (wm.Window, error) { return s.active, nil }

// testManager builds a manager over the generated default rules (browsers,
// terminals) and a stub backend showing one kitty window that also has focus.
func testManager(t *testing.T) *rules.Manager {
	t.Helper()

	log, err := logger.NewLogger(
		logger.WithLevel(zerolog.Disabled),
		logger.WithFile(filepath.Join(t.TempDir(), "test.log")),
	)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	t.Cleanup(func() { log.Close() })

	cfg, err := config.DefaultConfig(log)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	global.InitGlobals(cfg, log)

	db, err := storage.Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	term := wm.Window{ID: "w1", Class: "kitty", Title: "sh"}
	backend := &stubWM{windows: []wm.Window{term}, active: term}
	return rules.NewManager(scan.NewScanner(backend, log), db)
}

// roundTrip runs one request through handleConnection over an in-memory pipe.
func roundTrip(t *testing.T, manager *rules.Manager, req Request) Response {
	t.Helper()

	client, server := net.Pipe()
	go handleConnection(server, manager)

	if err := json.NewEncoder(client).Encode(req); err != nil {
		t.Fatalf("encode request: %v", err)
	}
	var resp Response
	if err := json.NewDecoder(client).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	client.Close()
	return resp
}

func TestHandleConnectionList(t *testing.T) {
	manager := testManager(t)

	resp := roundTrip(t, manager, Request{Command: "list", Rule: "terminals"})
	if resp.Status != "success" {
		t.Fatalf("status = %q: %s", resp.Status, resp.Message)
	}
	if len(resp.Windows) != 1 || resp.Windows[0].Class != "kitty" {
		t.Errorf("windows = %+v, want the kitty window", resp.Windows)
	}

	resp = roundTrip(t, manager, Request{Command: "list", Rule: "browsers"})
	if resp.Status != "success" || len(resp.Windows) != 0 {
		t.Errorf("browsers response = %+v, want an empty success", resp)
	}
}

func TestHandleConnectionListUnknownRule(t *testing.T) {
	manager := testManager(t)

	resp := roundTrip(t, manager, Request{Command: "list", Rule: "no-such-rule"})
	if resp.Status != "error" {
		t.Errorf("status = %q, want error for an unknown rule", resp.Status)
	}
}

func TestHandleConnectionActive(t *testing.T) {
	manager := testManager(t)

	resp := roundTrip(t, manager, Request{Command: "active"})
	if resp.Status != "success" {
		t.Fatalf("status = %q: %s", resp.Status, resp.Message)
	}
	if !resp.Active["terminals"] {
		t.Error("terminals should be active: the focused window is a kitty")
	}
	if resp.Active["browsers"] {
		t.Error("browsers should not be active")
	}
}

func TestHandleConnectionHistory(t *testing.T) {
	manager := testManager(t)
	manager.RecordTransition("terminals", true, wm.Window{Title: "sh", Class: "kitty", PID: 7})

	resp := roundTrip(t, manager, Request{Command: "history", Rule: "terminals"})
	if resp.Status != "success" {
		t.Fatalf("status = %q: %s", resp.Status, resp.Message)
	}
	if len(resp.Events) != 1 || resp.Events[0].Kind != "found" {
		t.Errorf("events = %+v, want one found transition", resp.Events)
	}
}

func TestHandleConnectionUnknownCommand(t *testing.T) {
	manager := testManager(t)

	resp := roundTrip(t, manager, Request{Command: "reticulate"})
	if resp.Status != "error" {
		t.Errorf("status = %q, want error for an unknown command", resp.Status)
	}
}
