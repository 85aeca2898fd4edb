package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"

	"winmatch/internal/rules"
	"winmatch/internal/wm"
	"winmatch/pkg/global"
)

// StartSocketServer serves rule queries for the CLI over a unix socket.
// It blocks; run it in its own goroutine.
func StartSocketServer(manager *rules.Manager) {
	log := global.GetLogger()

	// Remove the socket file if it already exists
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		log.Error("Failed to remove existing socket file", err)
		return
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		log.Fatal("Failed to start socket server", err)
	}
	defer listener.Close()

	log.Info("Socket server started", "path", socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Error("Failed to accept connection", err)
			continue
		}

		log.Debug("New connection accepted")
		go handleConnection(conn, manager)
	}
}

func handleConnection(conn net.Conn, manager *rules.Manager) {
	log := global.GetLogger()
	defer conn.Close()

	var req Request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		log.Error("Failed to decode request", err)
		return
	}

	log.Info("Received request", "command", req.Command, "rule", req.Rule)

	var resp Response
	switch req.Command {
	case "list":
		mode := wm.TopLevel
		if req.All {
			mode = wm.AllWindows
		}
		windows, err := manager.MatchingWindows(req.Rule, mode)
		if err != nil {
			log.Error("List command failed", err, "rule", req.Rule)
			resp = Response{Status: "error", Message: err.Error()}
		} else {
			resp = Response{
				Status:  "success",
				Message: fmt.Sprintf("%d windows match rule %q", len(windows), req.Rule),
				Windows: windowInfos(windows),
			}
		}
	case "active":
		states, err := manager.ActiveStates()
		if err != nil {
			log.Error("Active command failed", err)
			resp = Response{Status: "error", Message: err.Error()}
		} else {
			resp = Response{
				Status:  "success",
				Message: "per-rule active state for the focused window",
				Active:  states,
			}
		}
	case "history":
		events, err := manager.History(req.Rule, req.Limit)
		if err != nil {
			log.Error("History command failed", err, "rule", req.Rule)
			resp = Response{Status: "error", Message: err.Error()}
		} else {
			resp = Response{
				Status:  "success",
				Message: fmt.Sprintf("%d stored transitions", len(events)),
				Events:  eventInfos(events),
			}
		}
	default:
		log.Error("Unknown command received", fmt.Errorf("command: %s", req.Command))
		resp = Response{Status: "error", Message: "Unknown command"}
	}

	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		log.Error("Failed to encode response", err)
	} else {
		log.Debug("Response sent successfully", "status", resp.Status)
	}
}
