package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"winmatch/internal/app"
	"winmatch/internal/ipc"
	"winmatch/pkg/config"
	"winmatch/pkg/global"
	"winmatch/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	inspector := flag.Bool("inspector", false, "open the inspector window")
	list := flag.String("list", "", "print windows matching the named rule and exit")
	listAll := flag.Bool("all", false, "include hidden windows with -list")
	active := flag.Bool("active", false, "print per-rule focused-window state and exit")
	history := flag.Bool("history", false, "print recent rule transitions and exit")
	historyRule := flag.String("rule", "", "restrict -history to one rule")
	limit := flag.Int("limit", 0, "maximum transitions with -history")
	flag.Parse()

	// Client verbs talk to a running daemon and exit without touching
	// config or globals.
	switch {
	case *list != "":
		runClient(ipc.Request{Command: "list", Rule: *list, All: *listAll})
		return
	case *active:
		runClient(ipc.Request{Command: "active"})
		return
	case *history:
		runClient(ipc.Request{Command: "history", Rule: *historyRule, Limit: *limit})
		return
	}

	logLevel := zerolog.InfoLevel
	if *debug {
		logLevel = zerolog.DebugLevel
	}

	log, err := logger.NewLogger(
		logger.WithConsole(),
		logger.WithLevel(logLevel),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting winmatch",
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", *debug)

	cfg, err := config.FindConfig(*configPath, log)
	if err != nil {
		log.Fatal("Failed to load configuration", err)
	}
	log.Info("Configuration loaded",
		"rule_count", len(cfg.GetRules()),
		"poll_interval", cfg.GetPollInterval())

	global.InitGlobals(cfg, log)

	application, err := app.NewApp()
	if err != nil {
		log.Fatal("Failed to create application", err)
	}

	if err := application.Run(*inspector); err != nil {
		log.Fatal("Application error", err)
	}
}

func runClient(req ipc.Request) {
	resp, err := ipc.SendCommand(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot reach the winmatch daemon: %v\n", err)
		os.Exit(1)
	}
	if resp.Status != "success" {
		fmt.Fprintln(os.Stderr, resp.Message)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
