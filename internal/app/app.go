package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"winmatch/internal/ipc"
	"winmatch/internal/rules"
	"winmatch/internal/scan"
	"winmatch/internal/storage"
	"winmatch/internal/watch"
	"winmatch/internal/wm"
	"winmatch/pkg/global"
)

// App wires the daemon together: window backend, scanner, rule manager,
// watcher and the IPC server.
type App struct {
	manager *rules.Manager
	watcher *watch.Watcher
	db      *storage.DB
}

func NewApp() (*App, error) {
	cfg, log, _ := global.GetAll()

	windowManager, err := wm.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize window manager: %w", err)
	}
	log.Info("Window manager ready", "backend", windowManager.Name())

	db, err := storage.New()
	if err != nil {
		return nil, fmt.Errorf("failed to open event storage: %w", err)
	}

	scanner := scan.NewScanner(windowManager, log)
	manager := rules.NewManager(scanner, db)
	watcher := watch.NewWatcher(manager, windowManager, cfg.GetPollInterval())

	return &App{
		manager: manager,
		watcher: watcher,
		db:      db,
	}, nil
}

// Run starts the watcher and the IPC server, then blocks until SIGINT or
// SIGTERM. With inspector set it blocks inside the UI event loop instead
// and returns when the inspector window closes.
func (a *App) Run(inspector bool) error {
	log := global.GetLogger()

	if err := a.watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer a.watcher.Stop()
	defer a.db.Close()

	go ipc.StartSocketServer(a.manager)

	if inspector {
		return a.runInspector()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal, shutting down", "signal", sig.String())
	return nil
}
