package app

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"winmatch/internal/wm"
	"winmatch/pkg/global"
)

// runInspector opens a window showing each rule with the windows it
// currently matches, refreshed on the poll interval. Blocks until the
// window is closed.
func (a *App) runInspector() error {
	cfg, log, _ := global.GetAll()

	ui := fyneapp.New()
	win := ui.NewWindow("winmatch inspector")

	status := widget.NewLabel("Evaluating rules...")
	grid := widget.NewTextGrid()
	content := container.NewBorder(status, nil, nil, nil, container.NewScroll(grid))
	win.SetContent(content)
	win.Resize(fyne.NewSize(700, 500))

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.GetPollInterval())
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				text, summary := a.renderRules()
				grid.SetText(text)
				status.SetText(summary)
				win.Canvas().Refresh(grid)
			}
		}
	}()

	win.SetCloseIntercept(func() {
		close(stop)
		win.Close()
	})

	log.Info("Inspector window opened")
	win.ShowAndRun()
	return nil
}

func (a *App) renderRules() (string, string) {
	var b strings.Builder
	total := 0
	states := a.watcher.ActiveStates()

	for _, rule := range a.manager.Rules() {
		windows, err := a.manager.MatchingWindows(rule.Name, wm.TopLevel)
		if err != nil {
			b.WriteString(fmt.Sprintf("  %s: %v\n", rule.Name, err))
			continue
		}

		marker := " "
		if states[rule.Name] {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("%s %s (%d)\n", marker, rule.Name, len(windows)))
		for _, w := range windows {
			b.WriteString(fmt.Sprintf("    [%s] %s  %s\n", w.Class, w.Title, w.ID))
			total++
		}
	}

	summary := fmt.Sprintf("%d rules, %d matching windows (* = focused window matches)",
		len(a.manager.Rules()), total)
	return b.String(), summary
}
