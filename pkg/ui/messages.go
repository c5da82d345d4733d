package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SandeshR98/scaleview/internal/datasource"
	"github.com/SandeshR98/scaleview/pkg/catalog"
	"github.com/SandeshR98/scaleview/pkg/compute"
	"github.com/SandeshR98/scaleview/pkg/model"
	"github.com/SandeshR98/scaleview/pkg/watcher"
)

// FileChangedMsg is sent when the catalog database changes on disk.
type FileChangedMsg struct{}

// debounceTickMsg fires after the search debounce delay. Token identifies
// the keystroke burst it was armed for; a stale token is dropped.
type debounceTickMsg struct {
	token int
}

// statusClearMsg clears a transient status notice.
type statusClearMsg struct {
	token int
}

// catalogLoadedMsg delivers a freshly loaded or generated catalog.
type catalogLoadedMsg struct {
	products []model.Product
	source   string
	elapsed  time.Duration
}

// catalogErrorMsg reports a failed catalog load or generation.
type catalogErrorMsg struct {
	err error
}

// debounceCmd arms the search debounce timer.
func debounceCmd(token int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return debounceTickMsg{token: token}
	})
}

// statusClearCmd schedules a status notice to fade.
func statusClearCmd(token int) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{token: token}
	})
}

// WatchFileCmd waits for the next catalog file change.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// StartWorkerCmd starts the compute worker.
func StartWorkerCmd(w *compute.Worker) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return nil
		}
		if err := w.Start(); err != nil {
			return catalogErrorMsg{err: fmt.Errorf("starting compute worker: %w", err)}
		}
		return nil
	}
}

// WaitForWorkerMsgCmd waits for the next compute worker response.
func WaitForWorkerMsgCmd(w *compute.Worker) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return nil
		}
		select {
		case msg := <-w.Messages():
			return msg
		case <-w.Done():
			return nil
		}
	}
}

// LoadCatalogCmd loads the catalog from a SQLite datasource off the UI
// goroutine.
func LoadCatalogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		r, err := datasource.NewReader(path)
		if err != nil {
			return catalogErrorMsg{err: err}
		}
		defer r.Close()
		products, err := r.LoadProducts()
		if err != nil {
			return catalogErrorMsg{err: err}
		}
		return catalogLoadedMsg{products: products, source: path, elapsed: time.Since(start)}
	}
}

// GenerateCatalogCmd generates the catalog inline, for when the compute
// worker is disabled at startup.
func GenerateCatalogCmd(count int, seed int64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		products, err := catalog.Generate(context.Background(), catalog.GenerateOptions{Count: count, Seed: seed})
		if err != nil {
			return catalogErrorMsg{err: err}
		}
		return catalogLoadedMsg{products: products, source: "generated", elapsed: time.Since(start)}
	}
}
