package tui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// Sender is the part of *tea.Program the watcher needs.
type Sender interface {
	Send(msg tea.Msg)
}

// StartWatcher watches the config file and sends ConfigChangedMsg when it
// changes. The parent directory is watched because editors usually replace
// the file instead of writing it in place.
func StartWatcher(configPath string, program Sender) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	target := filepath.Clean(configPath)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})

	go func() {
		var debounceTimer *time.Timer

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				// Debounce: wait 200ms after last change
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(200*time.Millisecond, func() {
					program.Send(ConfigChangedMsg{})
				})

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}

			case <-done:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return
			}
		}
	}()

	cleanup := func() {
		close(done)
		watcher.Close()
	}

	return cleanup, nil
}
