package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("colorpicker.engine")

// Watcher re-runs an export when the picker file or a template changes.
type Watcher struct {
	pickerPath string
	export     func() error
	watcher    *fsnotify.Watcher
	stopChan   chan struct{}
	wg         sync.WaitGroup

	// Debounce rapid file changes
	debounce     time.Duration
	pendingTimer *time.Timer
	timerMu      sync.Mutex
	stopped      bool
	exports      sync.WaitGroup
}

// NewWatcher watches the directory of pickerPath and templatesDir. export
// runs after each burst of relevant changes.
func NewWatcher(pickerPath, templatesDir string, export func() error) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	pickerPath = filepath.Clean(pickerPath)
	for _, dir := range []string{filepath.Dir(pickerPath), filepath.Clean(templatesDir)} {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return &Watcher{
		pickerPath: pickerPath,
		export:     export,
		watcher:    fsWatcher,
		stopChan:   make(chan struct{}),
		debounce:   200 * time.Millisecond,
	}, nil
}

// Start begins delivering events in the background.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
	log.Infof("watching %s", w.pickerPath)
}

// Stop stops the watcher, cancels any pending export and waits for a running
// one to finish.
func (w *Watcher) Stop() error {
	close(w.stopChan)
	w.wg.Wait()

	w.timerMu.Lock()
	w.stopped = true
	if w.pendingTimer != nil {
		w.pendingTimer.Stop()
	}
	w.timerMu.Unlock()

	w.exports.Wait()
	return w.watcher.Close()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warningf("watcher error: %s", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.pickerPath && !strings.HasSuffix(event.Name, ".tmpl") {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	log.Debugf("changed: %s (%s)", filepath.Base(event.Name), event.Op)
	w.scheduleExport()
}

func (w *Watcher) scheduleExport() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.stopped {
		return
	}
	if w.pendingTimer != nil {
		w.pendingTimer.Stop()
	}
	w.pendingTimer = time.AfterFunc(w.debounce, w.doExport)
}

func (w *Watcher) doExport() {
	w.timerMu.Lock()
	if w.stopped {
		w.timerMu.Unlock()
		return
	}
	w.exports.Add(1)
	w.timerMu.Unlock()
	defer w.exports.Done()

	if err := w.export(); err != nil {
		log.Errorf("export failed: %s", err)
		return
	}
	log.Info("exported")
}
