package config

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// TuningWatcher reloads a tuning file when it changes on disk. Reloaded values
// are delivered on Updates and must be applied on the game thread.
type TuningWatcher struct {
	path    string
	base    TuningFile // owned by run
	watcher *fsnotify.Watcher
	log     logrus.FieldLogger
	Updates chan TuningFile
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchTuning watches the directory holding path, since editors often replace
// the file instead of writing it. Each reload overlays the file on base.
func WatchTuning(path string, base TuningFile, log logrus.FieldLogger) (*TuningWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	tw := &TuningWatcher{
		path:    filepath.Clean(path),
		base:    base,
		watcher: w,
		log:     log.WithField("file", path),
		Updates: make(chan TuningFile, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go tw.run()
	return tw, nil
}

func (w *TuningWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *TuningWatcher) run() {
	defer close(w.done)
	defer close(w.Updates)

	// reload after the file has been quiet for 100ms
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			debounce.Reset(100 * time.Millisecond)
		case <-debounce.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("tuning watcher error")
		case <-w.closeCh:
			return
		}
	}
}

func (w *TuningWatcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.log.WithError(err).Warn("tuning reload failed")
		return
	}
	t, err := DecodeTuning(bytes.NewReader(data), w.base)
	if err != nil {
		w.log.WithError(err).Warn("tuning reload rejected")
		return
	}
	w.base = t
	// keep only the newest pending reload
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- t:
		w.log.Info("tuning reloaded")
	case <-w.closeCh:
	}
}
