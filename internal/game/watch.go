package game

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher invalidates a Loader when YAML files in its games directory
// change and then calls onChange with the changed path.
type FileWatcher struct {
	loader   *Loader
	onChange func(string)
	logger   *zap.Logger

	w        *fsnotify.Watcher
	stopOnce sync.Once
	done     chan struct{}
}

// NewFileWatcher starts watching the loader's games directory.
func NewFileWatcher(l *Loader, onChange func(string), logger *zap.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(l.paths.GamesDir()); err != nil {
		_ = w.Close()
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fw := &FileWatcher{
		loader:   l,
		onChange: onChange,
		logger:   logger,
		w:        w,
		done:     make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

func (fw *FileWatcher) loop() {
	defer close(fw.done)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) != ".yaml" {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			fw.loader.Invalidate()
			fw.logger.Info("config changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if fw.onChange != nil {
				fw.onChange(ev.Name)
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

// Stop terminates the watcher and waits for its goroutine.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		err = fw.w.Close()
		<-fw.done
	})
	return err
}
