package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/echoscribe/engine/internal/metrics"
	"github.com/echoscribe/engine/internal/pipeline"
)

// audioMIMETypes maps accepted file extensions to the MIME type sent to
// the model. Anything else in the drop folder is ignored.
var audioMIMETypes = map[string]string{
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
}

// FileWatcher monitors a drop folder for new audio recordings and feeds
// them through the pipeline, as an alternative to HTTP upload.
type FileWatcher struct {
	processor *pipeline.Processor
	watchDir  string
	log       zerolog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	watcher *fsnotify.Watcher

	// Debounce: coalesce rapid Create+Write events on the same file.
	debounceMu     sync.Mutex
	debounceTimers map[string]*time.Timer

	filesProcessed atomic.Int64
	filesFailed    atomic.Int64
	status         atomic.Value // string: "starting", "watching", "stopped"
}

// NewFileWatcher creates a watcher for the given directory.
func NewFileWatcher(processor *pipeline.Processor, watchDir string, log zerolog.Logger) *FileWatcher {
	ctx, cancel := context.WithCancel(context.Background())
	fw := &FileWatcher{
		processor:      processor,
		watchDir:       watchDir,
		log:            log.With().Str("component", "watcher").Logger(),
		ctx:            ctx,
		cancel:         cancel,
		debounceTimers: make(map[string]*time.Timer),
	}
	fw.status.Store("starting")
	return fw
}

// Start initializes the fsnotify watcher and begins watching for new files.
func (fw *FileWatcher) Start() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	fw.watcher = w

	if err := w.Add(fw.watchDir); err != nil {
		w.Close()
		return err
	}

	fw.log.Info().Str("watch_dir", fw.watchDir).Msg("file watcher initialized")
	fw.status.Store("watching")

	go fw.watchLoop()
	return nil
}

// Stop closes the fsnotify watcher and cancels in-flight processing.
func (fw *FileWatcher) Stop() {
	fw.status.Store("stopped")
	fw.cancel()
	if fw.watcher != nil {
		fw.watcher.Close()
	}
	fw.log.Info().
		Int64("files_processed", fw.filesProcessed.Load()).
		Int64("files_failed", fw.filesFailed.Load()).
		Msg("file watcher stopped")
}

// Status holds watcher state for the health endpoint.
type Status struct {
	Status         string `json:"status"`
	WatchDir       string `json:"watch_dir"`
	FilesProcessed int64  `json:"files_processed"`
	FilesFailed    int64  `json:"files_failed"`
}

// CurrentStatus returns the watcher state for the health endpoint.
func (fw *FileWatcher) CurrentStatus() *Status {
	s, _ := fw.status.Load().(string)
	return &Status{
		Status:         s,
		WatchDir:       fw.watchDir,
		FilesProcessed: fw.filesProcessed.Load(),
		FilesFailed:    fw.filesFailed.Load(),
	}
}

func (fw *FileWatcher) watchLoop() {
	for {
		select {
		case <-fw.ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			ext := strings.ToLower(filepath.Ext(event.Name))
			if _, ok := audioMIMETypes[ext]; !ok {
				continue
			}
			fw.scheduleProcess(event.Name)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Error().Err(err).Msg("fsnotify error")
		}
	}
}

// scheduleProcess debounces file processing by 500ms, coalescing rapid
// Create+Write events and letting the file finish writing.
func (fw *FileWatcher) scheduleProcess(path string) {
	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	if t, ok := fw.debounceTimers[path]; ok {
		t.Reset(500 * time.Millisecond)
		return
	}

	fw.debounceTimers[path] = time.AfterFunc(500*time.Millisecond, func() {
		fw.debounceMu.Lock()
		delete(fw.debounceTimers, path)
		fw.debounceMu.Unlock()

		fw.processFile(path)
	})
}

// processFile runs one dropped recording through the pipeline. If a run
// is already in flight the file is rescheduled rather than dropped.
func (fw *FileWatcher) processFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		fw.log.Error().Err(err).Str("path", path).Msg("failed to open dropped file")
		fw.filesFailed.Add(1)
		metrics.WatcherFilesTotal.WithLabelValues("failed").Inc()
		return
	}
	defer f.Close()

	fileName := filepath.Base(path)
	mimeType := audioMIMETypes[strings.ToLower(filepath.Ext(path))]

	_, err = fw.processor.Process(fw.ctx, f, mimeType, fileName)
	switch {
	case err == nil:
		fw.filesProcessed.Add(1)
		metrics.WatcherFilesTotal.WithLabelValues("processed").Inc()
		fw.log.Info().Str("file_name", fileName).Msg("dropped file processed")

	case errors.Is(err, pipeline.ErrBusy):
		metrics.WatcherFilesTotal.WithLabelValues("skipped").Inc()
		fw.log.Debug().Str("file_name", fileName).Msg("pipeline busy, rescheduling dropped file")
		fw.scheduleRetry(path)

	default:
		fw.filesFailed.Add(1)
		metrics.WatcherFilesTotal.WithLabelValues("failed").Inc()
		fw.log.Error().Err(err).Str("file_name", fileName).Msg("dropped file failed")
	}
}

func (fw *FileWatcher) scheduleRetry(path string) {
	select {
	case <-fw.ctx.Done():
		return
	default:
	}
	time.AfterFunc(2*time.Second, func() { fw.processFile(path) })
}
