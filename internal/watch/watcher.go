// Package watch reports changes to the dashboard build output and the AI
// analysis artifact while the server runs. It only logs; responses are always
// read fresh from disk.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bilgisen/dashboard/internal/storage"
	"github.com/bilgisen/dashboard/internal/utils"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// EventKind classifies a change.
type EventKind string

const (
	AnalysisUpdated  EventKind = "analysis_updated"
	AnalysisRemoved  EventKind = "analysis_removed"
	DashboardChanged EventKind = "dashboard_changed"
)

// Event describes one observed change.
type Event struct {
	Kind   EventKind
	Path   string
	Size   int
	SHA256 string
}

const debounceInterval = 50 * time.Millisecond

// Watcher follows the analysis file and the top level of the dashboard directory.
type Watcher struct {
	fw      *fsnotify.Watcher
	store   *storage.Storage
	log     *zerolog.Logger
	done    chan struct{}
	stopped bool
	mu      sync.Mutex

	lastHash string
	lastSeen map[string]time.Time
}

// NewWatcher creates a watcher for the files behind store.
func NewWatcher(store *storage.Storage, log *zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:       fw,
		store:    store,
		log:      log,
		done:     make(chan struct{}),
		lastSeen: make(map[string]time.Time),
	}, nil
}

// ErrNothingWatched is returned by Start when none of the directories could be
// watched.
var ErrNothingWatched = errors.New("watch: no directory could be watched")

// Start begins watching. Directories that do not exist yet are logged and
// skipped. onEvent may be nil.
func (w *Watcher) Start(onEvent func(Event)) error {
	if data, err := w.store.ReadAnalysis(context.Background()); err == nil {
		w.lastHash = utils.Hash(data)
	}

	dirs := []string{w.store.Root(), filepath.Dir(w.store.AnalysisPath())}
	watched := 0
	for _, dir := range dirs {
		if err := w.fw.Add(dir); err != nil {
			w.log.Warn().
				Err(err).
				Str("dir", dir).
				Msg("Not watching directory")
			continue
		}
		watched++
	}
	if watched == 0 {
		return ErrNothingWatched
	}

	w.log.Debug().Int("dirs", watched).Msg("File watcher started")

	go w.loop(onEvent)
	return nil
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop(onEvent func(Event)) {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev, ok := w.handle(event); ok {
				if onEvent != nil {
					onEvent(ev)
				}
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("File watcher error")

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) (Event, bool) {
	if event.Name == w.store.AnalysisPath() {
		return w.handleAnalysis(event)
	}
	if filepath.Dir(event.Name) == w.store.Root() {
		return w.handleDashboard(event)
	}
	return Event{}, false
}

func (w *Watcher) handleAnalysis(event fsnotify.Event) (Event, bool) {
	path := event.Name

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if _, err := os.Stat(path); err == nil {
			// Replaced in place by an atomic rename; treat as an update.
			return w.analysisChanged(path)
		}
		w.lastHash = ""
		w.log.Warn().Str("path", path).Msg("AI analysis file removed")
		return Event{Kind: AnalysisRemoved, Path: path}, true
	}

	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
		return w.analysisChanged(path)
	}
	return Event{}, false
}

func (w *Watcher) analysisChanged(path string) (Event, bool) {
	data, err := w.store.ReadAnalysis(context.Background())
	if err != nil {
		w.log.Debug().Err(err).Str("path", path).Msg("AI analysis file not readable yet")
		return Event{}, false
	}

	hash := utils.Hash(data)
	if hash == w.lastHash {
		return Event{}, false
	}
	w.lastHash = hash

	w.log.Info().
		Str("path", path).
		Int("size", len(data)).
		Str("sha256", hash).
		Msg("AI analysis file updated")

	return Event{Kind: AnalysisUpdated, Path: path, Size: len(data), SHA256: hash}, true
}

func (w *Watcher) handleDashboard(event fsnotify.Event) (Event, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return Event{}, false
	}

	now := time.Now()
	if last, ok := w.lastSeen[event.Name]; ok && now.Sub(last) < debounceInterval {
		return Event{}, false
	}
	for name, last := range w.lastSeen {
		if now.Sub(last) >= debounceInterval {
			delete(w.lastSeen, name)
		}
	}
	w.lastSeen[event.Name] = now

	w.log.Info().
		Str("path", event.Name).
		Str("op", event.Op.String()).
		Msg("Dashboard build output changed")

	return Event{Kind: DashboardChanged, Path: event.Name}, true
}
