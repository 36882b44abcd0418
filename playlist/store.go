// Package playlist implements the in-memory song store: it loads songs
// from delimited text, indexes them by emotion and answers multi-emotion
// queries.
//
// A Store is safe for concurrent use. Loads are serialized; queries read
// an immutable snapshot and never block each other or a running load.
package playlist

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"emoplaylist/model"

	"github.com/cdfmlr/crud/log"
	"github.com/sirupsen/logrus"
)

var logger = log.ZoneLogger("emoplaylist/playlist")

// snapshot is one published generation of a Store.
// The songs slice and the index never change once published.
type snapshot struct {
	songs    []model.Song
	index    *Index
	source   string
	loadedAt time.Time
}

var emptySnapshot = &snapshot{index: BuildIndex(nil)}

// Store owns the primary song collection and its emotion Index.
type Store struct {
	loadMu sync.Mutex // serializes Load
	snap   atomic.Pointer[snapshot]

	logger *logrus.Entry
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger replaces the logger used for load diagnostics.
func WithLogger(l *logrus.Entry) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore returns an empty Store.
func NewStore(options ...StoreOption) *Store {
	s := &Store{logger: logger}
	for _, opt := range options {
		opt(s)
	}
	s.snap.Store(emptySnapshot)
	return s
}

// Load replaces the contents of the store with the songs read from src.
//
// If src cannot be opened or read, Load returns an error wrapping
// ErrSourceUnavailable and the store is left unchanged. Otherwise the
// load succeeds, even when every line was skipped. Skipped lines are
// listed in LoadResult.Warnings.
func (s *Store) Load(src Source) (LoadResult, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	entry := s.logger.WithField("source", src.String())

	songs, warnings, err := readSongs(src)
	if err != nil {
		entry.WithError(err).Error("Load: failed")
		return LoadResult{}, err
	}

	for _, w := range warnings {
		var lineErr *LineError
		if errors.As(w, &lineErr) {
			entry.WithField("line", lineErr.Line).
				WithField("reason", lineErr.Reason).
				Warn("Load: skipping malformed line")
		} else {
			entry.Warn(w.Error())
		}
	}

	s.snap.Store(&snapshot{
		songs:    songs,
		index:    BuildIndex(songs),
		source:   src.String(),
		loadedAt: time.Now(),
	})

	entry.WithField("songs", len(songs)).
		WithField("warnings", len(warnings)).
		Info("Load: success")

	return LoadResult{Count: len(songs), Warnings: warnings}, nil
}

// LoadFile is Load(FileSource(path)).
func (s *Store) LoadFile(path string) (LoadResult, error) {
	return s.Load(FileSource(path))
}

// Len returns the number of songs currently loaded.
func (s *Store) Len() int {
	return len(s.snap.Load().songs)
}

// Source names the source of the current contents, "" if nothing was loaded.
func (s *Store) Source() string {
	return s.snap.Load().source
}

// LoadedAt returns when the current contents were published.
func (s *Store) LoadedAt() time.Time {
	return s.snap.Load().loadedAt
}
