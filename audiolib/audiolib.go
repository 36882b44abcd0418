// Package audiolib turns a directory of audio files into catalogued songs.
//
// Title, artist and lyrics come from the files' tags, the emotion from
// classifying the lyrics (or the title when a file has no lyrics).
package audiolib

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"emoplaylist/emomusic"
	"emoplaylist/metadata"
	"emoplaylist/model"

	"github.com/cdfmlr/crud/log"
)

var logger = log.ZoneLogger("emoplaylist/audiolib")

// Scanner reads audio files into the metadata catalog.
type Scanner struct {
	Classifier emomusic.Classifier
	TopK       int
	Threshold  float64
}

func NewScanner(classifier emomusic.Classifier) *Scanner {
	return &Scanner{
		Classifier: classifier,
		TopK:       emomusic.DefaultTopK,
		Threshold:  emomusic.DefaultThreshold,
	}
}

// AddSong reads the audio file at path, classifies it and catalogues it.
func (s *Scanner) AddSong(ctx context.Context, path string) (*model.Song, error) {
	// get song metadata
	song, err := model.SongFromAudioFile(path)
	if err != nil {
		return nil, fmt.Errorf("AddSong: SongFromAudioFile failed: %w", err)
	}

	if song.Artist == "" {
		return nil, fmt.Errorf("AddSong: no artist tag: %s", path)
	}

	// check if song exists
	if metadata.SongExists(ctx, song) {
		return nil, fmt.Errorf("AddSong: song already exists: %s", song.Title)
	}

	// emotion analyze
	emotion, err := s.analyzeEmotion(ctx, song)
	if err != nil {
		return nil, fmt.Errorf("AddSong: analyzeEmotion failed: %w", err)
	}
	song.Emotion = emotion

	// save to db
	song.ID, err = metadata.NextSongID(ctx)
	if err != nil {
		return nil, fmt.Errorf("AddSong: %w", err)
	}
	if err := metadata.CreateSong(ctx, *song); err != nil {
		return nil, fmt.Errorf("AddSong: Create failed: %w", err)
	}

	logger.WithField("ID", song.ID).
		WithField("Title", song.Title).
		WithField("Emotion", song.Emotion).
		Info("AddSong: success")

	return song, nil
}

// analyzeEmotion returns the first playlist emotion of the song's lyrics.
func (s *Scanner) analyzeEmotion(ctx context.Context, song *model.Song) (string, error) {
	text := song.Lyrics
	if text == "" {
		text = song.Title
	}

	c, err := s.Classifier.Classify(ctx, emomusic.Request{
		Text:      text,
		TopK:      s.TopK,
		Threshold: s.Threshold,
	})
	if err != nil {
		return "", err
	}

	return c.PlaylistEmotions()[0], nil
}

// AddSongsFromDir adds all the songs in dir to the catalog and
// returns how many were added. Files that fail are logged and skipped.
func (s *Scanner) AddSongsFromDir(ctx context.Context, dir string) (int, error) {
	logger.WithField("dir", dir).Info("AddSongsFromDir: start")

	// enumerate music files
	paths, err := enumMusicFiles(dir)
	if err != nil {
		return 0, fmt.Errorf("AddSongsFromDir: enumMusicFiles failed: %w", err)
	}

	added := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return added, err
		}

		logger.WithField("path", path).Debug("AddSongsFromDir: AddSong")
		if _, err := s.AddSong(ctx, path); err != nil {
			logger.Errorf("AddSongsFromDir: AddSong failed: %v", err)
			continue
		}
		added++
	}

	return added, nil
}

// isMusicFile returns true if the file is a music file.
// It checks the file extension.
// supported extensions: .mp3, .m4a, .flac, .ogg
func isMusicFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3", ".m4a", ".flac", ".ogg":
		return true
	default:
		return false
	}
}

// enumMusicFiles returns the paths of all the music files under dir,
// in lexical order.
func enumMusicFiles(dir string) ([]string, error) {
	if dir == "" {
		return nil, errors.New("empty dir")
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return nil, errors.New("not a dir")
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// skip non-music files
		if d.IsDir() || !isMusicFile(path) {
			return nil
		}

		paths = append(paths, path)
		return nil
	})

	return paths, err
}
