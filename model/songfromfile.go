package model

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// this file implements a Song contributor that
// reads song metadata from an audio file.
//
// SongFromAudioFile only fills the Title, Artist and Lyrics fields.
// ID and Emotion are left blank for the caller.
func SongFromAudioFile(path string) (*Song, error) {
	// open file
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// read metadata
	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	song := &Song{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Lyrics: strings.TrimSpace(m.Lyrics()),
	}

	if song.Title == "" {
		song.Title = strings.TrimSuffix(
			filepath.Base(path), filepath.Ext(path))
	}
	if song.Artist == "" {
		song.Artist = strings.TrimSpace(m.AlbumArtist())
	}

	return song, nil
}
