// Package metadata keeps a SQLite catalog of songs.
// It provides CRUDs for the catalog, imports songs into it,
// and exposes it as a playlist.Source.
package metadata

import (
	"fmt"

	"emoplaylist/model"

	"github.com/cdfmlr/crud/log"
	"github.com/cdfmlr/crud/orm"

	"github.com/glebarez/sqlite" // pure go sqlite driver
	"gorm.io/gorm"
)

var logger = log.ZoneLogger("emoplaylist/metadata")

// SongRow is a catalogued song.
//
// SongID is the playlist id of the song; it is not unique, like ids in
// a CSV source.
type SongRow struct {
	orm.BasicModel

	SongID  int `gorm:"index"`
	Title   string
	Artist  string
	Lyrics  string
	Emotion string `gorm:"index"`
}

// TableName keeps the table name stable for raw queries.
func (SongRow) TableName() string {
	return "songs"
}

// Song converts the row to a playlist song.
func (r *SongRow) Song() model.Song {
	return model.Song{
		ID:      r.SongID,
		Title:   r.Title,
		Artist:  r.Artist,
		Lyrics:  r.Lyrics,
		Emotion: r.Emotion,
	}
}

// RowFromSong converts a playlist song to a row, canonicalizing its emotion.
func RowFromSong(s model.Song) *SongRow {
	return &SongRow{
		SongID:  s.ID,
		Title:   s.Title,
		Artist:  s.Artist,
		Lyrics:  s.Lyrics,
		Emotion: model.NormalizeEmotion(s.Emotion),
	}
}

// Connect opens the catalog at dsn, migrates it and makes it the
// database used by the crud services.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: log.Logger4Gorm,
	})
	if err != nil {
		return nil, fmt.Errorf("metadata.Connect: open %q: %w", dsn, err)
	}

	if err := db.AutoMigrate(&SongRow{}); err != nil {
		return nil, fmt.Errorf("metadata.Connect: migrate: %w", err)
	}

	orm.DB = db

	logger.WithField("dsn", dsn).Info("Connect: catalog ready")

	return db, nil
}
