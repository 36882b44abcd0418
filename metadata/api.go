package metadata

// This file provides some APIs for other packages to use.
// Saves them from constructing HTTP requests OR directly
// talking to the crud/service or even crud/orm.

import (
	"context"
	"database/sql"
	"fmt"

	"emoplaylist/model"

	"github.com/cdfmlr/crud/orm"
	"github.com/cdfmlr/crud/service"
)

// SongExists checks if a song with the same title and artist is catalogued.
func SongExists(ctx context.Context, song *model.Song) bool {
	cnt, err := service.Count[SongRow](ctx,
		service.FilterBy("title", song.Title),
		service.FilterBy("artist", song.Artist))

	if err != nil {
		logger.WithContext(ctx).
			WithField("title", song.Title).
			WithField("artist", song.Artist).
			WithError(err).
			Error("SongExists: failed to select songs")
		return false
	}

	return cnt > 0
}

// CreateSong catalogues song.
func CreateSong(ctx context.Context, song model.Song) error {
	row := RowFromSong(song)
	return service.Create(ctx, row, service.IfNotExist())
}

// NextSongID returns an id greater than every catalogued SongID.
func NextSongID(ctx context.Context) (int, error) {
	var maxID sql.NullInt64
	row := orm.DB.WithContext(ctx).Model(&SongRow{}).
		Select("MAX(song_id)").Row()
	if err := row.Scan(&maxID); err != nil {
		return 0, fmt.Errorf("NextSongID: %w", err)
	}
	if !maxID.Valid {
		return 1, nil
	}
	return int(maxID.Int64) + 1, nil
}

// ImportSongs catalogues songs that are not catalogued yet
// and returns how many were created.
func ImportSongs(ctx context.Context, songs []model.Song) (int, error) {
	created := 0
	for _, song := range songs {
		if SongExists(ctx, &song) {
			logger.WithField("title", song.Title).
				WithField("artist", song.Artist).
				Debug("ImportSongs: already exists, skipping")
			continue
		}
		if err := CreateSong(ctx, song); err != nil {
			return created, fmt.Errorf("ImportSongs: create %q: %w", song.Title, err)
		}
		created++
	}

	logger.WithField("created", created).
		WithField("total", len(songs)).
		Info("ImportSongs: done")

	return created, nil
}
