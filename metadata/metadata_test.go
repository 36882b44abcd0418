package metadata

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"emoplaylist/model"
	"emoplaylist/playlist"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func connectTemp(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

var songs = []model.Song{
	{ID: 1, Title: "Song A", Artist: "Artist X", Lyrics: "la la", Emotion: "Joy"},
	{ID: 2, Title: "Song, B", Artist: `Artist "Y"`, Lyrics: "na\nna", Emotion: "joy"},
	{ID: 3, Title: "Song C", Artist: "Artist Z", Lyrics: "da da", Emotion: "sad"},
}

func TestImportSongs(t *testing.T) {
	connectTemp(t)
	ctx := context.Background()

	created, err := ImportSongs(ctx, songs)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	assert.True(t, SongExists(ctx, &model.Song{Title: "Song A", Artist: "Artist X"}))
	assert.False(t, SongExists(ctx, &model.Song{Title: "Song A", Artist: "Nobody"}))

	// second import is a no-op
	created, err = ImportSongs(ctx, songs)
	require.NoError(t, err)
	assert.Zero(t, created)

	next, err := NextSongID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
}

func TestNextSongID_Empty(t *testing.T) {
	connectTemp(t)

	next, err := NextSongID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestSource_LoadsIntoStore(t *testing.T) {
	db := connectTemp(t)
	_, err := ImportSongs(context.Background(), songs)
	require.NoError(t, err)

	store := playlist.NewStore()
	res, err := store.Load(NewSource(db, "catalog.db"))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Empty(t, res.Warnings)

	got := store.FilterByEmotions([]string{"JOY"})
	require.Len(t, got, 2)
	assert.Equal(t, "Song, B", got[1].Title)
	assert.Equal(t, `Artist "Y"`, got[1].Artist)
	assert.Equal(t, "na na", got[1].Lyrics)
	assert.Equal(t, []string{"joy", "sad"}, store.AvailableEmotions())
	assert.Equal(t, "sqlite:catalog.db", store.Source())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []SongRow{*RowFromSong(songs[1])}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Equal(t, "id,title,artist,lyrics,emotion", string(lines[0]))
	assert.Equal(t, []string{"2", "Song, B", `Artist "Y"`, "na na", "joy"}, playlist.ParseLine(string(lines[1])))
}

func TestRoutes_ListSongs(t *testing.T) {
	connectTemp(t)
	_, err := ImportSongs(context.Background(), songs[:1])
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/songs", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Song A")
}
