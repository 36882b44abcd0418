package metadata

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"emoplaylist/playlist"

	"gorm.io/gorm"
)

// header of the text rendered by Source.
var header = []string{"id", "title", "artist", "lyrics", "emotion"}

// Source is a playlist.Source reading the catalog.
//
// Rows are rendered as comma-separated text in insertion order, so a
// Store loads them through the same parsing and validation as a CSV file.
type Source struct {
	DB  *gorm.DB
	DSN string
}

// NewSource returns a Source over db. dsn only names the source.
func NewSource(db *gorm.DB, dsn string) *Source {
	return &Source{DB: db, DSN: dsn}
}

var _ playlist.Source = (*Source)(nil)

func (s *Source) String() string {
	return "sqlite:" + s.DSN
}

// Open reads every row and returns them as text.
func (s *Source) Open() (io.ReadCloser, error) {
	var rows []SongRow
	if err := s.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("metadata.Source: select songs: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}

	return io.NopCloser(&buf), nil
}

// WriteCSV writes rows as a header line followed by one line per row.
// Fields containing commas, quotes or newlines are quoted, quotes doubled.
// Newlines inside fields are replaced by spaces: the playlist parser is
// line based.
func WriteCSV(w io.Writer, rows []SongRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.SongID),
			flatten(r.Title),
			flatten(r.Artist),
			flatten(r.Lyrics),
			flatten(r.Emotion),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func flatten(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
}
