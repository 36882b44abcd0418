package playlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"emoplaylist/model"
)

// minFields is the number of leading fields a data line must carry:
// id, title, artist, lyrics, emotion. Extra trailing fields are ignored.
const minFields = 5

// LoadResult reports the outcome of a successful load.
type LoadResult struct {
	Count    int
	Warnings []error
}

// readSongs reads every data line of src.
//
// Only a failure to open or read src is returned as an error. Bad lines are
// skipped and reported in the returned warnings.
func readSongs(src Source) ([]model.Song, []error, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, src, err)
	}
	defer rc.Close()

	var (
		songs    []model.Song
		warnings []error
	)

	r := bufio.NewReader(rc)
	for lineNumber := 1; ; lineNumber++ {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%w: %s: line %d: %w", ErrSourceUnavailable, src, lineNumber, err)
		}
		if line == "" && err != nil {
			break // EOF
		}

		line = strings.TrimRight(line, "\r\n")
		if lineNumber > 1 && strings.TrimSpace(line) != "" {
			song, lineErr := parseSong(lineNumber, line)
			if lineErr != nil {
				warnings = append(warnings, lineErr)
			} else {
				songs = append(songs, song)
			}
		}

		if err != nil {
			break // EOF without trailing newline
		}
	}

	if len(songs) == 0 {
		warnings = append(warnings, fmt.Errorf("%w in %s", ErrNoSongs, src))
	}

	return songs, warnings, nil
}

// parseSong turns one data line into a Song.
func parseSong(lineNumber int, line string) (model.Song, error) {
	fields := ParseLine(line)
	if len(fields) < minFields {
		return model.Song{}, &LineError{
			Line:   lineNumber,
			Reason: fmt.Sprintf("expected at least %d fields, got %d", minFields, len(fields)),
			Text:   line,
		}
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return model.Song{}, &LineError{
			Line:   lineNumber,
			Reason: fmt.Sprintf("invalid id %q", fields[0]),
			Text:   line,
		}
	}

	song := model.Song{
		ID:      id,
		Title:   strings.TrimSpace(fields[1]),
		Artist:  strings.TrimSpace(fields[2]),
		Lyrics:  fields[3],
		Emotion: model.NormalizeEmotion(fields[4]),
	}

	if song.Title == "" || song.Artist == "" || song.Emotion == "" {
		return model.Song{}, &LineError{
			Line:   lineNumber,
			Reason: "empty required field (title, artist or emotion)",
			Text:   line,
		}
	}

	return song, nil
}
