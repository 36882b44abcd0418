package playlist

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable is returned by Load when the source cannot be
	// opened or read. The store keeps its previous contents.
	ErrSourceUnavailable = errors.New("playlist: source unavailable")

	// ErrMalformedLine marks a line that was skipped during a load.
	ErrMalformedLine = errors.New("playlist: malformed line")

	// ErrNoSongs is reported as a warning when a load found no valid songs.
	ErrNoSongs = errors.New("playlist: no valid songs found")
)

// LineError describes why a source line was skipped.
type LineError struct {
	Line   int // 1-based, the header is line 1
	Reason string
	Text   string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *LineError) Is(target error) bool {
	return target == ErrMalformedLine
}
