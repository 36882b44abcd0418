package playlist

import (
	"bytes"
	"encoding/json"
	"io"

	"emoplaylist/model"
)

// Payload is the serialized form of a song list:
//
//	{"songs": [{"id": 1, "title": "...", ...}, ...], "count": 1}
//
// Count is always len(Songs); build it with NewPayload.
type Payload struct {
	Songs []model.Song `json:"songs"`
	Count int          `json:"count"`
}

// NewPayload wraps songs. A nil slice becomes an empty "songs" array.
func NewPayload(songs []model.Song) Payload {
	if songs == nil {
		songs = []model.Song{}
	}
	return Payload{Songs: songs, Count: len(songs)}
}

// WriteJSON writes the payload of songs to w, followed by a newline.
//
// String fields are escaped as JSON strings; '<', '>' and '&' are kept
// as is.
func WriteJSON(w io.Writer, songs []model.Song) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(NewPayload(songs))
}

// Marshal returns the payload of songs without a trailing newline.
func Marshal(songs []model.Song) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, songs); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
