package playlist

import (
	"io"
	"os"
)

// Source provides the delimited text a Store loads from.
//
// The first line of the text is a header and is always discarded.
type Source interface {
	// Open returns a reader positioned at the header line.
	Open() (io.ReadCloser, error)
	// String names the source in logs and warnings.
	String() string
}

// FileSource is a Source backed by a file on disk.
type FileSource string

func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

func (f FileSource) String() string {
	return string(f)
}

type readerSource struct {
	name string
	r    io.Reader
}

// ReaderSource wraps r as a Source. It can be loaded once.
func ReaderSource(name string, r io.Reader) Source {
	return &readerSource{name: name, r: r}
}

func (s *readerSource) Open() (io.ReadCloser, error) {
	if rc, ok := s.r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(s.r), nil
}

func (s *readerSource) String() string {
	return s.name
}
