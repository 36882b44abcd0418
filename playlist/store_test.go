package playlist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"emoplaylist/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioCSV = `id,title,artist,lyrics,emotion
1,"Song A","Artist X","la la","Joy"
2,"Song B","Artist Y","na na","joy"
3,"Song C","Artist Z","da da","Sad"
`

func loadString(t *testing.T, s *Store, text string) LoadResult {
	t.Helper()
	res, err := s.Load(ReaderSource("test", strings.NewReader(text)))
	require.NoError(t, err)
	return res
}

func ids(songs []model.Song) []int {
	out := make([]int, 0, len(songs))
	for _, s := range songs {
		out = append(out, s.ID)
	}
	return out
}

func TestStore_Scenario(t *testing.T) {
	s := NewStore()
	res := loadString(t, s, scenarioCSV)

	assert.Equal(t, 3, res.Count)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, []int{1, 2}, ids(s.FilterByEmotions([]string{"joy"})))
	assert.Equal(t, []int{1, 2, 3}, ids(s.FilterByEmotions(nil)))
	assert.Equal(t, []int{1, 2, 3}, ids(s.FilterByEmotions([]string{})))
	assert.Equal(t, []string{"joy", "sad"}, s.AvailableEmotions())
}

func TestStore_CaseInsensitive(t *testing.T) {
	s := NewStore()
	loadString(t, s, "h\n1,t,a,l,happy\n")

	for _, label := range []string{"Happy", "HAPPY", "happy", " happy "} {
		assert.Equal(t, []int{1}, ids(s.FilterByEmotions([]string{label})), "label %q", label)
	}
}

func TestStore_EmotionStoredLowercase(t *testing.T) {
	s := NewStore()
	loadString(t, s, "h\n1,t,a,l,ExCiTeD\n")

	songs := s.All()
	require.Len(t, songs, 1)
	assert.Equal(t, "excited", songs[0].Emotion)
	assert.Equal(t, []string{"excited"}, s.AvailableEmotions())
}

func TestStore_DedupAcrossLabels(t *testing.T) {
	s := NewStore()
	loadString(t, s, `id,title,artist,lyrics,emotion
7,First,A,x,happy
7,Second,B,y,excited
8,Third,C,z,excited
`)

	got := s.FilterByEmotions([]string{"happy", "excited"})
	assert.Equal(t, []int{7, 8}, ids(got))
	assert.Equal(t, "First", got[0].Title)

	got = s.FilterByEmotions([]string{"excited", "happy"})
	assert.Equal(t, []int{7, 8}, ids(got))
	assert.Equal(t, "Second", got[0].Title)

	// duplicates are kept by the loader
	assert.Equal(t, 3, s.Len())
}

func TestStore_RepeatedAndUnknownLabels(t *testing.T) {
	s := NewStore()
	loadString(t, s, scenarioCSV)

	got := s.FilterByEmotions([]string{"sad", "", "unknown", "JOY", "sad"})
	assert.Equal(t, []int{3, 1, 2}, ids(got))

	assert.Empty(t, s.FilterByEmotions([]string{"unknown"}))
	assert.NotNil(t, s.FilterByEmotions([]string{"unknown"}))
	assert.Empty(t, s.FilterByEmotions([]string{"  "}))
}

func TestStore_RoundTrip(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,title,artist,lyrics,emotion\n")
	labels := []string{"happy", "sad", "excited", "calm", "angry"}
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&b, "%d,Title %d,Artist %d,lyrics %d,%s\n", i, i, i, i, labels[i%len(labels)])
	}

	s := NewStore()
	res := loadString(t, s, b.String())
	require.Equal(t, 10, res.Count)

	got := s.FilterByEmotions(s.AvailableEmotions())
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(got))
}

func TestStore_MalformedLineTolerance(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,title,artist,lyrics,emotion\n")
	for i := 1; i <= 9; i++ {
		fmt.Fprintf(&b, "%d,T%d,A%d,L%d,happy\n", i, i, i, i)
		if i == 4 {
			b.WriteString("99,only,three\n")
		}
	}

	s := NewStore()
	res := loadString(t, s, b.String())

	assert.Equal(t, 9, res.Count)
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], ErrMalformedLine)

	var lineErr *LineError
	require.True(t, errors.As(res.Warnings[0], &lineErr))
	assert.Equal(t, 6, lineErr.Line)
	assert.Equal(t, "99,only,three", lineErr.Text)
}

func TestStore_SkipsInvalidLines(t *testing.T) {
	s := NewStore()
	res := loadString(t, s, `whatever header
abc,Title,Artist,lyrics,happy

1,,Artist,lyrics,happy
2,Title,  ,lyrics,happy
3,Title,Artist,lyrics,"  "
4,Title,Artist,,sad,extra,fields
`)

	assert.Equal(t, 1, res.Count)
	assert.Len(t, res.Warnings, 4)
	for _, w := range res.Warnings {
		assert.ErrorIs(t, w, ErrMalformedLine)
	}

	songs := s.All()
	require.Len(t, songs, 1)
	assert.Equal(t, model.Song{ID: 4, Title: "Title", Artist: "Artist", Lyrics: "", Emotion: "sad"}, songs[0])
}

func TestStore_HeaderOnlyAndCRLF(t *testing.T) {
	s := NewStore()
	res := loadString(t, s, "1,Looks,Like,Data,happy\r\n")
	assert.Equal(t, 0, res.Count)
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], ErrNoSongs)

	res = loadString(t, s, "h\r\n1,T,A,L,Happy\r\n2,T,A,L,sad")
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []string{"happy", "sad"}, s.AvailableEmotions())
}

func TestStore_EmptySource(t *testing.T) {
	s := NewStore()
	res := loadString(t, s, "")
	assert.Equal(t, 0, res.Count)
	assert.Len(t, res.Warnings, 1)
	assert.Empty(t, s.FilterByEmotions(nil))
	assert.Empty(t, s.AvailableEmotions())
}

func TestStore_SourceUnavailableKeepsState(t *testing.T) {
	s := NewStore()
	loadString(t, s, scenarioCSV)

	_, err := s.LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "test", s.Source())
}

type failingReader struct{ data string }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, io.ErrUnexpectedEOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestStore_ReadErrorKeepsState(t *testing.T) {
	s := NewStore()
	loadString(t, s, scenarioCSV)

	_, err := s.Load(ReaderSource("broken", &failingReader{data: "h\n9,T,A,L,angry\n"}))
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Equal(t, []string{"joy", "sad"}, s.AvailableEmotions())
}

func TestStore_ReloadReplaces(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")
	require.NoError(t, os.WriteFile(first, []byte(scenarioCSV), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("h\n10,T,A,L,calm\n"), 0o644))

	s := NewStore()
	_, err := s.LoadFile(first)
	require.NoError(t, err)
	res, err := s.LoadFile(second)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Count)
	assert.Equal(t, []string{"calm"}, s.AvailableEmotions())
	assert.Empty(t, s.FilterByEmotions([]string{"joy"}))
	assert.Equal(t, second, s.Source())
}

func TestStore_ResultsAreCopies(t *testing.T) {
	s := NewStore()
	loadString(t, s, scenarioCSV)

	got := s.FilterByEmotions([]string{"joy"})
	got[0].Title = "mutated"
	all := s.All()
	all[1].Emotion = "mutated"

	assert.Equal(t, "Song A", s.FilterByEmotions([]string{"joy"})[0].Title)
	assert.Equal(t, "joy", s.All()[1].Emotion)
}

func TestStore_ConcurrentQueriesDuringLoad(t *testing.T) {
	s := NewStore()
	loadString(t, s, scenarioCSV)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got := s.FilterByEmotions([]string{"joy", "sad"})
				// either the old or the new generation, never a mix
				n := len(got)
				if n != 3 && n != 4 {
					t.Errorf("unexpected result size %d", n)
					return
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		text := scenarioCSV
		if i%2 == 0 {
			text += "4,Song D,Artist W,ba ba,sad\n"
		}
		_, err := s.Load(ReaderSource("gen", strings.NewReader(text)))
		require.NoError(t, err)
	}
	wg.Wait()
}
