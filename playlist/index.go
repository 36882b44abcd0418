package playlist

import "emoplaylist/model"

// Index maps a canonical emotion label to the songs carrying it.
//
// Labels and the songs in each bucket keep the order in which they
// first appear in the songs the Index was built from.
// An Index is never modified after BuildIndex returns.
type Index struct {
	labels  []string
	buckets map[string][]model.Song
}

// BuildIndex groups songs by their Emotion.
func BuildIndex(songs []model.Song) *Index {
	ix := &Index{buckets: make(map[string][]model.Song)}

	for _, song := range songs {
		bucket, ok := ix.buckets[song.Emotion]
		if !ok {
			ix.labels = append(ix.labels, song.Emotion)
		}
		ix.buckets[song.Emotion] = append(bucket, song)
	}

	return ix
}

// Find returns the bucket of label. The label must already be canonical:
// Find compares strings exactly.
//
// The returned slice is shared with the Index and must not be modified.
func (ix *Index) Find(label string) ([]model.Song, bool) {
	bucket, ok := ix.buckets[label]
	return bucket, ok
}

// Labels returns the distinct labels in first-seen order.
func (ix *Index) Labels() []string {
	labels := make([]string, len(ix.labels))
	copy(labels, ix.labels)
	return labels
}

// Len returns the number of distinct labels.
func (ix *Index) Len() int {
	return len(ix.labels)
}
