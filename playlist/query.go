package playlist

import "emoplaylist/model"

// FilterByEmotions returns the songs matching any of labels.
//
// Labels are canonicalized with model.NormalizeEmotion; blank and unknown
// labels contribute nothing. Songs come out grouped by label, in the order
// the labels were given, each group in load order. A song whose ID was
// already returned for an earlier label is left out.
//
// An empty labels slice returns every song in load order.
//
// The result is a fresh slice owned by the caller.
func (s *Store) FilterByEmotions(labels []string) []model.Song {
	snap := s.snap.Load()

	if len(labels) == 0 {
		return copySongs(snap.songs)
	}

	result := make([]model.Song, 0)
	seen := make(map[int]struct{})

	for _, label := range labels {
		label = model.NormalizeEmotion(label)
		if label == "" {
			continue
		}

		bucket, ok := snap.index.Find(label)
		if !ok {
			continue
		}

		for _, song := range bucket {
			if _, dup := seen[song.ID]; dup {
				continue
			}
			seen[song.ID] = struct{}{}
			result = append(result, song)
		}
	}

	return result
}

// All returns a copy of every loaded song in load order.
func (s *Store) All() []model.Song {
	return copySongs(s.snap.Load().songs)
}

// AvailableEmotions returns the distinct canonical labels currently
// indexed, in the order they first appear in the source.
func (s *Store) AvailableEmotions() []string {
	return s.snap.Load().index.Labels()
}

func copySongs(songs []model.Song) []model.Song {
	out := make([]model.Song, len(songs))
	copy(out, songs)
	return out
}
