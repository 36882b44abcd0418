package model

import "strings"

// Song is one playlist entry.
//
// Emotion is always stored in canonical form: see NormalizeEmotion.
type Song struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Lyrics  string `json:"lyrics"`
	Emotion string `json:"emotion"`
}

// NormalizeEmotion returns the canonical form of an emotion label:
// surrounding whitespace trimmed, lowercased.
//
// Both loading and querying go through this function, so "Happy",
// " HAPPY " and "happy" all end up as "happy".
func NormalizeEmotion(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
