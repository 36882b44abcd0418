package emomusic

import (
	"sort"

	"emoplaylist/model"
)

// NeutralEmotion is used when the classifier found nothing to go on.
const NeutralEmotion = "neutral"

// RawEmotion is one scored GoEmotions label.
type RawEmotion struct {
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// Classification is the classifier's answer for one text.
type Classification struct {
	Text               string       `json:"text"`
	RawEmotions        []RawEmotion `json:"raw_emotions"`
	SimplifiedEmotions []string     `json:"simplified_emotions"`
	DominantEmotion    string       `json:"dominant_emotion"`
	Confidence         float64      `json:"confidence"`
}

// simplified maps GoEmotions labels to the emotions songs are tagged with.
var simplified = map[string]string{
	"admiration":     "happy",
	"amusement":      "happy",
	"approval":       "happy",
	"caring":         "happy",
	"gratitude":      "happy",
	"joy":            "happy",
	"love":           "happy",
	"relief":         "happy",
	"desire":         "excited",
	"excitement":     "excited",
	"optimism":       "excited",
	"pride":          "excited",
	"surprise":       "excited",
	"anger":          "sad",
	"annoyance":      "sad",
	"disappointment": "sad",
	"disapproval":    "sad",
	"disgust":        "sad",
	"embarrassment":  "sad",
	"fear":           "sad",
	"grief":          "sad",
	"nervousness":    "sad",
	"remorse":        "sad",
	"sadness":        "sad",
	"confusion":      "neutral",
	"curiosity":      "neutral",
	"neutral":        "neutral",
	"realization":    "neutral",
}

// Simplify maps a GoEmotions label to a playlist emotion.
// Unknown labels map to NeutralEmotion.
func Simplify(label string) string {
	if s, ok := simplified[model.NormalizeEmotion(label)]; ok {
		return s
	}
	return NeutralEmotion
}

// PlaylistEmotions returns the canonical emotions to query songs with.
//
// The classifier's simplified emotions are used when present, otherwise
// they are derived from the raw emotions. With neither, the result is
// ["neutral"].
func (c Classification) PlaylistEmotions() []string {
	set := make(map[string]struct{})
	for _, e := range c.SimplifiedEmotions {
		if e = model.NormalizeEmotion(e); e != "" {
			set[e] = struct{}{}
		}
	}
	if len(set) == 0 {
		for _, raw := range c.RawEmotions {
			set[Simplify(raw.Emotion)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return []string{NeutralEmotion}
	}

	emotions := make([]string, 0, len(set))
	for e := range set {
		emotions = append(emotions, e)
	}
	sort.Strings(emotions)
	return emotions
}

// Dominant returns the dominant label and its confidence,
// ("neutral", 0) if the classifier reported none.
func (c Classification) Dominant() (string, float64) {
	if c.DominantEmotion != "" {
		return c.DominantEmotion, c.Confidence
	}
	if len(c.RawEmotions) > 0 {
		return c.RawEmotions[0].Emotion, c.RawEmotions[0].Score
	}
	return NeutralEmotion, 0
}
