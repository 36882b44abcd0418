// Package murecom implements the HTTP controllers recommending songs by emotion.
package murecom

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"emoplaylist/emomusic"
	"emoplaylist/model"
	"emoplaylist/playlist"

	"github.com/cdfmlr/crud/log"
	"github.com/gin-gonic/gin"
)

var logger = log.ZoneLogger("emoplaylist/murecom")

// Reloader reloads the store from its configured source.
type Reloader func() (playlist.LoadResult, error)

// Murecom serves playlists out of a Store.
type Murecom struct {
	Store      *playlist.Store
	Classifier emomusic.Classifier
	Reload     Reloader
}

func New(store *playlist.Store, classifier emomusic.Classifier, reload Reloader) *Murecom {
	return &Murecom{Store: store, Classifier: classifier, Reload: reload}
}

// RegisterRoutes mounts the API on r (usually the /api group).
func (m *Murecom) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", m.GetHealth)
	r.GET("/emotions", m.GetEmotions)
	r.POST("/playlist", m.PostPlaylist)
	r.POST("/classify", m.PostClassify)
	r.POST("/analyze", m.PostAnalyze)
	r.POST("/playlist/full", m.PostFullPlaylist)
	r.POST("/reload", m.PostReload)
}

func abort(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{
		"error":   http.StatusText(code),
		"message": err.Error(),
	})
}

// GetHealth handles: GET /health
func (m *Murecom) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "API is running",
		"songs":   m.Store.Len(),
	})
}

// GetEmotions handles: GET /emotions
//
// Response: {"emotions": ["joy", "sad", ...]} in source order.
func (m *Murecom) GetEmotions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"emotions": m.Store.AvailableEmotions()})
}

type PlaylistRequest struct {
	Emotions []string `json:"emotions"`
}

// PlaylistResponse is a payload tagged with the emotions it was built for.
type PlaylistResponse struct {
	Emotions []string `json:"emotions"`
	playlist.Payload
}

// PostPlaylist handles: POST /playlist
//
// Body: {"emotions": ["happy", "excited"]}, a non-empty list of non-empty strings.
//
// Response:
//
//   - 200: {"emotions": [...], "songs": [...], "count": n}
//   - 400: {"error": "Bad Request", "message": "..."}
func (m *Murecom) PostPlaylist(c *gin.Context) {
	req := new(PlaylistRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		abort(c, http.StatusBadRequest, errors.New("missing required field: emotions"))
		return
	}

	if err := validatePlaylistRequest(req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, m.playlistFor(req.Emotions))
}

func validatePlaylistRequest(req *PlaylistRequest) error {
	if len(req.Emotions) == 0 {
		return errors.New("emotions must be a non-empty list")
	}
	for _, e := range req.Emotions {
		if strings.TrimSpace(e) == "" {
			return errors.New("all emotions must be non-empty strings")
		}
	}
	return nil
}

func (m *Murecom) playlistFor(emotions []string) PlaylistResponse {
	songs := m.Store.FilterByEmotions(emotions)

	logger.WithField("emotions", emotions).
		WithField("count", len(songs)).
		Debug("playlistFor")

	return PlaylistResponse{
		Emotions: emotions,
		Payload:  playlist.NewPayload(songs),
	}
}

type ClassifyRequest struct {
	Text      string  `json:"text"`
	TopK      int     `json:"top_k"`
	Threshold float64 `json:"threshold"`
}

func (m *Murecom) classify(c *gin.Context) (*ClassifyRequest, emomusic.Classification, bool) {
	req := new(ClassifyRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		abort(c, http.StatusBadRequest, errors.New("missing required field: text"))
		return nil, emomusic.Classification{}, false
	}
	if strings.TrimSpace(req.Text) == "" {
		abort(c, http.StatusBadRequest, errors.New("text must be a non-empty string"))
		return nil, emomusic.Classification{}, false
	}
	if m.Classifier == nil {
		abort(c, http.StatusServiceUnavailable, errors.New("emotion classifier is not configured"))
		return nil, emomusic.Classification{}, false
	}

	result, err := m.Classifier.Classify(c.Request.Context(), emomusic.Request{
		Text:      req.Text,
		TopK:      req.TopK,
		Threshold: req.Threshold,
	})
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, emomusic.ErrClassifier) || errors.Is(err, context.DeadlineExceeded) {
			code = http.StatusBadGateway
		}
		logger.WithContext(c).WithError(err).Error("classify failed")
		abort(c, code, err)
		return nil, emomusic.Classification{}, false
	}

	return req, result, true
}

// PostClassify handles: POST /classify
//
// Body: {"text": "...", "top_k": 3, "threshold": 0.1}
//
// Response: the classifier's answer, see emomusic.Classification.
func (m *Murecom) PostClassify(c *gin.Context) {
	_, result, ok := m.classify(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

type AnalyzeResponse struct {
	Emotion    string       `json:"emotion"`
	Confidence float64      `json:"confidence"`
	Playlist   []model.Song `json:"playlist"`
}

// PostAnalyze handles: POST /analyze
//
// Body: {"text": "..."}
//
// Response: {"emotion": "joy", "confidence": 0.85, "playlist": [...]}
func (m *Murecom) PostAnalyze(c *gin.Context) {
	_, result, ok := m.classify(c)
	if !ok {
		return
	}

	emotion, confidence := result.Dominant()
	c.JSON(http.StatusOK, AnalyzeResponse{
		Emotion:    emotion,
		Confidence: confidence,
		Playlist:   m.playlistFor(result.PlaylistEmotions()).Songs,
	})
}

type FullPlaylistResponse struct {
	Text           string                  `json:"text"`
	Classification emomusic.Classification `json:"classification"`
	Playlist       PlaylistResponse        `json:"playlist"`
}

// PostFullPlaylist handles: POST /playlist/full
//
// Classifies the text and builds the playlist in one call.
func (m *Murecom) PostFullPlaylist(c *gin.Context) {
	req, result, ok := m.classify(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, FullPlaylistResponse{
		Text:           req.Text,
		Classification: result,
		Playlist:       m.playlistFor(result.PlaylistEmotions()),
	})
}

// PostReload handles: POST /reload
//
// Response:
//
//   - 200: {"count": n, "warnings": w, "source": "..."}
//   - 503: the source is unavailable, the previous songs are still served
func (m *Murecom) PostReload(c *gin.Context) {
	if m.Reload == nil {
		abort(c, http.StatusNotImplemented, errors.New("reload is not configured"))
		return
	}

	res, err := m.Reload()
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, playlist.ErrSourceUnavailable) {
			code = http.StatusServiceUnavailable
		}
		abort(c, code, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    res.Count,
		"warnings": len(res.Warnings),
		"source":   m.Store.Source(),
	})
}
