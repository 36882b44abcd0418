package emomusic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// This file implements an API client for the emomusic text classifier.

const EnvEmomusicServer = "EMOMUSIC_SERVER"

// ErrClassifier is returned when the classifier answers with a non-200 status.
var ErrClassifier = errors.New("emomusic API error")

const (
	DefaultTopK      = 3
	DefaultThreshold = 0.1
)

// ServerURL returns the emomusic server address:
// env EMOMUSIC_SERVER, defaults to http://localhost:8000/.
func ServerURL() string {
	s := os.Getenv(EnvEmomusicServer)
	if s == "" {
		s = "http://localhost:8000/"
	}

	return s
}

// Classifier turns free-form text into emotions.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Classification, error)
}

// Request is the body of POST {server}/classify.
type Request struct {
	Text      string  `json:"text"`
	TopK      int     `json:"top_k,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
}

// Client talks to an emomusic server over HTTP.
type Client struct {
	server     string
	httpClient *http.Client
}

// NewClient returns a Client for server. An empty server means ServerURL().
func NewClient(server string, timeout time.Duration) *Client {
	if server == "" {
		server = ServerURL()
	}
	return &Client{
		server:     server,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// classifyURL returns {server}/classify.
func (c *Client) classifyURL() (string, error) {
	return url.JoinPath(c.server, "classify")
}

// Classify posts req to the classifier and decodes its answer.
// Zero TopK and Threshold are replaced by the defaults.
func (c *Client) Classify(ctx context.Context, req Request) (Classification, error) {
	if req.TopK <= 0 {
		req.TopK = DefaultTopK
	}
	if req.Threshold <= 0 {
		req.Threshold = DefaultThreshold
	}

	// build request
	body, err := json.Marshal(req)
	if err != nil {
		return Classification{}, err
	}

	u, err := c.classifyURL()
	if err != nil {
		return Classification{}, fmt.Errorf("Classify: bad server url %q: %w", c.server, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return Classification{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// send request
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Classification{}, fmt.Errorf("Classify: %w", err)
	}
	defer resp.Body.Close()

	// check response
	if resp.StatusCode != http.StatusOK {
		return Classification{}, fmt.Errorf("%w: status %d", ErrClassifier, resp.StatusCode)
	}

	// parse response
	var result Classification
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Classification{}, fmt.Errorf("Classify: decode response: %w", err)
	}
	if result.Text == "" {
		result.Text = req.Text
	}

	return result, nil
}
