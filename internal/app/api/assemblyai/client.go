// Package assemblyai talks to the AssemblyAI speech-to-text REST API: audio
// upload, transcript creation and transcript lookup. Calls are never retried
// here; retry policy belongs to the caller.
package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	apperrors "voice-digest/internal/app/errors"
	"voice-digest/internal/app/logging"
)

// Config configures the AssemblyAI client
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is an AssemblyAI REST client
type Client struct {
	config Config
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a new AssemblyAI client
func NewClient(config Config, logger *zap.Logger) *Client {
	// Set defaults
	if config.BaseURL == "" {
		config.BaseURL = "https://api.assemblyai.com/v2"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logging.OrNop(logger).Named("assemblyai"),
	}
}

// Upload sends raw audio bytes to the upload endpoint using chunked transfer
// encoding and returns the private URL the audio can be transcribed from.
func (c *Client) Upload(ctx context.Context, audio []byte) (*Upload, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/upload", io.NopCloser(bytes.NewReader(audio)))
	if err != nil {
		return nil, err
	}
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}

	var upload Upload
	if err := c.do(req, &upload); err != nil {
		return nil, apperrors.Wrap(err, "upload audio")
	}

	c.logger.Debug("uploaded audio", zap.Int("bytes", len(audio)))
	return &upload, nil
}

// CreateTranscript submits a transcription job for audioURL. The returned
// snapshot is normally in the queued state.
func (c *Client) CreateTranscript(ctx context.Context, audioURL string) (*Transcript, error) {
	body, err := json.Marshal(CreateTranscriptRequest{AudioURL: audioURL})
	if err != nil {
		return nil, apperrors.Wrap(err, "encode transcript request")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/transcript", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var transcript Transcript
	if err := c.do(req, &transcript); err != nil {
		return nil, apperrors.Wrap(err, "create transcript")
	}

	return &transcript, nil
}

// GetTranscript fetches the current snapshot of transcript id
func (c *Client) GetTranscript(ctx context.Context, id string) (*Transcript, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/transcript/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var transcript Transcript
	if err := c.do(req, &transcript); err != nil {
		return nil, apperrors.Wrapf(err, "get transcript %s", id)
	}

	return &transcript, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, apperrors.Transport(err)
	}
	req.Header.Set("Authorization", c.config.APIKey)
	return req, nil
}

// do executes req and decodes a successful JSON response into out
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Transport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Mark(fmt.Errorf("reading response: %w", err), apperrors.ErrTransport)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.Mark(fmt.Errorf("status %d: %s", resp.StatusCode, errorMessage(data)), apperrors.ErrTransport)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Mark(err, apperrors.ErrDeserialization)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from an error body, falling back to
// the raw body.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
