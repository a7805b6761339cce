// Package fetch downloads binary resources over HTTP.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "voice-digest/internal/app/errors"
)

const chunkSize = 32 * 1024

// Client fetches resources by URL. The whole body is accumulated in memory;
// there is no size cap.
type Client struct {
	client *http.Client
}

// NewClient creates a fetch client with the given request timeout
func NewClient(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads url and returns its body. Connection failures, non-2xx
// statuses and mid-stream read errors are all reported as ErrTransport.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Transport(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Transport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.Mark(fmt.Errorf("unexpected status %d", resp.StatusCode), apperrors.ErrTransport)
	}

	var buffer bytes.Buffer
	if resp.ContentLength > 0 {
		buffer.Grow(int(resp.ContentLength))
	}

	chunk := make([]byte, chunkSize)
	for {
		n, err := resp.Body.Read(chunk)
		buffer.Write(chunk[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Mark(fmt.Errorf("reading body: %w", err), apperrors.ErrTransport)
		}
	}

	return buffer.Bytes(), nil
}
