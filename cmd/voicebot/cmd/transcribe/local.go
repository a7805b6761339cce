package transcribe

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"voice-digest/internal/app/pipeline"
)

// sourceFetcher reads local files directly and hands URLs to remote
type sourceFetcher struct {
	remote pipeline.Fetcher
}

func (f sourceFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if isURL(source) {
		return f.remote.Fetch(ctx, source)
	}
	return os.ReadFile(source)
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// printChat stands in for the chat platform: the file id is the source
// itself and replies are written to out.
type printChat struct {
	out io.Writer
}

func (c printChat) FilePath(ctx context.Context, fileID string) (string, error) {
	return fileID, nil
}

func (c printChat) FileURL(path string) string {
	return path
}

func (c printChat) Reply(ctx context.Context, msg pipeline.InboundMessage, text string) error {
	_, err := fmt.Fprintln(c.out, text)
	return err
}
