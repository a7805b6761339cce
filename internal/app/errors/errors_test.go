package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Mark(cause, ErrTransport)

	assert.True(t, stderrors.Is(err, ErrTransport))
	assert.False(t, stderrors.Is(err, ErrTimeout))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "transport failure: dial tcp: connection refused", err.Error())
	assert.Nil(t, Mark(nil, ErrTransport))
}

func TestTransportDropsRequestURL(t *testing.T) {
	cause := &url.Error{
		Op:  "Get",
		URL: "https://api.telegram.org/file/bot123:SECRET/voice/a.oga",
		Err: context.DeadlineExceeded,
	}

	err := Transport(cause)

	assert.True(t, stderrors.Is(err, ErrTransport))
	assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
	assert.NotContains(t, err.Error(), "SECRET")
	assert.Equal(t, "transport failure: Get api.telegram.org: context deadline exceeded", err.Error())
}

func TestTransportKeepsOtherErrors(t *testing.T) {
	err := Transport(fmt.Errorf("status 502"))

	assert.True(t, stderrors.Is(err, ErrTransport))
	assert.Equal(t, "transport failure: status 502", err.Error())
	assert.Nil(t, Transport(nil))
}

func TestWrapKeepsKind(t *testing.T) {
	err := Wrap(Mark(New("bad audio"), ErrJobFailed), "transcript abc")

	assert.True(t, stderrors.Is(err, ErrJobFailed))
	assert.Contains(t, err.Error(), "bad audio")
}

func TestKind(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "none"},
		{"transport", Mark(New("x"), ErrTransport), "transport"},
		{"deserialization", Mark(New("x"), ErrDeserialization), "deserialization"},
		{"timeout", Wrapf(ErrTimeout, "after %d attempts", 121), "timeout"},
		{"job failed", Mark(New("bad audio"), ErrJobFailed), "job_failed"},
		{"summarization", Mark(New("x"), ErrSummarization), "summarization"},
		{"missing file path", ErrMissingFilePath, "missing_file_path"},
		{"canceled", fmt.Errorf("sleep: %w", context.Canceled), "canceled"},
		{"other", fmt.Errorf("boom"), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Kind(tc.err))
		})
	}
}
