// Package poller waits for a transcription job to reach a terminal state.
//
// Wait polls the job once per Interval. With the defaults it issues at most
// MaxAttempts+1 = 121 lookups, so the effective timeout is roughly two
// minutes plus request latency. A failed lookup aborts immediately; it is not
// counted as an attempt and is not retried.
package poller

import (
	"context"
	"time"

	"go.uber.org/zap"
	"voice-digest/internal/app/api/assemblyai"
	apperrors "voice-digest/internal/app/errors"
	"voice-digest/internal/app/logging"
)

const (
	DefaultInterval    = time.Second
	DefaultMaxAttempts = 120
)

// JobGetter looks up a transcript snapshot by id
type JobGetter interface {
	GetTranscript(ctx context.Context, id string) (*assemblyai.Transcript, error)
}

// SleepFunc pauses for d or until ctx is done, whichever comes first
type SleepFunc func(ctx context.Context, d time.Duration) error

// Config configures a Poller
type Config struct {
	Interval    time.Duration
	MaxAttempts int
	// OnPoll, if set, is called after every successful lookup
	OnPoll func(attempt int, status assemblyai.Status)
}

// Poller drives the poll-until-terminal loop for one job at a time
type Poller struct {
	getter JobGetter
	config Config
	sleep  SleepFunc
	logger *zap.Logger
}

// New creates a Poller. Zero Interval or negative MaxAttempts select the
// defaults.
func New(getter JobGetter, config Config, logger *zap.Logger) *Poller {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if config.MaxAttempts < 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	return &Poller{
		getter: getter,
		config: config,
		sleep:  Sleep,
		logger: logging.OrNop(logger).Named("poller"),
	}
}

// WithSleep replaces the sleep function, for tests
func (p *Poller) WithSleep(sleep SleepFunc) *Poller {
	p.sleep = sleep
	return p
}

// Wait polls job id until it completes, fails or the attempt bound is
// exceeded. It returns the completed snapshot, or an error marked
// ErrTimeout, ErrJobFailed, or the lookup's own error (ErrTransport or
// ErrDeserialization). Cancelling ctx interrupts the wait.
func (p *Poller) Wait(ctx context.Context, id string) (*assemblyai.Transcript, error) {
	start := time.Now()
	logger := p.logger.With(zap.String("transcript_id", id))

	for attempt := 0; ; attempt++ {
		if attempt > p.config.MaxAttempts {
			logger.Warn("timed out waiting for transcript",
				zap.Int("attempts", attempt),
				zap.Duration("elapsed", time.Since(start)),
			)
			return nil, apperrors.Wrapf(apperrors.ErrTimeout, "transcript %s after %d attempts", id, attempt)
		}

		logger.Debug("polling transcript",
			zap.Int("attempt", attempt),
			zap.Duration("elapsed", time.Since(start)),
		)

		transcript, err := p.getter.GetTranscript(ctx, id)
		if err != nil {
			logger.Error("failed to get transcript",
				zap.Int("attempt", attempt),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			return nil, err
		}

		if p.config.OnPoll != nil {
			p.config.OnPoll(attempt, transcript.Status)
		}
		logger.Debug("transcript status", zap.String("status", string(transcript.Status)))

		switch transcript.Status {
		case assemblyai.StatusCompleted:
			return transcript, nil
		case assemblyai.StatusError:
			logger.Warn("transcription failed",
				zap.Duration("elapsed", time.Since(start)),
				zap.String("provider_error", transcript.ErrorOrEmpty()),
			)
			return nil, apperrors.Mark(apperrors.New(transcript.ErrorOrEmpty()), apperrors.ErrJobFailed)
		}

		if err := p.sleep(ctx, p.config.Interval); err != nil {
			return nil, err
		}
	}
}

// Sleep waits for d without blocking cancellation
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
