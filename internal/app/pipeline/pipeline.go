// Package pipeline turns inbound voice and audio messages into transcript
// replies. Messages are handled strictly one at a time; a failing stage
// abandons only the current message.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"voice-digest/internal/app/api/assemblyai"
	"voice-digest/internal/app/api/openai/summary"
	apperrors "voice-digest/internal/app/errors"
	"voice-digest/internal/app/logging"
	"voice-digest/internal/app/metrics"
)

// ChatClient is the chat-platform collaborator
type ChatClient interface {
	// FilePath resolves a file identifier to a download path. An empty path
	// with a nil error means the platform has no file to offer.
	FilePath(ctx context.Context, fileID string) (string, error)
	// FileURL builds the download URL for a resolved path
	FileURL(path string) string
	// Reply sends text as a reply to msg in its chat
	Reply(ctx context.Context, msg InboundMessage, text string) error
}

// Fetcher downloads a resource
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Transcriber submits audio for transcription
type Transcriber interface {
	Upload(ctx context.Context, audio []byte) (*assemblyai.Upload, error)
	CreateTranscript(ctx context.Context, audioURL string) (*assemblyai.Transcript, error)
}

// Waiter blocks until a transcript job reaches a terminal state
type Waiter interface {
	Wait(ctx context.Context, id string) (*assemblyai.Transcript, error)
}

// Summarizer condenses a transcript
type Summarizer interface {
	Summarize(ctx context.Context, text string) (*summary.Result, error)
}

// Pipeline wires the stages together
type Pipeline struct {
	chat        ChatClient
	fetcher     Fetcher
	transcriber Transcriber
	waiter      Waiter
	summarizer  Summarizer
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithSummarizer enables summarization. Without it every reply is the raw
// transcript.
func WithSummarizer(s Summarizer) Option {
	return func(p *Pipeline) {
		p.summarizer = s
	}
}

// WithMetrics records stage metrics into m
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a pipeline
func New(chat ChatClient, fetcher Fetcher, transcriber Transcriber, waiter Waiter, opts ...Option) *Pipeline {
	p := &Pipeline{
		chat:        chat,
		fetcher:     fetcher,
		transcriber: transcriber,
		waiter:      waiter,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics == nil {
		p.metrics = metrics.New(nil)
	}
	p.logger = logging.OrNop(p.logger).Named("pipeline")
	return p
}

// Run handles messages from events until the channel is closed or ctx is
// cancelled. Individual message failures never end the loop.
func (p *Pipeline) Run(ctx context.Context, events <-chan InboundMessage) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			p.Handle(ctx, msg)
		}
	}
}

// Handle runs one message through every stage and reports the outcome
func (p *Pipeline) Handle(ctx context.Context, msg InboundMessage) Outcome {
	p.metrics.MessagesTotal.WithLabelValues(msg.Kind.String()).Inc()

	if msg.Kind != KindAudio && msg.Kind != KindVoice {
		return Outcome{Kind: OutcomeIgnored}
	}

	start := time.Now()
	run := &run{
		Pipeline: p,
		msg:      msg,
		outcome:  Outcome{TraceID: uuid.NewString()},
	}
	run.logger = p.logger.With(
		zap.String("trace_id", run.outcome.TraceID),
		zap.Int64("chat_id", msg.ChatID),
		zap.Int("message_id", msg.MessageID),
		zap.String("file_id", msg.FileID),
		zap.String("kind", msg.Kind.String()),
	)

	outcome := run.execute(ctx)

	p.metrics.MessageOutcomes.WithLabelValues(string(outcome.Kind)).Inc()
	p.metrics.MessageDuration.Observe(time.Since(start).Seconds())
	return outcome
}

// run carries the state of one message through the stages
type run struct {
	*Pipeline
	msg     InboundMessage
	outcome Outcome
	logger  *zap.Logger
}

func (r *run) execute(ctx context.Context) Outcome {
	filePath, err := r.resolve(ctx)
	if err != nil {
		return r.drop(StageResolve, err)
	}

	r.logger.Info("getting file", zap.String("file_path", filePath))
	audio, err := r.fetch(ctx, filePath)
	if err != nil {
		return r.drop(StageFetch, err)
	}

	r.logger.Info("uploading file", zap.Int("bytes", len(audio)))
	upload, err := r.upload(ctx, audio)
	if err != nil {
		return r.drop(StageUpload, err)
	}

	r.logger.Info("requesting transcript", zap.String("upload_url", upload.UploadURL))
	created, err := r.create(ctx, upload.UploadURL)
	if err != nil {
		return r.drop(StageCreate, err)
	}
	r.outcome.TranscriptID = created.ID
	r.logger = r.logger.With(zap.String("transcript_id", created.ID))
	r.logger.Info("created transcript")

	final, err := r.poll(ctx, created.ID)
	if err != nil {
		return r.drop(StagePoll, err)
	}

	text := strings.TrimSpace(final.TextOrEmpty())
	if text == "" {
		r.logger.Info("transcript has no text, nothing to reply")
		r.outcome.Kind = OutcomeNoText
		return r.outcome
	}

	reply, source := text, OutcomeRepliedTranscript
	if candidate, ok := r.summarize(ctx, text); ok {
		reply, source = candidate, OutcomeRepliedSummary
	}

	return r.reply(ctx, reply, source)
}

func (r *run) resolve(ctx context.Context) (string, error) {
	defer r.timeStage(StageResolve)()

	path, err := r.chat.FilePath(ctx, r.msg.FileID)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", apperrors.ErrMissingFilePath
	}
	return path, nil
}

func (r *run) fetch(ctx context.Context, filePath string) ([]byte, error) {
	defer r.timeStage(StageFetch)()

	audio, err := r.fetcher.Fetch(ctx, r.chat.FileURL(filePath))
	if err != nil {
		return nil, err
	}
	r.metrics.AudioBytesTotal.Add(float64(len(audio)))
	return audio, nil
}

func (r *run) upload(ctx context.Context, audio []byte) (*assemblyai.Upload, error) {
	defer r.timeStage(StageUpload)()
	return r.transcriber.Upload(ctx, audio)
}

func (r *run) create(ctx context.Context, uploadURL string) (*assemblyai.Transcript, error) {
	defer r.timeStage(StageCreate)()
	return r.transcriber.CreateTranscript(ctx, uploadURL)
}

func (r *run) poll(ctx context.Context, id string) (*assemblyai.Transcript, error) {
	defer r.timeStage(StagePoll)()
	return r.waiter.Wait(ctx, id)
}

// summarize returns the trimmed first candidate, or false when the bot
// should fall back to the raw transcript.
func (r *run) summarize(ctx context.Context, text string) (string, bool) {
	if r.summarizer == nil {
		return "", false
	}

	r.logger.Info("requesting summary", zap.Int("text_length", len(text)))
	stop := r.timeStage(StageSummarize)
	result, err := r.summarizer.Summarize(ctx, text)
	stop()

	if err != nil {
		r.metrics.StageErrors.WithLabelValues(string(StageSummarize), apperrors.Kind(err)).Inc()
		r.logger.Warn("failed to get summary, sending raw transcript", zap.Error(err))
		r.outcome.Stage, r.outcome.Err = StageSummarize, err
		return "", false
	}

	first, ok := lo.First(result.Choices)
	candidate := strings.TrimSpace(first.Text)
	if !ok || candidate == "" {
		r.logger.Info("summary has no usable candidate, sending raw transcript",
			zap.Int("choices", len(result.Choices)),
		)
		return "", false
	}

	r.logger.Info("got summary", zap.Int("summary_length", len(candidate)))
	return candidate, true
}

func (r *run) reply(ctx context.Context, text string, source OutcomeKind) Outcome {
	label := "transcript"
	if source == OutcomeRepliedSummary {
		label = "summary"
	}

	r.logger.Info("sending reply", zap.String("source", label))
	stop := r.timeStage(StageReply)
	err := r.chat.Reply(ctx, r.msg, text)
	stop()

	if err != nil {
		r.metrics.RepliesTotal.WithLabelValues(label, "error").Inc()
		r.metrics.StageErrors.WithLabelValues(string(StageReply), apperrors.Kind(err)).Inc()
		r.logger.Error("failed to send reply", zap.Error(err))
		r.outcome.Kind, r.outcome.Stage, r.outcome.Err = OutcomeReplyFailed, StageReply, err
		return r.outcome
	}

	r.metrics.RepliesTotal.WithLabelValues(label, "ok").Inc()
	r.outcome.Kind = source
	r.outcome.Reply = text
	return r.outcome
}

// drop abandons the message after a failed stage. Nothing is sent to the
// user; the failure is only logged.
func (r *run) drop(stage Stage, err error) Outcome {
	kind := apperrors.Kind(err)
	r.metrics.StageErrors.WithLabelValues(string(stage), kind).Inc()

	if stage == StageResolve && kind == "missing_file_path" {
		r.logger.Info("no file path for message, skipping")
	} else {
		r.logger.Error("stage failed, dropping message",
			zap.String("stage", string(stage)),
			zap.String("error_kind", kind),
			zap.Error(err),
		)
	}

	r.outcome.Kind, r.outcome.Stage, r.outcome.Err = OutcomeDropped, stage, err
	return r.outcome
}

// timeStage starts a latency measurement; call the result when done
func (r *run) timeStage(stage Stage) func() {
	start := time.Now()
	return func() {
		r.metrics.StageLatency.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
	}
}
