//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"voice-digest/internal/app/api/assemblyai"
	"voice-digest/internal/app/api/fetch"
	"voice-digest/internal/app/pipeline"
	"voice-digest/internal/app/poller"
	"voice-digest/internal/config"
	"voice-digest/internal/telegram"
)

var transcriptionSet = wire.NewSet(
	provideMetrics,
	provideAssemblyAI,
	providePoller,
	provideSummarizer,
	providePipeline,
	wire.Bind(new(pipeline.Transcriber), new(*assemblyai.Client)),
	wire.Bind(new(pipeline.Waiter), new(*poller.Poller)),
)

// InitializeBot wires the Telegram bot, the pipeline and the ops server
func InitializeBot(cfg *config.Config, registry *prometheus.Registry, logger *zap.Logger) (*Bot, error) {
	wire.Build(
		transcriptionSet,
		provideFetcher,
		provideTelegram,
		provideOpsServer,
		wire.Bind(new(pipeline.Fetcher), new(*fetch.Client)),
		wire.Bind(new(pipeline.ChatClient), new(*telegram.Bot)),
		wire.Struct(new(Bot), "*"),
	)
	return &Bot{}, nil
}

// InitializeOneShot wires a pipeline around a caller-supplied chat client
// and fetcher, for running single files from the command line.
func InitializeOneShot(cfg *config.Config, chat pipeline.ChatClient, fetcher pipeline.Fetcher, registry *prometheus.Registry, logger *zap.Logger) *pipeline.Pipeline {
	wire.Build(transcriptionSet)
	return &pipeline.Pipeline{}
}
