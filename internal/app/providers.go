package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"voice-digest/internal/api/server"
	"voice-digest/internal/app/api/assemblyai"
	"voice-digest/internal/app/api/fetch"
	openaiclient "voice-digest/internal/app/api/openai"
	"voice-digest/internal/app/api/openai/summary"
	"voice-digest/internal/app/metrics"
	"voice-digest/internal/app/pipeline"
	"voice-digest/internal/app/poller"
	"voice-digest/internal/config"
	"voice-digest/internal/telegram"
)

func provideMetrics(registry *prometheus.Registry) *metrics.Metrics {
	return metrics.New(registry)
}

// provideFetcher downloads chat attachments with the download timeout
func provideFetcher(cfg *config.Config) *fetch.Client {
	return fetch.NewClient(cfg.Telegram.DownloadTimeout)
}

func provideAssemblyAI(cfg *config.Config, logger *zap.Logger) *assemblyai.Client {
	return assemblyai.NewClient(assemblyai.Config{
		APIKey:  cfg.Credentials.AssemblyAI,
		BaseURL: cfg.AssemblyAI.BaseURL,
		Timeout: cfg.AssemblyAI.Timeout,
	}, logger)
}

// providePoller feeds every observed status into the poll metrics
func providePoller(client *assemblyai.Client, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) *poller.Poller {
	return poller.New(client, poller.Config{
		Interval:    cfg.Poll.Interval,
		MaxAttempts: cfg.Poll.MaxAttempts,
		OnPoll: func(attempt int, status assemblyai.Status) {
			m.ObservePoll(attempt, string(status))
		},
	}, logger)
}

// provideSummarizer returns nil when no OpenAI token is configured or
// summaries are switched off.
func provideSummarizer(cfg *config.Config, logger *zap.Logger) pipeline.Summarizer {
	if !cfg.SummarizationEnabled() {
		logger.Info("summarization disabled, replies carry raw transcripts")
		return nil
	}
	client := openaiclient.NewClient(cfg.Credentials.OpenAI, cfg.OpenAI.BaseURL)
	return summary.NewSummarizer(client, cfg.OpenAI.Model, logger)
}

func provideTelegram(cfg *config.Config, logger *zap.Logger) (*telegram.Bot, error) {
	return telegram.New(cfg.Credentials.Telegram, telegram.Options{
		APIEndpoint:  cfg.Telegram.APIEndpoint,
		FileEndpoint: cfg.Telegram.FileEndpoint,
		Debug:        cfg.Telegram.Debug,
	}, logger)
}

// provideOpsServer returns nil when no listen address is configured
func provideOpsServer(cfg *config.Config, registry *prometheus.Registry, logger *zap.Logger) *server.Server {
	if cfg.Ops.Listen == "" {
		return nil
	}
	return server.NewServer(server.Config{
		Listen:      cfg.Ops.Listen,
		Environment: cfg.Environment,
	}, registry, logger)
}

func providePipeline(
	chat pipeline.ChatClient,
	fetcher pipeline.Fetcher,
	transcriber pipeline.Transcriber,
	waiter pipeline.Waiter,
	summarizer pipeline.Summarizer,
	m *metrics.Metrics,
	logger *zap.Logger,
) *pipeline.Pipeline {
	opts := []pipeline.Option{
		pipeline.WithMetrics(m),
		pipeline.WithLogger(logger),
	}
	if summarizer != nil {
		opts = append(opts, pipeline.WithSummarizer(summarizer))
	}
	return pipeline.New(chat, fetcher, transcriber, waiter, opts...)
}
