// Package app assembles the bot from configuration.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"voice-digest/internal/api/server"
	"voice-digest/internal/app/pipeline"
	"voice-digest/internal/config"
	"voice-digest/internal/telegram"
)

const shutdownTimeout = 5 * time.Second

// Bot is the fully wired long-running service
type Bot struct {
	Config   *config.Config
	Telegram *telegram.Bot
	Pipeline *pipeline.Pipeline
	// Ops is nil when no ops listen address is configured
	Ops    *server.Server
	Logger *zap.Logger
}

// Run serves the ops endpoints and processes Telegram updates until ctx is
// cancelled. Cancellation is a clean shutdown and returns nil.
func (b *Bot) Run(ctx context.Context) error {
	if b.Ops != nil {
		if err := b.Ops.Start(); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = b.Ops.Shutdown(shutdownCtx)
		}()
	}

	b.Logger.Info("waiting for messages",
		zap.Int("update_timeout", b.Config.Telegram.UpdateTimeout),
		zap.Bool("summaries", b.Config.SummarizationEnabled()),
	)
	err := b.Pipeline.Run(ctx, b.Telegram.Updates(ctx, b.Config.Telegram.UpdateTimeout))
	if ctx.Err() != nil {
		b.Logger.Info("shutting down", zap.Error(ctx.Err()))
		return nil
	}
	return err
}
