package serve

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"voice-digest/cmd/voicebot/cmd/common"
	"voice-digest/internal/app"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot",
	Long: `Run the Telegram bot until interrupted

- Requires ASSEMBLY_AI_TOKEN and TELEGRAM_API_TOKEN
- OPENAI_TOKEN enables summaries; without it the raw transcript is sent
- Set ops.listen in the config file to expose /health and /metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := common.Setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if err := cfg.RequireCredentials(true); err != nil {
			return err
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		bot, err := app.InitializeBot(cfg, registry, logger)
		if err != nil {
			logger.Error("failed to start bot", zap.Error(err))
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return bot.Run(ctx)
	},
}
