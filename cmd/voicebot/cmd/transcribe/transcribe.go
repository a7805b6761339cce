package transcribe

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"voice-digest/cmd/voicebot/cmd/common"
	"voice-digest/internal/app"
	"voice-digest/internal/app/api/fetch"
	"voice-digest/internal/app/pipeline"
	"voice-digest/internal/config"
)

var noSummary bool

func init() {
	Cmd.Flags().BoolVar(&noSummary, "no-summary", false, "print the raw transcript without summarizing")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <file-or-url>",
	Short: "Transcribe one audio file and print the result",
	Long: `Transcribe one audio file and print the result

- Runs the same stages as the bot: upload, transcription, summary
- Accepts a local path or an http(s) URL
- Requires ASSEMBLY_AI_TOKEN; OPENAI_TOKEN enables the summary`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := common.Setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if err := cfg.RequireCredentials(false); err != nil {
			return err
		}
		if noSummary {
			cfg.OpenAI.Disabled = true
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		outcome := run(ctx, cfg, args[0], printChat{out: cmd.OutOrStdout()}, logger)
		return outcomeError(outcome)
	},
}

func run(ctx context.Context, cfg *config.Config, source string, chat pipeline.ChatClient, logger *zap.Logger) pipeline.Outcome {
	fetcher := sourceFetcher{remote: fetch.NewClient(cfg.Telegram.DownloadTimeout)}
	p := app.InitializeOneShot(cfg, chat, fetcher, prometheus.NewRegistry(), logger)

	return p.Handle(ctx, pipeline.InboundMessage{
		Kind:   pipeline.KindAudio,
		FileID: source,
	})
}

func outcomeError(outcome pipeline.Outcome) error {
	switch {
	case outcome.Replied():
		return nil
	case outcome.Kind == pipeline.OutcomeNoText:
		return fmt.Errorf("no speech was recognized")
	case outcome.Err != nil:
		return fmt.Errorf("%s stage: %w", outcome.Stage, outcome.Err)
	default:
		return fmt.Errorf("transcription ended without a result (%s)", outcome.Kind)
	}
}
