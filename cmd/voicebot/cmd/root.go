package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"voice-digest/cmd/voicebot/cmd/common"
	"voice-digest/cmd/voicebot/cmd/serve"
	"voice-digest/cmd/voicebot/cmd/transcribe"
	"voice-digest/cmd/voicebot/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voicebot",
	Short: "A Telegram bot that transcribes voice messages and replies with a summary",
	Long: `A Telegram bot that transcribes voice and audio messages with AssemblyAI.
- Voice and audio messages are downloaded and uploaded for transcription
- The transcript is summarized with OpenAI when a token is configured
- The summary, or the raw transcript, is sent back as a reply`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&common.Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&common.ConfigFile, "config", "c", "", "YAML tuning file (optional)")
}
