package main

import (
	"voice-digest/cmd/voicebot/cmd"
)

func main() {
	// Execute the CLI command
	cmd.Execute()
}
