// Package telegram connects the pipeline to the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	apperrors "voice-digest/internal/app/errors"
	"voice-digest/internal/app/logging"
	"voice-digest/internal/app/pipeline"
)

// MaxMessageLength is the Bot API limit for one text message, in UTF-16
// code units
const MaxMessageLength = 4096

// Options configures the bot connection
type Options struct {
	// APIEndpoint and FileEndpoint are format strings taking the token and
	// the method or file path. Empty values select the public Bot API.
	APIEndpoint  string
	FileEndpoint string
	HTTPClient   *http.Client
	Debug        bool
}

// Bot implements pipeline.ChatClient on top of tgbotapi
type Bot struct {
	api          *tgbotapi.BotAPI
	fileEndpoint string
	logger       *zap.Logger
}

// New connects to the Bot API and verifies the token with getMe
func New(token string, opts Options, logger *zap.Logger) (*Bot, error) {
	if opts.APIEndpoint == "" {
		opts.APIEndpoint = tgbotapi.APIEndpoint
	}
	if opts.FileEndpoint == "" {
		opts.FileEndpoint = tgbotapi.FileEndpoint
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, opts.APIEndpoint, opts.HTTPClient)
	if err != nil {
		return nil, apperrors.Wrap(err, "connect to telegram")
	}
	api.Debug = opts.Debug

	logger = logging.OrNop(logger).Named("telegram")
	logger.Info("authorized on telegram", zap.String("username", api.Self.UserName))

	return &Bot{
		api:          api,
		fileEndpoint: opts.FileEndpoint,
		logger:       logger,
	}, nil
}

// FilePath resolves fileID through getFile
func (b *Bot) FilePath(ctx context.Context, fileID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", apperrors.Transport(err)
	}
	return file.FilePath, nil
}

// FileURL builds the download URL for a path returned by FilePath
func (b *Bot) FileURL(path string) string {
	return fmt.Sprintf(b.fileEndpoint, b.api.Token, path)
}

// Reply sends text as a reply to msg. Text longer than MaxMessageLength is
// sent as several consecutive replies.
func (b *Bot) Reply(ctx context.Context, msg pipeline.InboundMessage, text string) error {
	for _, part := range SplitMessage(text, MaxMessageLength) {
		if err := ctx.Err(); err != nil {
			return err
		}
		reply := tgbotapi.NewMessage(msg.ChatID, part)
		reply.ReplyToMessageID = msg.MessageID
		if _, err := b.api.Send(reply); err != nil {
			return apperrors.Transport(err)
		}
	}
	return nil
}

// Updates long-polls for updates and delivers the message ones until ctx
// is cancelled. The returned channel is unbuffered, so the next update is
// not taken until the previous one has been consumed.
func (b *Bot) Updates(ctx context.Context, timeout int) <-chan pipeline.InboundMessage {
	config := tgbotapi.NewUpdate(0)
	config.Timeout = timeout
	updates := b.api.GetUpdatesChan(config)

	out := make(chan pipeline.InboundMessage)
	go func() {
		defer close(out)
		defer b.api.StopReceivingUpdates()

		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				msg, ok := Classify(update)
				if !ok {
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Classify converts an update into a pipeline message. Updates that carry
// no message report false; messages without audio or voice are returned
// with KindIgnored.
func Classify(update tgbotapi.Update) (pipeline.InboundMessage, bool) {
	message := update.Message
	if message == nil || message.Chat == nil {
		return pipeline.InboundMessage{}, false
	}

	msg := pipeline.InboundMessage{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		Kind:      pipeline.KindIgnored,
	}

	switch {
	case message.Audio != nil:
		msg.Kind = pipeline.KindAudio
		msg.FileID = message.Audio.FileID
	case message.Voice != nil:
		msg.Kind = pipeline.KindVoice
		msg.FileID = message.Voice.FileID
	}

	return msg, true
}

// SplitMessage cuts text into parts of at most limit UTF-16 code units,
// the unit Telegram measures message length in, breaking at the last
// whitespace inside the window when there is one.
func SplitMessage(text string, limit int) []string {
	runes := []rune(text)
	if fitRunes(runes, limit) == len(runes) {
		return []string{text}
	}

	var parts []string
	for {
		n := fitRunes(runes, limit)
		if n == len(runes) {
			break
		}
		cut := n
		if i := lastSpace(runes[:n]); i > 0 {
			cut = i
		}
		if cut == 0 {
			cut = 1
		}
		parts = append(parts, strings.TrimSpace(string(runes[:cut])))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " \n\t"))
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

// fitRunes returns how many leading runes fit into limit UTF-16 code units
func fitRunes(runes []rune, limit int) int {
	units := 0
	for i, r := range runes {
		units += utf16.RuneLen(r)
		if units > limit {
			return i
		}
	}
	return len(runes)
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		switch runes[i] {
		case ' ', '\n', '\t':
			return i
		}
	}
	return -1
}
