// Command chunksend reads HTML from stdin (or its first argument) and sends
// it to a Telegram chat as a sequence of within-budget messages, splitting
// via internal/htmlchunk the way the library is meant to be used end to end.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/chunkbot"
	"github.com/lueurxax/telegram-digest-bot/internal/chunkobserve"
	"github.com/lueurxax/telegram-digest-bot/internal/platform/config"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := run(&logger); err != nil {
		logger.Fatal().Err(err).Msg("chunksend failed")
	}
}

func run(logger *zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	payload, err := readPayload()
	if err != nil {
		return err
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := chunkobserve.NewServer(cfg.HealthPort, logger)

	go func() {
		if err := health.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("health server exited")
		}
	}()

	sender := chunkbot.NewSender(api, logger)
	job := chunkbot.NewSendJob(cfg.TargetChatID, cfg.DefaultChunkSize, cfg.NoSplitTags)

	ids, err := sender.Send(ctx, job, payload)
	if err != nil {
		return err
	}

	logger.Info().
		Str("job_id", job.ID.String()).
		Int("messages_sent", len(ids)).
		Msg("send job complete")

	return nil
}

func readPayload() (string, error) {
	if len(os.Args) > 1 {
		return os.Args[1], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
