package chunkbot

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lueurxax/telegram-digest-bot/internal/chunkobserve"
	"github.com/lueurxax/telegram-digest-bot/internal/htmlchunk"
)

// SleepBetweenParts throttles consecutive sends of the same job's chunks,
// matching Telegram's own flood-limit pacing for consecutive messages.
const SleepBetweenParts = 500 * time.Millisecond

// PreviewRunes bounds the log preview of a send job's source text.
const PreviewRunes = 50

// ErrSendChunk wraps a BotAPI.Send failure for one chunk of a job.
var ErrSendChunk = errors.New("chunkbot: failed to send chunk")

// BotAPI is the subset of *tgbotapi.BotAPI the sender needs, so tests can
// supply a fake.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// SendJob names one call to Send: a correlation id for logging, the target
// chat, and the split parameters for that particular payload.
type SendJob struct {
	ID           uuid.UUID
	ChatID       int64
	MaxChunkSize int
	NoSplit      []string
}

// NewSendJob builds a SendJob with a fresh correlation id.
func NewSendJob(chatID int64, maxChunkSize int, noSplit []string) SendJob {
	return SendJob{
		ID:           uuid.New(),
		ChatID:       chatID,
		MaxChunkSize: maxChunkSize,
		NoSplit:      noSplit,
	}
}

// Sender sanitizes, splits, and sends one HTML payload as a sequence of
// Telegram messages.
type Sender struct {
	api    BotAPI
	logger *zerolog.Logger
}

// NewSender returns a Sender that sends through api and logs through logger.
func NewSender(api BotAPI, logger *zerolog.Logger) *Sender {
	return &Sender{api: api, logger: logger}
}

// Send sanitizes payload, splits it to job's budget, and sends each
// resulting chunk as its own message, in order, pausing SleepBetweenParts
// between sends. It returns the Telegram message ids of every chunk it
// managed to send before any error.
//
// If htmlchunk.Split can only produce a best-effort result (a no-split
// subtree exceeded the budget), Send logs a warning and still sends the
// partial chunks rather than failing the whole job.
func (s *Sender) Send(ctx context.Context, job SendJob, payload string) ([]int, error) {
	sanitized := Sanitize(payload)

	start := time.Now()
	chunks, err := htmlchunk.Split(sanitized, job.MaxChunkSize, job.NoSplit)
	chunkobserve.SplitDuration.Observe(time.Since(start).Seconds())

	var exceeded *htmlchunk.SplitExceededTheLimitError

	switch {
	case err == nil:
	case errors.As(err, &exceeded):
		chunkobserve.SplitExceededTotal.Inc()
		chunks = exceeded.Chunks

		s.logger.Warn().
			Str("job_id", job.ID.String()).
			Str("preview", Preview(payload, PreviewRunes)).
			Msg("split result exceeds the configured chunk budget; sending best-effort chunks")
	default:
		return nil, fmt.Errorf("splitting send job %s: %w", job.ID, err)
	}

	chunkobserve.ChunksEmitted.Observe(float64(len(chunks)))

	return s.sendChunks(ctx, job, chunks)
}

func (s *Sender) sendChunks(ctx context.Context, job SendJob, chunks []string) ([]int, error) {
	ids := make([]int, 0, len(chunks))

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return ids, err
		}

		chunkobserve.ChunkBytes.Observe(float64(len(chunk)))

		msg := tgbotapi.NewMessage(job.ChatID, foldWidth(chunk))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true

		sent, err := s.api.Send(msg)
		if err != nil {
			chunkobserve.SendFailuresTotal.WithLabelValues("telegram_api").Inc()
			return ids, fmt.Errorf("%w: chunk %d/%d of job %s: %w", ErrSendChunk, i+1, len(chunks), job.ID, err)
		}

		s.logger.Info().
			Str("job_id", job.ID.String()).
			Int("chunk", i+1).
			Int("total", len(chunks)).
			Int("message_id", sent.MessageID).
			Msg("chunk sent")

		ids = append(ids, sent.MessageID)

		if i < len(chunks)-1 {
			time.Sleep(SleepBetweenParts)
		}
	}

	return ids, nil
}
