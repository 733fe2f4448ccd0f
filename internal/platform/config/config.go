// Package config loads the environment-driven settings for cmd/chunksend
// via struct tags, with an optional local .env file for development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds cmd/chunksend's settings.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"local"`

	BotToken     string `env:"BOT_TOKEN,required"`
	TargetChatID int64  `env:"TARGET_CHAT_ID,required"`

	// DefaultChunkSize is the byte budget passed to htmlchunk.Split when a
	// send job doesn't override it. Telegram's own cap is 4096 UTF-16 code
	// units; 4000 bytes leaves headroom for multi-byte runes.
	DefaultChunkSize int `env:"DEFAULT_CHUNK_SIZE" envDefault:"4000"`

	// NoSplitTags are atomic: their subtree is kept in a single chunk
	// whenever it fits the budget at all. Spoilers and code blocks read
	// badly torn in half, so they're the default.
	NoSplitTags []string `env:"NO_SPLIT_TAGS" envSeparator:"," envDefault:"tg-spoiler,pre,code"`

	HealthPort int `env:"HEALTH_PORT" envDefault:"8080"`
}

// Load reads Config from the environment, loading a local .env file first
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	return cfg, nil
}
