// /internal/config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,notEmpty"`
	DeveloperID  string `env:"DEVELOPER_ID"`

	// Trigger names: a message containing any of these (case-insensitive)
	// addresses the bot without a mention.
	BotNames []string `env:"BOT_NAMES" envSeparator:","`

	StoragePath string `env:"STORAGE_PATH" envDefault:"data/memory.enc"`
	// Independent key material for the state file cipher. Must not be the
	// Discord token.
	StorageKey string `env:"STORAGE_KEY,notEmpty"`

	OllamaURL     string        `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel   string        `env:"OLLAMA_MODEL,notEmpty"`
	OllamaTimeout time.Duration `env:"OLLAMA_TIMEOUT" envDefault:"600s"`
	NumPredict    int           `env:"OLLAMA_NUM_PREDICT" envDefault:"350"`

	PersonaPath string `env:"PERSONA_PATH" envDefault:"data/persona.md"`

	InitSlashCommands bool `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("[ERR] Invalid configuration: %v", err)
	}

	for i, n := range cfg.BotNames {
		cfg.BotNames[i] = strings.ToLower(strings.TrimSpace(n))
	}

	return cfg
}
