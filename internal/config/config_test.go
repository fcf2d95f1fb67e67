package config

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("STORAGE_KEY", "key")
	t.Setenv("OLLAMA_MODEL", "mistral")
	t.Setenv("BOT_NAMES", " Muse , Echo ")

	cfg := New()

	if cfg.StoragePath != "data/memory.enc" {
		t.Errorf("StoragePath = %q", cfg.StoragePath)
	}
	if cfg.OllamaURL != "http://localhost:11434" {
		t.Errorf("OllamaURL = %q", cfg.OllamaURL)
	}
	if cfg.OllamaTimeout != 600*time.Second {
		t.Errorf("OllamaTimeout = %v", cfg.OllamaTimeout)
	}
	if cfg.NumPredict != 350 {
		t.Errorf("NumPredict = %d", cfg.NumPredict)
	}
	if !cfg.InitSlashCommands {
		t.Error("InitSlashCommands should default on")
	}

	// Names come back lowercase and trimmed for matching.
	if len(cfg.BotNames) != 2 || cfg.BotNames[0] != "muse" || cfg.BotNames[1] != "echo" {
		t.Errorf("BotNames = %v", cfg.BotNames)
	}
}
