// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mood-relay/datastore"
	"mood-relay/internal/ai"
	"mood-relay/internal/config"
	"mood-relay/internal/discord"
	"mood-relay/internal/storage"
	v "mood-relay/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	ds, err := datastore.New(cfg.StoragePath, []byte(cfg.StorageKey))
	if err != nil {
		log.Fatal(err)
	}

	store := storage.New(ds)
	provider := ai.DefaultProvider(cfg)

	if p, ok := provider.(*ai.OllamaProvider); ok {
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		if err := p.Ping(pingCtx); err != nil {
			log.Printf("[WARN] Ollama not reachable yet: %v", err)
		}
		pingCancel()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, store, provider); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
