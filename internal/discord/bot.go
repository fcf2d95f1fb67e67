package discord

import (
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"mood-relay/internal/ai"
	"mood-relay/internal/commands"
	"mood-relay/internal/config"
	"mood-relay/internal/mind"
	"mood-relay/internal/storage"
)

// Bot is the Discord-facing shell around the mind pipeline.
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	storage *storage.Storage
	runner  *mind.Runner
	ctx     context.Context
}

// StartBot opens the gateway session and blocks until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage, provider ai.Provider) error {
	b := &Bot{
		cfg:     cfg,
		storage: store,
		ctx:     ctx,
	}
	if err := b.run(ctx, cfg.DiscordToken, provider); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string, provider ai.Provider) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg
	b.runner = mind.NewRunner(b.cfg, b.storage, provider, &sessionGateway{dg: dg})

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
}

// onReady registers slash commands and logs the session identity.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(); err != nil {
			log.Println("[ERR] Error registering slash commands:", err)
		}
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	log.Printf("[INFO] ✅ Discord bot %v is running.", r.User.Username)
}

// onMessageCreate maps a gateway message to a pipeline event and processes
// it off the handler goroutine, keeping the typing indicator alive while
// generation runs.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	mentioned := false
	for _, user := range m.Mentions {
		if user.ID == s.State.User.ID {
			mentioned = true
			break
		}
	}

	ev := mind.Event{
		AuthorID:    m.Author.ID,
		AuthorIsBot: m.Author.Bot,
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		Content:     m.Content,
		Mentioned:   mentioned,
	}

	go func() {
		outcome := b.runner.Process(b.ctx, ev)
		if outcome == mind.OutcomeReplied {
			log.Printf("[INFO] Replied in channel %s to %s", m.ChannelID, m.Author.Username)
		}
	}()
}

// onInteractionCreate dispatches slash commands to the registry.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	cmdName := i.ApplicationCommandData().Name
	cmd, ok := commands.Get(cmdName)
	if !ok || cmd.SlashHandler == nil {
		log.Printf("[WARN] Unknown command: %s", cmdName)
		return
	}

	cmd.SlashHandler(&commands.SlashContext{
		Session:     s,
		Interaction: i,
		Storage:     b.storage,
		Config:      b.cfg,
	})
}

// registerCommands syncs the global slash command set.
func (b *Bot) registerCommands() error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	var wanted []*discordgo.ApplicationCommand
	for _, cmd := range commands.All() {
		if cmd.SlashHandler == nil {
			continue
		}
		wanted = append(wanted, &discordgo.ApplicationCommand{
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     cmd.SlashOptions,
		})
	}

	if _, err := b.dg.ApplicationCommandBulkOverwrite(appID, "", wanted); err != nil {
		return fmt.Errorf("bulk overwrite: %w", err)
	}
	log.Printf("[INFO] Registered %d slash commands", len(wanted))
	return nil
}

// sessionGateway adapts the discordgo session to the pipeline's Gateway.
type sessionGateway struct {
	dg *discordgo.Session
}

// Typing keeps the indicator alive until stop is called.
func (g *sessionGateway) Typing(channelID string) (stop func()) {
	done := make(chan struct{})
	go keepTyping(g.dg, channelID, done)
	return func() { close(done) }
}

func (g *sessionGateway) Send(channelID, text string) error {
	for _, chunk := range splitMessage(text, 2000) {
		if _, err := g.dg.ChannelMessageSend(channelID, chunk); err != nil {
			return err
		}
		time.Sleep(200 * time.Millisecond)
	}
	return nil
}

// splitMessage breaks text into Discord-sized chunks along line boundaries.
func splitMessage(msg string, limit int) []string {
	var result []string
	for len(msg) > limit {
		cut := lastNewlineBefore(msg, limit)
		result = append(result, msg[:cut])
		msg = msg[cut:]
	}
	if msg != "" {
		result = append(result, msg)
	}
	return result
}

func lastNewlineBefore(s string, limit int) int {
	for i := limit - 1; i > 0; i-- {
		if s[i] == '\n' {
			return i
		}
	}
	// No newline: back the cut off to a rune boundary so a multi-byte
	// character is never split across chunks.
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return cut
}

// keepTyping shows the typing indicator until done is closed. Best effort.
func keepTyping(s *discordgo.Session, channelID string, done <-chan struct{}) {
	_ = s.ChannelTyping(channelID)
	ticker := time.NewTicker(8 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			_ = s.ChannelTyping(channelID)
		}
	}
}
