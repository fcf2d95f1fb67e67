// /internal/commands/context.go
package commands

import (
	"mood-relay/internal/config"
	"mood-relay/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type SlashContext struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Storage     *storage.Storage
	Config      *config.Config
}
