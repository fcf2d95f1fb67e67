package commands

import (
	"github.com/bwmarrin/discordgo"

	"mood-relay/internal/storage"
)

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// invokingUser works in both guild and DM interactions.
func invokingUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// interactionScope maps an interaction to the conversation scope key:
// the channel for guild interactions, the reserved DM key otherwise.
func interactionScope(i *discordgo.InteractionCreate) string {
	if i.GuildID == "" {
		return storage.DMScope(invokingUser(i).ID)
	}
	return i.ChannelID
}

func isAdmin(ctx *SlashContext) bool {
	s, i := ctx.Session, ctx.Interaction
	if i.Member == nil || i.Member.User == nil {
		return false
	}
	if ctx.Config != nil && ctx.Config.DeveloperID != "" && i.Member.User.ID == ctx.Config.DeveloperID {
		return true
	}

	guild, err := s.State.Guild(i.GuildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(i.GuildID)
		if err != nil || guild == nil {
			return false
		}
	}

	if i.Member.User.ID == guild.OwnerID {
		return true
	}

	for _, roleID := range i.Member.Roles {
		role, _ := s.State.Role(i.GuildID, roleID)
		if role != nil && role.Permissions&(discordgo.PermissionAdministrator|discordgo.PermissionManageChannels) != 0 {
			return true
		}
	}

	return false
}
