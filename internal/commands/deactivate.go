package commands

import "log"

func init() {
	Register(&Command{
		Sort:        210,
		Name:        "deactivate",
		Description: "Stop auto-replies in this channel",
		Category:    "Administration",

		SlashHandler: deactivateSlashHandler,
	})
}

func deactivateSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction

	if i.GuildID == "" {
		respondEphemeral(s, i, "This command only makes sense on a server.")
		return
	}
	if !isAdmin(ctx) {
		respondEphemeral(s, i, "You need channel management rights for that.")
		return
	}

	ctx.Storage.DeactivateChannel(i.GuildID, i.ChannelID)
	log.Printf("[INFO] Channel deactivated: guild=%s channel=%s", i.GuildID, i.ChannelID)

	respondEphemeral(s, i, "Channel deactivated.")
}
