package commands

import "log"

func init() {
	Register(&Command{
		Sort:        200,
		Name:        "activate",
		Description: "Let the bot reply in this channel without being addressed",
		Category:    "Administration",

		SlashHandler: activateSlashHandler,
	})
}

func activateSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction

	if i.GuildID == "" {
		respondEphemeral(s, i, "This command only makes sense on a server.")
		return
	}
	if !isAdmin(ctx) {
		respondEphemeral(s, i, "You need channel management rights for that.")
		return
	}

	ctx.Storage.ActivateChannel(i.GuildID, i.ChannelID)
	log.Printf("[INFO] Channel activated: guild=%s channel=%s", i.GuildID, i.ChannelID)

	respondEphemeral(s, i, "Channel activated.")
}
