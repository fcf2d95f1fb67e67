package commands

import "log"

func init() {
	Register(&Command{
		Sort:        220,
		Name:        "channel-mood",
		Description: "Toggle one shared mood for this channel instead of per-user moods",
		Category:    "Administration",

		SlashHandler: channelMoodSlashHandler,
	})
}

func channelMoodSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction

	if i.GuildID == "" {
		respondEphemeral(s, i, "This command only makes sense on a server.")
		return
	}
	if !isAdmin(ctx) {
		respondEphemeral(s, i, "You need channel management rights for that.")
		return
	}

	enabled := ctx.Storage.ToggleChannelMood(i.ChannelID)
	log.Printf("[INFO] Channel mood toggled: channel=%s enabled=%v", i.ChannelID, enabled)

	if enabled {
		respondEphemeral(s, i, "Channel mood enabled: everyone here shares one room temperature now.")
	} else {
		respondEphemeral(s, i, "Channel mood disabled: back to per-user moods.")
	}
}
