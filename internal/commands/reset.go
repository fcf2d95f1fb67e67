package commands

import "log"

func init() {
	Register(&Command{
		Sort:        100,
		Name:        "reset",
		Description: "Forget our conversation in this channel",
		Category:    "Chat",

		SlashHandler: resetSlashHandler,
	})
}

func resetSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.Interaction

	scope := interactionScope(i)
	userID := invokingUser(i).ID

	ctx.Storage.ResetUser(scope, userID)
	log.Printf("[INFO] Conversation reset: scope=%s user=%s", scope, userID)

	respondEphemeral(s, i, "Conversation reset.")
}
