package mind

import (
	"strings"

	"mood-relay/internal/storage"
)

// Event is one inbound gateway message, reduced to what the pipeline needs.
type Event struct {
	AuthorID    string
	AuthorIsBot bool
	GuildID     string // empty for a direct message
	ChannelID   string
	Content     string
	Mentioned   bool // the bot was @-mentioned
}

// Outcome is the terminal state of processing one event.
type Outcome int

const (
	// OutcomeIgnored: the event was not for us, or a guard dropped it
	// before any state changed.
	OutcomeIgnored Outcome = iota
	// OutcomeSuppressed: the event was eligible but produced no reply
	// (busy scope, hard lock, backend failure).
	OutcomeSuppressed
	// OutcomeReplied: something was sent, including the soft-lock line.
	OutcomeReplied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSuppressed:
		return "suppressed"
	case OutcomeReplied:
		return "replied"
	default:
		return "unknown"
	}
}

// route decides whether the event deserves a response and under which scope
// key. DMs are always eligible; guild messages only when the bot is
// addressed (mention or trigger name) or the channel is activated.
func (r *Runner) route(ev Event) (scope string, eligible bool) {
	if ev.GuildID == "" {
		return storage.DMScope(ev.AuthorID), true
	}

	if ev.Mentioned {
		return ev.ChannelID, true
	}

	lower := strings.ToLower(ev.Content)
	for _, name := range r.botNames {
		if name != "" && strings.Contains(lower, name) {
			return ev.ChannelID, true
		}
	}

	if r.store.IsChannelActive(ev.GuildID, ev.ChannelID) {
		return ev.ChannelID, true
	}

	return "", false
}
