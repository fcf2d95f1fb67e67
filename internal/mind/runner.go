// Package mind is the response-eligibility and mood-state engine: it turns
// one inbound gateway event into a routing decision, a per-scope admission
// decision, a mood update, a lock decision, and, when everything passes,
// one generation call and one reply.
package mind

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"mood-relay/internal/ai"
	"mood-relay/internal/config"
	"mood-relay/internal/mood"
	"mood-relay/internal/storage"
)

// MaxBotReplies caps consecutive bot-to-bot replies per scope before the
// loop guard silences the channel.
const MaxBotReplies = 3

// SoftLockReply is the only error-like text end users ever see.
const SoftLockReply = "…I don’t like how this is going. Let’s reset the tone."

// Gateway is the slice of the chat platform the pipeline needs.
type Gateway interface {
	Send(channelID, text string) error
	// Typing shows the platform's typing indicator for a channel until the
	// returned stop func is called. Best effort.
	Typing(channelID string) (stop func())
}

// Runner owns the admission set and drives the event pipeline. One Runner
// per process.
type Runner struct {
	store    *storage.Storage
	provider ai.Provider
	gateway  Gateway
	botNames []string
	persona  string

	mu     sync.Mutex
	active map[string]struct{} // scopes mid-flight

	genMu   sync.Mutex    // at most one backend call process-wide
	limiter *rate.Limiter // backend overload protection

	now func() time.Time
}

// NewRunner wires the pipeline. The persona preamble is read once at
// startup.
func NewRunner(cfg *config.Config, store *storage.Storage, provider ai.Provider, gateway Gateway) *Runner {
	return &Runner{
		store:    store,
		provider: provider,
		gateway:  gateway,
		botNames: cfg.BotNames,
		persona:  loadPersona(cfg.PersonaPath),
		active:   make(map[string]struct{}),
		limiter:  rate.NewLimiter(rate.Every(2*time.Second), 3),
		now:      time.Now,
	}
}

// Process runs the full pipeline for one event. Safe to call from any
// goroutine; events for a scope already mid-flight are dropped, not queued.
func (r *Runner) Process(ctx context.Context, ev Event) Outcome {
	content := strings.TrimSpace(ev.Content)
	if content == "" {
		return OutcomeIgnored
	}

	scope, eligible := r.route(ev)
	if !eligible {
		return OutcomeIgnored
	}

	if !r.admit(scope) {
		log.Printf("[DEBUG] Scope %s busy, dropping event", scope)
		return OutcomeSuppressed
	}
	defer r.release(scope)

	// Anti feedback-loop: other bots get at most MaxBotReplies in a row.
	if ev.AuthorIsBot && r.store.BotReplyCount(scope) >= MaxBotReplies {
		log.Printf("[INFO] Bot loop guard silencing scope %s", scope)
		return OutcomeIgnored
	}

	// Only now is the event actually ours; dropped events never flash the
	// typing indicator.
	stopTyping := r.gateway.Typing(ev.ChannelID)
	defer stopTyping()

	history := r.store.GetHistory(scope, ev.AuthorID)
	interactions := r.store.InteractionCount(scope, ev.AuthorID)

	v := r.store.UpdateMood(scope, ev.AuthorID, func(v *mood.Vector) {
		// Recovery first: it has to see the silence since the previous
		// interaction, before Apply stamps the timestamp.
		mood.CooldownRecovery(v, r.now())
		delta := mood.ComputeDelta(content, interactions)
		mood.Apply(v, delta, r.now())
		mood.Decay(v)
	})

	switch mood.Lock(&v) {
	case mood.LockHard:
		log.Printf("[INFO] Hard lock in scope %s (patience=%.2f), total silence", scope, v.Patience)
		return OutcomeSuppressed
	case mood.LockSoft:
		log.Printf("[INFO] Soft lock in scope %s (patience=%.2f)", scope, v.Patience)
		if err := r.gateway.Send(ev.ChannelID, SoftLockReply); err != nil {
			log.Printf("[ERR] Failed to send soft lock reply: %v", err)
			return OutcomeSuppressed
		}
		return OutcomeReplied
	}

	r.store.AddMessage(scope, "user", content, ev.AuthorID)

	prompt := BuildPrompt(r.persona, TrimHistory(history), content)

	reply, err := r.generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("[WARN] Generation cancelled for scope %s", scope)
		} else {
			log.Printf("[ERR] Generation failed for scope %s: %v", scope, err)
		}
		return OutcomeSuppressed
	}
	if reply == "" {
		log.Printf("[WARN] Empty generation for scope %s", scope)
		return OutcomeSuppressed
	}

	// Commit phase: the reply is actually going out, so the loop counter
	// moves here and only here.
	if ev.AuthorIsBot {
		r.store.IncrementBotReplies(scope)
	} else {
		r.store.ResetBotReplies(scope)
	}

	if err := r.gateway.Send(ev.ChannelID, reply); err != nil {
		log.Printf("[ERR] Failed to send reply to %s: %v", ev.ChannelID, err)
		return OutcomeSuppressed
	}

	r.store.AddMessage(scope, "assistant", reply, ev.AuthorID)
	return OutcomeReplied
}

// generate serializes backend calls process-wide and rate-limits them to
// keep a resource-constrained local model breathing.
func (r *Runner) generate(ctx context.Context, prompt string) (string, error) {
	r.genMu.Lock()
	defer r.genMu.Unlock()

	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reply, err := r.provider.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// admit reserves a scope for exclusive processing.
func (r *Runner) admit(scope string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.active[scope]; busy {
		return false
	}
	r.active[scope] = struct{}{}
	return true
}

// release frees the scope on every exit path, cancellation included.
func (r *Runner) release(scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, scope)
}
