// Package mood models per-user and per-channel affect state. All mutation
// helpers clamp fields to [0,1]; time is passed in so callers and tests own
// the clock.
package mood

import (
	"strings"
	"time"
)

// Lock thresholds on Patience. Absolute values, not relative to history.
const (
	HardLock = 0.05 // total silence
	SoftLock = 0.15 // one fixed de-escalation line, then stop
)

// DecayStep is added to every field once per processed event, modelling
// gradual mellowing even without explicit triggers.
const DecayStep = 0.01

// Cooldown recovery: after CooldownMinSilence of quiet, Patience regains
// RecoveryPerMinute for each elapsed minute.
const (
	CooldownMinSilence = 30 * time.Second
	RecoveryPerMinute  = 0.04
)

// Vector is the affect state attached to one user in one scope, or to a
// whole channel when shared mood is enabled there.
type Vector struct {
	Confidence      float64 `json:"confidence"`
	Patience        float64 `json:"patience"`
	Affection       float64 `json:"affection"`
	LastInteraction float64 `json:"last_interaction"` // unix seconds
}

// DefaultVector returns the neutral starting mood.
func DefaultVector(now time.Time) *Vector {
	return &Vector{
		Confidence:      0.5,
		Patience:        0.5,
		Affection:       0.5,
		LastInteraction: unix(now),
	}
}

// Delta is a signed adjustment produced by ComputeDelta.
type Delta struct {
	Confidence float64
	Patience   float64
	Affection  float64
}

// IsZero reports whether no rule fired.
func (d Delta) IsZero() bool {
	return d.Confidence == 0 && d.Patience == 0 && d.Affection == 0
}

var (
	praiseWords   = []string{"thanks", "love", "cool", "nice", "awesome"}
	insultWords   = []string{"your stupid", "shut up", "hate you"}
	greetingWords = []string{"hi", "hello", "hey"}
	apologyWords  = []string{"sorry", "apologize", "my bad", "didn't mean"}
)

// ComputeDelta scans text against the trigger word lists and sums the
// effects of every rule that fires. The first interaction of a brand-new
// user or scope is a grace period: no delta at all.
func ComputeDelta(text string, interactions int) Delta {
	var d Delta
	if interactions < 1 {
		return d
	}

	lower := strings.ToLower(text)

	if containsAny(lower, praiseWords) {
		d.Affection += 0.04
		d.Confidence += 0.02
	}

	if containsAny(lower, insultWords) {
		d.Patience -= 0.06
		d.Confidence -= 0.03
	}

	// Bare greetings wear thin; exact match only, a greeting inside a
	// longer message costs nothing.
	trimmed := strings.TrimSpace(lower)
	for _, g := range greetingWords {
		if trimmed == g {
			d.Patience -= 0.02
			break
		}
	}

	if containsAny(lower, apologyWords) {
		d.Patience += 0.08
		d.Affection += 0.05
	}

	return d
}

// Apply adds the delta to each field, clamped, and stamps LastInteraction.
func Apply(v *Vector, d Delta, now time.Time) {
	v.Confidence = clamp01(v.Confidence + d.Confidence)
	v.Patience = clamp01(v.Patience + d.Patience)
	v.Affection = clamp01(v.Affection + d.Affection)
	v.LastInteraction = unix(now)
}

// Decay nudges every field toward 1.0 by DecayStep. Applied once per
// processed event, after the delta.
func Decay(v *Vector) {
	v.Confidence = clamp01(v.Confidence + DecayStep)
	v.Patience = clamp01(v.Patience + DecayStep)
	v.Affection = clamp01(v.Affection + DecayStep)
}

// CooldownRecovery restores Patience linearly with elapsed silence. No-op
// when less than CooldownMinSilence has passed since the last interaction.
func CooldownRecovery(v *Vector, now time.Time) {
	elapsed := unix(now) - v.LastInteraction
	if elapsed < CooldownMinSilence.Seconds() {
		return
	}

	recovery := elapsed / 60 * RecoveryPerMinute
	v.Patience = clamp01(v.Patience + recovery)
	v.LastInteraction = unix(now)
}

// LockState classifies Patience against the lock thresholds.
type LockState int

const (
	LockNone LockState = iota
	LockSoft
	LockHard
)

// Lock returns the lock state for the vector's current Patience.
func Lock(v *Vector) LockState {
	switch {
	case v.Patience <= HardLock:
		return LockHard
	case v.Patience <= SoftLock:
		return LockSoft
	default:
		return LockNone
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func unix(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
