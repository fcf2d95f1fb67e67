package mood

import (
	"math/rand"
	"testing"
	"time"
)

func TestComputeDeltaGracePeriod(t *testing.T) {
	for _, text := range []string{"hello", "shut up", "thanks, my bad", ""} {
		d := ComputeDelta(text, 0)
		if !d.IsZero() {
			t.Fatalf("expected zero delta for first contact, got %+v for %q", d, text)
		}
	}
}

func TestComputeDeltaRules(t *testing.T) {
	tests := []struct {
		text       string
		confidence float64
		patience   float64
		affection  float64
	}{
		{"thanks a lot!", 0.02, 0, 0.04},
		{"that was AWESOME", 0.02, 0, 0.04},
		{"shut up already", -0.03, -0.06, 0},
		{"hi", 0, -0.02, 0},
		{"  Hello  ", 0, -0.02, 0},
		{"hi there, how are you", 0, 0, 0}, // greeting rule is exact match only
		{"sorry, didn't mean that", 0, 0.08, 0.05},
		{"thanks, and sorry", 0.02, 0.08, 0.09}, // rules stack
		{"completely neutral sentence", 0, 0, 0},
	}

	for _, tt := range tests {
		d := ComputeDelta(tt.text, 5)
		if d.Confidence != tt.confidence || d.Patience != tt.patience || d.Affection != tt.affection {
			t.Errorf("ComputeDelta(%q) = %+v, want {%v %v %v}",
				tt.text, d, tt.confidence, tt.patience, tt.affection)
		}
	}
}

func TestApplyClamps(t *testing.T) {
	now := time.Now()
	v := &Vector{Confidence: 0.01, Patience: 0.99, Affection: 0.5}

	Apply(v, Delta{Confidence: -0.5, Patience: 0.5, Affection: 0.1}, now)

	if v.Confidence != 0 {
		t.Errorf("confidence not clamped to 0: %v", v.Confidence)
	}
	if v.Patience != 1 {
		t.Errorf("patience not clamped to 1: %v", v.Patience)
	}
	if v.Affection != 0.6 {
		t.Errorf("affection = %v, want 0.6", v.Affection)
	}
	if v.LastInteraction == 0 {
		t.Error("LastInteraction not stamped")
	}
}

func TestDecayMellowsTowardOne(t *testing.T) {
	v := &Vector{Confidence: 0.5, Patience: 0.995, Affection: 1.0}
	Decay(v)

	if v.Confidence != 0.51 {
		t.Errorf("confidence = %v, want 0.51", v.Confidence)
	}
	if v.Patience != 1 {
		t.Errorf("patience = %v, want clamp at 1", v.Patience)
	}
	if v.Affection != 1 {
		t.Errorf("affection = %v, want 1", v.Affection)
	}
}

func TestCooldownRecovery(t *testing.T) {
	now := time.Now()

	v := &Vector{Patience: 0.5, LastInteraction: unix(now.Add(-90 * time.Second))}
	CooldownRecovery(v, now)
	// 90s of silence at 0.04/min = 0.06
	if v.Patience < 0.5599 || v.Patience > 0.5601 {
		t.Errorf("patience = %v, want 0.56", v.Patience)
	}
	if v.LastInteraction != unix(now) {
		t.Error("LastInteraction not advanced")
	}
}

func TestCooldownRecoveryNoOpUnderThirtySeconds(t *testing.T) {
	now := time.Now()
	last := unix(now.Add(-10 * time.Second))

	v := &Vector{Patience: 0.5, LastInteraction: last}
	CooldownRecovery(v, now)

	if v.Patience != 0.5 {
		t.Errorf("patience = %v, want unchanged", v.Patience)
	}
	if v.LastInteraction != last {
		t.Error("LastInteraction should not advance on a no-op")
	}
}

func TestLockThresholds(t *testing.T) {
	tests := []struct {
		patience float64
		want     LockState
	}{
		{0.0, LockHard},
		{0.05, LockHard},
		{0.051, LockSoft},
		{0.15, LockSoft},
		{0.16, LockNone},
		{1.0, LockNone},
	}
	for _, tt := range tests {
		v := &Vector{Patience: tt.patience}
		if got := Lock(v); got != tt.want {
			t.Errorf("Lock(patience=%v) = %v, want %v", tt.patience, got, tt.want)
		}
	}
}

func TestFieldsStayInRangeUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Now()
	v := DefaultVector(now)

	for i := 0; i < 2000; i++ {
		switch rng.Intn(3) {
		case 0:
			d := Delta{
				Confidence: rng.Float64()*2 - 1,
				Patience:   rng.Float64()*2 - 1,
				Affection:  rng.Float64()*2 - 1,
			}
			now = now.Add(time.Duration(rng.Intn(120)) * time.Second)
			Apply(v, d, now)
		case 1:
			Decay(v)
		case 2:
			now = now.Add(time.Duration(rng.Intn(300)) * time.Second)
			CooldownRecovery(v, now)
		}

		for name, f := range map[string]float64{
			"confidence": v.Confidence,
			"patience":   v.Patience,
			"affection":  v.Affection,
		} {
			if f < 0 || f > 1 {
				t.Fatalf("op %d: %s = %v out of [0,1]", i, name, f)
			}
		}
	}
}
