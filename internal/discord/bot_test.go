package discord

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessagePrefersNewlines(t *testing.T) {
	msg := strings.Repeat("a", 50) + "\n" + strings.Repeat("b", 50)
	chunks := splitMessage(msg, 60)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "a") || strings.Contains(chunks[0], "b") {
		t.Fatalf("first chunk should cut at the newline, got %q", chunks[0])
	}
	if strings.Join(chunks, "") != msg {
		t.Fatal("rejoined chunks differ from the input")
	}
}

func TestSplitMessageKeepsRunesIntact(t *testing.T) {
	// Two-byte runes with an odd byte limit force a cut inside a rune
	// unless the boundary is respected.
	msg := strings.Repeat("é", 100)
	chunks := splitMessage(msg, 51)
	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want several", len(chunks))
	}
	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Fatalf("chunk %d is not valid UTF-8: %q", i, c)
		}
		if len(c) > 51 {
			t.Fatalf("chunk %d is %d bytes, limit 51", i, len(c))
		}
	}
	if strings.Join(chunks, "") != msg {
		t.Fatal("rejoined chunks differ from the input")
	}
}

func TestSplitMessageShortInputUntouched(t *testing.T) {
	chunks := splitMessage("short", 2000)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Fatalf("chunks = %q, want the input unchanged", chunks)
	}
}
