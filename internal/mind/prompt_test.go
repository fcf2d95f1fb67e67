package mind

import (
	"strings"
	"testing"

	"mood-relay/internal/storage"
)

func repeatMessages(n, contentLen int) []storage.Message {
	msgs := make([]storage.Message, n)
	for i := range msgs {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		msgs[i] = storage.Message{Role: role, Content: strings.Repeat("x", contentLen)}
	}
	return msgs
}

func TestTrimHistoryCountBound(t *testing.T) {
	trimmed := TrimHistory(repeatMessages(200, 50))

	if len(trimmed) > MaxHistoryMessages {
		t.Fatalf("got %d messages, want <= %d", len(trimmed), MaxHistoryMessages)
	}
	if joinedLen(trimmed) > MaxHistoryChars {
		t.Fatalf("joined length %d, want <= %d", joinedLen(trimmed), MaxHistoryChars)
	}
}

func TestTrimHistoryCharBound(t *testing.T) {
	// 80 messages of 100 chars blow the character budget after the count cap.
	trimmed := TrimHistory(repeatMessages(120, 100))

	if len(trimmed) > MaxHistoryMessages {
		t.Fatalf("got %d messages, want <= %d", len(trimmed), MaxHistoryMessages)
	}
	if joinedLen(trimmed) > MaxHistoryChars {
		t.Fatalf("joined length %d, want <= %d", joinedLen(trimmed), MaxHistoryChars)
	}
	// Oldest messages go first; the newest must survive.
	if len(trimmed) == 0 {
		t.Fatal("trim removed everything")
	}
}

func TestTrimHistoryIdempotent(t *testing.T) {
	once := TrimHistory(repeatMessages(120, 100))
	twice := TrimHistory(once)

	if len(once) != len(twice) {
		t.Fatalf("second trim changed length: %d -> %d", len(once), len(twice))
	}
}

func TestTrimHistoryShortInputUntouched(t *testing.T) {
	msgs := repeatMessages(10, 20)
	trimmed := TrimHistory(msgs)
	if len(trimmed) != 10 {
		t.Fatalf("short history was trimmed: %d", len(trimmed))
	}
}

func TestBuildPrompt(t *testing.T) {
	history := []storage.Message{
		{Role: "user", Content: "how are you"},
		{Role: "assistant", Content: "well enough"},
	}

	prompt := BuildPrompt("PERSONA\n", history, "and now?")

	if !strings.HasPrefix(prompt, "PERSONA\n") {
		t.Errorf("prompt missing persona preamble: %q", prompt)
	}
	if !strings.Contains(prompt, "user: how are you\nassistant: well enough") {
		t.Errorf("prompt missing transcript: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "\nuser: and now?\nassistant:") {
		t.Errorf("prompt missing new turn: %q", prompt)
	}
}

func TestBuildPromptEmptyHistory(t *testing.T) {
	prompt := BuildPrompt("PERSONA\n", nil, "hello")
	if !strings.HasSuffix(prompt, "\nuser: hello\nassistant:") {
		t.Errorf("prompt = %q", prompt)
	}
}
