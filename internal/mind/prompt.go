package mind

import (
	"log"
	"os"
	"strings"

	"mood-relay/internal/storage"
)

// Prompt window bounds. Count is capped first, then the oldest messages are
// dropped until the joined content fits the character budget.
const (
	MaxHistoryMessages = 80
	MaxHistoryChars    = 6000
)

const personaFallback = "You are a roleplay companion.\n" +
	"Maintain a consistent emotional tone influenced subtly by prior interactions.\n" +
	"Do NOT describe or quantify emotions directly.\n"

// loadPersona reads the persona preamble file, falling back to a neutral
// default when it is missing.
func loadPersona(path string) string {
	if path == "" {
		return personaFallback
	}
	body, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[WARN] Persona file %s unreadable (%v), using fallback", path, err)
		return personaFallback
	}
	persona := strings.TrimSpace(string(body))
	if persona == "" {
		return personaFallback
	}
	return persona + "\n"
}

// TrimHistory applies both prompt-window bounds, idempotently.
func TrimHistory(history []storage.Message) []storage.Message {
	if len(history) > MaxHistoryMessages {
		history = history[len(history)-MaxHistoryMessages:]
	}
	for len(history) > 0 && joinedLen(history) > MaxHistoryChars {
		history = history[1:]
	}
	return history
}

// joinedLen is the length of all contents joined with "\n".
func joinedLen(history []storage.Message) int {
	n := 0
	for i, m := range history {
		if i > 0 {
			n++
		}
		n += len(m.Content)
	}
	return n
}

// BuildPrompt assembles persona preamble, transcript and the new user turn.
func BuildPrompt(persona string, history []storage.Message, userPrompt string) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n")
	for i, m := range history {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	b.WriteString("\nuser: ")
	b.WriteString(userPrompt)
	b.WriteString("\nassistant:")
	return b.String()
}
