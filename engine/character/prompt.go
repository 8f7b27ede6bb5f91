package character

import (
	"strings"
	"unicode"

	"github.com/Carmen-Shannon/timmy/engine/chat"
)

// DefaultPromptLimit caps the length of a typed message in runes.
const DefaultPromptLimit = 200

// Prompt is the message being typed in the desktop window.
type Prompt struct {
	runes []rune
	limit int
}

// NewPrompt creates an empty prompt holding at most limit runes. A limit below one uses DefaultPromptLimit.
func NewPrompt(limit int) *Prompt {
	if limit < 1 {
		limit = DefaultPromptLimit
	}
	return &Prompt{limit: limit}
}

// Type appends r. Control characters and input past the limit are dropped.
func (p *Prompt) Type(r rune) {
	if unicode.IsControl(r) || len(p.runes) >= p.limit {
		return
	}
	p.runes = append(p.runes, r)
}

// Backspace removes the last rune.
func (p *Prompt) Backspace() {
	if len(p.runes) > 0 {
		p.runes = p.runes[:len(p.runes)-1]
	}
}

// Submit returns the typed text and clears the prompt.
func (p *Prompt) Submit() string {
	text := string(p.runes)
	p.runes = p.runes[:0]
	return text
}

// Text returns the typed text.
func (p *Prompt) Text() string {
	return string(p.runes)
}

// Title formats the transcript and the prompt as a single line for a window title bar.
//
// Parameters:
//   - base: the application name shown first
//   - entries: the transcript entries, oldest first
//   - prompt: the text being typed
//
// Returns:
//   - string: the formatted title
func Title(base string, entries []chat.Entry, prompt string) string {
	parts := []string{base}
	for _, e := range entries {
		parts = append(parts, string(e.Role)+": "+e.Text)
	}
	if prompt != "" {
		parts = append(parts, "> "+prompt)
	}
	return strings.Join(parts, " | ")
}
