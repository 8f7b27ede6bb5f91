package character

import (
	"log"
	"slices"

	"github.com/Carmen-Shannon/timmy/engine/chat"
)

// CharacterBuilderOption is a functional option for configuring a Character during construction.
type CharacterBuilderOption func(*character)

// WithClient sets the chat client messages are sent with. Without one, Send only records the message.
func WithClient(client chat.Client) CharacterBuilderOption {
	return func(c *character) {
		c.client = client
	}
}

// WithReactions sets the script consulted before the default reply routing.
func WithReactions(r chat.Reactions) CharacterBuilderOption {
	return func(c *character) {
		c.reactions = r
	}
}

// WithTranscript sets the transcript chat messages are recorded in.
func WithTranscript(t chat.Transcript) CharacterBuilderOption {
	return func(c *character) {
		c.transcript = t
	}
}

// WithClickSequence sets the sequence played when the character is clicked.
//
// Parameters:
//   - names: the clip names, played in order
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithClickSequence(names ...string) CharacterBuilderOption {
	return func(c *character) {
		c.clickSequence = slices.Clone(names)
	}
}

// WithWaitAnimation sets the clip played while a chat reply is pending. Empty disables it.
func WithWaitAnimation(name string) CharacterBuilderOption {
	return func(c *character) {
		c.waitAnimation = name
	}
}

// WithClipNames sets the source of the clip order used by PlayClipIndex.
func WithClipNames(fn func() []string) CharacterBuilderOption {
	return func(c *character) {
		c.clipNames = fn
	}
}

// WithReloadPaths sets the catalog and reactions files Reload responds to.
//
// Parameters:
//   - catalogPath: the catalog file, or empty
//   - reactionsPath: the reactions script, or empty
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithReloadPaths(catalogPath, reactionsPath string) CharacterBuilderOption {
	return func(c *character) {
		c.catalogPath = catalogPath
		c.reactionsPath = reactionsPath
	}
}

// WithPost sets the function that hands chat completions back to the controller's goroutine.
func WithPost(post func(func())) CharacterBuilderOption {
	return func(c *character) {
		c.post = post
	}
}

// WithSay sets the function that displays reply text.
func WithSay(say func(text string)) CharacterBuilderOption {
	return func(c *character) {
		c.say = say
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) CharacterBuilderOption {
	return func(c *character) {
		c.logger = l
	}
}
