package character

import (
	"log"
	"strings"

	"github.com/Carmen-Shannon/timmy/engine/animation"
	"github.com/Carmen-Shannon/timmy/engine/chat"
)

// character is the implementation of the Character interface.
type character struct {
	controller animation.Controller
	host       animation.AnimationHost

	client     chat.Client
	router     chat.Router
	reactions  chat.Reactions
	transcript chat.Transcript

	clickSequence []string
	waitAnimation string
	clipNames     func() []string

	catalogPath   string
	reactionsPath string

	post   func(func())
	say    func(text string)
	logger *log.Logger
}

// Character ties the animation controller to user input and the chat service.
//
// All methods except the SendAsync completion must be called on the goroutine that owns the controller.
// Chat replies arrive on a worker goroutine and are handed back through the configured post function.
type Character interface {
	// Start enters the initial animation state once the host has its clips. Calling it again, as a
	// reconnecting host does, restarts the active clip so the host shows it.
	//
	// Returns:
	//   - error: ErrHostNotReady if the controller has no host
	Start() error

	// Click plays the click sequence.
	Click()

	// Send records the user's message, plays the wait animation and asks the chat service for a reply.
	//
	// Parameters:
	//   - message: the user's message; blank messages are ignored
	Send(message string)

	// HandleReply applies a chat reply. A reply naming a clip plays it; any other text is shown with a
	// talking clip. A failed request is logged and leaves playback untouched.
	//
	// Parameters:
	//   - reply: the chat reply
	//   - err: the request error, if any
	HandleReply(reply chat.Reply, err error)

	// PlayClip plays a single clip on demand.
	//
	// Parameters:
	//   - name: the clip to play
	PlayClip(name string)

	// PlayClipIndex plays the clip at index in clip order. Out of range indices are ignored.
	//
	// Parameters:
	//   - index: the zero-based clip index
	PlayClipIndex(index int)

	// Reload re-reads a changed catalog or reactions file.
	//
	// Parameters:
	//   - path: the changed file
	//
	// Returns:
	//   - error: a load error; the previous catalog or script stays active
	Reload(path string) error

	// Controller returns the animation controller.
	Controller() animation.Controller

	// Transcript returns the chat transcript.
	Transcript() chat.Transcript

	// Close stops the chat client.
	Close()
}

var _ Character = &character{}

// NewCharacter creates a new Character driving controller.
//
// Parameters:
//   - controller: the animation controller
//   - host: the host the controller drives, consulted for clip names
//   - options: variadic CharacterBuilderOption functions to configure the Character
//
// Returns:
//   - Character: the new character
func NewCharacter(controller animation.Controller, host animation.AnimationHost, options ...CharacterBuilderOption) Character {
	c := &character{
		controller:    controller,
		host:          host,
		clickSequence: []string{"greeting", "ask"},
		waitAnimation: "focus",
	}

	for _, opt := range options {
		opt(c)
	}

	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.post == nil {
		c.post = func(fn func()) { fn() }
	}
	if c.clipNames == nil {
		c.clipNames = func() []string { return c.controller.Catalog().Names() }
	}
	if c.transcript == nil {
		c.transcript, _ = chat.NewTranscript()
	}
	if c.router == nil {
		c.router = chat.NewRouter(c.isClip, c.talking,
			chat.WithReactions(c.reactions),
			chat.WithRouterLogger(c.logger),
		)
	}

	return c
}

func (c *character) Start() error {
	if !c.controller.Started() {
		return c.controller.Start()
	}
	if active := c.controller.State().ActiveClipName; active != "" {
		c.controller.PlayAnimation(active)
	}
	return nil
}

func (c *character) Click() {
	c.controller.PlaySequence(c.clickSequence)
}

func (c *character) Send(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}

	c.record(chat.Entry{Role: chat.RoleUser, Text: message})

	if c.client == nil {
		c.logger.Printf("character: no chat client configured, dropping %q", message)
		return
	}

	if c.waitAnimation != "" {
		c.controller.PlayAnimation(c.waitAnimation)
	}

	c.client.SendAsync(message, func(reply chat.Reply, err error) {
		c.post(func() { c.HandleReply(reply, err) })
	})
}

func (c *character) HandleReply(reply chat.Reply, err error) {
	if err != nil {
		c.logger.Printf("character: chat: %v", err)
		return
	}

	act := c.router.Route(reply)
	if act.Text != "" {
		c.record(chat.Entry{Role: chat.RoleBot, Text: act.Text})
		if c.say != nil {
			c.say(act.Text)
		}
	}
	if len(act.Sequence) > 0 {
		c.controller.PlaySequence(act.Sequence)
	}
}

func (c *character) PlayClip(name string) {
	c.controller.PlayAnimation(name)
}

func (c *character) PlayClipIndex(index int) {
	names := c.clipNames()
	if index < 0 || index >= len(names) {
		return
	}
	c.controller.PlayAnimation(names[index])
}

func (c *character) Reload(path string) error {
	switch path {
	case c.catalogPath:
		cat, err := animation.LoadCatalog(path)
		if err != nil {
			return err
		}
		c.controller.SetCatalog(cat)
		c.logger.Printf("character: catalog reloaded from %s", path)
	case c.reactionsPath:
		r, err := chat.LoadReactions(path)
		if err != nil {
			return err
		}
		c.router.SetReactions(r)
		c.logger.Printf("character: reactions reloaded from %s", path)
	}
	return nil
}

func (c *character) Controller() animation.Controller {
	return c.controller
}

func (c *character) Transcript() chat.Transcript {
	return c.transcript
}

func (c *character) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

func (c *character) record(e chat.Entry) {
	if err := c.transcript.Add(e); err != nil {
		c.logger.Printf("character: transcript: %v", err)
	}
}

func (c *character) isClip(name string) bool {
	if c.host != nil && c.host.HasClip(name) {
		return true
	}
	return c.controller.Catalog().Has(name)
}

func (c *character) talking() []string {
	return c.controller.Catalog().TalkingAnimations()
}
