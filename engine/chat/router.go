package chat

import (
	"log"
	"math/rand/v2"
	"strings"

	"github.com/Carmen-Shannon/timmy/common"
)

// Action is what the character does in response to a chat reply.
type Action struct {
	// Sequence is the clip sequence to play. Empty means no animation change.
	Sequence []string
	// Text is shown in the transcript. Empty when the reply named a clip.
	Text string
}

// router is the implementation of the Router interface.
type router struct {
	known     func(name string) bool
	talking   func() []string
	reactions Reactions
	rng       *rand.Rand
	logger    *log.Logger
}

// Router turns chat replies into character actions.
//
// A reply whose trimmed text is a known clip name plays that clip. Any other reply is shown as text
// alongside a random talking clip. A Reactions script, when configured, is consulted for replies that
// are not clip names and wins whenever it produces a sequence or text.
type Router interface {
	// Route decides the action for a reply.
	//
	// Parameters:
	//   - reply: the chat reply
	//
	// Returns:
	//   - Action: the action to perform
	Route(reply Reply) Action

	// SetReactions replaces the reactions script. nil disables scripting.
	SetReactions(r Reactions)
}

var _ Router = &router{}

// NewRouter creates a new Router.
//
// Parameters:
//   - known: reports whether a name is a playable clip
//   - talking: returns the current talking set
//   - options: variadic RouterBuilderOption functions to configure the Router
//
// Returns:
//   - Router: the new router
func NewRouter(known func(name string) bool, talking func() []string, options ...RouterBuilderOption) Router {
	r := &router{
		known:   known,
		talking: talking,
	}

	for _, opt := range options {
		opt(r)
	}

	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

func (r *router) Route(reply Reply) Action {
	text := strings.TrimSpace(reply.Response)
	if text == "" {
		r.logger.Printf("chat: empty reply ignored")
		return Action{}
	}

	if r.known != nil && r.known(text) {
		return Action{Sequence: []string{text}}
	}

	var talking []string
	if r.talking != nil {
		talking = r.talking()
	}

	if r.reactions != nil {
		act, ok, err := r.reactions.React(text, talking, r.known)
		if err != nil {
			r.logger.Printf("chat: reactions: %v", err)
		} else if ok {
			return act
		}
	}

	act := Action{Text: text}
	if name, ok := common.PickRandom(r.rng, talking); ok {
		act.Sequence = []string{name}
	}
	return act
}

func (r *router) SetReactions(reactions Reactions) {
	r.reactions = reactions
}
