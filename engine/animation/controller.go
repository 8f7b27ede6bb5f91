package animation

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"slices"

	"github.com/Carmen-Shannon/timmy/common"
)

// Mode is the coarse playback state of a Controller.
type Mode int

const (
	// ModeIdle means a resting clip is playing and nothing is queued.
	ModeIdle Mode = iota
	// ModeTalking means a speaking clip is playing and nothing is queued.
	ModeTalking
	// ModeSequenced means an externally requested sequence still has queued entries.
	ModeSequenced
	// ModeOneShot means a clip outside the idle and talking sets is playing with nothing queued.
	ModeOneShot
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeTalking:
		return "talking"
	case ModeSequenced:
		return "sequenced"
	case ModeOneShot:
		return "one-shot"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// PlaybackState is a snapshot of the controller's playback bookkeeping.
type PlaybackState struct {
	// ActiveClipName is the clip most recently faded in, or empty before the first play.
	ActiveClipName string
	// PendingQueue holds the not yet played remainder of the current sequence.
	PendingQueue []string
	// LastPlayedName is the clip most recently started.
	LastPlayedName string
}

// controller is the implementation of the Controller interface.
type controller struct {
	host    AnimationHost
	catalog Catalog
	logger  *log.Logger
	rng     *rand.Rand

	started bool
	state   PlaybackState
}

// Controller decides which clip plays next and issues cross-fades to an AnimationHost.
//
// Externally requested sequences always run to completion before autonomous behaviour resumes. Once the
// queue is empty, a finished clip is followed by a random idle variant if an idle clip was playing, a
// random talking variant if a talking clip was playing, and otherwise by the same clip. A candidate
// whose policy does not loop forever is replaced by a random idle clip.
//
// A Controller is not safe for concurrent use. Every method, including the host's finished callback,
// must run on the same goroutine. The engine tick loop provides that guarantee.
type Controller interface {
	// Start marks the host as ready and enters the initial state. If playback was requested before
	// Start, the pending queue is played instead of a random idle clip. Calling Start again is a no-op.
	//
	// Returns:
	//   - error: ErrHostNotReady if the controller has no host
	Start() error

	// Started reports whether Start has completed.
	Started() bool

	// PlayAnimation cross-fades to the named clip and restarts it from time zero, even if it is already
	// active. Unknown names are logged and replaced by a random idle clip. Before Start the name is
	// stored as a one-entry queue.
	//
	// Parameters:
	//   - name: the clip to play
	PlayAnimation(name string)

	// PlaySequence replaces the pending queue with names and immediately plays the first entry.
	// An empty sequence runs the idle and talking fallback directly.
	//
	// Parameters:
	//   - names: the clips to play in order
	PlaySequence(names []string)

	// OnClipFinished is the completion handler raised by the host when the active clip has played through.
	OnClipFinished()

	// State returns a copy of the current playback state.
	//
	// Returns:
	//   - PlaybackState: the snapshot
	State() PlaybackState

	// Mode returns the coarse playback state.
	//
	// Returns:
	//   - Mode: the current mode
	Mode() Mode

	// Catalog returns the policy table in use.
	Catalog() Catalog

	// SetCatalog swaps the policy table. The active clip keeps playing; the new policies apply from the
	// next decision. A nil catalog is ignored.
	//
	// Parameters:
	//   - c: the new catalog
	SetCatalog(c Catalog)
}

var _ Controller = &controller{}

// NewController creates a new Controller driving the given host and subscribes to its finished signal.
// Unless overridden by options the controller uses DefaultCatalog, log.Default and a randomly seeded
// generator.
//
// Parameters:
//   - host: the AnimationHost to drive
//   - options: the functional options used to configure the controller
//
// Returns:
//   - Controller: the new controller
func NewController(host AnimationHost, options ...ControllerBuilderOption) Controller {
	c := &controller{
		host: host,
	}

	for _, opt := range options {
		opt(c)
	}

	if c.catalog == nil {
		c.catalog = DefaultCatalog()
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if host != nil {
		host.OnClipFinished(c.OnClipFinished)
	}

	return c
}

func (c *controller) Start() error {
	if c.host == nil {
		return ErrHostNotReady
	}
	if c.started {
		return nil
	}
	c.started = true

	if len(c.state.PendingQueue) > 0 {
		c.advance()
		return nil
	}
	c.playRandomIdle()
	return nil
}

func (c *controller) Started() bool {
	return c.started
}

func (c *controller) PlayAnimation(name string) {
	if !c.started {
		if len(c.state.PendingQueue) > 0 {
			c.logger.Printf("animation: sequence superseded, dropping %v", c.state.PendingQueue)
		}
		c.logger.Printf("animation: play %q deferred: %v", name, ErrHostNotReady)
		c.state.PendingQueue = []string{name}
		return
	}
	c.play(name)
}

func (c *controller) PlaySequence(names []string) {
	if len(c.state.PendingQueue) > 0 {
		c.logger.Printf("animation: sequence superseded, dropping %v", c.state.PendingQueue)
	}
	c.state.PendingQueue = slices.Clone(names)

	if !c.started {
		c.logger.Printf("animation: sequence %v deferred: %v", names, ErrHostNotReady)
		return
	}
	c.advance()
}

func (c *controller) OnClipFinished() {
	if !c.started {
		return
	}
	c.advance()
}

func (c *controller) State() PlaybackState {
	s := c.state
	s.PendingQueue = slices.Clone(c.state.PendingQueue)
	return s
}

func (c *controller) Mode() Mode {
	active := c.state.ActiveClipName
	switch {
	case len(c.state.PendingQueue) > 0:
		return ModeSequenced
	case active == "" || c.catalog.IsIdle(active):
		return ModeIdle
	case c.catalog.IsTalking(active):
		return ModeTalking
	default:
		return ModeOneShot
	}
}

func (c *controller) Catalog() Catalog {
	return c.catalog
}

func (c *controller) SetCatalog(cat Catalog) {
	if cat == nil {
		return
	}
	c.catalog = cat
}

// advance consumes the next queued clip, or falls back to idle and talking selection when the queue is empty.
func (c *controller) advance() {
	if len(c.state.PendingQueue) > 0 {
		next := c.state.PendingQueue[0]
		c.state.PendingQueue = c.state.PendingQueue[1:]
		if len(c.state.PendingQueue) == 0 {
			c.state.PendingQueue = nil
		}
		c.play(next)
		return
	}

	last := c.state.LastPlayedName
	candidate := last
	switch {
	case c.catalog.IsIdle(last):
		candidate = c.pick(c.catalog.IdleAnimations(), last)
	case c.catalog.IsTalking(last):
		candidate = c.pick(c.catalog.TalkingAnimations(), last)
	}

	if c.catalog.PolicyFor(candidate).LoopForever {
		c.play(candidate)
		return
	}
	c.playRandomIdle()
}

// pick returns a random member of names, or fallback when names is empty.
func (c *controller) pick(names []string, fallback string) string {
	if name, ok := common.PickRandom(c.rng, names); ok {
		return name
	}
	return fallback
}

func (c *controller) playRandomIdle() {
	name, ok := common.PickRandom(c.rng, c.catalog.IdleAnimations())
	if !ok {
		c.logger.Printf("animation: no idle animations configured")
		return
	}
	c.play(name)
}

// play starts name, replacing an unknown name with a random idle clip. An unknown idle clip is dropped.
func (c *controller) play(name string) {
	err := c.crossFade(name)
	if err == nil {
		return
	}
	c.logger.Printf("animation: %v", err)
	if !errors.Is(err, ErrUnknownAnimation) {
		return
	}

	idle, ok := common.PickRandom(c.rng, c.catalog.IdleAnimations())
	if !ok || idle == name {
		return
	}
	if err := c.crossFade(idle); err != nil {
		c.logger.Printf("animation: idle fallback: %v", err)
	}
}

func (c *controller) crossFade(name string) error {
	if !c.host.HasClip(name) {
		return fmt.Errorf("play %q: %w", name, ErrUnknownAnimation)
	}
	if err := c.host.CrossFadeTo(name, c.catalog.PolicyFor(name).CrossFadeDuration); err != nil {
		return fmt.Errorf("play %q: %w", name, err)
	}
	c.state.ActiveClipName = name
	c.state.LastPlayedName = name
	return nil
}
