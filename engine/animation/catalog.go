package animation

import (
	"fmt"
	"slices"
)

// DefaultCrossFadeDuration is the fade length used for clips that have no explicit policy.
const DefaultCrossFadeDuration float32 = 0.5

// AnimationPolicy describes how a named clip is played.
type AnimationPolicy struct {
	// Name is the clip name the policy applies to.
	Name string `yaml:"name"`

	// LoopForever makes the controller re-trigger the clip each time it finishes instead of returning to idle.
	LoopForever bool `yaml:"loopForever"`

	// CrossFadeDuration is the fade length in seconds used when the clip is started.
	CrossFadeDuration float32 `yaml:"crossFade"`
}

// catalog is the implementation of the Catalog interface.
type catalog struct {
	policies         map[string]AnimationPolicy
	order            []string
	idle, talking    []string
	defaultCrossFade float32
}

// Catalog is the static playback policy table consulted by the controller.
//
// A Catalog is immutable once built. Lookups never fail: names without an explicit policy resolve to a
// one-shot policy using the catalog's default cross-fade duration.
type Catalog interface {
	// PolicyFor returns the policy for the named clip.
	//
	// Parameters:
	//   - name: the clip name
	//
	// Returns:
	//   - AnimationPolicy: the explicit policy, or the default one-shot policy for unknown names
	PolicyFor(name string) AnimationPolicy

	// IdleAnimations returns the interchangeable resting clips in configuration order.
	//
	// Returns:
	//   - []string: a copy of the idle set
	IdleAnimations() []string

	// TalkingAnimations returns the interchangeable speaking clips in configuration order.
	//
	// Returns:
	//   - []string: a copy of the talking set
	TalkingAnimations() []string

	// IsIdle reports whether name belongs to the idle set.
	IsIdle(name string) bool

	// IsTalking reports whether name belongs to the talking set.
	IsTalking(name string) bool

	// Has reports whether name has an explicit policy.
	Has(name string) bool

	// Names returns the names with an explicit policy in the order they were added.
	Names() []string

	// DefaultCrossFade returns the fade duration used for names without an explicit policy.
	DefaultCrossFade() float32

	// Validate checks the catalog for configuration errors.
	//
	// Returns:
	//   - error: an error wrapping ErrInvalidCatalog, or nil
	Validate() error
}

var _ Catalog = &catalog{}

// NewCatalog creates a new Catalog with the given options.
// Policies added more than once keep the last value but their first position in Names.
//
// Parameters:
//   - options: the functional options used to populate the catalog
//
// Returns:
//   - Catalog: the new catalog
func NewCatalog(options ...CatalogBuilderOption) Catalog {
	c := &catalog{
		policies:         make(map[string]AnimationPolicy),
		defaultCrossFade: DefaultCrossFadeDuration,
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// DefaultCatalog returns the catalog for the stock character model.
func DefaultCatalog() Catalog {
	return NewCatalog(
		WithPolicy("idle", true, 0.5),
		WithPolicy("idle_n", true, 0.5),
		WithPolicy("idle_s", true, 0.5),
		WithPolicy("greeting", false, 0.2),
		WithPolicy("focus", false, 0.5),
		WithPolicy("walk", true, 0.5),
		WithPolicy("dance", true, 0.5),
		WithPolicy("ask", false, 0.5),
		WithPolicy("talking1", false, 0.5),
		WithPolicy("talking2", false, 0.5),
		WithPolicy("yawn", false, 0.5),
		WithIdleAnimations("idle", "idle_s", "idle_n"),
		WithTalkingAnimations("talking1", "talking2"),
	)
}

func (c *catalog) PolicyFor(name string) AnimationPolicy {
	if p, ok := c.policies[name]; ok {
		return p
	}
	return AnimationPolicy{Name: name, CrossFadeDuration: c.defaultCrossFade}
}

func (c *catalog) IdleAnimations() []string {
	return slices.Clone(c.idle)
}

func (c *catalog) TalkingAnimations() []string {
	return slices.Clone(c.talking)
}

func (c *catalog) IsIdle(name string) bool {
	return slices.Contains(c.idle, name)
}

func (c *catalog) IsTalking(name string) bool {
	return slices.Contains(c.talking, name)
}

func (c *catalog) Has(name string) bool {
	_, ok := c.policies[name]
	return ok
}

func (c *catalog) Names() []string {
	return slices.Clone(c.order)
}

func (c *catalog) DefaultCrossFade() float32 {
	return c.defaultCrossFade
}

func (c *catalog) Validate() error {
	if len(c.idle) == 0 {
		return fmt.Errorf("%w: idle set is empty", ErrInvalidCatalog)
	}
	if c.defaultCrossFade < 0 {
		return fmt.Errorf("%w: negative default cross-fade %v", ErrInvalidCatalog, c.defaultCrossFade)
	}
	for _, name := range c.order {
		p := c.policies[name]
		if name == "" {
			return fmt.Errorf("%w: policy with empty name", ErrInvalidCatalog)
		}
		if p.CrossFadeDuration < 0 {
			return fmt.Errorf("%w: negative cross-fade %v for %q", ErrInvalidCatalog, p.CrossFadeDuration, name)
		}
	}
	for _, name := range append(c.IdleAnimations(), c.talking...) {
		if name == "" {
			return fmt.Errorf("%w: empty name in idle or talking set", ErrInvalidCatalog)
		}
	}
	return nil
}
