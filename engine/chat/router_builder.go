package chat

import (
	"log"
	"math/rand/v2"
)

// RouterBuilderOption is a functional option for configuring a Router during construction.
type RouterBuilderOption func(*router)

// WithReactions is an option builder that sets the reactions script consulted before the default routing.
func WithReactions(r Reactions) RouterBuilderOption {
	return func(rt *router) {
		rt.reactions = r
	}
}

// WithRand is an option builder that sets the generator used to pick talking clips.
func WithRand(rng *rand.Rand) RouterBuilderOption {
	return func(rt *router) {
		rt.rng = rng
	}
}

// WithRouterLogger is an option builder that sets the logger.
func WithRouterLogger(l *log.Logger) RouterBuilderOption {
	return func(rt *router) {
		rt.logger = l
	}
}
