package animation

import (
	"log"
	"math/rand/v2"
)

// ControllerBuilderOption is a functional option for configuring a Controller during construction.
type ControllerBuilderOption func(*controller)

// WithCatalog is an option builder that sets the policy table.
//
// Parameters:
//   - c: the catalog to use
//
// Returns:
//   - ControllerBuilderOption: a function that applies the catalog to a controller
func WithCatalog(c Catalog) ControllerBuilderOption {
	return func(ctl *controller) {
		ctl.catalog = c
	}
}

// WithLogger is an option builder that sets the logger used for absorbed errors.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ControllerBuilderOption: a function that applies the logger to a controller
func WithLogger(l *log.Logger) ControllerBuilderOption {
	return func(ctl *controller) {
		ctl.logger = l
	}
}

// WithRand is an option builder that sets the generator used to choose idle and talking variants.
//
// Parameters:
//   - r: the random generator
//
// Returns:
//   - ControllerBuilderOption: a function that applies the generator to a controller
func WithRand(r *rand.Rand) ControllerBuilderOption {
	return func(ctl *controller) {
		ctl.rng = r
	}
}
