package animator

import "github.com/Carmen-Shannon/timmy/engine/model"

// MixerBuilderOption is a functional option for configuring a Mixer during construction.
type MixerBuilderOption func(*mixer)

// WithModel is an option builder that assigns the Model whose clips the Mixer blends.
// This calls SetModel internally, which indexes the model's clips by name.
//
// Parameters:
//   - m: the Model to mix
//
// Returns:
//   - MixerBuilderOption: a function that applies the model option to a mixer
func WithModel(m model.Model) MixerBuilderOption {
	return func(mx *mixer) {
		mx.SetModel(m)
	}
}

// WithFinishedCallback is an option builder that registers the finished callback at construction.
//
// Parameters:
//   - fn: the callback raised when the active clip completes
//
// Returns:
//   - MixerBuilderOption: a function that applies the callback to a mixer
func WithFinishedCallback(fn func()) MixerBuilderOption {
	return func(mx *mixer) {
		mx.onFinished = fn
	}
}
