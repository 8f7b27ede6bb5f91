package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithPalette sets the colors clips tint the stage with.
func WithPalette(p Palette) RendererBuilderOption {
	return func(r *renderer) {
		r.palette = p
	}
}

// WithWeights sets the source of clip blend weights, typically Mixer.Weights.
//
// Parameters:
//   - weights: returns clip name to blend weight
//
// Returns:
//   - RendererBuilderOption: a function that applies the weights source to a renderer
func WithWeights(weights func() map[string]float32) RendererBuilderOption {
	return func(r *renderer) {
		r.weights = weights
	}
}
