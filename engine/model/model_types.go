package model

// AnimationClip describes a single named animation bundled with a model (idle, greeting, talking1, ...).
// Only the data needed to schedule playback is kept; keyframes stay with the renderer that evaluates them.
type AnimationClip struct {
	// Name is the animation identifier used to look the clip up.
	Name string

	// Duration is the total length of the animation in seconds.
	Duration float32

	// ChannelCount is the number of animated node channels (translation, rotation, scale or weights).
	ChannelCount int
}

// ImportedModel represents a model loaded from an external format.
// This is the universal format that importers produce before a Model is built from it.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Skinned reports whether the source file declared at least one skin.
	Skinned bool

	// Animations are all animation clips bundled with the model, in file order.
	Animations []*AnimationClip
}
