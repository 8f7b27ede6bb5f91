package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithSkinned is an option builder that sets whether the Model uses skeletal animation.
//
// Parameters:
//   - skinned: true if the model has bone data
//
// Returns:
//   - ModelBuilderOption: a function that applies the skinned option to a model
func WithSkinned(skinned bool) ModelBuilderOption {
	return func(m *model) {
		m.skinned = skinned
	}
}

// WithAnimations is an option builder that sets the animation clips of the Model.
//
// Parameters:
//   - animations: the animation clips to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the animations option to a model
func WithAnimations(animations []*AnimationClip) ModelBuilderOption {
	return func(m *model) {
		m.animations = animations
	}
}

// WithClip is an option builder that appends a single named clip to the Model.
// Useful for hand-built models in tools and tests.
//
// Parameters:
//   - name: the clip name
//   - duration: the clip length in seconds
//
// Returns:
//   - ModelBuilderOption: a function that appends the clip to a model
func WithClip(name string, duration float32) ModelBuilderOption {
	return func(m *model) {
		m.animations = append(m.animations, &AnimationClip{Name: name, Duration: duration})
	}
}

// FromImported is an option builder that copies name, skin flag and clips from an ImportedModel.
//
// Parameters:
//   - imported: the imported model data
//
// Returns:
//   - ModelBuilderOption: a function that applies the imported data to a model
func FromImported(imported *ImportedModel) ModelBuilderOption {
	return func(m *model) {
		if imported == nil {
			return
		}
		m.name = imported.Name
		m.skinned = imported.Skinned
		m.animations = imported.Animations
	}
}
