package model

// model is the implementation of the Model interface.
type model struct {
	name       string
	skinned    bool
	animations []*AnimationClip
	clipIndex  map[string]int
}

// Model defines the interface for a loaded character model.
// A Model holds the named animation clips that a host can play, in the order they appeared in the source file.
// It is produced by the Loader after importing a model file.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Skinned reports whether this model uses skeletal animation.
	//
	// Returns:
	//   - bool: true if the model has bone data
	Skinned() bool

	// Animations retrieves all animation clips bundled with this model.
	//
	// Returns:
	//   - []*AnimationClip: the animation clips
	Animations() []*AnimationClip

	// AnimationCount returns the number of animation clips in this model.
	//
	// Returns:
	//   - int: the clip count
	AnimationCount() int

	// AnimationNames returns the names of all clips in file order.
	//
	// Returns:
	//   - []string: the clip names
	AnimationNames() []string

	// Clip looks up an animation clip by name.
	//
	// Parameters:
	//   - name: the clip name
	//
	// Returns:
	//   - *AnimationClip: the clip, or nil
	//   - bool: false if no clip has that name
	Clip(name string) (*AnimationClip, bool)

	// GetAnimationIndex returns the index of the named clip, or -1 if it does not exist.
	//
	// Parameters:
	//   - name: the clip name
	//
	// Returns:
	//   - int: the clip index or -1
	GetAnimationIndex(name string) int
}

var _ Model = &model{}

// NewModel creates a new Model with the provided options applied.
// The name lookup table is built after all options run, so clips added by WithAnimations are indexed.
// When two clips share a name the first one wins.
//
// Parameters:
//   - options: variadic ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: the configured model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, option := range options {
		option(m)
	}
	m.clipIndex = make(map[string]int, len(m.animations))
	for i, clip := range m.animations {
		if clip == nil {
			continue
		}
		if _, exists := m.clipIndex[clip.Name]; !exists {
			m.clipIndex[clip.Name] = i
		}
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Skinned() bool {
	return m.skinned
}

func (m *model) Animations() []*AnimationClip {
	return m.animations
}

func (m *model) AnimationCount() int {
	return len(m.animations)
}

func (m *model) AnimationNames() []string {
	names := make([]string, 0, len(m.animations))
	for _, clip := range m.animations {
		if clip != nil {
			names = append(names, clip.Name)
		}
	}
	return names
}

func (m *model) Clip(name string) (*AnimationClip, bool) {
	idx, ok := m.clipIndex[name]
	if !ok {
		return nil, false
	}
	return m.animations[idx], true
}

func (m *model) GetAnimationIndex(name string) int {
	if idx, ok := m.clipIndex[name]; ok {
		return idx
	}
	return -1
}
