package animator

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/timmy/common"
	"github.com/Carmen-Shannon/timmy/engine/animation"
	"github.com/Carmen-Shannon/timmy/engine/model"
)

// clipState holds the playback state for a single clip on the mixer timeline.
// Every clip plays once and clamps on its final pose.
type clipState struct {
	clip *model.AnimationClip

	time, weight            float32
	playing, finished       bool
	fading                  bool
	fadeFrom, fadeTo        float32
	fadeDuration, fadeTotal float32
}

// mixer is the implementation of the Mixer interface.
type mixer struct {
	mu *sync.Mutex

	model  model.Model
	clips  map[string]*clipState
	order  []string
	active string

	onFinished func()
}

// Mixer advances the clips of a single model on a shared timeline and blends between them.
//
// A Mixer is the in-process AnimationHost. CrossFadeTo restarts the target clip from time zero and fades
// its weight in while the previously active clip fades out. Update advances every playing clip, clamps
// clips that reach their end, and raises the finished callback once when the active clip completes.
//
// Mixer is safe for concurrent use. The finished callback is invoked from Update on the caller's goroutine
// after the internal lock has been released, so the callback may call back into the mixer.
type Mixer interface {
	animation.AnimationHost

	// Update advances the timeline by deltaTime seconds.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last update in seconds
	Update(deltaTime float32)

	// SetModel replaces the clips with those of m and clears all playback state.
	//
	// Parameters:
	//   - m: the model whose clips are mixed
	SetModel(m model.Model)

	// Model returns the model whose clips are mixed, or nil.
	Model() model.Model

	// ClipNames returns the mixable clip names in model order.
	ClipNames() []string

	// Active returns the clip most recently faded in, or empty.
	Active() string

	// ClipTime returns the playback position of the named clip in seconds, or 0 for unknown clips.
	ClipTime(name string) float32

	// Weight returns the blend weight of the named clip in the range [0, 1], or 0 for unknown clips.
	Weight(name string) float32

	// Weights returns the clips with a non-zero blend weight.
	//
	// Returns:
	//   - map[string]float32: clip name to weight
	Weights() map[string]float32

	// IsFading reports whether the named clip has a weight transition in progress.
	IsFading(name string) bool
}

var _ Mixer = &mixer{}

// NewMixer creates a new Mixer with the given options.
//
// Parameters:
//   - options: variadic MixerBuilderOption functions to configure the Mixer
//
// Returns:
//   - Mixer: the new mixer
func NewMixer(options ...MixerBuilderOption) Mixer {
	m := &mixer{
		mu:    &sync.Mutex{},
		clips: make(map[string]*clipState),
	}

	for _, opt := range options {
		opt(m)
	}

	return m
}

func (m *mixer) SetModel(mdl model.Model) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.model = mdl
	m.clips = make(map[string]*clipState)
	m.order = nil
	m.active = ""
	if mdl == nil {
		return
	}
	for _, clip := range mdl.Animations() {
		if clip == nil {
			continue
		}
		if _, ok := m.clips[clip.Name]; ok {
			continue
		}
		m.clips[clip.Name] = &clipState{clip: clip}
		m.order = append(m.order, clip.Name)
	}
}

func (m *mixer) Model() model.Model {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model
}

func (m *mixer) CrossFadeTo(name string, duration float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.clips[name]
	if !ok {
		return fmt.Errorf("%w: %q", animation.ErrUnknownAnimation, name)
	}

	if prev, ok := m.clips[m.active]; ok && m.active != name {
		prev.startFade(0, duration)
	}

	target.time = 0
	target.weight = 0
	target.playing = true
	target.finished = false
	target.startFade(1, duration)
	m.active = name

	return nil
}

func (m *mixer) HasClip(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.clips[name]
	return ok
}

func (m *mixer) Duration(name string) (float32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.clips[name]
	if !ok {
		return 0, false
	}
	return state.clip.Duration, true
}

func (m *mixer) OnClipFinished(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFinished = fn
}

func (m *mixer) Update(deltaTime float32) {
	if deltaTime < 0 {
		deltaTime = 0
	}

	m.mu.Lock()
	fire := false
	for _, name := range m.order {
		state := m.clips[name]
		state.advanceFade(deltaTime)

		if !state.playing {
			continue
		}

		state.time += deltaTime
		if state.time >= state.clip.Duration {
			state.time = state.clip.Duration
			state.playing = false
			if name == m.active && !state.finished {
				state.finished = true
				fire = true
			}
		}

		// Clips that have faded out completely stop where they are.
		if state.weight == 0 && !state.fading && name != m.active {
			state.playing = false
		}
	}
	onFinished := m.onFinished
	m.mu.Unlock()

	if fire && onFinished != nil {
		onFinished()
	}
}

func (m *mixer) ClipNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

func (m *mixer) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *mixer) ClipTime(name string) float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.clips[name]; ok {
		return state.time
	}
	return 0
}

func (m *mixer) Weight(name string) float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.clips[name]; ok {
		return state.weight
	}
	return 0
}

func (m *mixer) Weights() map[string]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	weights := make(map[string]float32)
	for name, state := range m.clips {
		if state.weight > 0 {
			weights[name] = state.weight
		}
	}
	return weights
}

func (m *mixer) IsFading(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.clips[name]; ok {
		return state.fading
	}
	return false
}

// startFade begins a weight transition from the current weight to target over duration seconds.
// A non-positive duration applies the target immediately.
func (s *clipState) startFade(target, duration float32) {
	if duration <= 0 {
		s.weight = target
		s.fading = false
		return
	}
	s.fading = true
	s.fadeFrom = s.weight
	s.fadeTo = target
	s.fadeDuration = duration
	s.fadeTotal = 0
}

func (s *clipState) advanceFade(deltaTime float32) {
	if !s.fading {
		return
	}
	s.fadeTotal += deltaTime
	progress := common.Progress(s.fadeTotal, s.fadeDuration)
	s.weight = common.Lerp(s.fadeFrom, s.fadeTo, progress)
	if progress >= 1 {
		s.weight = s.fadeTo
		s.fading = false
	}
}
