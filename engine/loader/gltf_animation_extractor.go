package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/timmy/engine/model"
)

// gltfAnimationExtractorImpl is the implementation of the gltfAnimationExtractor interface.
type gltfAnimationExtractorImpl struct {
	parser gltfParser
}

// gltfAnimationExtractor turns glTF animation definitions into named clips with durations.
//
// Keyframe values are left in the file; the host only needs to know which clips exist and how long
// each one runs. A clip's duration is the latest timestamp of any of its samplers.
type gltfAnimationExtractor interface {
	// ExtractAnimation extracts a single animation by index.
	// Unnamed animations are named "animation_<index>".
	//
	// Parameters:
	//   - animIndex: the index of the animation in the document
	//
	// Returns:
	//   - *model.AnimationClip: the extracted clip
	//   - error: error if extraction fails
	ExtractAnimation(animIndex int) (*model.AnimationClip, error)

	// ExtractAllAnimations extracts every animation from the document in document order.
	//
	// Returns:
	//   - []*model.AnimationClip: all extracted clips
	//   - error: error if extraction fails
	ExtractAllAnimations() ([]*model.AnimationClip, error)
}

var _ gltfAnimationExtractor = &gltfAnimationExtractorImpl{}

func newGLTFAnimationExtractor(parser gltfParser) gltfAnimationExtractor {
	return &gltfAnimationExtractorImpl{parser: parser}
}

func (e *gltfAnimationExtractorImpl) ExtractAnimation(animIndex int) (*model.AnimationClip, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	if animIndex < 0 || animIndex >= len(doc.Animations) {
		return nil, fmt.Errorf("animation index %d out of range", animIndex)
	}

	anim := &doc.Animations[animIndex]
	name := anim.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", animIndex)
	}

	var duration float32
	channels := 0
	for i := range anim.Channels {
		ch := &anim.Channels[i]
		if ch.Sampler < 0 || ch.Sampler >= len(anim.Samplers) {
			return nil, fmt.Errorf("animation %q channel %d: invalid sampler index %d", name, i, ch.Sampler)
		}
		// Morph target and pointer channels have no node.
		if ch.Target.Node != nil {
			channels++
		}

		end, err := e.samplerEnd(anim.Samplers[ch.Sampler].Input)
		if err != nil {
			return nil, fmt.Errorf("animation %q channel %d: %w", name, i, err)
		}
		duration = max(duration, end)
	}

	return &model.AnimationClip{
		Name:         name,
		Duration:     duration,
		ChannelCount: channels,
	}, nil
}

func (e *gltfAnimationExtractorImpl) ExtractAllAnimations() ([]*model.AnimationClip, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	clips := make([]*model.AnimationClip, len(doc.Animations))
	for i := range doc.Animations {
		clip, err := e.ExtractAnimation(i)
		if err != nil {
			return nil, fmt.Errorf("animation %d: %w", i, err)
		}
		clips[i] = clip
	}
	return clips, nil
}

// samplerEnd returns the last keyframe time of a sampler input accessor. The accessor's max bound is
// used when present; otherwise the timestamps are read from the buffer.
func (e *gltfAnimationExtractorImpl) samplerEnd(inputAccessor int) (float32, error) {
	doc := e.parser.Document()
	if inputAccessor < 0 || inputAccessor >= len(doc.Accessors) {
		return 0, fmt.Errorf("input accessor %d out of range", inputAccessor)
	}
	if acc := &doc.Accessors[inputAccessor]; len(acc.Max) > 0 {
		return acc.Max[0], nil
	}

	timestamps, err := e.parser.ReadScalarAccessor(inputAccessor)
	if err != nil {
		return 0, fmt.Errorf("failed to read timestamps: %w", err)
	}
	var end float32
	for _, t := range timestamps {
		end = max(end, t)
	}
	return end, nil
}
