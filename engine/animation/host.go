package animation

// AnimationHost is the capability the controller drives.
//
// A host owns the clips of a loaded model and the timeline they play on. It resolves clip names to
// playable resources, performs cross-fades as blend operations, and reports when the clip it is
// currently fading towards has played through once. Hosts clamp every clip on its final pose; looping
// is expressed by the controller re-triggering the clip.
//
// Hosts are expected to invoke the finished subscription on the same goroutine that drives the
// controller.
type AnimationHost interface {
	// CrossFadeTo fades the current clip out and the named clip in over duration seconds.
	// The named clip always restarts from time zero, even when it is already playing.
	//
	// Parameters:
	//   - name: the clip to fade to
	//   - duration: the length of the fade in seconds
	//
	// Returns:
	//   - error: ErrUnknownAnimation if the host has no clip with that name
	CrossFadeTo(name string, duration float32) error

	// HasClip reports whether the host can play a clip with the given name.
	//
	// Parameters:
	//   - name: the clip name to look up
	//
	// Returns:
	//   - bool: true if the clip is playable
	HasClip(name string) bool

	// Duration returns the length of the named clip in seconds.
	//
	// Parameters:
	//   - name: the clip name to look up
	//
	// Returns:
	//   - float32: the clip duration
	//   - bool: false if the clip is unknown
	Duration(name string) (float32, bool)

	// OnClipFinished registers the callback raised once per completed playthrough of the active clip.
	// Registering again replaces the previous callback.
	//
	// Parameters:
	//   - fn: the callback to raise
	OnClipFinished(fn func())
}
