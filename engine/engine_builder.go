package engine

import (
	"log"
	"time"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithTimeScale sets the factor applied to the delta passed to the Updater.
// Values <= 0 keep the default of 0.75.
func WithTimeScale(scale float32) EngineBuilderOption {
	return func(e *engine) {
		if scale > 0 {
			e.timeScale = scale
		}
	}
}

// WithUpdater sets the timeline advanced every tick.
//
// Parameters:
//   - u: the Updater, typically an animator.Mixer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithUpdater(u Updater) EngineBuilderOption {
	return func(e *engine) {
		e.updater = u
	}
}

// WithWindow sets the window whose message loop Run blocks on.
// Without a window the engine runs headless until Quit is called.
//
// Parameters:
//   - w: a pre-configured window.Window or other MessageLoop
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w MessageLoop) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithLogger sets the logger used for recovered panics and profiling.
func WithLogger(l *log.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = l
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}
