package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/timmy/common"
	"github.com/Carmen-Shannon/timmy/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	palette Palette
	weights func() map[string]float32

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer draws the character's stage.
//
// The stage is cleared every frame to a color blended from the blend weights of the clips currently
// playing, so cross-fades between clips are visible as color transitions.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Render draws and presents one frame.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	Render() error

	// Color returns the color the next frame is cleared to.
	Color() common.Color

	// Release frees the GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer drawing into the given window.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window whose surface is drawn into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		palette:     DefaultPalette(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Render() error {
	if err := r.backend.ClearFrame(r.Color()); err != nil {
		return err
	}
	r.backend.Present()
	return nil
}

func (r *renderer) Color() common.Color {
	r.mu.Lock()
	defer r.mu.Unlock()

	var weights map[string]float32
	if r.weights != nil {
		weights = r.weights()
	}
	return StageColor(weights, r.palette)
}

func (r *renderer) Release() {
	r.backend.Release()
}
