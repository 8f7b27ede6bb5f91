package animation

import "errors"

var (
	// ErrUnknownAnimation is returned when a clip name cannot be resolved by the host.
	ErrUnknownAnimation = errors.New("unknown animation")

	// ErrHostNotReady is returned for playback requests made before the model and its clips are loaded.
	ErrHostNotReady = errors.New("animation host not ready")

	// ErrInvalidCatalog is returned when a catalog fails validation.
	ErrInvalidCatalog = errors.New("invalid animation catalog")
)
