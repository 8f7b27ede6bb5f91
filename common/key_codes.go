package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyEnter     = 257 // Enter key (GLFW)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyF1        = 290 // F1 key (GLFW)

	Key1 = 49 // 1 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)

// ClipKeyIndex maps the number keys 1-9 to a zero-based clip index.
// The second return value is false for any other key.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - int: zero-based clip index
//   - bool: true if keyCode is one of 1-9
func ClipKeyIndex(keyCode uint32) (int, bool) {
	if keyCode < Key1 || keyCode > Key9 {
		return 0, false
	}
	return int(keyCode - Key1), true
}
