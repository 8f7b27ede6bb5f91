package common

// Color is a linear RGBA color with components in [0, 1].
// It is used for renderer clear colors and per-category stage tints in configuration files.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// Scale multiplies every channel of the color by s.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - Color: the scaled color
func (c Color) Scale(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Add returns the channel-wise sum of c and o.
//
// Parameters:
//   - o: the color to add
//
// Returns:
//   - Color: the summed color
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}
