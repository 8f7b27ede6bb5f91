package renderer

import "github.com/Carmen-Shannon/timmy/common"

// Palette assigns a stage color to each clip.
type Palette struct {
	// Background is used when nothing is playing and for clips without a color.
	Background common.Color
	// Clips maps clip names to colors.
	Clips map[string]common.Color
}

// DefaultPalette returns colors for the stock clip set.
func DefaultPalette() Palette {
	return Palette{
		Background: common.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		Clips: map[string]common.Color{
			"idle":     {R: 0.12, G: 0.14, B: 0.2, A: 1},
			"idle_s":   {R: 0.12, G: 0.16, B: 0.2, A: 1},
			"idle_n":   {R: 0.1, G: 0.14, B: 0.22, A: 1},
			"greeting": {R: 0.35, G: 0.3, B: 0.1, A: 1},
			"ask":      {R: 0.3, G: 0.2, B: 0.35, A: 1},
			"focus":    {R: 0.15, G: 0.25, B: 0.3, A: 1},
			"talking1": {R: 0.15, G: 0.3, B: 0.15, A: 1},
			"talking2": {R: 0.18, G: 0.32, B: 0.14, A: 1},
			"yawn":     {R: 0.08, G: 0.08, B: 0.15, A: 1},
			"walk":     {R: 0.25, G: 0.2, B: 0.15, A: 1},
			"dance":    {R: 0.4, G: 0.1, B: 0.3, A: 1},
		},
	}
}

// ColorFor returns the color of the named clip, or the background.
func (p Palette) ColorFor(name string) common.Color {
	if c, ok := p.Clips[name]; ok {
		return c
	}
	return p.Background
}

// StageColor blends the palette colors of the playing clips by their weights.
//
// Parameters:
//   - weights: clip name to blend weight; non-positive weights are ignored
//   - p: the palette
//
// Returns:
//   - common.Color: the weighted average color, or the background when no clip has weight
func StageColor(weights map[string]float32, p Palette) common.Color {
	var total float64
	var sum common.Color
	for name, w := range weights {
		if w <= 0 {
			continue
		}
		total += float64(w)
		sum = sum.Add(p.ColorFor(name).Scale(float64(w)))
	}
	if total == 0 {
		return p.Background
	}
	return sum.Scale(1 / total)
}
