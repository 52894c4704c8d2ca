// Package face implements the polygon group table and the per-face
// health/visual state machine driven by projectile hits.
package face

import "github.com/go-gl/mathgl/mgl32"

// palette maps remaining hit points to a display color. Index 0 (white) is
// the depleted/original tier; higher tiers walk the rainbow.
var palette = [7]mgl32.Vec3{
	{1.00, 1.00, 1.00}, // 0: white
	{0.90, 0.15, 0.15}, // 1: red
	{0.95, 0.55, 0.10}, // 2: orange
	{0.95, 0.90, 0.15}, // 3: yellow
	{0.20, 0.80, 0.25}, // 4: green
	{0.20, 0.40, 0.90}, // 5: blue
	{0.60, 0.25, 0.85}, // 6: purple
}

// TierColor returns the palette color for the given hit points, clamping
// out-of-range values into the palette.
func TierColor(hp int) mgl32.Vec3 {
	if hp < 0 {
		hp = 0
	}
	if hp >= len(palette) {
		hp = len(palette) - 1
	}
	return palette[hp]
}
