package render

import (
	"image/color"
	"math"
)

// maxLineReach bounds how far outside the framebuffer a wireframe endpoint
// may sit, in multiples of the framebuffer size. Longer edges are skipped
// instead of walking millions of off-screen Bresenham steps.
const maxLineReach = 4

// DrawTriangleEdges draws the three edges of a projected triangle.
func (fb *Framebuffer) DrawTriangleEdges(v [3]DeviceVertex, c color.RGBA) {
	for i := range 3 {
		a, b := v[i], v[(i+1)%3]
		if !fb.reachable(a) || !fb.reachable(b) {
			continue
		}
		ax, ay := fb.DeviceToImage(int(math.Floor(a.X)), int(math.Floor(a.Y)))
		bx, by := fb.DeviceToImage(int(math.Floor(b.X)), int(math.Floor(b.Y)))
		fb.DrawLine(ax, ay, bx, by, c)
	}
}

func (fb *Framebuffer) reachable(v DeviceVertex) bool {
	limX := float64(maxLineReach * max(fb.Width, 1))
	limY := float64(maxLineReach * max(fb.Height, 1))
	return math.Abs(v.X) <= limX && math.Abs(v.Y) <= limY
}
