package orion

import "github.com/oliverbestmann/brotview/pulse"

// Layout returns the region of the window in which the fractal is shown:
// everything below the top bar. The region is never empty.
func Layout(width, height, topBarHeight uint32) pulse.Rectangle2u {
	width = max(width, 1)
	height = max(height, 1)

	top := min(topBarHeight, height-1)

	return pulse.RectangleFromXYWH(0, top, width, height-top)
}
