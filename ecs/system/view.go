package system

import "math"

// View maps y-up world coordinates onto the screen. The world origin sits at
// the bottom-left of the viewport.
type View struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
	Height  float64
}

// FitView scales a worldW x worldH area to fill screenW x screenH and centres
// it.
func FitView(worldW, worldH, screenW, screenH float64) View {
	zoom := 1.0
	if worldW > 0 && worldH > 0 {
		zoom = math.Min(screenW/worldW, screenH/worldH)
	}
	return View{
		Zoom:    zoom,
		OffsetX: (screenW - worldW*zoom) / 2,
		OffsetY: (screenH - worldH*zoom) / 2,
		Height:  screenH,
	}
}

func (v View) ToScreen(x, y float64) (float64, float64) {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return v.OffsetX + x*zoom, v.Height - v.OffsetY - y*zoom
}

// Shifted returns v moved by (dx, dy) screen pixels.
func (v View) Shifted(dx, dy float64) View {
	v.OffsetX += dx
	v.OffsetY -= dy
	return v
}
