package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Preview draws a framebuffer on a terminal screen, downsampled to fit the
// area. Each cell shows two pixels using ▀ with fg=top color and bg=bottom
// color.
type Preview struct {
	fb *Framebuffer
}

// NewPreview wraps fb for drawing.
func NewPreview(fb *Framebuffer) *Preview {
	return &Preview{fb: fb}
}

// Draw implements uv.Drawable.
func (p *Preview) Draw(scr uv.Screen, area uv.Rectangle) {
	cols, rows := area.Dx(), area.Dy()
	if cols <= 0 || rows <= 0 || p.fb.Width == 0 || p.fb.Height == 0 {
		return
	}

	// Nearest-neighbor mapping from half-block rows to image rows
	for row := range rows {
		topY := (2 * row) * p.fb.Height / (2 * rows)
		botY := (2*row + 1) * p.fb.Height / (2 * rows)

		for col := range cols {
			x := col * p.fb.Width / cols
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: p.fb.RGBA(x, topY),
					Bg: p.fb.RGBA(x, botY),
				},
			}
			scr.SetCell(area.Min.X+col, area.Min.Y+row, cell)
		}
	}
}
