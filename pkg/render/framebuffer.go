// Package render turns a scene into pixels: primary ray generation, the
// recursive shading engine, and image output.
package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/taigrr/whitted/pkg/math3d"
)

// Framebuffer holds linear RGB colors in row-major order.
// Values are unclamped until they are quantized for output.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []math3d.Vec3
}

// NewFramebuffer creates a black framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]math3d.Vec3, width*height),
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c math3d.Vec3) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) math3d.Vec3 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return math3d.Vec3{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// Row returns the pixels of row y. Writes through the slice update the
// framebuffer.
func (fb *Framebuffer) Row(y int) []math3d.Vec3 {
	return fb.Pixels[y*fb.Width : (y+1)*fb.Width]
}

// Quantize maps a linear channel value to a byte: clamp to [0, 1], scale by
// 255, and truncate. NaN maps to 0.
func Quantize(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(255 * math3d.Clamp(0, 1, v))
}

// RGBA returns the quantized color at (x, y).
func (fb *Framebuffer) RGBA(x, y int) color.RGBA {
	c := fb.GetPixel(x, y)
	return color.RGBA{Quantize(c.X), Quantize(c.Y), Quantize(c.Z), 255}
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.RGBA(x, y))
		}
	}
	return img
}

// WritePPM encodes the framebuffer as a binary (P6) PPM.
func (fb *Framebuffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	var px [3]byte
	for _, c := range fb.Pixels {
		px[0], px[1], px[2] = Quantize(c.X), Quantize(c.Y), Quantize(c.Z)
		if _, err := bw.Write(px[:]); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

// SavePPM saves the framebuffer as a PPM file.
func (fb *Framebuffer) SavePPM(path string) error {
	return fb.save(path, fb.WritePPM)
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return fb.save(path, func(w io.Writer) error {
		if err := png.Encode(w, fb.ToImage()); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
		return nil
	})
}

func (fb *Framebuffer) save(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}
