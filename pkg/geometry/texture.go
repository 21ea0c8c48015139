package geometry

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	"github.com/taigrr/whitted/pkg/math3d"
)

// Texture maps surface coordinates to a linear RGB albedo in [0, 1].
type Texture interface {
	Eval(st math3d.Vec2) math3d.Vec3
}

// SolidColor is a constant texture.
type SolidColor math3d.Vec3

// Eval returns the constant color.
func (c SolidColor) Eval(math3d.Vec2) math3d.Vec3 {
	return math3d.Vec3(c)
}

// Checker is a procedural two-color checkerboard in st space.
type Checker struct {
	Scale float64     // Checks per unit of st
	A, B  math3d.Vec3 // Alternating colors
}

// NewChecker returns the classic orange/yellow checkerboard.
func NewChecker() Checker {
	return Checker{
		Scale: 5,
		A:     math3d.V3(0.815, 0.235, 0.031),
		B:     math3d.V3(0.937, 0.937, 0.231),
	}
}

// Eval returns A or B depending on which check st falls into.
func (c Checker) Eval(st math3d.Vec2) math3d.Vec3 {
	u := math.Mod(st.X*c.Scale, 1) > 0.5
	v := math.Mod(st.Y*c.Scale, 1) > 0.5
	if u != v {
		return c.B
	}
	return c.A
}

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest-neighbor (pixelated)
	FilterBilinear                   // Bilinear interpolation (smooth)
)

// ImageTexture samples a decoded image.
type ImageTexture struct {
	Width      int
	Height     int
	Pixels     []math3d.Vec3 // Row-major, linear [0,1]
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewImageTexture converts an image into a texture.
func NewImageTexture(img image.Image) *ImageTexture {
	bounds := img.Bounds()
	tex := &ImageTexture{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Pixels:     make([]math3d.Vec3, bounds.Dx()*bounds.Dy()),
		WrapU:      WrapRepeat,
		WrapV:      WrapRepeat,
		FilterMode: FilterBilinear,
	}

	for y := range tex.Height {
		for x := range tex.Width {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit values
			tex.Pixels[y*tex.Width+x] = math3d.V3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
		}
	}
	return tex
}

// LoadImageTexture decodes a PNG or JPEG file into a texture.
func LoadImageTexture(path string) (*ImageTexture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	return NewImageTexture(img), nil
}

// Eval samples the texture at st (0-1 range, V up).
func (t *ImageTexture) Eval(st math3d.Vec2) math3d.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return math3d.Vec3{}
	}
	u := wrapCoord(st.X, t.WrapU)
	// Image Y=0 is the top row, V=0 is the bottom
	v := 1 - wrapCoord(st.Y, t.WrapV)

	if t.FilterMode == FilterBilinear {
		return t.sampleBilinear(u, v)
	}
	return t.sampleNearest(u, v)
}

func (t *ImageTexture) pixel(x, y int) math3d.Vec3 {
	return t.Pixels[y*t.Width+x]
}

func (t *ImageTexture) sampleNearest(u, v float64) math3d.Vec3 {
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.pixel(x, y)
}

func (t *ImageTexture) sampleBilinear(u, v float64) math3d.Vec3 {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := wrapPixel(x0+1, t.Width, t.WrapU)
	y1 := wrapPixel(y0+1, t.Height, t.WrapV)
	x0 = wrapPixel(x0, t.Width, t.WrapU)
	y0 = wrapPixel(y0, t.Height, t.WrapV)

	top := t.pixel(x0, y0).Lerp(t.pixel(x1, y0), tx)
	bot := t.pixel(x0, y1).Lerp(t.pixel(x1, y1), tx)
	return top.Lerp(bot, ty)
}

func wrapCoord(c float64, mode WrapMode) float64 {
	if mode == WrapClamp {
		return math3d.Clamp(0, 1, c)
	}
	return c - math.Floor(c)
}

func wrapPixel(x, size int, mode WrapMode) int {
	if mode == WrapClamp {
		return max(0, min(size-1, x))
	}
	x %= size
	if x < 0 {
		x += size
	}
	return x
}
