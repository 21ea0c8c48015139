package render

import (
	"math"

	"github.com/taigrr/whitted/pkg/math3d"
	"github.com/taigrr/whitted/pkg/scene"
)

// Camera generates primary rays from a fixed eye looking down -Z.
type Camera struct {
	Position math3d.Vec3 // Eye position in world space

	// Image plane parameters
	Width  int
	Height int
	FOV    float64 // Vertical field of view in degrees

	scale  float64 // tan(FOV/2)
	aspect float64 // Width / Height
}

// NewCamera creates a camera matching the scene's image settings.
func NewCamera(s *scene.Scene) *Camera {
	return &Camera{
		Position: s.Eye,
		Width:    s.Width,
		Height:   s.Height,
		FOV:      s.FOV,
		scale:    math.Tan(s.FOV * 0.5 * math.Pi / 180),
		aspect:   s.AspectRatio(),
	}
}

// PrimaryRay returns the ray through the center of pixel (i, j), where j
// counts rows from the top of the image.
func (c *Camera) PrimaryRay(i, j int) math3d.Ray {
	x := (2*(float64(i)+0.5)/float64(c.Width) - 1) * c.scale * c.aspect
	y := (2*(float64(c.Height-j)+0.5)/float64(c.Height) - 1) * c.scale
	return math3d.NewRay(c.Position, math3d.V3(x, y, -1).Normalize(), 0)
}
