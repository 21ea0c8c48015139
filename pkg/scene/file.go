package scene

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v2"

	"github.com/taigrr/whitted/internal/logger"
	"github.com/taigrr/whitted/pkg/geometry"
	"github.com/taigrr/whitted/pkg/math3d"
	"github.com/taigrr/whitted/pkg/models"
)

// File is the YAML scene description.
type File struct {
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	FOV        float64      `yaml:"fov"`
	Background *Color       `yaml:"background"`
	Epsilon    *float64     `yaml:"epsilon"`
	MaxDepth   *int         `yaml:"max_depth"`
	Eye        Vec          `yaml:"eye"`
	Objects    []ObjectSpec `yaml:"objects"`
	Lights     []LightSpec  `yaml:"lights"`

	dir string // Directory relative asset paths resolve against
}

// ObjectSpec describes one primitive. Type is "sphere" or "mesh".
type ObjectSpec struct {
	Type      string        `yaml:"type"`
	Center    Vec           `yaml:"center"`
	Radius    float64       `yaml:"radius"`
	Vertices  []Vec         `yaml:"vertices"`
	Indices   []int         `yaml:"indices"`
	ST        [][]float64   `yaml:"st"`
	Model     string        `yaml:"model"`
	Transform TransformSpec `yaml:"transform"`
	Material  MaterialSpec  `yaml:"material"`
	Texture   TextureSpec   `yaml:"texture"`
}

// TransformSpec places a mesh. Fit is applied first, then scale, the
// rotations about X, Y and Z in that order, and translation.
type TransformSpec struct {
	Fit       float64 `yaml:"fit"`      // Center and scale the largest dimension to this size
	Scale     float64 `yaml:"scale"`    // Uniform scale (0 means 1)
	RotateX   float64 `yaml:"rotate_x"` // Degrees
	RotateY   float64 `yaml:"rotate_y"` // Degrees
	RotateZ   float64 `yaml:"rotate_z"` // Degrees
	Translate Vec     `yaml:"translate"`
}

// MaterialSpec overrides fields of geometry.DefaultMaterial.
type MaterialSpec struct {
	Type             string   `yaml:"type"`
	Kd               *float64 `yaml:"kd"`
	Ks               *float64 `yaml:"ks"`
	SpecularExponent *int     `yaml:"specular_exponent"`
	IOR              *float64 `yaml:"ior"`
}

// TextureSpec selects the diffuse color source. At most one of Color,
// Checker, and Image may be set.
type TextureSpec struct {
	Color   *Color       `yaml:"color"`
	Checker *CheckerSpec `yaml:"checker"`
	Image   string       `yaml:"image"`
	Filter  string       `yaml:"filter"` // nearest or bilinear
	Wrap    string       `yaml:"wrap"`   // repeat or clamp
}

// CheckerSpec configures a checkerboard texture.
type CheckerSpec struct {
	Scale float64 `yaml:"scale"`
	A     *Color  `yaml:"a"`
	B     *Color  `yaml:"b"`
}

// LightSpec describes a light. Type is "point" or "area".
type LightSpec struct {
	Type      string `yaml:"type"`
	Position  Vec    `yaml:"position"`
	Intensity Color  `yaml:"intensity"`
	Corner    Vec    `yaml:"corner"`
	U         Vec    `yaml:"u"`
	V         Vec    `yaml:"v"`
}

// Vec is a YAML [x, y, z] triple.
type Vec math3d.Vec3

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Vec) UnmarshalYAML(unmarshal func(any) error) error {
	var list []float64
	if err := unmarshal(&list); err != nil {
		return fmt.Errorf("vector must be [x, y, z]: %w", err)
	}
	if len(list) != 3 {
		return fmt.Errorf("vector must have 3 components, got %d", len(list))
	}
	*v = Vec(math3d.V3(list[0], list[1], list[2]))
	return nil
}

// Color is a linear RGB color written as [r, g, b], a single gray level, or
// a "#rrggbb" hex string.
type Color math3d.Vec3

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(unmarshal func(any) error) error {
	var list []float64
	if err := unmarshal(&list); err == nil {
		if len(list) != 3 {
			return fmt.Errorf("color must have 3 components, got %d", len(list))
		}
		*c = Color(math3d.V3(list[0], list[1], list[2]))
		return nil
	}

	var gray float64
	if err := unmarshal(&gray); err == nil {
		*c = Color(math3d.Splat3(gray))
		return nil
	}

	var hex string
	if err := unmarshal(&hex); err != nil {
		return fmt.Errorf("color must be [r, g, b], a number, or a hex string: %w", err)
	}
	parsed, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("parse color %q: %w", hex, err)
	}
	*c = Color(math3d.V3(parsed.R, parsed.G, parsed.B))
	return nil
}

// Decode parses a YAML scene description. Relative asset paths resolve
// against dir.
func Decode(data []byte, dir string) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	f.dir = dir
	return &f, nil
}

// ReadFile reads and parses a YAML scene file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Decode(data, filepath.Dir(path))
}

// LoadFile reads a scene file and builds the scene with its own settings.
func LoadFile(path string, log *logger.Logger) (*Scene, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Build(f.Config(log), log)
}

// Config returns the file's settings with unset fields taken from
// DefaultConfig.
func (f *File) Config(log *logger.Logger) Config {
	cfg := DefaultConfig()
	if f.Width != 0 {
		cfg.Width = f.Width
	}
	if f.Height != 0 {
		cfg.Height = f.Height
	}
	if f.FOV != 0 {
		cfg.FOV = f.FOV
	}
	if f.Background != nil {
		cfg.Background = math3d.Vec3(*f.Background)
	}
	if f.Epsilon != nil {
		cfg.Epsilon = *f.Epsilon
	} else {
		log.Debugf("epsilon not set, using %g", cfg.Epsilon)
	}
	if f.MaxDepth != nil {
		cfg.MaxDepth = *f.MaxDepth
	} else {
		log.Debugf("max_depth not set, using %d", cfg.MaxDepth)
	}
	cfg.Eye = math3d.Vec3(f.Eye)
	return cfg
}

// Build constructs the objects and lights and validates the result.
func (f *File) Build(cfg Config, log *logger.Logger) (*Scene, error) {
	objects := make([]geometry.Object, 0, len(f.Objects))
	for i, spec := range f.Objects {
		obj, err := f.buildObject(spec, log)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, spec.Type, err)
		}
		objects = append(objects, obj)
	}

	lights := make([]Light, 0, len(f.Lights))
	for i, spec := range f.Lights {
		l, err := buildLight(spec)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		lights = append(lights, l)
	}
	if len(lights) == 0 && len(objects) > 0 {
		log.Warnf("scene has objects but no lights; diffuse surfaces will render black")
	}

	return New(cfg, objects, lights)
}

func (f *File) buildObject(spec ObjectSpec, log *logger.Logger) (geometry.Object, error) {
	mat, err := spec.Material.build()
	if err != nil {
		return nil, err
	}
	tex, err := f.buildTexture(spec.Texture)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(spec.Type) {
	case "sphere":
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("radius must be positive, got %v", spec.Radius)
		}
		return geometry.NewSphere(math3d.Vec3(spec.Center), spec.Radius, mat, tex), nil
	case "mesh":
		return f.buildMesh(spec, mat, tex, log)
	default:
		return nil, fmt.Errorf("unknown object type %q", spec.Type)
	}
}

func (f *File) buildMesh(spec ObjectSpec, mat geometry.Material, tex geometry.Texture, log *logger.Logger) (geometry.Object, error) {
	var mesh *models.Mesh
	if spec.Model != "" {
		m, err := models.LoadGLB(f.resolve(spec.Model))
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		log.Infof("loaded %s (%d vertices, %d triangles)", m.Name, m.VertexCount(), m.TriangleCount())
		mesh = m

		if tex == nil {
			tex = modelTexture(m)
		}
	} else {
		mesh = models.NewMesh("inline")
		if len(spec.ST) != 0 && len(spec.ST) != len(spec.Vertices) {
			return nil, fmt.Errorf("st count %d does not match vertex count %d", len(spec.ST), len(spec.Vertices))
		}
		for i, v := range spec.Vertices {
			vert := models.MeshVertex{Position: math3d.Vec3(v)}
			if len(spec.ST) != 0 {
				if len(spec.ST[i]) != 2 {
					return nil, fmt.Errorf("st %d must be [s, t]", i)
				}
				vert.UV = math3d.V2(spec.ST[i][0], spec.ST[i][1])
			}
			mesh.Vertices = append(mesh.Vertices, vert)
		}
		if len(spec.Indices)%3 != 0 {
			return nil, fmt.Errorf("index count %d is not a multiple of 3", len(spec.Indices))
		}
		for i := 0; i < len(spec.Indices); i += 3 {
			mesh.Faces = append(mesh.Faces, models.Face{
				V:        [3]int{spec.Indices[i], spec.Indices[i+1], spec.Indices[i+2]},
				Material: -1,
			})
		}
		mesh.CalculateBounds()
	}

	mesh.Transform(spec.Transform.matrix(mesh))

	var st []math3d.Vec2
	if spec.Model != "" || len(spec.ST) != 0 {
		st = mesh.UVs()
	}
	return geometry.NewTriangleMesh(mesh.Positions(), mesh.Indices(), st, mat, tex)
}

// modelTexture derives a diffuse texture from the model's first material.
func modelTexture(m *models.Mesh) geometry.Texture {
	mm := m.PrimaryMaterial()
	switch {
	case mm == nil:
		return nil
	case mm.BaseMap != nil:
		return geometry.NewImageTexture(mm.BaseMap)
	default:
		return geometry.SolidColor(math3d.V3(mm.BaseColor[0], mm.BaseColor[1], mm.BaseColor[2]))
	}
}

func (t TransformSpec) matrix(mesh *models.Mesh) math3d.Mat4 {
	m := math3d.Identity()
	if t.Fit > 0 {
		m = mesh.FitTo(t.Fit)
	}
	if t.Scale != 0 {
		m = math3d.Scale(math3d.Splat3(t.Scale)).Mul(m)
	}
	if t.RotateX != 0 {
		m = math3d.RotateX(t.RotateX * math.Pi / 180).Mul(m)
	}
	if t.RotateY != 0 {
		m = math3d.RotateY(t.RotateY * math.Pi / 180).Mul(m)
	}
	if t.RotateZ != 0 {
		m = math3d.RotateZ(t.RotateZ * math.Pi / 180).Mul(m)
	}
	return math3d.Translate(math3d.Vec3(t.Translate)).Mul(m)
}

func (s MaterialSpec) build() (geometry.Material, error) {
	mat := geometry.DefaultMaterial()
	typ, err := geometry.ParseMaterialType(s.Type)
	if err != nil {
		return mat, err
	}
	mat.Type = typ
	if s.Kd != nil {
		mat.Kd = *s.Kd
	}
	if s.Ks != nil {
		mat.Ks = *s.Ks
	}
	if s.SpecularExponent != nil {
		mat.SpecularExponent = *s.SpecularExponent
	}
	if s.IOR != nil {
		mat.IOR = *s.IOR
	}
	return mat, mat.Validate()
}

// buildTexture returns nil when no texture is configured so primitives apply
// their own default.
func (f *File) buildTexture(s TextureSpec) (geometry.Texture, error) {
	set := 0
	for _, b := range []bool{s.Color != nil, s.Checker != nil, s.Image != ""} {
		if b {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("texture: only one of color, checker, image may be set")
	}

	switch {
	case s.Color != nil:
		return geometry.SolidColor(*s.Color), nil
	case s.Checker != nil:
		c := geometry.NewChecker()
		if s.Checker.Scale != 0 {
			c.Scale = s.Checker.Scale
		}
		if s.Checker.A != nil {
			c.A = math3d.Vec3(*s.Checker.A)
		}
		if s.Checker.B != nil {
			c.B = math3d.Vec3(*s.Checker.B)
		}
		return c, nil
	case s.Image != "":
		tex, err := geometry.LoadImageTexture(f.resolve(s.Image))
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(s.Filter) {
		case "", "bilinear":
		case "nearest":
			tex.FilterMode = geometry.FilterNearest
		default:
			return nil, fmt.Errorf("texture: unknown filter %q", s.Filter)
		}
		switch strings.ToLower(s.Wrap) {
		case "", "repeat":
		case "clamp":
			tex.WrapU, tex.WrapV = geometry.WrapClamp, geometry.WrapClamp
		default:
			return nil, fmt.Errorf("texture: unknown wrap %q", s.Wrap)
		}
		return tex, nil
	}
	return nil, nil
}

func buildLight(s LightSpec) (Light, error) {
	intensity := math3d.Vec3(s.Intensity)
	switch strings.ToLower(s.Type) {
	case "", "point":
		return NewPointLight(math3d.Vec3(s.Position), intensity), nil
	case "area":
		return NewAreaLight(math3d.Vec3(s.Corner), math3d.Vec3(s.U), math3d.Vec3(s.V), intensity), nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidLight, s.Type)
	}
}

func (f *File) resolve(path string) string {
	if filepath.IsAbs(path) || f.dir == "" {
		return path
	}
	return filepath.Join(f.dir, path)
}
