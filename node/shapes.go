package node

import "github.com/scene-xyz/go-scene/geom"

// Transform applies a translation and a uniform scale to everything that
// follows it in the current state scope.
type Transform struct {
	Base
	Translation geom.Vec3
	ScaleFactor float64
}

// NewTransform creates an identity transform.
func NewTransform() *Transform {
	return &Transform{Base: NewBase(TransformType), ScaleFactor: 1}
}

// Matrix returns the transform's matrix: translation applied after scale.
func (t *Transform) Matrix() geom.Mat4 {
	return geom.Translation(t.Translation).Mul(geom.Scaling(t.ScaleFactor))
}

// Fields returns the transform's serializable fields.
func (t *Transform) Fields() map[string]any {
	return map[string]any{
		"translation": []float64{t.Translation.X, t.Translation.Y, t.Translation.Z},
		"scale":       t.ScaleFactor,
	}
}

// Cube is an axis-aligned box shape centered at the origin.
type Cube struct {
	Base
	Width, Height, Depth float64
}

// NewCube creates a 2x2x2 cube.
func NewCube() *Cube {
	return &Cube{Base: NewBase(CubeType), Width: 2, Height: 2, Depth: 2}
}

// AffectsState reports false: shapes read state but never write it.
func (c *Cube) AffectsState() bool { return false }

// Box returns the cube's object-space bounding box.
func (c *Cube) Box() geom.Box3 {
	half := geom.Vec3{X: c.Width / 2, Y: c.Height / 2, Z: c.Depth / 2}
	return geom.NewBox3(half.Scale(-1), half)
}

// Fields returns the cube's serializable fields.
func (c *Cube) Fields() map[string]any {
	return map[string]any{"width": c.Width, "height": c.Height, "depth": c.Depth}
}

// Sphere is a sphere shape centered at the origin.
type Sphere struct {
	Base
	Radius float64
}

// NewSphere creates a unit sphere.
func NewSphere() *Sphere {
	return &Sphere{Base: NewBase(SphereType), Radius: 1}
}

// AffectsState reports false.
func (s *Sphere) AffectsState() bool { return false }

// Box returns the sphere's object-space bounding box.
func (s *Sphere) Box() geom.Box3 {
	r := geom.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return geom.NewBox3(r.Scale(-1), r)
}

// Fields returns the sphere's serializable fields.
func (s *Sphere) Fields() map[string]any {
	return map[string]any{"radius": s.Radius}
}
