// Package geom provides the small amount of 3D math the traversal layer
// needs: vectors, 4x4 matrices and axis-aligned bounding boxes.
package geom

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mat4 is a 4x4 transformation matrix in row-major order.
type Mat4 struct {
	M [4][4]float64
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m.M[i][i] = 1
	}
	return m
}

// Translation returns a matrix translating by t.
func Translation(t Vec3) Mat4 {
	m := Identity()
	m.M[0][3] = t.X
	m.M[1][3] = t.Y
	m.M[2][3] = t.Z
	return m
}

// Scaling returns a matrix scaling uniformly by s.
func Scaling(s float64) Mat4 {
	m := Identity()
	m.M[0][0] = s
	m.M[1][1] = s
	m.M[2][2] = s
	return m
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m.M[i][k] * n.M[k][j]
			}
			out.M[i][j] = sum
		}
	}
	return out
}

// MulPoint transforms point p by m, assuming w = 1.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*p.X + m.M[0][1]*p.Y + m.M[0][2]*p.Z + m.M[0][3],
		Y: m.M[1][0]*p.X + m.M[1][1]*p.Y + m.M[1][2]*p.Z + m.M[1][3],
		Z: m.M[2][0]*p.X + m.M[2][1]*p.Y + m.M[2][2]*p.Z + m.M[2][3],
	}
}

// Box3 is an axis-aligned bounding box. The zero value is the empty box.
type Box3 struct {
	Min, Max Vec3
	nonEmpty bool
}

// NewBox3 returns a box spanning min to max.
func NewBox3(min, max Vec3) Box3 {
	return Box3{Min: min, Max: max, nonEmpty: true}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return !b.nonEmpty
}

// ExtendByPoint grows the box to include p.
func (b Box3) ExtendByPoint(p Vec3) Box3 {
	if b.IsEmpty() {
		return Box3{Min: p, Max: p, nonEmpty: true}
	}
	return Box3{
		Min:      Vec3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)},
		Max:      Vec3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)},
		nonEmpty: true,
	}
}

// ExtendByBox grows the box to include other.
func (b Box3) ExtendByBox(other Box3) Box3 {
	if other.IsEmpty() {
		return b
	}
	return b.ExtendByPoint(other.Min).ExtendByPoint(other.Max)
}

// Transform returns the axis-aligned box enclosing b transformed by m.
func (b Box3) Transform(m Mat4) Box3 {
	if b.IsEmpty() {
		return b
	}
	var out Box3
	for _, x := range []float64{b.Min.X, b.Max.X} {
		for _, y := range []float64{b.Min.Y, b.Max.Y} {
			for _, z := range []float64{b.Min.Z, b.Max.Z} {
				out = out.ExtendByPoint(m.MulPoint(Vec3{x, y, z}))
			}
		}
	}
	return out
}

// Center returns the center of the box. The center of an empty box is the
// origin.
func (b Box3) Center() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Size returns the extents of the box along each axis.
func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return Vec3{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
}
