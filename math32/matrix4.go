// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"fmt"
	"math"
)

// Matrix4 is a 4x4 homogeneous transform matrix organized
// internally as column matrix.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate3D returns a matrix that translates by the given vector.
func Translate3D(t Vector3) Matrix4 {
	m := Identity4()
	m.SetTranslation(t)
	return m
}

// Scale3D returns a matrix that scales by the given factors.
func Scale3D(s Vector3) Matrix4 {
	m := Identity4()
	m.SetUpper3(Diagonal3(s))
	return m
}

// Rotate3D returns a matrix that applies the given rotation matrix.
func Rotate3D(r Matrix3) Matrix4 {
	m := Identity4()
	m.SetUpper3(r)
	return m
}

// Compose returns Translate3D(t) * Rotate3D(r) * Scale3D(s).
func Compose(t Vector3, r Matrix3, s Vector3) Matrix4 {
	m := Identity4()
	m.SetUpper3(r.Mul(Diagonal3(s)))
	m.SetTranslation(t)
	return m
}

func (m Matrix4) String() string {
	return fmt.Sprintf("[%g %g %g %g; %g %g %g %g; %g %g %g %g; %g %g %g %g]",
		m[0], m[4], m[8], m[12], m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14], m[3], m[7], m[11], m[15])
}

// At returns the element at the given row and column.
func (m Matrix4) At(row, col int) float32 {
	return m[col*4+row]
}

// Set sets the element at the given row and column.
func (m *Matrix4) Set(row, col int, v float32) {
	m[col*4+row] = v
}

// Translation returns the translation column of this matrix.
func (m Matrix4) Translation() Vector3 {
	return Vector3{m[12], m[13], m[14]}
}

// SetTranslation sets the translation column of this matrix.
func (m *Matrix4) SetTranslation(t Vector3) {
	m[12], m[13], m[14] = t.X, t.Y, t.Z
}

// Upper3 returns the upper-left 3x3 part of this matrix.
func (m Matrix4) Upper3() Matrix3 {
	return Matrix3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// SetUpper3 sets the upper-left 3x3 part of this matrix.
func (m *Matrix4) SetUpper3(r Matrix3) {
	m[0], m[1], m[2] = r[0], r[1], r[2]
	m[4], m[5], m[6] = r[3], r[4], r[5]
	m[8], m[9], m[10] = r[6], r[7], r[8]
}

// Mul returns this matrix times other matrix (this * other).
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[c*4+k]
			}
			r[c*4+row] = sum
		}
	}
	return r
}

// MulVector3AsPoint returns this matrix times the given point (w = 1),
// divided by the resulting w when it is not 1.
func (m Matrix4) MulVector3AsPoint(v Vector3) Vector3 {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w != 1 && w != 0 {
		return Vector3{x / w, y / w, z / w}
	}
	return Vector3{x, y, z}
}

// MulVector3AsVector returns this matrix times the given direction (w = 0).
func (m Matrix4) MulVector3AsVector(v Vector3) Vector3 {
	return m.Upper3().MulVector3(v)
}

// Decompose splits this matrix into translation t, rotation r and scale s
// such that m = Translate3D(t) * Rotate3D(r) * Scale3D(s), for any matrix of
// that form. The columns of the upper 3x3 part are orthonormalized with
// Gram-Schmidt (x; y minus its projection on x; z minus its projections on
// x and y); the column lengths are the scale factors and the normalized
// columns are the rotation. If the rotation is improper (det < 0), the first
// scale factor and the first rotation column are negated. [ErrDegenerate] is
// returned if any column length is below eps.
func (m Matrix4) Decompose(eps float32) (t Vector3, r Matrix3, s Vector3, err error) {
	t = m.Translation()
	u := m.Upper3()
	x, y, z := u.Col(0), u.Col(1), u.Col(2)

	s.X = x.Length()
	if s.X < eps {
		return t, Identity3(), s, fmt.Errorf("%w: x axis length %g", ErrDegenerate, s.X)
	}
	x = x.DivScalar(s.X)

	y = y.Sub(x.MulScalar(y.Dot(x)))
	s.Y = y.Length()
	if s.Y < eps {
		return t, Identity3(), s, fmt.Errorf("%w: y axis length %g", ErrDegenerate, s.Y)
	}
	y = y.DivScalar(s.Y)

	z = z.Sub(x.MulScalar(z.Dot(x))).Sub(y.MulScalar(z.Dot(y)))
	s.Z = z.Length()
	if s.Z < eps {
		return t, Identity3(), s, fmt.Errorf("%w: z axis length %g", ErrDegenerate, s.Z)
	}
	z = z.DivScalar(s.Z)

	r = Matrix3FromCols(x, y, z)
	if r.Determinant() < 0 {
		s.X = -s.X
		r.SetCol(0, x.Negate())
	}
	return t, r, s, nil
}

// Determinant calculates and returns the determinant of this matrix.
func (m Matrix4) Determinant() float32 {
	a := m.float64s()
	det := 1.0
	for c := 0; c < 4; c++ {
		p := pivotRow(&a, c)
		if a[p][c] == 0 {
			return 0
		}
		if p != c {
			a[p], a[c] = a[c], a[p]
			det = -det
		}
		det *= a[c][c]
		for r := c + 1; r < 4; r++ {
			f := a[r][c] / a[c][c]
			for k := c; k < 4; k++ {
				a[r][k] -= f * a[c][k]
			}
		}
	}
	return float32(det)
}

// Inverse returns the inverse of this matrix, computed with Gauss-Jordan
// elimination in float64, or [ErrSingular] if it can not be inverted.
func (m Matrix4) Inverse() (Matrix4, error) {
	a := m.float64s()
	var inv [4][4]float64
	for i := range inv {
		inv[i][i] = 1
	}
	for c := 0; c < 4; c++ {
		p := pivotRow(&a, c)
		if math.Abs(a[p][c]) < 1e-12 {
			return Identity4(), ErrSingular
		}
		a[p], a[c] = a[c], a[p]
		inv[p], inv[c] = inv[c], inv[p]
		d := a[c][c]
		for k := 0; k < 4; k++ {
			a[c][k] /= d
			inv[c][k] /= d
		}
		for r := 0; r < 4; r++ {
			if r == c {
				continue
			}
			f := a[r][c]
			if f == 0 {
				continue
			}
			for k := 0; k < 4; k++ {
				a[r][k] -= f * a[c][k]
				inv[r][k] -= f * inv[c][k]
			}
		}
	}
	var res Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			res.Set(r, c, float32(inv[r][c]))
		}
	}
	return res, nil
}

// IsEqualTol returns whether all elements of this matrix are
// within the given tolerance of those of other.
func (m Matrix4) IsEqualTol(other Matrix4, tol float32) bool {
	for i := range m {
		if Abs(m[i]-other[i]) > tol {
			return false
		}
	}
	return true
}

// float64s returns the matrix as float64 rows.
func (m *Matrix4) float64s() [4][4]float64 {
	var a [4][4]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			a[r][c] = float64(m.At(r, c))
		}
	}
	return a
}

// pivotRow returns the row at or below col with the largest
// absolute value in column col.
func pivotRow(a *[4][4]float64, col int) int {
	p := col
	for r := col + 1; r < 4; r++ {
		if math.Abs(a[r][col]) > math.Abs(a[p][col]) {
			p = r
		}
	}
	return p
}
