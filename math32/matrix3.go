// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "fmt"

// Matrix3 is a 3x3 matrix organized internally as column matrix.
// It is used for rotations and inertia tensors.
type Matrix3 [9]float32

// Identity3 returns a new identity [Matrix3] matrix.
func Identity3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Matrix3FromCols returns a matrix with the given column vectors.
func Matrix3FromCols(c0, c1, c2 Vector3) Matrix3 {
	return Matrix3{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
	}
}

// Diagonal3 returns a matrix with the given diagonal
// and zeros elsewhere.
func Diagonal3(d Vector3) Matrix3 {
	return Matrix3{
		d.X, 0, 0,
		0, d.Y, 0,
		0, 0, d.Z,
	}
}

// OuterProduct returns the matrix a * b^T.
func OuterProduct(a, b Vector3) Matrix3 {
	return Matrix3FromCols(a.MulScalar(b.X), a.MulScalar(b.Y), a.MulScalar(b.Z))
}

// Rotate3DAxis returns a rotation matrix of the given angle in radians
// around the given axis, which does not need to be normalized.
func Rotate3DAxis(axis Vector3, angle float32) Matrix3 {
	k := axis.Normal()
	s, c := Sincos(angle)
	t := 1 - c
	m := OuterProduct(k, k).MulScalar(t)
	m.Set(0, 0, m.At(0, 0)+c)
	m.Set(1, 1, m.At(1, 1)+c)
	m.Set(2, 2, m.At(2, 2)+c)
	m.Set(0, 1, m.At(0, 1)-s*k.Z)
	m.Set(1, 0, m.At(1, 0)+s*k.Z)
	m.Set(0, 2, m.At(0, 2)+s*k.Y)
	m.Set(2, 0, m.At(2, 0)-s*k.Y)
	m.Set(1, 2, m.At(1, 2)-s*k.X)
	m.Set(2, 1, m.At(2, 1)+s*k.X)
	return m
}

func (m Matrix3) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g; %g %g %g]",
		m[0], m[3], m[6], m[1], m[4], m[7], m[2], m[5], m[8])
}

// At returns the element at the given row and column.
func (m Matrix3) At(row, col int) float32 {
	return m[col*3+row]
}

// Set sets the element at the given row and column.
func (m *Matrix3) Set(row, col int, v float32) {
	m[col*3+row] = v
}

// Col returns the given column as a vector.
func (m Matrix3) Col(col int) Vector3 {
	i := col * 3
	return Vector3{m[i], m[i+1], m[i+2]}
}

// SetCol sets the given column from a vector.
func (m *Matrix3) SetCol(col int, v Vector3) {
	i := col * 3
	m[i], m[i+1], m[i+2] = v.X, v.Y, v.Z
}

// Mul returns this matrix times other matrix (this * other).
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	var r Matrix3
	for c := 0; c < 3; c++ {
		r.SetCol(c, m.MulVector3(other.Col(c)))
	}
	return r
}

// MulVector3 returns this matrix times the given column vector.
func (m Matrix3) MulVector3(v Vector3) Vector3 {
	return Vector3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// MulScalar returns this matrix with every element multiplied by s.
func (m Matrix3) MulScalar(s float32) Matrix3 {
	for i := range m {
		m[i] *= s
	}
	return m
}

// Add returns the element-wise sum of this matrix and other.
func (m Matrix3) Add(other Matrix3) Matrix3 {
	for i := range m {
		m[i] += other[i]
	}
	return m
}

// Sub returns the element-wise difference of this matrix and other.
func (m Matrix3) Sub(other Matrix3) Matrix3 {
	for i := range m {
		m[i] -= other[i]
	}
	return m
}

// Transpose returns the transpose of this matrix.
func (m Matrix3) Transpose() Matrix3 {
	m[1], m[3] = m[3], m[1]
	m[2], m[6] = m[6], m[2]
	m[5], m[7] = m[7], m[5]
	return m
}

// Trace returns the sum of the diagonal elements.
func (m Matrix3) Trace() float32 {
	return m[0] + m[4] + m[8]
}

// Determinant calculates and returns the determinant of this matrix.
func (m Matrix3) Determinant() float32 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Inverse returns the inverse of this matrix, or [ErrSingular]
// if the determinant is zero.
func (m Matrix3) Inverse() (Matrix3, error) {
	det := m.Determinant()
	if det == 0 {
		return Identity3(), ErrSingular
	}
	c0, c1, c2 := m.Col(0), m.Col(1), m.Col(2)
	// rows of the inverse are the cross products of the columns
	r0 := c1.Cross(c2).DivScalar(det)
	r1 := c2.Cross(c0).DivScalar(det)
	r2 := c0.Cross(c1).DivScalar(det)
	return Matrix3FromCols(r0, r1, r2).Transpose(), nil
}

// IsEqualTol returns whether all elements of this matrix are
// within the given tolerance of those of other.
func (m Matrix3) IsEqualTol(other Matrix3, tol float32) bool {
	for i := range m {
		if Abs(m[i]-other[i]) > tol {
			return false
		}
	}
	return true
}
