package mathutil

import "math"

// Mat4 is a 4×4 matrix stored row-major. Used for bone world transforms.
// Translation lives in the last column (indices 3, 7, 11).
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// FromMat3Translation builds a 4×4 affine matrix from a 3×3 rotation and translation.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	return Mat4{
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
		0, 0, 0, 1,
	}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float64 {
	return m[r*4+c]
}

// RotationQuat extracts the rotation of the upper 3×3 block with the
// trace/dominant-diagonal method. The component signs follow the legacy
// studio importer: the trace branch negates y and z relative to the textbook
// formula, and each diagonal branch negates its dominant component.
// Downstream conversion depends on these exact signs.
func (m Mat4) RotationQuat() Quat {
	at := m.At
	q := QuatIdentity()
	trace := at(0, 0) + at(1, 1) + at(2, 2)
	if trace > 0 {
		s := 0.5 / math.Sqrt(trace+1)
		q[3] = 0.25 / s
		q[0] = (at(1, 2) - at(2, 1)) * -s
		q[1] = (at(2, 0) - at(0, 2)) * s
		q[2] = (at(0, 1) - at(1, 0)) * s
		return q
	}

	switch {
	case at(0, 0) > at(1, 1) && at(0, 0) > at(2, 2):
		s := 2 * math.Sqrt(1+at(0, 0)-at(1, 1)-at(2, 2))
		q[3] = (at(1, 2) - at(2, 1)) / s
		q[0] = 0.25 * -s
		q[1] = (at(1, 0) + at(0, 1)) / s
		q[2] = (at(2, 0) + at(0, 2)) / s
	case at(1, 1) > at(2, 2):
		s := 2 * math.Sqrt(1+at(1, 1)-at(0, 0)-at(2, 2))
		q[3] = (at(2, 0) - at(0, 2)) / -s
		q[0] = (at(1, 0) + at(0, 1)) / s
		q[1] = 0.25 * -s
		q[2] = (at(2, 1) + at(1, 2)) / -s
	default:
		s := 2 * math.Sqrt(1+at(2, 2)-at(0, 0)-at(1, 1))
		q[3] = (at(0, 1) - at(1, 0)) / -s
		q[0] = (at(2, 0) + at(0, 2)) / s
		q[1] = (at(2, 1) + at(1, 2)) / -s
		q[2] = 0.25 * -s
	}
	return q
}
