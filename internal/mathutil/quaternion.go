package mathutil

import "math"

// Quat represents a quaternion (x, y, z, w).
type Quat [4]float64

// QuatIdentity returns the unit rotation.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

func (q Quat) X() float64 { return q[0] }
func (q Quat) Y() float64 { return q[1] }
func (q Quat) Z() float64 { return q[2] }
func (q Quat) W() float64 { return q[3] }

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}

// AxisAngle splits q into a rotation axis and an angle in radians.
// A zero axis is returned when the rotation has no defined axis (w = ±1).
func (q Quat) AxisAngle() (Vec3, float64) {
	w := clamp(q[3], -1, 1)
	angle := 2 * math.Acos(w)
	sqr := math.Sqrt(1 - w*w)
	if sqr == 0 {
		return Vec3{}, angle
	}
	return Vec3{q[0] / sqr, q[1] / sqr, q[2] / sqr}, angle
}

// QuatFromAxisAngle builds a quaternion from an axis and an angle in radians.
// When sin(angle/2) is exactly zero the identity is returned.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	s := math.Sin(angle / 2)
	if s == 0 {
		return QuatIdentity()
	}
	return Quat{axis[0] * s, axis[1] * s, axis[2] * s, math.Cos(angle / 2)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
