package mathutil

import "math"

// Euler holds pitch, yaw and roll in radians, in the order the studio
// format writes them (rx, ry, rz).
type Euler struct {
	P, Y, R float64
}

// Mat3 builds the rotation for the angles: roll about Right, then yaw about
// Up, then pitch about Forward, with roll and yaw negated.
func (e Euler) Mat3() Mat3 {
	m := RotAxis(Right, -e.R)
	m = Mat3Mul(m, RotAxis(Up, -e.Y))
	return Mat3Mul(m, RotAxis(Forward, e.P))
}

// EulerFromMat3 inverts Euler.Mat3 for a pure rotation matrix.
// Near gimbal lock pitch is pinned to zero and the remainder goes to roll.
func EulerFromMat3(m Mat3) Euler {
	sb := clamp(m.At(0, 2), -1, 1)
	b := math.Asin(sb)
	var a, c float64
	if math.Abs(sb) < 1-1e-9 {
		a = math.Atan2(-m.At(1, 2), m.At(2, 2))
		c = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		a = math.Atan2(m.At(2, 1), m.At(1, 1))
	}
	return Euler{P: c, Y: -b, R: a}
}

// EulerFromQuat returns the angles whose Mat3 equals the rotation of q.
func EulerFromQuat(q Quat) Euler {
	return EulerFromMat3(QuatToMat3(q))
}
