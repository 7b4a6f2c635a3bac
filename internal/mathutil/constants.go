package mathutil

// Engine axis convention used when building bone rotations.
var (
	Right   = Vec3{-1, 0, 0}
	Up      = Vec3{0, 1, 0}
	Forward = Vec3{0, 0, 1}
)

// Preview camera matrices. Converted models are Y-up.
var (
	// MirrorX converts the engine's left-handed X to screen right: diag(-1, 1, 1)
	MirrorX = Mat3Diag(-1, 1, 1)

	// ViewThreeQuarter looks slightly down on the model from the front-left.
	// MIRROR_X @ Rx(-15°) @ Ry(30°)
	ViewThreeQuarter = Mat3Mul(Mat3Mul(MirrorX, RotX(Deg2Rad(-15))), RotY(Deg2Rad(30)))

	// ViewFront is a straight-on view along Forward.
	ViewFront = MirrorX
)
