package skeleton

import (
	"smd-loader/internal/mathutil"
	"smd-loader/internal/smd"
)

// ConvertCoordinateSystem bakes every frame into world space and re-expresses
// positions and rotations in the engine convention, then remaps mesh
// geometry. It runs once, after BuildHierarchy, and mutates m in place.
//
// Nodes unreachable from the roots keep identity world matrices; their
// presence is reported with ErrCycle after the whole model is converted.
func ConvertCoordinateSystem(m *smd.Model) error {
	order, err := walkOrder(m)

	for fi := range m.Frames {
		f := &m.Frames[fi]
		worlds := composeWorlds(m, f, order)
		for bone := range f.Transforms {
			world := mathutil.Mat4Identity()
			if i, ok := m.NodeIndex(bone); ok {
				world = worlds[i]
			}
			t := &f.Transforms[bone]
			t.Position = convertPosition(world.Translation())
			t.Rotation = convertRotation(world.RotationQuat())
			t.Angles = mathutil.EulerFromQuat(t.Rotation)
		}
	}

	for mi := range m.Meshes {
		tris := m.Meshes[mi].Triangles
		for ti := range tris {
			for vi := range tris[ti].Vertices {
				v := &tris[ti].Vertices[vi]
				v.Position = swapYZ(v.Position)
				v.Normal = swapYZ(v.Normal)
			}
		}
	}
	return err
}

// swapYZ maps (x, y, z) to (x, z, -y). It is not an involution.
func swapYZ(v mathutil.Vec3) mathutil.Vec3 {
	return mathutil.Vec3{v[0], v[2], -v[1]}
}

// convertPosition is swapYZ followed by an X flip.
func convertPosition(v mathutil.Vec3) mathutil.Vec3 {
	v = swapYZ(v)
	v[0] = -v[0]
	return v
}

// convertRotation permutes the rotation axis (x, y, z) -> (-y, -z, -x),
// then rotates the components one place: the result's x, y, z, w are the
// intermediate w, x, y, z. Downstream consumers read this shifted layout.
func convertRotation(q mathutil.Quat) mathutil.Quat {
	axis, angle := q.AxisAngle()
	axis = mathutil.Vec3{-axis[1], -axis[2], -axis[0]}
	r := mathutil.QuatFromAxisAngle(axis, angle)
	return mathutil.Quat{r.W(), r.X(), r.Y(), r.Z()}
}
