package skeleton

import (
	"fmt"

	"smd-loader/internal/mathutil"
	"smd-loader/internal/smd"
)

// localMatrix builds a bone's transform relative to its parent.
func localMatrix(t smd.FrameTransform) mathutil.Mat4 {
	return mathutil.FromMat3Translation(t.Angles.Mat3(), t.Position)
}

// composeWorlds fills one world matrix per node for frame f, walking order.
// Nodes absent from order keep the identity.
func composeWorlds(m *smd.Model, f *smd.Frame, order []visit) []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(m.Nodes))
	for i := range worlds {
		worlds[i] = mathutil.Mat4Identity()
	}
	for _, v := range order {
		local := localMatrix(f.Transform(m.Nodes[v.node].ID))
		if v.parent >= 0 {
			worlds[v.node] = mathutil.Mat4Mul(worlds[v.parent], local)
		} else {
			worlds[v.node] = local
		}
	}
	return worlds
}

// WorldMatrices returns the world transform of every node in Nodes order for
// frame index frame, using the transforms as currently stored (call it
// before ConvertCoordinateSystem to get source-space poses).
// BuildHierarchy must have run.
func WorldMatrices(m *smd.Model, frame int) ([]mathutil.Mat4, error) {
	if frame < 0 || frame >= len(m.Frames) {
		return nil, fmt.Errorf("skeleton: frame %d out of range [0,%d)", frame, len(m.Frames))
	}
	order, err := walkOrder(m)
	return composeWorlds(m, &m.Frames[frame], order), err
}
