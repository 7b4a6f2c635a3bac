package skeleton

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smd-loader/internal/mathutil"
	"smd-loader/internal/smd"
)

const eps = 1e-9

func assertVec3(t *testing.T, want, got mathutil.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

func assertQuat(t *testing.T, want, got mathutil.Quat) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

func assertMat3(t *testing.T, want, got mathutil.Mat3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "element %d", i)
	}
}

const twoBones = "nodes\n0 \"root\" -1\n1 \"child\" 0\nend\n"

func prepared(t *testing.T, src string) *smd.Model {
	t.Helper()
	m := parse(t, src)
	require.NoError(t, BuildHierarchy(m))
	return m
}

func TestWorldMatrices_ParentTimesLocal(t *testing.T) {
	src := twoBones + "skeleton\ntime 0\n0 0 0 0 0 0 1.5707963267948966\n1 0 1 0 0 0 0\nend\n"
	m := prepared(t, src)

	worlds, err := WorldMatrices(m, 0)
	require.NoError(t, err)
	require.Len(t, worlds, 2)

	// Root rolls 90° about X, so the child's local +Y lands on +Z.
	assertVec3(t, mathutil.Vec3{0, 0, 1}, worlds[1].Translation())
	assertMat3(t, mathutil.RotX(math.Pi/2), mathutil.Euler{R: math.Pi / 2}.Mat3())
}

func TestWorldMatrices_FrameOutOfRange(t *testing.T) {
	m := prepared(t, twoBones)
	_, err := WorldMatrices(m, 0)
	assert.Error(t, err)
}

func TestConvert_TranslationRemap(t *testing.T) {
	src := twoBones + "skeleton\ntime 0\n0 0 0 0 0 0 0\n1 1 0 0 0 0 0\nend\n"
	m := prepared(t, src)

	require.NoError(t, ConvertCoordinateSystem(m))

	tr := m.Frames[0].Transforms
	require.Len(t, tr, 2)
	assertVec3(t, mathutil.Vec3{0, 0, 0}, tr[0].Position)
	// parsed (-1, 0, 0) -> swap/negate (-1, 0, 0) -> X flip (1, 0, 0)
	assertVec3(t, mathutil.Vec3{1, 0, 0}, tr[1].Position)
}

func TestConvert_ChildInheritsParentTranslation(t *testing.T) {
	src := twoBones + "skeleton\ntime 0\n0 0 2 3 0 0 0\n1 0 0 1 0 0 0\nend\n"
	m := prepared(t, src)

	require.NoError(t, ConvertCoordinateSystem(m))

	// world child = (0, 2, 4); (x, y, z) -> (-x, z, -y)
	assertVec3(t, mathutil.Vec3{0, 4, -2}, m.Frames[0].Transforms[1].Position)
	assertVec3(t, mathutil.Vec3{0, 3, -2}, m.Frames[0].Transforms[0].Position)
}

func TestConvert_IdentityRotation(t *testing.T) {
	m := prepared(t, twoBones+"skeleton\ntime 0\n0 0 0 0 0 0 0\nend\n")

	require.NoError(t, ConvertCoordinateSystem(m))

	q := m.Frames[0].Transforms[0].Rotation
	// identity -> axis-angle (0, 0) -> identity -> component shift puts w in x
	assertQuat(t, mathutil.Quat{1, 0, 0, 0}, q)
	assertMat3(t, mathutil.QuatToMat3(q), m.Frames[0].Transforms[0].Angles.Mat3())
}

func TestConvert_RotationRemap(t *testing.T) {
	m := prepared(t, twoBones+"skeleton\ntime 0\n0 0 0 0 0 0 1.5707963267948966\nend\n")

	require.NoError(t, ConvertCoordinateSystem(m))

	h := math.Sqrt(0.5)
	// world quat (h, 0, 0, h); axis (1,0,0) -> (0,0,-1); quat (0, 0, -h, h);
	// shifted: x=w, y=x, z=y, w=z
	q := m.Frames[0].Transforms[0].Rotation
	assertQuat(t, mathutil.Quat{h, 0, 0, -h}, q)
	assertMat3(t, mathutil.QuatToMat3(q), m.Frames[0].Transforms[0].Angles.Mat3())
}

func TestConvert_SlotWithoutNodeUsesIdentity(t *testing.T) {
	src := "nodes\n0 \"root\" -1\nend\nskeleton\ntime 0\n0 1 0 0 0 0 0\n2 5 5 5 0 0 0\nend\n"
	m := prepared(t, src)

	require.NoError(t, ConvertCoordinateSystem(m))

	tr := m.Frames[0].Transforms
	require.Len(t, tr, 3)
	assertVec3(t, mathutil.Vec3{1, 0, 0}, tr[0].Position)
	assertVec3(t, mathutil.Vec3{0, 0, 0}, tr[2].Position)
	assertQuat(t, mathutil.Quat{1, 0, 0, 0}, tr[2].Rotation)
}

func TestConvert_NonContiguousIDs(t *testing.T) {
	src := "nodes\n3 \"root\" -1\n7 \"child\" 3\nend\nskeleton\ntime 0\n3 0 0 1 0 0 0\n7 0 0 2 0 0 0\nend\n"
	m := prepared(t, src)

	require.NoError(t, ConvertCoordinateSystem(m))

	tr := m.Frames[0].Transforms
	require.Len(t, tr, 8)
	// bone 7 world z = 3 -> (x, y, z) -> (-x, z, -y)
	assertVec3(t, mathutil.Vec3{0, 3, 0}, tr[7].Position)
	assertVec3(t, mathutil.Vec3{0, 1, 0}, tr[3].Position)
}

func TestConvert_Geometry(t *testing.T) {
	src := "triangles\nt.bmp\n0 1 2 3 0 0 1 0 0\n0 4 5 6 0 1 0 0 0\n0 7 8 9 1 0 0 0 0\nend\n"
	m := prepared(t, src)

	require.NoError(t, ConvertCoordinateSystem(m))

	v := m.Meshes[0].Triangles[0].Vertices
	assertVec3(t, mathutil.Vec3{1, 3, -2}, v[0].Position)
	assertVec3(t, mathutil.Vec3{0, 1, 0}, v[0].Normal)
	assertVec3(t, mathutil.Vec3{4, 6, -5}, v[1].Position)
	assertVec3(t, mathutil.Vec3{0, 0, -1}, v[1].Normal)
	assertVec3(t, mathutil.Vec3{1, 0, 0}, v[2].Normal)
}

func TestSwapYZ_NotInvolution(t *testing.T) {
	v := mathutil.Vec3{1, 2, 3}
	assert.Equal(t, mathutil.Vec3{1, 3, -2}, swapYZ(v))
	assert.Equal(t, mathutil.Vec3{1, -2, -3}, swapYZ(swapYZ(v)))
	assert.NotEqual(t, v, swapYZ(swapYZ(v)))
}

func TestConvert_CycleReportedModelStillConverted(t *testing.T) {
	src := "nodes\n0 \"root\" -1\n1 \"a\" 2\n2 \"b\" 1\nend\nskeleton\ntime 0\n0 1 0 0 0 0 0\n1 9 9 9 0 0 0\nend\n"
	m := prepared(t, src)

	err := ConvertCoordinateSystem(m)
	assert.ErrorIs(t, err, ErrCycle)

	tr := m.Frames[0].Transforms
	assertVec3(t, mathutil.Vec3{1, 0, 0}, tr[0].Position)
	// unreachable bones keep identity
	assertVec3(t, mathutil.Vec3{0, 0, 0}, tr[1].Position)
}

func TestConvert_EveryFrame(t *testing.T) {
	src := twoBones + "skeleton\ntime 0\n0 1 0 0 0 0 0\ntime 1\n0 2 0 0 0 0 0\nend\n"
	m := prepared(t, src)

	require.NoError(t, ConvertCoordinateSystem(m))

	assertVec3(t, mathutil.Vec3{1, 0, 0}, m.Frames[0].Transforms[0].Position)
	assertVec3(t, mathutil.Vec3{2, 0, 0}, m.Frames[1].Transforms[0].Position)
}
