package viewmatrix

import (
	"fmt"
	"math"

	"smd-loader/internal/mathutil"
)

// DefaultFOV is the vertical field of view in degrees used for perspective previews.
const DefaultFOV = 60.0

// Camera describes how a converted model is looked at.
type Camera struct {
	View        mathutil.Mat3
	Perspective bool
	FOV         float64 // degrees, only read when Perspective is set
}

// DefaultCamera returns the orthographic three-quarter preview camera.
func DefaultCamera() Camera {
	return Camera{View: mathutil.ViewThreeQuarter, FOV: DefaultFOV}
}

// ViewByName returns the view rotation for a preview angle.
// "" and "three-quarter" look down from the front-left, "front" looks
// straight along Forward, "engine" keeps the engine axes unmirrored.
func ViewByName(name string) (mathutil.Mat3, error) {
	switch name {
	case "", "three-quarter":
		return mathutil.ViewThreeQuarter, nil
	case "front":
		return mathutil.ViewFront, nil
	case "engine":
		return mathutil.Mat3Identity(), nil
	}
	return mathutil.Mat3{}, fmt.Errorf("viewmatrix: unknown view %q", name)
}

// Fit computes the view-space center and the scale that maps the larger
// screen extent of points onto renderSize minus margin on each side.
func Fit(points []mathutil.Vec3, cam Camera, renderSize, margin int) (mathutil.Vec3, float64) {
	if len(points) == 0 {
		return mathutil.Vec3{}, 1
	}

	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		t := cam.View.MulVec3(p)
		lo = lo.Min(t)
		hi = hi.Max(t)
	}

	center := lo.Add(hi).Scale(0.5)
	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	usable := renderSize - 2*margin
	if usable < 1 {
		usable = 1
	}
	return center, float64(usable) / span
}

// ProjectVertices transforms 3D points to 2D screen coordinates.
// Returns px, py, pz slices (screen X, screen Y growing down, view depth).
func ProjectVertices(points []mathutil.Vec3, cam Camera, center mathutil.Vec3, scale float64, renderSize int) ([]float64, []float64, []float64) {
	n := len(points)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	half := float64(renderSize) / 2

	var camDist, zCenter float64
	if cam.Perspective {
		fov := cam.FOV
		if fov <= 0 {
			fov = DefaultFOV
		}
		halfFOV := mathutil.Deg2Rad(fov / 2)

		zMin, zMax := math.Inf(1), math.Inf(-1)
		var xyMax float64
		for _, p := range points {
			t := cam.View.MulVec3(p)
			zMin = math.Min(zMin, t[2])
			zMax = math.Max(zMax, t[2])
			for k := 0; k < 2; k++ {
				xyMax = math.Max(xyMax, math.Abs(t[k]-center[k]))
			}
		}
		zCenter = (zMin + zMax) / 2
		if xyMax < 0.001 {
			xyMax = 0.001
		}
		camDist = xyMax / math.Tan(halfFOV)
	}

	for i, p := range points {
		t := cam.View.MulVec3(p)

		if cam.Perspective {
			depth := math.Max(camDist-(t[2]-zCenter), 0.1)
			factor := camDist / depth
			t[0] = center[0] + (t[0]-center[0])*factor
			t[1] = center[1] + (t[1]-center[1])*factor
		}

		px[i] = (t[0]-center[0])*scale + half
		py[i] = -(t[1]-center[1])*scale + half
		pz[i] = t[2]
	}

	return px, py, pz
}
