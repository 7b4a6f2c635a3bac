package smd

import (
	"fmt"
	"io"
	"strings"

	"smd-loader/internal/mathutil"
)

// Parse reads the nodes, skeleton and triangles blocks of a studio model
// file. Malformed lines are skipped or zero-filled; the only error returned
// is a failure of the underlying reader.
//
// Parse does not build the hierarchy or convert coordinates; see
// package skeleton.
func Parse(r io.Reader) (*Model, error) {
	m := NewModel()
	lr := newLineReader(r)
	for {
		l, ok := lr.next()
		if !ok {
			break
		}
		switch strings.ToLower(l) {
		case "nodes":
			m.readNodeBlock(lr)
		case "skeleton":
			m.readSkeletonBlock(lr)
		case "triangles":
			m.readTriangleBlock(lr)
		}
	}
	if lr.err != nil {
		return nil, fmt.Errorf("smd: read: %w", lr.err)
	}
	return m, nil
}

// readNodeBlock reads `<id> "<name>" <parent>` lines.
func (m *Model) readNodeBlock(lr *lineReader) {
	for {
		l, ok := lr.nextBlockLine()
		if !ok {
			return
		}
		args := fields(l)
		if len(args) < 3 {
			continue
		}
		m.AddNode(Node{
			ID:     parseInt(unquote(args[0])),
			Name:   unquote(args[1]),
			Parent: parseInt(unquote(args[2])),
		})
	}
}

// readSkeletonBlock reads "time <n>" headers and bone transform lines.
// A header that does not continue the previous time by exactly one ends the
// block early; the remaining lines are left to the caller.
func (m *Model) readSkeletonBlock(lr *lineReader) {
	time := -1
	for {
		l, ok := lr.nextBlockLine()
		if !ok {
			return
		}
		args := fields(l)
		if len(args) < 2 {
			continue
		}
		if strings.EqualFold(args[0], "time") {
			frame := parseInt(args[1])
			if time != -1 && frame != time+1 {
				return
			}
			if time == -1 {
				m.Skeleton.StartTime = frame
			}
			time = frame
			m.Frames = append(m.Frames, Frame{})
			continue
		}
		if time == -1 || len(args) < 7 {
			continue
		}
		boneID := parseInt(args[0])
		if boneID < 0 || boneID > MaxBoneID {
			continue
		}
		frame := &m.Frames[len(m.Frames)-1]
		if len(frame.Transforms) < boneID+1 {
			grown := make([]FrameTransform, boneID+1)
			copy(grown, frame.Transforms)
			frame.Transforms = grown
		}
		frame.Transforms[boneID] = FrameTransform{
			Position: mathutil.Vec3{-parseFloat(args[1]), parseFloat(args[2]), parseFloat(args[3])},
			Angles:   mathutil.Euler{P: parseFloat(args[4]), Y: parseFloat(args[5]), R: parseFloat(args[6])},
		}
	}
}

// readTriangleBlock reads groups of one material line and three vertex lines.
func (m *Model) readTriangleBlock(lr *lineReader) {
	vertID := -1
	var mesh *Mesh
	invalid := false
	for {
		l, ok := lr.nextBlockLine()
		if !ok {
			return
		}
		if vertID == -1 {
			invalid = false
			mesh = m.meshFor(textureKey(l))
			mesh.Triangles = append(mesh.Triangles, newTriangle())
			vertID = 0
			continue
		}

		tri := &mesh.Triangles[len(mesh.Triangles)-1]
		if parseVertex(fields(l), &tri.Vertices[vertID]) {
			invalid = true
		}
		vertID++
		if vertID == 3 {
			vertID = -1
			if invalid {
				mesh.Triangles = mesh.Triangles[:len(mesh.Triangles)-1]
			}
		}
	}
}

// meshFor returns the mesh with exactly this texture key, appending one if needed.
// The pointer is valid until the next append to m.Meshes.
func (m *Model) meshFor(tex string) *Mesh {
	for i := range m.Meshes {
		if m.Meshes[i].Texture == tex {
			return &m.Meshes[i]
		}
	}
	m.Meshes = append(m.Meshes, Mesh{Texture: tex})
	return &m.Meshes[len(m.Meshes)-1]
}

// textureKey cuts the line at its last '.', wherever it is.
func textureKey(line string) string {
	if dot := strings.LastIndexByte(line, '.'); dot >= 0 {
		return line[:dot]
	}
	return line
}

// parseVertex fills v from
// `<bone> <px> <py> <pz> <nx> <ny> <nz> <u> <v> [<links> (<bone> <weight>)...]`.
// Lines with fewer than 9 tokens leave v untouched. It reports whether the
// position is beyond MaxVertLength.
func parseVertex(args []string, v *Vertex) (tooFar bool) {
	if len(args) < 9 {
		return false
	}
	v.Bone = parseInt(args[0])
	v.Position = mathutil.Vec3{parseFloat(args[1]), parseFloat(args[2]), parseFloat(args[3])}
	v.Normal = mathutil.Vec3{parseFloat(args[4]), parseFloat(args[5]), parseFloat(args[6])}
	v.UV = mathutil.Vec2{parseFloat(args[7]), parseFloat(args[8])}
	tooFar = v.Position.Len() > MaxVertLength

	if len(args) < 10 {
		return tooFar
	}
	links := parseInt(args[9])
	if avail := (len(args) - 10) / 2; links > avail {
		links = avail
	}
	v.Weights = make(map[int]float64, links+1)
	sum := 0.0
	for i := 0; i < links; i++ {
		bone := parseInt(arg(args, 10+i*2))
		w := parseFloat(arg(args, 11+i*2))
		if _, dup := v.Weights[bone]; !dup {
			v.Weights[bone] = w
		}
		sum += w
	}
	if sum < 0.999 {
		if _, dup := v.Weights[v.Bone]; !dup {
			v.Weights[v.Bone] = 1 - sum
		}
	}
	return tooFar
}
