package smd

import "smd-loader/internal/mathutil"

// MaxVertLength is the position length above which a vertex marks its
// triangle as invalid.
const MaxVertLength = 524288

// MaxBoneID is the largest bone id a skeleton transform line may address.
// Lines above it are ignored like negative ids.
const MaxBoneID = 1 << 16

// Node is one joint declared in the nodes block.
type Node struct {
	ID     int // id as declared in the file
	Name   string
	Parent int // declared id of the parent, -1 for a root

	// Children holds storage indices into Model.Nodes, filled by the hierarchy pass.
	Children []int
}

// Skeleton summarizes the skeleton block and the node hierarchy.
type Skeleton struct {
	StartTime int   // first "time" value, -1 until a frame is seen
	RootNodes []int // storage indices of parentless nodes
}

// FrameTransform is one bone's transform within a frame.
// Rotation is zero until the coordinate conversion fills it.
type FrameTransform struct {
	Position mathutil.Vec3
	Angles   mathutil.Euler
	Rotation mathutil.Quat
}

// Frame holds the transforms of one time step indexed by bone id.
// Bones missing from the frame's text keep the zero transform.
type Frame struct {
	Transforms []FrameTransform
}

// Transform returns the transform for boneID, or the zero transform if the
// frame has no slot for it.
func (f *Frame) Transform(boneID int) FrameTransform {
	if boneID < 0 || boneID >= len(f.Transforms) {
		return FrameTransform{}
	}
	return f.Transforms[boneID]
}

// Vertex is one corner of a triangle.
type Vertex struct {
	Bone     int // primary bone, -1 when the line was malformed
	Position mathutil.Vec3
	Normal   mathutil.Vec3
	UV       mathutil.Vec2
	Weights  map[int]float64 // bone id -> weight, nil when the line has no links
}

// Triangle has exactly three vertices in file order.
type Triangle struct {
	Vertices [3]Vertex
}

func newTriangle() Triangle {
	var t Triangle
	for i := range t.Vertices {
		t.Vertices[i].Bone = -1
	}
	return t
}

// Mesh groups the triangles sharing one texture key.
type Mesh struct {
	Texture   string
	Triangles []Triangle
}

// Model owns everything parsed from one file.
type Model struct {
	Nodes    []Node
	Frames   []Frame
	Meshes   []Mesh
	Skeleton Skeleton

	// Warnings collects non-fatal problems found after parsing
	// (dangling parents, cycles).
	Warnings []string

	nodeIndex map[int]int
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		Skeleton:  Skeleton{StartTime: -1},
		nodeIndex: make(map[int]int),
	}
}

// NodeIndex maps a declared node id to its index in Nodes.
// The first declaration of an id wins.
func (m *Model) NodeIndex(id int) (int, bool) {
	i, ok := m.nodeIndex[id]
	return i, ok
}

// AddNode appends n and registers its id.
func (m *Model) AddNode(n Node) {
	if m.nodeIndex == nil {
		m.nodeIndex = make(map[int]int)
	}
	if _, dup := m.nodeIndex[n.ID]; !dup {
		m.nodeIndex[n.ID] = len(m.Nodes)
	}
	m.Nodes = append(m.Nodes, n)
}

// TriangleCount returns the number of triangles across all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for i := range m.Meshes {
		n += len(m.Meshes[i].Triangles)
	}
	return n
}
