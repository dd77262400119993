package scene

// Node is a single node of the scene snapshot. Kind-specific payload lives
// in Data; the Kind tag says which concrete type it holds, so callers never
// probe attributes at runtime.
type Node struct {
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Transform Transform `json:"transform"`
	Parent    string    `json:"parent,omitempty"` // name of parent node, "" = root
	Hidden    bool      `json:"hidden,omitempty"`
	Data      NodeData  `json:"data,omitempty"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

// MeshData carries a node's triangle geometry. All arrays are flat:
// positions and normals have 3 floats per vertex, indices 3 uint32s per
// triangle. The pipeline treats this payload as opaque; it is moved, never
// edited.
type MeshData struct {
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals,omitempty"`
	Indices   []uint32  `json:"indices"`
	Material  string    `json:"material,omitempty"`
}

func (MeshData) nodeData() {}

// VertexCount returns the number of vertices.
func (m MeshData) VertexCount() int { return len(m.Positions) / 3 }

// TriangleCount returns the number of triangles.
func (m MeshData) TriangleCount() int { return len(m.Indices) / 3 }

// PlaceholderData carries a placeholder's display attributes. DisplaySize
// is the uniform bounding-box size the interchange format preserves;
// DisplayType does not survive a round trip.
type PlaceholderData struct {
	DisplayType DisplayType `json:"display_type"`
	DisplaySize float64     `json:"display_size"`
}

func (PlaceholderData) nodeData() {}

// CameraData carries the camera attributes the exporter needs.
type CameraData struct {
	FOVDegrees float64 `json:"fov_degrees"`
}

func (CameraData) nodeData() {}

// Mesh returns the node's mesh payload, or nil if the node is not a mesh.
func (n *Node) Mesh() *MeshData {
	if n.Kind != KindMesh {
		return nil
	}
	if d, ok := n.Data.(MeshData); ok {
		return &d
	}
	return nil
}

// Placeholder returns the node's placeholder payload, or nil.
func (n *Node) Placeholder() *PlaceholderData {
	if n.Kind != KindPlaceholder {
		return nil
	}
	if d, ok := n.Data.(PlaceholderData); ok {
		return &d
	}
	return nil
}

// Camera returns the node's camera payload, or nil.
func (n *Node) Camera() *CameraData {
	if n.Kind != KindCamera {
		return nil
	}
	if d, ok := n.Data.(CameraData); ok {
		return &d
	}
	return nil
}
