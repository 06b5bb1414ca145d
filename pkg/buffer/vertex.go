package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	gmath "github.com/Faultbox/shadowvol/pkg/math"
)

// Vertex declaration errors.
var (
	ErrNoBinding  = errors.New("no vertex buffer bound to source")
	ErrNoPosition = errors.New("vertex declaration has no position element")
)

// VertexElementSemantic identifies what a vertex element holds.
type VertexElementSemantic int

const (
	SemanticPosition VertexElementSemantic = iota
	SemanticNormal
	SemanticDiffuse
	SemanticTexCoord
)

// String returns a human-readable semantic name.
func (s VertexElementSemantic) String() string {
	switch s {
	case SemanticPosition:
		return "Position"
	case SemanticNormal:
		return "Normal"
	case SemanticDiffuse:
		return "Diffuse"
	case SemanticTexCoord:
		return "TexCoord"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// VertexElementType is the storage type of a vertex element.
type VertexElementType int

const (
	TypeFloat1 VertexElementType = iota
	TypeFloat2
	TypeFloat3
	TypeFloat4
	TypeColor // packed RGBA8
)

// Size returns the element size in bytes.
func (t VertexElementType) Size() int {
	switch t {
	case TypeFloat1, TypeColor:
		return 4
	case TypeFloat2:
		return 8
	case TypeFloat3:
		return 12
	case TypeFloat4:
		return 16
	default:
		return 0
	}
}

// VertexElement describes one attribute inside a vertex.
type VertexElement struct {
	Source   int // buffer binding slot
	Offset   int // byte offset within the vertex
	Type     VertexElementType
	Semantic VertexElementSemantic
	Index    int // for repeated semantics (texcoord sets)
}

// VertexDeclaration lists the elements of a vertex layout.
type VertexDeclaration struct {
	Elements []VertexElement
}

// AddElement appends an element and returns it.
func (d *VertexDeclaration) AddElement(source, offset int, typ VertexElementType, semantic VertexElementSemantic, index int) VertexElement {
	e := VertexElement{Source: source, Offset: offset, Type: typ, Semantic: semantic, Index: index}
	d.Elements = append(d.Elements, e)
	return e
}

// FindElementBySemantic returns the first element with the given semantic and index.
func (d *VertexDeclaration) FindElementBySemantic(semantic VertexElementSemantic, index int) (VertexElement, bool) {
	for _, e := range d.Elements {
		if e.Semantic == semantic && e.Index == index {
			return e, true
		}
	}
	return VertexElement{}, false
}

// VertexSize returns the sum of element sizes bound to source.
func (d *VertexDeclaration) VertexSize(source int) int {
	size := 0
	for _, e := range d.Elements {
		if e.Source == source {
			size += e.Type.Size()
		}
	}
	return size
}

// VertexBuffer is a buffer of fixed-size vertices.
type VertexBuffer struct {
	Buffer
	vertexSize  int
	numVertices int
}

// NewVertexBuffer allocates a zeroed vertex buffer.
func NewVertexBuffer(vertexSize, numVertices int) *VertexBuffer {
	return &VertexBuffer{
		Buffer:      newBuffer(vertexSize * numVertices),
		vertexSize:  vertexSize,
		numVertices: numVertices,
	}
}

// NewVertexBufferFromBytes wraps a copy of raw interleaved vertex bytes.
// Trailing bytes that do not form a whole vertex are kept but not counted.
func NewVertexBufferFromBytes(vertexSize int, data []byte) *VertexBuffer {
	vb := &VertexBuffer{
		Buffer:     newBuffer(len(data)),
		vertexSize: vertexSize,
	}
	copy(vb.data, data)
	if vertexSize > 0 {
		vb.numVertices = len(data) / vertexSize
	}
	return vb
}

// NewPositionBuffer packs positions as consecutive float3 (12-byte stride).
func NewPositionBuffer(positions []gmath.Vec3) *VertexBuffer {
	vb := NewVertexBuffer(12, len(positions))
	for i, p := range positions {
		PutVec3(vb.data[i*12:], p)
	}
	return vb
}

// VertexSize returns the stride in bytes.
func (vb *VertexBuffer) VertexSize() int {
	return vb.vertexSize
}

// NumVertices returns how many whole vertices the buffer holds.
func (vb *VertexBuffer) NumVertices() int {
	return vb.numVertices
}

// VertexBufferBinding maps source slots to buffers.
type VertexBufferBinding struct {
	bindings map[int]*VertexBuffer
}

// SetBinding binds a buffer to a source slot.
func (b *VertexBufferBinding) SetBinding(source int, vb *VertexBuffer) {
	if b.bindings == nil {
		b.bindings = make(map[int]*VertexBuffer)
	}
	b.bindings[source] = vb
}

// Buffer returns the buffer bound to source.
func (b *VertexBufferBinding) Buffer(source int) (*VertexBuffer, error) {
	vb, ok := b.bindings[source]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoBinding, source)
	}
	return vb, nil
}

// VertexData describes a range of vertices spread over bound buffers.
type VertexData struct {
	Declaration *VertexDeclaration
	Binding     *VertexBufferBinding
	Start       int
	Count       int
}

// NewVertexData creates vertex data with an empty declaration and binding.
func NewVertexData() *VertexData {
	return &VertexData{
		Declaration: &VertexDeclaration{},
		Binding:     &VertexBufferBinding{},
	}
}

// NewPositionVertexData builds single-source vertex data holding only positions.
func NewPositionVertexData(positions []gmath.Vec3) *VertexData {
	vd := NewVertexData()
	vd.Declaration.AddElement(0, 0, TypeFloat3, SemanticPosition, 0)
	vd.Binding.SetBinding(0, NewPositionBuffer(positions))
	vd.Count = len(positions)
	return vd
}

// PositionSource returns the position element and the buffer it lives in.
func (vd *VertexData) PositionSource() (VertexElement, *VertexBuffer, error) {
	elem, ok := vd.Declaration.FindElementBySemantic(SemanticPosition, 0)
	if !ok {
		return VertexElement{}, nil, ErrNoPosition
	}
	vb, err := vd.Binding.Buffer(elem.Source)
	if err != nil {
		return VertexElement{}, nil, err
	}
	return elem, vb, nil
}

// Vec3At decodes a little-endian float3 at the start of b.
func Vec3At(b []byte) gmath.Vec3 {
	return gmath.Vec3{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

// PutVec3 encodes v as a little-endian float3 at the start of b.
func PutVec3(b []byte, v gmath.Vec3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.Z))
}
