package model

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/shadowvol/internal/logger"
	"github.com/Faultbox/shadowvol/pkg/buffer"
)

// glTF import errors.
var (
	ErrNoPositions         = errors.New("primitive has no POSITION attribute")
	ErrUnsupportedAccessor = errors.New("unsupported accessor layout")
	ErrNoBufferData        = errors.New("buffer has no data")
)

// LoadGLTF opens a .gltf or .glb file and converts it with FromGLTF.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open glTF: %w", err)
	}
	return FromGLTF(doc, path)
}

// FromGLTF converts every primitive of every mesh in doc into a submesh with
// its own vertex data. Positions keep the buffer view's stride. Node
// transforms are not applied.
func FromGLTF(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := &Mesh{Name: name}

	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			sm, err := primitiveSubMesh(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			sm.Name = fmt.Sprintf("%s/%d", gm.Name, pi)
			mesh.AddSubMesh(sm)
		}
	}

	logger.Debug("glTF mesh loaded",
		zap.String("mesh", name),
		zap.Int("submeshes", len(mesh.SubMeshes)))
	return mesh, nil
}

func primitiveSubMesh(doc *gltf.Document, prim *gltf.Primitive) (*SubMesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, ErrNoPositions
	}

	vd, err := readPositions(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	sm := &SubMesh{
		VertexData: vd,
		Operation:  primitiveOperation(prim.Mode),
	}

	if prim.Indices != nil {
		sm.IndexData, err = readIndices(doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		sm.IndexData = sequentialIndices(vd.Count)
	}
	return sm, nil
}

func primitiveOperation(mode gltf.PrimitiveMode) buffer.OperationType {
	switch mode {
	case gltf.PrimitiveTriangleStrip:
		return buffer.OperationTriangleStrip
	case gltf.PrimitiveTriangleFan:
		return buffer.OperationTriangleFan
	case gltf.PrimitivePoints:
		return buffer.OperationPointList
	case gltf.PrimitiveLines:
		return buffer.OperationLineList
	case gltf.PrimitiveLineStrip, gltf.PrimitiveLineLoop:
		return buffer.OperationLineStrip
	default:
		return buffer.OperationTriangleList
	}
}

// accessorBytes returns the bytes an accessor covers and its element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil || accessor.Sparse != nil {
		return nil, 0, fmt.Errorf("%w: accessor without plain buffer view", ErrUnsupportedAccessor)
	}
	view := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[view.Buffer]
	if buf.Data == nil {
		return nil, 0, ErrNoBufferData
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if accessor.Count == 0 {
		return nil, stride, nil
	}

	start := view.ByteOffset + accessor.ByteOffset
	end := start + (accessor.Count-1)*stride + elemSize
	if end > len(buf.Data) || end > view.ByteOffset+view.ByteLength {
		return nil, 0, fmt.Errorf("%w: accessor reads past buffer view", ErrUnsupportedAccessor)
	}
	return buf.Data[start:end], stride, nil
}

// readPositions copies a float VEC3 accessor into single-source vertex data.
func readPositions(doc *gltf.Document, accessorIdx int) (*buffer.VertexData, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("%w: position is %v of %v", ErrUnsupportedAccessor, accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}
	// The last element may end before the stride does.
	raw := make([]byte, accessor.Count*stride)
	copy(raw, data)

	vd := buffer.NewVertexData()
	vd.Declaration.AddElement(0, 0, buffer.TypeFloat3, buffer.SemanticPosition, 0)
	vd.Binding.SetBinding(0, buffer.NewVertexBufferFromBytes(stride, raw))
	vd.Count = accessor.Count
	return vd, nil
}

// readIndices converts a scalar index accessor. Byte indices widen to 16 bits.
func readIndices(doc *gltf.Document, accessorIdx int) (*buffer.IndexData, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("%w: indices are %v", ErrUnsupportedAccessor, accessor.Type)
	}

	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		data, stride, err := accessorBytes(doc, accessor, 1)
		if err != nil {
			return nil, err
		}
		out := make([]uint16, accessor.Count)
		for i := range out {
			out[i] = uint16(data[i*stride])
		}
		return buffer.NewIndexData16(out), nil

	case gltf.ComponentUshort:
		data, stride, err := accessorBytes(doc, accessor, 2)
		if err != nil {
			return nil, err
		}
		out := make([]uint16, accessor.Count)
		for i := range out {
			out[i] = binary.LittleEndian.Uint16(data[i*stride:])
		}
		return buffer.NewIndexData16(out), nil

	case gltf.ComponentUint:
		data, stride, err := accessorBytes(doc, accessor, 4)
		if err != nil {
			return nil, err
		}
		out := make([]uint32, accessor.Count)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(data[i*stride:])
		}
		return buffer.NewIndexData32(out), nil
	}

	return nil, fmt.Errorf("%w: index component %v", ErrUnsupportedAccessor, accessor.ComponentType)
}

// sequentialIndices indexes 0..count-1 for non-indexed primitives.
func sequentialIndices(count int) *buffer.IndexData {
	if count <= 1<<16 {
		out := make([]uint16, count)
		for i := range out {
			out[i] = uint16(i)
		}
		return buffer.NewIndexData16(out)
	}
	out := make([]uint32, count)
	for i := range out {
		out[i] = uint32(i)
	}
	return buffer.NewIndexData32(out)
}
