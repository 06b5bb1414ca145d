package shadow

import (
	"fmt"

	"github.com/Faultbox/shadowvol/pkg/buffer"
	"github.com/Faultbox/shadowvol/pkg/math"
)

// triangleCount returns how many triangles count indices form under op.
func triangleCount(op buffer.OperationType, count int) int {
	switch op {
	case buffer.OperationTriangleList:
		return count / 3
	case buffer.OperationTriangleStrip, buffer.OperationTriangleFan:
		if count < 3 {
			return 0
		}
		return count - 2
	default:
		return 0
	}
}

// walkTriangles calls fn with the three indices of every triangle in r.
//
// After the first triangle, fans keep slot 0 and strips alternate the slot
// that receives the previous last index (1 on even triangles, 0 on odd) so
// every triangle comes out with the same winding.
func walkTriangles(r buffer.IndexReader, op buffer.OperationType, fn func(idx [3]uint32) error) error {
	var idx [3]uint32
	next := 0
	iterations := triangleCount(op, r.Len())
	for t := 0; t < iterations; t++ {
		if op == buffer.OperationTriangleList || t == 0 {
			idx[0] = r.At(next)
			idx[1] = r.At(next + 1)
			idx[2] = r.At(next + 2)
			next += 3
		} else {
			slot := 1
			if op == buffer.OperationTriangleStrip && t&1 == 1 {
				slot = 0
			}
			idx[slot] = idx[2]
			idx[2] = r.At(next)
			next++
		}
		if err := fn(idx); err != nil {
			return err
		}
	}
	return nil
}

// positionReader reads float3 positions out of locked vertex bytes.
type positionReader struct {
	data   []byte
	stride int
	offset int
}

func (p positionReader) at(index uint32) (math.Vec3, error) {
	off := int(index)*p.stride + p.offset
	if off+12 > len(p.data) {
		return math.Vec3{}, fmt.Errorf("%w: vertex %d beyond %d-byte buffer", buffer.ErrOutOfRange, index, len(p.data))
	}
	return buffer.Vec3At(p.data[off:]), nil
}
