package buffer

import "fmt"

// OperationType is the primitive topology an index range is drawn with.
type OperationType int

const (
	OperationPointList OperationType = iota
	OperationLineList
	OperationLineStrip
	OperationTriangleList
	OperationTriangleStrip
	OperationTriangleFan
)

// String returns a human-readable topology name.
func (o OperationType) String() string {
	switch o {
	case OperationPointList:
		return "PointList"
	case OperationLineList:
		return "LineList"
	case OperationLineStrip:
		return "LineStrip"
	case OperationTriangleList:
		return "TriangleList"
	case OperationTriangleStrip:
		return "TriangleStrip"
	case OperationTriangleFan:
		return "TriangleFan"
	default:
		return fmt.Sprintf("Unknown(%d)", o)
	}
}

// IsTriangles reports whether o produces triangles.
func (o OperationType) IsTriangles() bool {
	return o == OperationTriangleList || o == OperationTriangleStrip || o == OperationTriangleFan
}
