package buffer

import (
	"encoding/binary"
	"fmt"
)

// IndexType is the width of an index.
type IndexType int

const (
	Index16 IndexType = iota
	Index32
)

// Size returns the index size in bytes.
func (t IndexType) Size() int {
	if t == Index32 {
		return 4
	}
	return 2
}

// String returns "16bit" or "32bit".
func (t IndexType) String() string {
	if t == Index32 {
		return "32bit"
	}
	return "16bit"
}

// IndexBuffer is a buffer of 16- or 32-bit indices.
type IndexBuffer struct {
	Buffer
	indexType  IndexType
	numIndexes int
}

// NewIndexBuffer allocates a zeroed index buffer.
func NewIndexBuffer(typ IndexType, numIndexes int) *IndexBuffer {
	return &IndexBuffer{
		Buffer:     newBuffer(typ.Size() * numIndexes),
		indexType:  typ,
		numIndexes: numIndexes,
	}
}

// NewIndexBuffer16 creates a 16-bit buffer holding indices.
func NewIndexBuffer16(indices []uint16) *IndexBuffer {
	ib := NewIndexBuffer(Index16, len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(ib.data[i*2:], idx)
	}
	return ib
}

// NewIndexBuffer32 creates a 32-bit buffer holding indices.
func NewIndexBuffer32(indices []uint32) *IndexBuffer {
	ib := NewIndexBuffer(Index32, len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(ib.data[i*4:], idx)
	}
	return ib
}

// Type returns the index width.
func (ib *IndexBuffer) Type() IndexType {
	return ib.indexType
}

// NumIndexes returns the buffer capacity in indices.
func (ib *IndexBuffer) NumIndexes() int {
	return ib.numIndexes
}

// IndexData describes a range of an index buffer.
type IndexData struct {
	Buffer *IndexBuffer
	Start  int
	Count  int
}

// NewIndexData16 wraps indices in a 16-bit buffer covering the whole range.
func NewIndexData16(indices []uint16) *IndexData {
	return &IndexData{Buffer: NewIndexBuffer16(indices), Count: len(indices)}
}

// NewIndexData32 wraps indices in a 32-bit buffer covering the whole range.
func NewIndexData32(indices []uint32) *IndexData {
	return &IndexData{Buffer: NewIndexBuffer32(indices), Count: len(indices)}
}

// IndexReader reads indices of either width from locked bytes.
type IndexReader struct {
	data []byte
	is32 bool
}

// Lock read-locks the [Start, Start+Count) range and returns a reader over it.
// The caller must call Unlock when done.
func (id *IndexData) Lock() (IndexReader, error) {
	size := id.Buffer.Type().Size()
	data, err := id.Buffer.LockRead(id.Start*size, id.Count*size)
	if err != nil {
		return IndexReader{}, fmt.Errorf("locking indices: %w", err)
	}
	return IndexReader{data: data, is32: id.Buffer.Type() == Index32}, nil
}

// Unlock releases the lock taken by Lock.
func (id *IndexData) Unlock() {
	id.Buffer.UnlockRead()
}

// At returns index i of the locked range widened to uint32.
func (r IndexReader) At(i int) uint32 {
	if r.is32 {
		return binary.LittleEndian.Uint32(r.data[i*4:])
	}
	return uint32(binary.LittleEndian.Uint16(r.data[i*2:]))
}

// Len returns the number of indices in the locked range.
func (r IndexReader) Len() int {
	if r.is32 {
		return len(r.data) / 4
	}
	return len(r.data) / 2
}

// Indices copies the range out as uint32.
func (id *IndexData) Indices() ([]uint32, error) {
	r, err := id.Lock()
	if err != nil {
		return nil, err
	}
	defer id.Unlock()
	out := make([]uint32, r.Len())
	for i := range out {
		out[i] = r.At(i)
	}
	return out, nil
}
