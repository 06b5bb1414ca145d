// Package buffer provides CPU-side vertex and index buffers with scoped
// locking, vertex declarations and the index/vertex data descriptors that
// meshes hand to the edge-list builder.
package buffer

import (
	"errors"
	"fmt"
	"sync"
)

// Buffer errors.
var (
	ErrOutOfRange = errors.New("buffer range out of bounds")
	ErrLocked     = errors.New("buffer is locked for writing")
)

// Buffer is a block of bytes guarded by a read/write lock.
// Readers take LockRead/UnlockRead, writers LockWrite/UnlockWrite.
type Buffer struct {
	mu   sync.RWMutex
	data []byte
}

func newBuffer(size int) Buffer {
	return Buffer{data: make([]byte, size)}
}

// Size returns the buffer length in bytes.
func (b *Buffer) Size() int {
	return len(b.data)
}

// LockRead read-locks the buffer and returns the requested byte range.
// The slice is only valid until UnlockRead. On error no lock is held.
func (b *Buffer) LockRead(offset, length int) ([]byte, error) {
	b.mu.RLock()
	data, err := b.span(offset, length)
	if err != nil {
		b.mu.RUnlock()
		return nil, err
	}
	return data, nil
}

// UnlockRead releases a lock taken by LockRead.
func (b *Buffer) UnlockRead() {
	b.mu.RUnlock()
}

// LockWrite locks the buffer exclusively and returns the requested byte range.
// Fails with ErrLocked if another writer holds the buffer.
func (b *Buffer) LockWrite(offset, length int) ([]byte, error) {
	if !b.mu.TryLock() {
		return nil, ErrLocked
	}
	data, err := b.span(offset, length)
	if err != nil {
		b.mu.Unlock()
		return nil, err
	}
	return data, nil
}

// UnlockWrite releases a lock taken by LockWrite.
func (b *Buffer) UnlockWrite() {
	b.mu.Unlock()
}

// WriteData copies src into the buffer at offset.
func (b *Buffer) WriteData(offset int, src []byte) error {
	dst, err := b.LockWrite(offset, len(src))
	if err != nil {
		return err
	}
	defer b.UnlockWrite()
	copy(dst, src)
	return nil
}

// ReadData copies length bytes starting at offset into a new slice.
func (b *Buffer) ReadData(offset, length int) ([]byte, error) {
	src, err := b.LockRead(offset, length)
	if err != nil {
		return nil, err
	}
	defer b.UnlockRead()
	out := make([]byte, length)
	copy(out, src)
	return out, nil
}

func (b *Buffer) span(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(b.data) {
		return nil, fmt.Errorf("%w: [%d, %d) of %d bytes", ErrOutOfRange, offset, offset+length, len(b.data))
	}
	return b.data[offset : offset+length], nil
}
