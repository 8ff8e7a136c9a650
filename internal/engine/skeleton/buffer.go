package skeleton

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// MatrixSize is the byte size of one 4x4 float32 matrix.
const MatrixSize = int(unsafe.Sizeof(mgl32.Mat4{}))

// ErrBufferTooSmall is returned when a write does not fit the destination.
var ErrBufferTooSmall = errors.New("skeleton buffer too small")

// Buffer is the destination region the renderer reads world matrices from.
// Its allocation and lifetime belong to the renderer.
type Buffer interface {
	// Size returns the region size in bytes.
	Size() int
	// Write copies the matrices verbatim to the start of the region.
	Write(m Matrices) error
}

// Bytes returns a byte view of the matrices without copying.
// The view shares memory with m.
func (m Matrices) Bytes() []byte {
	if len(m) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&m[0])), len(m)*MatrixSize)
}

// HostBuffer is a host-visible Buffer. It keeps the last published frame so
// readers on other goroutines can take consistent snapshots.
type HostBuffer struct {
	mu    sync.RWMutex
	data  []byte
	frame uint64
}

var _ Buffer = (*HostBuffer)(nil)

// NewHostBuffer allocates a region for nodeCount matrices.
func NewHostBuffer(nodeCount int) *HostBuffer {
	return &HostBuffer{data: make([]byte, nodeCount*MatrixSize)}
}

// Size returns the region size in bytes.
func (b *HostBuffer) Size() int {
	return len(b.data)
}

// Write copies m into the region and bumps the frame counter.
func (b *HostBuffer) Write(m Matrices) error {
	src := m.Bytes()
	if len(src) > len(b.data) {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, len(src), len(b.data))
	}

	b.mu.Lock()
	copy(b.data, src)
	b.frame++
	b.mu.Unlock()
	return nil
}

// Frame returns how many writes have been published.
func (b *HostBuffer) Frame() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.frame
}

// Bytes returns a copy of the region.
func (b *HostBuffer) Bytes() []byte {
	out, _ := b.Read()
	return out
}

// Read returns a copy of the region together with the frame number it
// belongs to.
func (b *HostBuffer) Read() ([]byte, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, b.frame
}

// Snapshot decodes the region into a fresh matrix array together with the
// frame number it belongs to.
func (b *HostBuffer) Snapshot() (Matrices, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m := make(Matrices, len(b.data)/MatrixSize)
	copy(m.Bytes(), b.data)
	return m, b.frame
}
