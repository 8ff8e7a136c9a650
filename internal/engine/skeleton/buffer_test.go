package skeleton

import (
	"encoding/binary"
	"errors"
	stdmath "math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMatrixSize(t *testing.T) {
	if MatrixSize != 64 {
		t.Errorf("MatrixSize = %d, want 64", MatrixSize)
	}
}

func TestHostBufferLayout(t *testing.T) {
	m := NewMatrices(2)
	m[1] = mgl32.Translate3D(1, 2, 3)

	buf := NewHostBuffer(2)
	if buf.Size() != 128 {
		t.Fatalf("Size() = %d, want 128", buf.Size())
	}
	if err := buf.Write(m); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data := buf.Bytes()
	for i := 0; i < 16; i++ {
		off := 64 + i*4
		got := stdmath.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
		if got != m[1][i] {
			t.Errorf("float %d = %v, want %v", i, got, m[1][i])
		}
	}
	// Column-major: translation lives in elements 12..14.
	tx := stdmath.Float32frombits(binary.LittleEndian.Uint32(data[64+12*4:]))
	if tx != 1 {
		t.Errorf("translation x at element 12 = %v, want 1", tx)
	}
}

func TestHostBufferTooSmall(t *testing.T) {
	buf := NewHostBuffer(1)
	err := buf.Write(NewMatrices(2))
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("Write() error = %v, want ErrBufferTooSmall", err)
	}
	if buf.Frame() != 0 {
		t.Errorf("Frame() = %d after failed write", buf.Frame())
	}
}

func TestHostBufferSnapshot(t *testing.T) {
	m := NewMatrices(3)
	m[2] = mgl32.Scale3D(2, 2, 2)

	buf := NewHostBuffer(3)
	if err := buf.Write(m); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	snap, frame := buf.Snapshot()
	if frame != 1 {
		t.Errorf("frame = %d, want 1", frame)
	}
	if len(snap) != 3 {
		t.Fatalf("len(snap) = %d, want 3", len(snap))
	}
	if snap[2] != m[2] {
		t.Errorf("snap[2] = %v, want %v", snap[2], m[2])
	}

	// Snapshot is detached from later writes.
	m[2] = mgl32.Ident4()
	if err := buf.Write(m); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if snap[2] == m[2] {
		t.Error("snapshot changed after a later write")
	}
}

func TestHostBufferConcurrentReaders(t *testing.T) {
	buf := NewHostBuffer(4)
	m := NewMatrices(4)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				snap, _ := buf.Snapshot()
				if len(snap) != 4 {
					t.Errorf("len(snap) = %d", len(snap))
					return
				}
			}
		}()
	}
	for j := 0; j < 100; j++ {
		if err := buf.Write(m); err != nil {
			t.Errorf("Write() error: %v", err)
		}
	}
	wg.Wait()

	if buf.Frame() != 100 {
		t.Errorf("Frame() = %d, want 100", buf.Frame())
	}
}

func TestHostBufferReadMatchesFrame(t *testing.T) {
	buf := NewHostBuffer(1)
	m := NewMatrices(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for j := 1; j <= 200; j++ {
			m[0][12] = float32(j)
			if err := buf.Write(m); err != nil {
				t.Errorf("Write() error: %v", err)
				return
			}
		}
	}()

	for {
		data, frame := buf.Read()
		x := stdmath.Float32frombits(binary.LittleEndian.Uint32(data[12*4:]))
		if uint64(x) != frame {
			t.Fatalf("bytes hold frame %v, Read() reported %d", x, frame)
		}
		select {
		case <-done:
			return
		default:
		}
	}
}
