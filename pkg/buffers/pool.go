package buffers

import (
	"math/bits"
	"sync"
)

const (
	// MinClassSize is the smallest pooled array size.
	MinClassSize = 16

	// MaxClassSize is the largest pooled array size. Larger requests are
	// served by make and dropped on Put.
	MaxClassSize = 64 * 1024

	minClassShift = 4
	maxClassShift = 16
)

// Allocator hands out zeroed byte arrays of an exact length and takes them
// back once their owner is done with them.
type Allocator interface {
	Get(capacity int) []byte
	Put(buf []byte)
}

// BufferPool maintains a pool of byte slices of a single size to reduce GC pressure
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with the specified buffer size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		},
		size: size,
	}
}

// Size returns the length of the slices handed out by the pool.
func (p *BufferPool) Size() int { return p.size }

// Get retrieves a zeroed buffer from the pool
func (p *BufferPool) Get() []byte {
	buffer := *(p.pool.Get().(*[]byte))

	if cap(buffer) < p.size {
		// Unlikely but possible if the buffer was resized
		return make([]byte, p.size)
	}
	buffer = buffer[:p.size]
	// Previous owners leave arbitrary content behind.
	clear(buffer)
	return buffer
}

// Put returns a buffer to the pool
func (p *BufferPool) Put(buffer []byte) {
	if buffer == nil || cap(buffer) < p.size {
		return // Don't keep undersized buffers
	}

	buffer = buffer[:p.size]
	p.pool.Put(&buffer)
}

// ClassPool serves arbitrary lengths from power-of-two size classes.
// A request for n bytes is cut from an array of the next class size, so the
// slice handed out has len n and cap equal to its class.
type ClassPool struct {
	classes [maxClassShift - minClassShift + 1]*BufferPool
}

// NewClassPool creates one BufferPool per class between MinClassSize and
// MaxClassSize.
func NewClassPool() *ClassPool {
	cp := &ClassPool{}
	for i := range cp.classes {
		cp.classes[i] = NewBufferPool(1 << (i + minClassShift))
	}
	return cp
}

// classIndex returns the class serving n bytes, or -1 when n is out of the
// pooled range.
func classIndex(n int) int {
	if n <= 0 || n > MaxClassSize {
		return -1
	}
	shift := bits.Len(uint(n - 1))
	if shift < minClassShift {
		shift = minClassShift
	}
	return shift - minClassShift
}

// Get returns a zeroed slice of exactly capacity bytes.
func (cp *ClassPool) Get(capacity int) []byte {
	idx := classIndex(capacity)
	if idx < 0 {
		return make([]byte, capacity)
	}
	return cp.classes[idx].Get()[:capacity]
}

// Put hands buf back to its class. Slices whose cap is not a class size
// were not produced by this pool and are left to the garbage collector.
func (cp *ClassPool) Put(buf []byte) {
	c := cap(buf)
	idx := classIndex(c)
	if idx < 0 || cp.classes[idx].size != c {
		return
	}
	cp.classes[idx].Put(buf[:c])
}

// HeapAllocator allocates with make and never reuses memory.
type HeapAllocator struct{}

func (HeapAllocator) Get(capacity int) []byte { return make([]byte, capacity) }
func (HeapAllocator) Put([]byte)              {}

// DefaultClassPool backs every ByteString that does not choose its own
// allocator.
var DefaultClassPool = NewClassPool()
