// Package bytestring implements ByteString, a growable byte sequence that
// exclusively owns its backing array.
//
// Capacity grows to (n+1)|15 whenever a required size n reaches the current
// capacity, which always leaves room for a zero terminator after the last
// valid byte. After operations that reduce the size the array shrinks again
// once less than half of it is in use, never going below the floor
// committed to by Reserve.
//
// Every operation validates all of its arguments before touching the
// buffer: a returned error means the ByteString is unchanged. Errors wrap
// ErrOutOfRange or ErrLength.
//
// A ByteString is not safe for concurrent use.
package bytestring

import (
	"bytes"
	"math"

	"bytestring/pkg/buffers"
)

const (
	allocMask = 15

	// BaselineCapacity is the capacity of an empty ByteString and its
	// default capacity floor.
	BaselineCapacity = allocMask

	// MaxSize is the largest size a ByteString may reach.
	MaxSize = math.MaxInt>>1 - 6

	// NPos as a length means "through the end".
	NPos = math.MaxInt
)

// ByteString is an owned, growable byte sequence. Use New or one of the
// constructors; the zero value is not ready for use.
type ByteString struct {
	size     int
	capacity int
	floor    int
	buf      []byte // len(buf) == capacity; buf[size:] is zero
	alloc    buffers.Allocator
	gen      uint64
}

// Option configures a ByteString at construction.
type Option func(*ByteString)

// WithAllocator makes the ByteString draw and release its backing arrays
// through a.
func WithAllocator(a buffers.Allocator) Option {
	return func(b *ByteString) {
		if a != nil {
			b.alloc = a
		}
	}
}

func newEmpty(opts []Option) *ByteString {
	b := &ByteString{floor: BaselineCapacity, alloc: buffers.DefaultClassPool}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// New returns an empty ByteString with baseline capacity.
func New(opts ...Option) *ByteString {
	b := newEmpty(opts)
	b.install(BaselineCapacity)
	return b
}

// Clone returns a deep copy of other with the same capacity and a baseline
// floor. The copy uses other's allocator unless opts say otherwise.
func Clone(other *ByteString, opts ...Option) *ByteString {
	b := newEmpty(append([]Option{WithAllocator(other.alloc)}, opts...))
	b.install(other.capacity)
	copy(b.buf, other.buf[:other.size])
	b.size = other.size
	return b
}

// Clone is shorthand for Clone(b).
func (b *ByteString) Clone() *ByteString { return Clone(b) }

// NewSub copies other[pos:pos+n], with n clamped to the bytes available.
func NewSub(other *ByteString, pos, n int, opts ...Option) (*ByteString, error) {
	src, err := other.sub("NewSub", pos, n)
	if err != nil {
		return nil, err
	}
	return fromRaw(src, opts), nil
}

// FromCString copies p up to its first zero byte, or all of p if it has
// none.
func FromCString(p []byte, opts ...Option) (*ByteString, error) {
	return FromBytes(cstring(p), opts...)
}

// FromBytes copies exactly len(p) bytes.
func FromBytes(p []byte, opts ...Option) (*ByteString, error) {
	if len(p) > MaxSize {
		return nil, tooLong("FromBytes")
	}
	return fromRaw(p, opts), nil
}

// FromString copies the bytes of s.
func FromString(s string, opts ...Option) (*ByteString, error) {
	return FromBytes(stringBytes(s), opts...)
}

// Fill returns a ByteString holding n copies of c.
func Fill(n int, c byte, opts ...Option) (*ByteString, error) {
	if n < 0 || n > MaxSize {
		return nil, tooLong("Fill")
	}
	b := newEmpty(opts)
	b.install(roundCap(n))
	memset(b.buf[:n], c)
	b.size = n
	return b, nil
}

func fromRaw(p []byte, opts []Option) *ByteString {
	b := newEmpty(opts)
	b.install(roundCap(len(p)))
	b.size = copy(b.buf, p)
	return b
}

// sub validates a (pos, n) pair against b and returns the clamped slice.
func (b *ByteString) sub(op string, pos, n int) ([]byte, error) {
	if pos < 0 || pos >= b.size {
		return nil, outOfRange(op)
	}
	if n < 0 {
		return nil, tooLong(op)
	}
	n = min(n, b.size-pos)
	return b.buf[pos : pos+n], nil
}

// source returns other[pos:pos+n] detached from b's array when other is b,
// so that growing or shifting b cannot disturb it.
func (b *ByteString) source(other *ByteString, src []byte) []byte {
	if other == b {
		return bytes.Clone(src)
	}
	return src
}

func cstring(p []byte) []byte {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		return p[:i]
	}
	return p
}

func memset(p []byte, c byte) {
	for i := range p {
		p[i] = c
	}
}

// String returns a copy of the content.
func (b *ByteString) String() string { return string(b.buf[:b.size]) }

// Bytes returns a copy of the content.
func (b *ByteString) Bytes() []byte { return bytes.Clone(b.buf[:b.size]) }
