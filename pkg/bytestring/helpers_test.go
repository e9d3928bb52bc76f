package bytestring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// countingAllocator tracks every array it hands out and fails the test on a
// release of an array it does not own.
type countingAllocator struct {
	t    *testing.T
	live map[*byte]int
	gets int
	puts int
}

func newCountingAllocator(t *testing.T) *countingAllocator {
	return &countingAllocator{t: t, live: make(map[*byte]int)}
}

func (a *countingAllocator) Get(capacity int) []byte {
	buf := make([]byte, capacity)
	a.live[&buf[0]] = capacity
	a.gets++
	return buf
}

func (a *countingAllocator) Put(buf []byte) {
	p := &buf[:1][0]
	if _, ok := a.live[p]; !ok {
		a.t.Errorf("release of an array that is not live (cap %d)", cap(buf))
		return
	}
	delete(a.live, p)
	a.puts++
}

func mustString(t *testing.T, s string, opts ...Option) *ByteString {
	t.Helper()
	b, err := FromString(s, opts...)
	require.NoError(t, err)
	return b
}

// checkInvariants asserts the structural invariants that must hold after
// every operation.
func checkInvariants(t *testing.T, b *ByteString) {
	t.Helper()
	require.LessOrEqual(t, b.Size(), b.Cap(), "size <= capacity")
	require.Less(t, b.Size(), b.Cap(), "room for terminator")
	require.GreaterOrEqual(t, b.Cap(), b.Floor(), "capacity >= floor")
	require.Equal(t, b.Cap(), len(b.buf))
	require.Equal(t, allocMask, b.Cap()&allocMask, "capacity keeps its low bits set")
	require.Equal(t, b.Size() == 0, b.Empty())
	for i := b.size; i < len(b.buf); i++ {
		if b.buf[i] != 0 {
			t.Fatalf("byte %d past size %d is %q, want 0", i, b.size, b.buf[i])
		}
	}
}
