package bytestring

import (
	"testing"

	"bytestring/pkg/buffers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundCap(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 15},
		{14, 15},
		{15, 31},
		{16, 31},
		{30, 31},
		{31, 47},
		{100, 111},
		{MaxSize, MaxSize + 1 | allocMask},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, roundCap(c.n), "roundCap(%d)", c.n)
	}
}

func TestGrowReleasesOldArray(t *testing.T) {
	alloc := newCountingAllocator(t)
	b := New(WithAllocator(alloc))

	for i := 0; i < 200; i++ {
		require.NoError(t, b.PushBack(byte(i)))
		require.Len(t, alloc.live, 1)
	}
	assert.Greater(t, alloc.gets, 1)
	assert.Equal(t, alloc.gets-1, alloc.puts)
}

func TestShrinkRespectsFloor(t *testing.T) {
	b := New()
	require.NoError(t, b.Reserve(100))
	require.NoError(t, b.AppendFill(100, 'a'))
	require.NoError(t, b.Erase(0, NPos))
	assert.Equal(t, roundCap(100), b.Cap())

	// Lowering the floor lets the next shrink go back to baseline.
	require.NoError(t, b.Reserve(0))
	require.NoError(t, b.PushBack('a'))
	require.NoError(t, b.Erase(0, 1))
	assert.Equal(t, BaselineCapacity, b.Cap())
	checkInvariants(t, b)
}

func TestShrinkToOddFloor(t *testing.T) {
	b := New()
	require.NoError(t, b.AppendFill(300, 'a'))
	require.NoError(t, b.Reserve(40))

	require.NoError(t, b.Erase(0, NPos))
	assert.Equal(t, 40|allocMask, b.Cap())
	assert.GreaterOrEqual(t, b.Cap(), b.Floor())
	checkInvariants(t, b)
}

func TestShrinkNeedsLowUtilization(t *testing.T) {
	b, err := Fill(40, 'a')
	require.NoError(t, err)
	require.Equal(t, 47, b.Cap())

	require.NoError(t, b.Erase(0, 16))
	assert.Equal(t, 47, b.Cap(), "24 of 47 bytes in use")

	require.NoError(t, b.Erase(0, 1))
	assert.Equal(t, roundCap(23), b.Cap())
}

func TestDefaultPoolBacked(t *testing.T) {
	b := mustString(t, "pooled")
	require.NoError(t, b.AppendFill(5000, 'p'))
	assert.Equal(t, 5006, b.Size())
	b.Release()

	// Arrays coming back out of the pool are zeroed.
	c := New(WithAllocator(buffers.DefaultClassPool))
	require.NoError(t, c.Reserve(5006))
	assert.Equal(t, roundCap(5006), c.Cap())
	checkInvariants(t, c)
}
