package bytestring

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	b := New()
	assert.Equal(t, 0, b.Size())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, BaselineCapacity, b.Cap())
	assert.Equal(t, BaselineCapacity, b.Floor())
	assert.True(t, b.Empty())
	assert.Equal(t, []byte{0}, b.View().CString())
	checkInvariants(t, b)
}

func TestSmokeScenario(t *testing.T) {
	b := mustString(t, "123456")

	require.NoError(t, b.InsertFill(3, 3, '-'))
	assert.Equal(t, "123---456", b.String())
	assert.Equal(t, 9, b.Size())

	require.NoError(t, b.Erase(3, 1))
	assert.Equal(t, "123--456", b.String())
	assert.Equal(t, 8, b.Size())
	checkInvariants(t, b)
}

func TestFillThenEraseAll(t *testing.T) {
	b, err := Fill(5, 'x')
	require.NoError(t, err)
	assert.Equal(t, "xxxxx", b.String())

	require.NoError(t, b.Erase(0, 5))
	assert.Equal(t, 0, b.Size())
	assert.True(t, b.Empty())
	assert.Equal(t, BaselineCapacity, b.Cap())
	checkInvariants(t, b)
}

func TestNewSub(t *testing.T) {
	src := mustString(t, "abcdef")

	b, err := NewSub(src, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, "cdef", b.String())
	assert.Equal(t, 4, b.Size())

	b, err = NewSub(src, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "bc", b.String())

	_, err = NewSub(src, 6, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewSub(src, -1, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewSub(src, 0, -1)
	assert.ErrorIs(t, err, ErrLength)
	_, err = NewSub(New(), 0, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestFromCString(t *testing.T) {
	b, err := FromCString([]byte("ab\x00cd"))
	require.NoError(t, err)
	assert.Equal(t, "ab", b.String())

	b, err = FromCString([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", b.String())
}

func TestFromBytesRoundTrip(t *testing.T) {
	raw := []byte("with\x00embedded zero")
	b, err := FromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, b.View().Bytes())
	assert.Equal(t, len(raw), b.View().Len())
	assert.Equal(t, roundCap(len(raw)), b.Cap())
	checkInvariants(t, b)
}

func TestFillLength(t *testing.T) {
	_, err := Fill(MaxSize+1, 'x')
	assert.ErrorIs(t, err, ErrLength)
	_, err = Fill(-1, 'x')
	assert.ErrorIs(t, err, ErrLength)

	b, err := Fill(0, 'x')
	require.NoError(t, err)
	assert.True(t, b.Empty())
}

func TestClone(t *testing.T) {
	src := mustString(t, "hello")
	require.NoError(t, src.Reserve(200))

	c := src.Clone()
	assert.Equal(t, "hello", c.String())
	assert.Equal(t, src.Cap(), c.Cap())
	assert.Equal(t, BaselineCapacity, c.Floor())

	require.NoError(t, c.PushBack('!'))
	assert.Equal(t, "hello", src.String())
	assert.Equal(t, "hello!", c.String())
	checkInvariants(t, c)
}

func TestAssign(t *testing.T) {
	b := mustString(t, "some longer content here")
	require.NoError(t, b.Reserve(100))

	b.Assign(mustString(t, "xy"))
	assert.Equal(t, "xy", b.String())
	assert.Equal(t, BaselineCapacity, b.Floor())
	assert.Equal(t, BaselineCapacity, b.Cap())
	checkInvariants(t, b)

	b.Assign(b)
	assert.Equal(t, "xy", b.String())
}

func TestAssignSub(t *testing.T) {
	b := mustString(t, "abcdef")
	require.NoError(t, b.AssignSub(b, 2, 3))
	assert.Equal(t, "cde", b.String())
	checkInvariants(t, b)

	src := mustString(t, "0123456789")
	require.NoError(t, b.AssignSub(src, 7, NPos))
	assert.Equal(t, "789", b.String())

	err := b.AssignSub(src, 10, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, "789", b.String())
}

func TestAssignRaw(t *testing.T) {
	b := New()
	require.NoError(t, b.AssignCString([]byte("abc\x00def")))
	assert.Equal(t, "abc", b.String())

	require.NoError(t, b.AssignBytes([]byte("a\x00b")))
	assert.Equal(t, "a\x00b", b.String())

	require.NoError(t, b.AssignString("0123456789abcdefghij"))
	assert.Equal(t, "0123456789abcdefghij", b.String())
	assert.Equal(t, roundCap(20), b.Cap())
	checkInvariants(t, b)

	require.NoError(t, b.AssignString("x"))
	assert.Equal(t, BaselineCapacity, b.Cap(), "assignment shrinks")
	checkInvariants(t, b)
}

func TestAssignFill(t *testing.T) {
	b := mustString(t, "abcdefgh")
	require.NoError(t, b.AssignFill(3, 'z'))
	assert.Equal(t, "zzz", b.String())
	checkInvariants(t, b)

	require.NoError(t, b.AssignFill(40, 'q'))
	assert.Equal(t, 40, b.Size())
	checkInvariants(t, b)

	assert.ErrorIs(t, b.AssignFill(MaxSize+1, 'q'), ErrLength)
	assert.Equal(t, 40, b.Size())
}

func TestAssignByte(t *testing.T) {
	alloc := newCountingAllocator(t)
	b, err := Fill(100, 'a', WithAllocator(alloc))
	require.NoError(t, err)
	require.NoError(t, b.Reserve(300))

	b.AssignByte('k')
	assert.Equal(t, "k", b.String())
	assert.Equal(t, BaselineCapacity, b.Cap())
	assert.Equal(t, BaselineCapacity, b.Floor())
	assert.Len(t, alloc.live, 1)
	checkInvariants(t, b)
}

func TestAt(t *testing.T) {
	b := mustString(t, "abc")

	c, err := b.At(2)
	require.NoError(t, err)
	assert.Equal(t, byte('c'), c)

	_, err = b.At(3)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.At(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	require.NoError(t, b.SetAt(0, 'A'))
	assert.Equal(t, "Abc", b.String())
	assert.ErrorIs(t, b.SetAt(3, 'x'), ErrOutOfRange)
	assert.Equal(t, "Abc", b.String())
}

func TestIndex(t *testing.T) {
	b := mustString(t, "abc")
	*b.Index(1) = 'B'
	assert.Equal(t, byte('B'), *b.Index(1))
	assert.Equal(t, "aBc", b.String())
}

func TestResize(t *testing.T) {
	b := mustString(t, "abc")

	require.NoError(t, b.Resize(6, '.'))
	assert.Equal(t, "abc...", b.String())
	checkInvariants(t, b)

	require.NoError(t, b.Resize(2, '.'))
	assert.Equal(t, "ab", b.String())
	checkInvariants(t, b)

	// 14 bytes leave exactly one spare slot in a baseline array.
	e := New()
	require.NoError(t, e.Resize(14, 'r'))
	assert.Equal(t, BaselineCapacity, e.Cap())
	assert.Equal(t, []byte("rrrrrrrrrrrrrr\x00"), e.View().CString())
	checkInvariants(t, e)

	assert.ErrorIs(t, b.Resize(MaxSize+1, 'x'), ErrLength)
	assert.ErrorIs(t, b.Resize(-1, 'x'), ErrLength)
	assert.Equal(t, "ab", b.String())
}

func TestReserve(t *testing.T) {
	b := New()
	require.NoError(t, b.Reserve(100))
	assert.Equal(t, 100, b.Floor())
	assert.GreaterOrEqual(t, b.Cap(), roundCap(100))

	require.NoError(t, b.AppendString("abc"))
	require.NoError(t, b.Erase(0, 3))
	assert.GreaterOrEqual(t, b.Cap(), 100, "shrink stops at the floor")
	checkInvariants(t, b)

	assert.ErrorIs(t, b.Reserve(MaxSize+1), ErrLength)
	assert.ErrorIs(t, b.Reserve(-1), ErrLength)
	assert.Equal(t, 100, b.Floor())
}

func TestClear(t *testing.T) {
	alloc := newCountingAllocator(t)
	b := mustString(t, "a fairly long piece of content", WithAllocator(alloc))
	require.NoError(t, b.Reserve(500))

	b.Clear()
	assert.True(t, b.Empty())
	assert.Equal(t, BaselineCapacity, b.Cap())
	assert.Equal(t, BaselineCapacity, b.Floor())
	assert.Len(t, alloc.live, 1, "old array released")
	checkInvariants(t, b)
}

func TestRelease(t *testing.T) {
	alloc := newCountingAllocator(t)
	b := mustString(t, "abc", WithAllocator(alloc))
	v := b.View()

	b.Release()
	b.Release()
	assert.Empty(t, alloc.live)
	assert.Equal(t, alloc.gets, alloc.puts)
	assert.False(t, v.Valid())
}

func TestView(t *testing.T) {
	b := mustString(t, "abc")
	v := b.View()
	assert.True(t, v.Valid())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, "abc", v.String())
	assert.Equal(t, byte(0), v.At(3))
	assert.Equal(t, []byte("abc\x00"), v.CString())

	require.NoError(t, b.PushBack('d'))
	assert.False(t, v.Valid())
	assert.PanicsWithValue(t, ErrStaleView, func() { _ = v.Len() })
	assert.PanicsWithValue(t, ErrStaleView, func() { _ = v.String() })

	// A failed call does not mutate and leaves views alone.
	v = b.View()
	assert.Error(t, b.Erase(10, 1))
	assert.True(t, v.Valid())

	assert.False(t, View{}.Valid())
}

func TestWriters(t *testing.T) {
	b := New()
	n, err := fmt.Fprintf(b, "%d-%s", 12, "ab")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = io.WriteString(b, "|cd")
	require.NoError(t, err)
	require.NoError(t, b.WriteByte('!'))
	assert.Equal(t, "12-ab|cd!", b.String())
}

func TestErrorDetails(t *testing.T) {
	b := mustString(t, "abc")
	err := b.Erase(3, 1)

	var bsErr *Error
	require.True(t, errors.As(err, &bsErr))
	assert.Equal(t, "Erase", bsErr.Op)
	assert.Equal(t, "bytestring.Erase: position out of range", err.Error())
}
