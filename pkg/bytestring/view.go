package bytestring

import "bytes"

// View is a read-only window on the content of a ByteString followed by its
// zero terminator. Any mutating call on the ByteString invalidates every
// View taken before it; using an invalidated View panics with ErrStaleView.
type View struct {
	owner *ByteString
	data  []byte
	gen   uint64
}

// View returns a View of the current content.
func (b *ByteString) View() View {
	return View{owner: b, data: b.buf[:b.size+1], gen: b.gen}
}

// Valid reports whether the View may still be used.
func (v View) Valid() bool { return v.owner != nil && v.owner.gen == v.gen }

func (v View) check() {
	if !v.Valid() {
		panic(ErrStaleView)
	}
}

// Len returns the content length, terminator excluded.
func (v View) Len() int {
	v.check()
	return len(v.data) - 1
}

// At returns the byte at i; i == Len yields the terminator.
func (v View) At(i int) byte {
	v.check()
	return v.data[i]
}

// Bytes returns a copy of the content without the terminator.
func (v View) Bytes() []byte {
	v.check()
	return bytes.Clone(v.data[:len(v.data)-1])
}

// CString returns a copy of the content including the terminator.
func (v View) CString() []byte {
	v.check()
	return bytes.Clone(v.data)
}

// String returns the content as a string.
func (v View) String() string {
	v.check()
	return string(v.data[:len(v.data)-1])
}
