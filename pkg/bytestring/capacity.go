package bytestring

// Size returns the number of valid bytes.
func (b *ByteString) Size() int { return b.size }

// Len is the same as Size.
func (b *ByteString) Len() int { return b.size }

// Cap returns the number of allocated bytes, terminator slot included.
func (b *ByteString) Cap() int { return b.capacity }

// Floor returns the capacity below which shrinking stops.
func (b *ByteString) Floor() int { return b.floor }

// Empty reports whether Size is zero.
func (b *ByteString) Empty() bool { return b.size == 0 }

// Reserve commits the floor to n and grows the capacity to at least
// (n+1)|15. The floor holds until the next Reserve or Clear.
func (b *ByteString) Reserve(n int) error {
	if n < 0 || n > MaxSize {
		return tooLong("Reserve")
	}
	b.grow(n)
	b.floor = n
	b.gen++
	return nil
}

// Resize truncates to n bytes, or extends to n bytes padding with c.
func (b *ByteString) Resize(n int, c byte) error {
	if n < 0 || n > MaxSize {
		return tooLong("Resize")
	}
	b.gen++
	if n <= b.size {
		clear(b.buf[n:b.size])
		b.size = n
		b.shrink()
		return nil
	}
	b.grow(n)
	memset(b.buf[b.size:n], c)
	b.size = n
	b.buf[n] = 0
	return nil
}

// Clear drops the content and returns to the state of New: baseline
// capacity and floor. The old array is released.
func (b *ByteString) Clear() {
	old := b.buf
	b.install(BaselineCapacity)
	b.floor = BaselineCapacity
	b.size = 0
	b.release(old)
	b.gen++
}

// Release hands the backing array back to the allocator. The ByteString
// must not be used afterwards; further calls to Release do nothing.
func (b *ByteString) Release() {
	if b.buf == nil {
		return
	}
	b.release(b.buf)
	b.buf = nil
	b.size = 0
	b.capacity = 0
	b.gen++
}
