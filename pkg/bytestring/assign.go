package bytestring

// replace makes p the whole content. p may alias b's own array.
func (b *ByteString) replace(p []byte) {
	n := len(p)
	old := b.allocDiscard(n)
	copy(b.buf, p)
	if old == nil && b.size > n {
		clear(b.buf[n:b.size])
	}
	b.buf[n] = 0
	b.size = n
	b.release(old)
	b.gen++
}

// Assign replaces the content with a copy of other's, resets the floor to
// the baseline and shrinks if the result is under-utilized.
func (b *ByteString) Assign(other *ByteString) {
	b.floor = BaselineCapacity
	b.replace(other.buf[:other.size])
	b.shrink()
}

// AssignSub replaces the content with other[pos:pos+n], n clamped to the
// bytes available.
func (b *ByteString) AssignSub(other *ByteString, pos, n int) error {
	src, err := other.sub("AssignSub", pos, n)
	if err != nil {
		return err
	}
	b.replace(src)
	b.shrink()
	return nil
}

// AssignCString replaces the content with p up to its first zero byte and
// resets the floor to the baseline.
func (b *ByteString) AssignCString(p []byte) error {
	p = cstring(p)
	if len(p) > MaxSize {
		return tooLong("AssignCString")
	}
	b.floor = BaselineCapacity
	b.replace(p)
	b.shrink()
	return nil
}

// AssignBytes replaces the content with a copy of p.
func (b *ByteString) AssignBytes(p []byte) error {
	if len(p) > MaxSize {
		return tooLong("AssignBytes")
	}
	b.replace(p)
	b.shrink()
	return nil
}

// AssignString replaces the content with the bytes of s.
func (b *ByteString) AssignString(s string) error {
	if len(s) > MaxSize {
		return tooLong("AssignString")
	}
	b.replace(stringBytes(s))
	b.shrink()
	return nil
}

// AssignFill replaces the content with n copies of c.
func (b *ByteString) AssignFill(n int, c byte) error {
	if n < 0 || n > MaxSize {
		return tooLong("AssignFill")
	}
	old := b.allocDiscard(n)
	if old == nil && b.size > n {
		clear(b.buf[n:b.size])
	}
	memset(b.buf[:n], c)
	b.buf[n] = 0
	b.size = n
	b.release(old)
	b.gen++
	b.shrink()
	return nil
}

// AssignByte makes c the only byte, back at baseline capacity and floor.
func (b *ByteString) AssignByte(c byte) {
	old := b.buf
	b.install(BaselineCapacity)
	b.floor = BaselineCapacity
	b.buf[0] = c
	b.size = 1
	b.release(old)
	b.gen++
}
