package bytestring

// checkGrowth rejects adding added bytes when the result would pass MaxSize.
func (b *ByteString) checkGrowth(op string, added int) error {
	if added < 0 || added > MaxSize-b.size {
		return tooLong(op)
	}
	return nil
}

// extend grows by n bytes at the end and returns the new region.
func (b *ByteString) extend(n int) []byte {
	b.grow(b.size + n)
	region := b.buf[b.size : b.size+n]
	b.size += n
	b.buf[b.size] = 0
	b.gen++
	return region
}

func (b *ByteString) appendRaw(op string, p []byte) error {
	if err := b.checkGrowth(op, len(p)); err != nil {
		return err
	}
	copy(b.extend(len(p)), p)
	return nil
}

// Append adds a copy of other's content. other may be b itself.
func (b *ByteString) Append(other *ByteString) error {
	return b.appendRaw("Append", b.source(other, other.buf[:other.size]))
}

// AppendSub adds other[subpos:subpos+n], n clamped to the bytes available.
func (b *ByteString) AppendSub(other *ByteString, subpos, n int) error {
	src, err := other.sub("AppendSub", subpos, n)
	if err != nil {
		return err
	}
	return b.appendRaw("AppendSub", b.source(other, src))
}

// AppendCString adds p up to its first zero byte.
func (b *ByteString) AppendCString(p []byte) error {
	return b.appendRaw("AppendCString", cstring(p))
}

// AppendBytes adds a copy of p.
func (b *ByteString) AppendBytes(p []byte) error { return b.appendRaw("AppendBytes", p) }

// AppendString adds the bytes of s.
func (b *ByteString) AppendString(s string) error {
	return b.appendRaw("AppendString", stringBytes(s))
}

// AppendFill adds n copies of c.
func (b *ByteString) AppendFill(n int, c byte) error {
	if err := b.checkGrowth("AppendFill", n); err != nil {
		return err
	}
	memset(b.extend(n), c)
	return nil
}

// PushBack adds a single byte.
func (b *ByteString) PushBack(c byte) error {
	if err := b.checkGrowth("PushBack", 1); err != nil {
		return err
	}
	b.extend(1)[0] = c
	return nil
}

// Write implements io.Writer by appending p.
func (b *ByteString) Write(p []byte) (int, error) {
	if err := b.AppendBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (b *ByteString) WriteByte(c byte) error { return b.PushBack(c) }

// WriteString implements io.StringWriter.
func (b *ByteString) WriteString(s string) (int, error) {
	if err := b.AppendString(s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// openGap moves [pos, size) right by n bytes and returns the gap
// [pos, pos+n). Inserting requires pos < Size: the end of the content is
// reached through the Append family only.
func (b *ByteString) openGap(op string, pos, n int) ([]byte, error) {
	if pos < 0 || pos >= b.size {
		return nil, outOfRange(op)
	}
	if err := b.checkGrowth(op, n); err != nil {
		return nil, err
	}
	b.grow(b.size + n)
	// copy tolerates the overlapping ranges of a forward shift.
	copy(b.buf[pos+n:b.size+n], b.buf[pos:b.size])
	b.size += n
	b.buf[b.size] = 0
	b.gen++
	return b.buf[pos : pos+n], nil
}

func (b *ByteString) insertRaw(op string, pos int, p []byte) error {
	gap, err := b.openGap(op, pos, len(p))
	if err != nil {
		return err
	}
	copy(gap, p)
	return nil
}

// Insert places a copy of other's content before pos. other may be b
// itself.
func (b *ByteString) Insert(pos int, other *ByteString) error {
	if pos < 0 || pos >= b.size {
		return outOfRange("Insert")
	}
	return b.insertRaw("Insert", pos, b.source(other, other.buf[:other.size]))
}

// InsertSub places other[subpos:subpos+n] before pos, n clamped to the
// bytes available.
func (b *ByteString) InsertSub(pos int, other *ByteString, subpos, n int) error {
	if pos < 0 || pos >= b.size {
		return outOfRange("InsertSub")
	}
	src, err := other.sub("InsertSub", subpos, n)
	if err != nil {
		return err
	}
	return b.insertRaw("InsertSub", pos, b.source(other, src))
}

// InsertCString places p, up to its first zero byte, before pos.
func (b *ByteString) InsertCString(pos int, p []byte) error {
	return b.insertRaw("InsertCString", pos, cstring(p))
}

// InsertBytes places a copy of p before pos.
func (b *ByteString) InsertBytes(pos int, p []byte) error {
	return b.insertRaw("InsertBytes", pos, p)
}

// InsertString places the bytes of s before pos.
func (b *ByteString) InsertString(pos int, s string) error {
	return b.insertRaw("InsertString", pos, stringBytes(s))
}

// InsertFill places n copies of c before pos.
func (b *ByteString) InsertFill(pos, n int, c byte) error {
	gap, err := b.openGap("InsertFill", pos, n)
	if err != nil {
		return err
	}
	memset(gap, c)
	return nil
}

// Erase removes n bytes starting at pos, n clamped to the bytes available,
// and shrinks if the result is under-utilized.
func (b *ByteString) Erase(pos, n int) error {
	if pos < 0 || pos >= b.size {
		return outOfRange("Erase")
	}
	if n < 0 {
		return tooLong("Erase")
	}
	n = min(n, b.size-pos)
	// The tail moves left over a range it may overlap; copy moves low to
	// high safely in that case.
	copy(b.buf[pos:], b.buf[pos+n:b.size])
	clear(b.buf[b.size-n : b.size])
	b.size -= n
	b.gen++
	b.shrink()
	return nil
}
