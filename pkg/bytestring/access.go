package bytestring

// Index returns a pointer to the byte at pos. No check is made; pos must be
// below Size.
func (b *ByteString) Index(pos int) *byte { return &b.buf[pos] }

// At returns the byte at pos.
func (b *ByteString) At(pos int) (byte, error) {
	if pos < 0 || pos >= b.size {
		return 0, outOfRange("At")
	}
	return b.buf[pos], nil
}

// SetAt overwrites the byte at pos.
func (b *ByteString) SetAt(pos int, c byte) error {
	if pos < 0 || pos >= b.size {
		return outOfRange("SetAt")
	}
	b.buf[pos] = c
	b.gen++
	return nil
}
