package bytestring

import (
	"bytestring/pkg/log"
)

// roundCap is the capacity allocated for a required size n: n+1 rounded up
// so that its low four bits are set.
func roundCap(n int) int { return (n + 1) | allocMask }

func (b *ByteString) install(capacity int) {
	b.buf = b.alloc.Get(capacity)
	b.capacity = capacity
}

// swap installs buf as the backing array and releases the previous one.
func (b *ByteString) swap(buf []byte, op string) {
	old := b.buf
	log.Debug().Str("op", op).Int("size", b.size).Int("from", b.capacity).Int("to", len(buf)).Msg("bytestring: realloc")
	b.buf = buf
	b.capacity = len(buf)
	b.alloc.Put(old)
}

// grow makes room for n bytes plus the terminator, keeping the content.
// It never changes the floor.
func (b *ByteString) grow(n int) {
	if n < b.capacity {
		return
	}
	buf := b.alloc.Get(roundCap(n))
	copy(buf, b.buf[:b.size])
	b.swap(buf, "grow")
}

// allocDiscard makes room for n bytes without keeping the content. When
// the array is replaced the old one is returned instead of released, so
// that callers copying out of it can release it afterwards.
func (b *ByteString) allocDiscard(n int) (old []byte) {
	if n < b.capacity {
		return nil
	}
	old = b.buf
	log.Debug().Str("op", "alloc").Int("from", b.capacity).Int("to", roundCap(n)).Msg("bytestring: realloc")
	b.install(roundCap(n))
	return old
}

func (b *ByteString) release(buf []byte) {
	if buf != nil {
		b.alloc.Put(buf)
	}
}

// shrink reallocates to the smallest rounded capacity holding the content
// once less than half of the array is in use. Capacity stays at or above
// the floor.
func (b *ByteString) shrink() {
	if b.capacity <= b.floor || b.size*2 >= b.capacity {
		return
	}
	target := max(roundCap(b.size), b.floor|allocMask)
	if target >= b.capacity {
		return
	}
	buf := b.alloc.Get(target)
	copy(buf, b.buf[:b.size])
	b.swap(buf, "shrink")
}
