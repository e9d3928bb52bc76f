// Package snapshot persists a ByteString's content and capacity floor as a
// framed, optionally compressed blob.
//
// Layout: "BSTR" | version (1 byte) | compression kind (1 byte) | payload,
// where payload is the transformed gob encoding of the record.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"bytestring/pkg/bytestring"
	"bytestring/pkg/log"
	"bytestring/pkg/transform"

	"github.com/valyala/bytebufferpool"
)

const (
	Magic      = "BSTR"
	Version    = 1
	HeaderSize = len(Magic) + 2

	// MaxFloor bounds the capacity floor a snapshot may commit beyond the
	// size of its own content.
	MaxFloor = 64 << 20
)

var (
	ErrBadMagic  = errors.New("snapshot: bad magic")
	ErrVersion   = errors.New("snapshot: unsupported version")
	ErrTruncated = errors.New("snapshot: truncated header")
	ErrBadFloor  = errors.New("snapshot: capacity floor out of bounds")
)

// Header is the fixed prefix of a snapshot.
type Header struct {
	Version     uint8
	Compression transform.Kind
}

type record struct {
	Floor int
	Data  []byte
}

// Encode writes b to w, compressing the payload with kind.
func Encode(w io.Writer, b *bytestring.ByteString, kind transform.Kind) error {
	tr, err := transform.New(kind)
	if err != nil {
		return err
	}

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(record{Floor: b.Floor(), Data: b.View().Bytes()}); err != nil {
		return fmt.Errorf("snapshot: error while encoding: %w", err)
	}
	payload, err := tr.Apply(raw.Bytes())
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	frame := bytebufferpool.Get()
	defer bytebufferpool.Put(frame)
	frame.WriteString(Magic)
	frame.WriteByte(Version)
	frame.WriteByte(byte(kind))
	frame.Write(payload)

	log.Debug().Int("size", b.Size()).Int("encoded", frame.Len()).Stringer("compression", kind).Msg("snapshot: encoded")
	if _, err := frame.WriteTo(w); err != nil {
		return fmt.Errorf("snapshot: write failed: %w", err)
	}
	return nil
}

// ReadHeader parses and validates the fixed prefix of data.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, ErrTruncated
	}
	if string(data[:len(Magic)]) != Magic {
		return Header{}, ErrBadMagic
	}
	h := Header{Version: data[len(Magic)], Compression: transform.Kind(data[len(Magic)+1])}
	if h.Version != Version {
		return h, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	return h, nil
}

// Decode reads a snapshot from r and rebuilds the ByteString, floor
// included.
func Decode(r io.Reader, opts ...bytestring.Option) (*bytestring.ByteString, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read failed: %w", err)
	}
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}
	tr, err := transform.New(h.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := tr.Reverse(data[HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	var rec record
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("snapshot: error while decoding: %w", err)
	}
	if rec.Floor < 0 || rec.Floor > max(MaxFloor, len(rec.Data)) {
		return nil, fmt.Errorf("%w: %d", ErrBadFloor, rec.Floor)
	}
	b, err := bytestring.FromBytes(rec.Data, opts...)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if rec.Floor != bytestring.BaselineCapacity {
		if err := b.Reserve(rec.Floor); err != nil {
			b.Release()
			return nil, fmt.Errorf("snapshot: %w", err)
		}
	}
	log.Debug().Int("size", b.Size()).Int("floor", rec.Floor).Stringer("compression", h.Compression).Msg("snapshot: decoded")
	return b, nil
}
