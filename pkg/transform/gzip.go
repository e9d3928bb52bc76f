package transform

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/valyala/bytebufferpool"
)

type gzipTransform struct {
	level int
}

// NewGzipTransform compresses at level, from gzip.HuffmanOnly up to
// gzip.BestCompression, or gzip.DefaultCompression.
func NewGzipTransform(level int) (Transform, error) {
	if _, err := gzip.NewWriterLevel(io.Discard, level); err != nil {
		return nil, fmt.Errorf("gzip: level %d: %w", level, err)
	}
	return &gzipTransform{level: level}, nil
}

func (g *gzipTransform) Apply(data []byte) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w, err := gzip.NewWriterLevel(buf, g.level)
	if err != nil {
		return nil, fmt.Errorf("gzip: compress: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("gzip: compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip: compress: %w", err)
	}
	return bytes.Clone(buf.B), nil
}

func (g *gzipTransform) Reverse(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip: decompress: %w", err)
	}
	defer r.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("gzip: decompress: %w", err)
	}
	return bytes.Clone(buf.B), nil
}
