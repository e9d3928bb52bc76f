// Package transform provides reversible byte transforms (compression) and a
// pipeline applying them in order.
package transform

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/gzip"
)

// Transform is a reversible byte transform. Reverse(Apply(p)) yields p.
type Transform interface {
	Apply(data []byte) ([]byte, error)
	Reverse(data []byte) ([]byte, error)
}

// Kind identifies a transform on the wire.
type Kind uint8

const (
	KindNone Kind = iota
	KindGzip
	KindZstd
)

var ErrUnknownKind = errors.New("transform: unknown kind")

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindGzip:
		return "gzip"
	case KindZstd:
		return "zstd"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a configuration name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "none":
		return KindNone, nil
	case "gzip":
		return KindGzip, nil
	case "zstd":
		return KindZstd, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// New builds the transform for k.
func New(k Kind) (Transform, error) {
	switch k {
	case KindNone:
		return NewNoOpTransform(), nil
	case KindGzip:
		return NewGzipTransform(gzip.DefaultCompression)
	case KindZstd:
		return NewZstdTransform()
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
}

type noOpTransform struct{}

func NewNoOpTransform() Transform                            { return &noOpTransform{} }
func (n *noOpTransform) Apply(data []byte) ([]byte, error)   { return data, nil }
func (n *noOpTransform) Reverse(data []byte) ([]byte, error) { return data, nil }

// Pipeline applies transforms 0..N on the way out and N..0 on the way in.
type Pipeline struct {
	transforms []Transform
}

// NewPipeline requires at least one transform; use NewNoOpTransform for an
// explicitly empty pipeline.
func NewPipeline(transforms ...Transform) (*Pipeline, error) {
	if len(transforms) == 0 {
		return nil, errors.New("transform: pipeline requires at least one transform")
	}
	return &Pipeline{transforms: append([]Transform(nil), transforms...)}, nil
}

func (p *Pipeline) Apply(data []byte) ([]byte, error) {
	var err error
	for i, t := range p.transforms {
		if data, err = t.Apply(data); err != nil {
			return nil, fmt.Errorf("transform %d (%T) apply failed: %w", i, t, err)
		}
	}
	return data, nil
}

func (p *Pipeline) Reverse(data []byte) ([]byte, error) {
	var err error
	for i := len(p.transforms) - 1; i >= 0; i-- {
		t := p.transforms[i]
		if data, err = t.Reverse(data); err != nil {
			return nil, fmt.Errorf("transform %d (%T) reverse failed: %w", i, t, err)
		}
	}
	return data, nil
}
