package compress

import (
	"bytes"
	"compress/gzip"
	"io"
	"sync"

	"github.com/wirebind/wirebind/errors"
)

const (
	CompressionGzip     = "gzip"
	CompressionIdentity = "identity"
)

// A Decompressor is a reusable wrapper that decompresses an underlying data
// source. The standard library's [*gzip.Reader] implements Decompressor.
type Decompressor interface {
	io.Reader

	// Close closes the Decompressor, but not the underlying data source.
	Close() error

	// Reset discards the Decompressor's internal state, if any, and prepares
	// it to read from a new source of compressed data.
	Reset(io.Reader) error
}

// A Compressor is a reusable wrapper that compresses data written to an
// underlying sink. The standard library's [*gzip.Writer] implements
// Compressor.
type Compressor interface {
	io.Writer

	// Close flushes any buffered data to the underlying sink, then closes the
	// Compressor. It must not close the underlying sink.
	Close() error

	// Reset discards the Compressor's internal state, if any, and prepares it
	// to write compressed data to a new sink.
	Reset(io.Writer)
}

// CompressionPool is a pair of pooled Compressors and Decompressors usable
// from concurrent goroutines.
type CompressionPool struct {
	compressors   sync.Pool
	decompressors sync.Pool
}

// NewCompressionPool builds a pool from the given constructors. Both must be
// non-nil; otherwise nil is returned.
func NewCompressionPool(newCompressor func() Compressor, newDecompressor func() Decompressor) *CompressionPool {
	if newCompressor == nil || newDecompressor == nil {
		return nil
	}
	return &CompressionPool{
		compressors:   sync.Pool{New: func() any { return newCompressor() }},
		decompressors: sync.Pool{New: func() any { return newDecompressor() }},
	}
}

// Gzip returns a CompressionPool backed by the standard library's gzip
// implementation.
func Gzip() *CompressionPool {
	return NewCompressionPool(
		func() Compressor { return gzip.NewWriter(io.Discard) },
		func() Decompressor { return &gzip.Reader{} },
	)
}

// Compress returns the compressed form of data.
func (c *CompressionPool) Compress(data []byte) ([]byte, error) {
	z, ok := c.compressors.Get().(Compressor)
	if !ok {
		return nil, errors.Newf("failed to get compressor from pool")
	}
	defer c.compressors.Put(z)

	var buf bytes.Buffer
	z.Reset(&buf)
	if _, err := z.Write(data); err != nil {
		return nil, errors.FromError(err).WithCode(errors.Internal)
	}
	if err := z.Close(); err != nil {
		return nil, errors.FromError(err).WithCode(errors.Internal)
	}
	return buf.Bytes(), nil
}

// Decompress returns the decompressed form of data.
func (c *CompressionPool) Decompress(data []byte) ([]byte, error) {
	z, ok := c.decompressors.Get().(Decompressor)
	if !ok {
		return nil, errors.Newf("failed to get decompressor from pool")
	}
	defer c.decompressors.Put(z)

	if err := z.Reset(bytes.NewReader(data)); err != nil {
		return nil, errors.FromError(err).WithCode(errors.InvalidArgument)
	}
	out, err := io.ReadAll(z)
	if err != nil {
		return nil, errors.FromError(err).WithCode(errors.InvalidArgument)
	}
	if err := z.Close(); err != nil {
		return nil, errors.FromError(err).WithCode(errors.InvalidArgument)
	}
	return out, nil
}
