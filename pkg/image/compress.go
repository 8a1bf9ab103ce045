package image

import (
	"bytes"
	"fmt"
	"io"

	"github.com/blacktop/lzss"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// decompressor wraps r so reads return the uncompressed stream
func decompressor(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("image: zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompressionLZSS:
		// LZSS streams carry no framing, the whole input is one block
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(lzss.Decompress(src))), nil
	}
	return nil, fmt.Errorf("image: unknown compression %d", c)
}

// compressor wraps w so writes are compressed. Close flushes the compressed
// stream but leaves w open.
func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("image: zstd writer: %w", err)
		}
		return enc, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionLZSS:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}
	return nil, fmt.Errorf("image: unknown compression %d", c)
}
