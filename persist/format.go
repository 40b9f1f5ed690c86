package persist

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	// magic identifies apcluster container files (ASCII "APC1").
	magic uint32 = 0x41504331

	// version is the current container format version.
	version uint16 = 1
)

// Record kinds stored in the container header.
const (
	kindAssignments  uint8 = 1
	kindSimilarities uint8 = 2
)

var (
	// ErrInvalidMagic is returned when the input is not an apcluster
	// container.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrInvalidVersion is returned for containers written by an
	// unsupported format version.
	ErrInvalidVersion = errors.New("unsupported format version")

	// ErrChecksumMismatch is returned when the payload checksum does not
	// match; the container is corrupt or truncated.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrKindMismatch is returned when the container holds a different
	// record kind than the reader expects.
	ErrKindMismatch = errors.New("record kind mismatch")

	// ErrCorruptPayload is returned when the payload decompresses to a
	// structurally invalid record set.
	ErrCorruptPayload = errors.New("corrupt payload")
)

// Compression selects the payload codec.
type Compression uint8

const (
	// CompressionNone stores the payload raw.
	CompressionNone Compression = iota

	// CompressionZstd compresses with zstd (the default).
	CompressionZstd

	// CompressionLZ4 compresses with lz4.
	CompressionLZ4
)

// String returns the codec's stable name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// NewCompressor wraps w with the selected codec. The returned closer
// flushes the codec; the caller must close it before relying on w.
func (c Compression) NewCompressor(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		return zstd.NewWriter(w)
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown compression codec: %d", uint8(c))
	}
}

// NewDecompressor wraps r with the selected codec.
func (c Compression) NewDecompressor(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}

		return zr.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unknown compression codec: %d", uint8(c))
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
