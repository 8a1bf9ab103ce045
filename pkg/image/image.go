// Package image reads and writes memory images in the file formats srex
// understands. S-Record, Intel HEX and raw binary files are all loaded into
// an srecord.File, optionally through a compression layer picked from the
// file name.
package image

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ssargent/srex/pkg/codec"
	"github.com/ssargent/srex/pkg/config"
	"github.com/ssargent/srex/pkg/srecord"
)

// Format identifies the layout of an image file
type Format int

const (
	FormatUnknown Format = iota
	FormatSRecord
	FormatIntelHex
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatSRecord:
		return "srec"
	case FormatIntelHex:
		return "ihex"
	case FormatBinary:
		return "bin"
	default:
		return "unknown"
	}
}

// Compression identifies the compression wrapped around an image file
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
	CompressionLZSS // decode only
)

func (c Compression) String() string {
	switch c {
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	case CompressionLZSS:
		return "lzss"
	default:
		return "none"
	}
}

var (
	ErrUnknownFormat          = errors.New("image: unknown file format")
	ErrUnsupportedCompression = errors.New("image: compression is not supported for writing")
	ErrBinaryTooLarge         = errors.New("image: binary output would exceed the size limit")
)

var formatExtensions = map[string]Format{
	".srec": FormatSRecord,
	".s19":  FormatSRecord,
	".s28":  FormatSRecord,
	".s37":  FormatSRecord,
	".mot":  FormatSRecord,
	".sx":   FormatSRecord,
	".hex":  FormatIntelHex,
	".ihex": FormatIntelHex,
	".bin":  FormatBinary,
}

var compressionExtensions = map[string]Compression{
	".zst":  CompressionZstd,
	".lz4":  CompressionLZ4,
	".lzss": CompressionLZSS,
}

// Detect picks the format and compression of path from its extensions, so
// "app.s37.zst" is a zstd compressed S-Record file
func Detect(path string) (Format, Compression, error) {
	name := strings.ToLower(filepath.Base(path))

	compression := CompressionNone
	ext := filepath.Ext(name)
	if c, ok := compressionExtensions[ext]; ok {
		compression = c
		name = strings.TrimSuffix(name, ext)
		ext = filepath.Ext(name)
	}

	format, ok := formatExtensions[ext]
	if !ok {
		return FormatUnknown, compression, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return format, compression, nil
}

// Spec describes how an image is read or written
type Spec struct {
	Format      Format
	Compression Compression

	// BaseAddress is where binary input is loaded
	BaseAddress uint64
	// FillByte fills the gaps between chunks in binary output
	FillByte byte

	RecordSize int
	LineEnding string
	// DataType forces the width of S-Record data records. Zero follows the data.
	DataType codec.RecordType

	Strict bool
}

// DefaultSpec returns the settings used when no configuration is given
func DefaultSpec() Spec {
	return Spec{
		FillByte:   0xFF,
		RecordSize: srecord.DefaultRecordSize,
		LineEnding: srecord.DefaultLineEnding,
	}
}

// SpecFromConfig translates the configuration file settings
func SpecFromConfig(cfg *config.Config) (Spec, error) {
	if err := cfg.Validate(); err != nil {
		return Spec{}, err
	}

	dataType, _, err := config.ParseAddressWidth(cfg.Output.AddressWidth)
	if err != nil {
		return Spec{}, err
	}
	lineEnding, err := config.ParseLineEnding(cfg.Output.LineEnding)
	if err != nil {
		return Spec{}, err
	}

	return Spec{
		FillByte:   cfg.Output.FillByte,
		RecordSize: cfg.Output.RecordSize,
		LineEnding: lineEnding,
		DataType:   dataType,
		Strict:     cfg.Input.Strict,
	}, nil
}

// ForPath returns a copy of s with the format and compression detected from
// path. Settings already chosen in s are kept.
func (s Spec) ForPath(path string) (Spec, error) {
	format, compression, err := Detect(path)
	if s.Format == FormatUnknown {
		if err != nil {
			return s, err
		}
		s.Format = format
	}
	if s.Compression == CompressionNone {
		s.Compression = compression
	}
	return s, nil
}
