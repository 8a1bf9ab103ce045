package srecord

import (
	"bufio"
	"io"
	"strings"

	"github.com/ssargent/srex/pkg/codec"
)

const (
	// DefaultRecordSize is the number of data bytes per record used by NewEncoder
	DefaultRecordSize = 32
	// DefaultLineEnding terminates every serialized line
	DefaultLineEnding = "\n"
)

// Encoder writes Files as S-Record text
type Encoder struct {
	RecordSize int    // Data bytes per record
	LineEnding string // Appended to every line

	w            io.Writer
	countOmitted bool
}

// NewEncoder creates an encoder writing to w with the default record size and
// line ending
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		RecordSize: DefaultRecordSize,
		LineEnding: DefaultLineEnding,
		w:          w,
	}
}

// Encode writes every record of f
func (e *Encoder) Encode(f *File) error {
	bw := bufio.NewWriter(e.w)
	c := codec.NewRecordCodec()
	buf := make([]byte, 0, 2+2*codec.MaxByteCount+2+len(e.LineEnding))

	it := f.Records(e.RecordSize)
	for it.Next() {
		var err error
		buf, err = c.AppendEncode(buf[:0], it.Record())
		if err != nil {
			return err
		}
		buf = append(buf, e.LineEnding...)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	if err := it.Err(); err != nil {
		return err
	}
	e.countOmitted = it.CountOmitted()

	return bw.Flush()
}

// CountOmitted reports whether the last Encode left out the record count
// because there were more data records than an S6 record can count
func (e *Encoder) CountOmitted() bool {
	return e.countOmitted
}

// Serialize returns the file as S-Record text with "\n" line endings
func (f *File) Serialize(recordSize int) (string, error) {
	var sb strings.Builder
	enc := NewEncoder(&sb)
	enc.RecordSize = recordSize
	if err := enc.Encode(f); err != nil {
		return "", err
	}
	return sb.String(), nil
}
