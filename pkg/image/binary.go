package image

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ssargent/srex/pkg/srecord"
)

// MaxBinarySize limits the flat image written for a sparse file
const MaxBinarySize = 1 << 30

func decodeBinary(r io.Reader, base uint64) (*srecord.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	f := srecord.New()
	if err := f.Write(base, data); err != nil {
		return nil, fmt.Errorf("image: binary at 0x%X: %w", base, err)
	}
	return f, nil
}

// encodeBinary writes the bytes from the lowest to the highest address held
// by f, with fill in the gaps. Header and start address are not written.
func encodeBinary(w io.Writer, f *srecord.File, fill byte) error {
	lo, hi, ok := f.Bounds()
	if !ok {
		return nil
	}
	if hi-lo > MaxBinarySize {
		return fmt.Errorf("%w: 0x%X..0x%X", ErrBinaryTooLarge, lo, hi)
	}

	bw := bufio.NewWriter(w)
	pos := lo
	for _, chunk := range f.Chunks() {
		for ; pos < chunk.Address; pos++ {
			if err := bw.WriteByte(fill); err != nil {
				return err
			}
		}
		if _, err := bw.Write(chunk.Data); err != nil {
			return err
		}
		pos = chunk.End()
	}
	return bw.Flush()
}
