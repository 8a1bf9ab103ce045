package image

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/ssargent/srex/pkg/srecord"
)

// Digest fingerprints the contents of f: header, chunk addresses and data,
// and the start address. Record widths and line layout do not affect it, so
// the same image read from different formats hashes the same when the
// formats can carry all of it.
func Digest(f *srecord.File) uint64 {
	h := xxhash.New()
	var buf []byte

	header, ok := f.HeaderData()
	buf = appendPresent(buf, ok)
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(header)))
	_, _ = h.Write(buf)
	_, _ = h.Write(header)

	for _, chunk := range f.Chunks() {
		buf = binary.BigEndian.AppendUint64(buf[:0], chunk.Address)
		buf = binary.BigEndian.AppendUint64(buf, uint64(len(chunk.Data)))
		_, _ = h.Write(buf)
		_, _ = h.Write(chunk.Data)
	}

	start, ok := f.StartAddress()
	buf = appendPresent(buf[:0], ok)
	buf = binary.BigEndian.AppendUint64(buf, start)
	_, _ = h.Write(buf)

	return h.Sum64()
}

func appendPresent(buf []byte, ok bool) []byte {
	if ok {
		return append(buf, 1)
	}
	return append(buf, 0)
}
