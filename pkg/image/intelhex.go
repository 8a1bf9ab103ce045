package image

import (
	"fmt"
	"io"
	"math"

	"github.com/golang/glog"
	"github.com/marcinbor85/gohex"

	"github.com/ssargent/srex/pkg/codec"
	"github.com/ssargent/srex/pkg/srecord"
)

const intelHexLineLength = 16

func decodeIntelHex(r io.Reader) (*srecord.File, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, fmt.Errorf("image: intel hex: %w", err)
	}

	f := srecord.New()
	for _, segment := range mem.GetDataSegments() {
		glog.V(2).Infof("intel hex segment 0x%08X, %d bytes", segment.Address, len(segment.Data))
		if err := f.Write(uint64(segment.Address), segment.Data); err != nil {
			return nil, fmt.Errorf("image: intel hex segment 0x%08X: %w", segment.Address, err)
		}
	}
	if addr, ok := mem.GetStartAddress(); ok {
		f.SetStartAddress(uint64(addr))
	}

	return f, nil
}

func encodeIntelHex(w io.Writer, f *srecord.File) error {
	if _, ok := f.HeaderData(); ok {
		glog.Warningf("intel hex has no header record, header data is dropped")
	}

	mem := gohex.NewMemory()
	for _, chunk := range f.Chunks() {
		if chunk.End()-1 > math.MaxUint32 {
			return fmt.Errorf("image: chunk at 0x%X: %w", chunk.Address, codec.ErrAddressOutOfRange)
		}
		glog.V(2).Infof("intel hex segment 0x%08X, %d bytes", chunk.Address, chunk.Len())
		if err := mem.AddBinary(uint32(chunk.Address), chunk.Data); err != nil {
			return fmt.Errorf("image: intel hex segment 0x%08X: %w", chunk.Address, err)
		}
	}

	if start, ok := f.StartAddress(); ok {
		if start > math.MaxUint32 {
			return fmt.Errorf("image: start address 0x%X: %w", start, codec.ErrAddressOutOfRange)
		}
		mem.SetStartAddress(uint32(start))
	}

	return mem.DumpIntelHex(w, intelHexLineLength)
}
