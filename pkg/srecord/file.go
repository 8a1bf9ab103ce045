package srecord

import (
	"fmt"

	"github.com/ssargent/srex/pkg/codec"
	"github.com/ssargent/srex/pkg/store"
)

// File is a sparse memory image with the metadata of an S-Record file
type File struct {
	header    []byte
	hasHeader bool

	startAddress    uint64
	hasStartAddress bool

	// Record types seen while parsing or set explicitly, zero when unknown
	dataType  codec.RecordType
	startType codec.RecordType

	data *store.ChunkStore
}

// New creates an empty file
func New() *File {
	return &File{data: store.NewChunkStore()}
}

// HeaderData returns the payload of the S0 record
func (f *File) HeaderData() ([]byte, bool) {
	return f.header, f.hasHeader
}

// SetHeaderData sets the payload of the S0 record
func (f *File) SetHeaderData(data []byte) {
	f.header = append([]byte{}, data...)
	f.hasHeader = true
}

// ClearHeaderData removes the S0 record
func (f *File) ClearHeaderData() {
	f.header = nil
	f.hasHeader = false
}

// StartAddress returns the execution start address
func (f *File) StartAddress() (uint64, bool) {
	return f.startAddress, f.hasStartAddress
}

// SetStartAddress sets the execution start address
func (f *File) SetStartAddress(addr uint64) {
	f.startAddress = addr
	f.hasStartAddress = true
}

// ClearStartAddress removes the start address
func (f *File) ClearStartAddress() {
	f.startAddress = 0
	f.hasStartAddress = false
	f.startType = 0
}

// DataRecordType returns the record type used for data records on output
func (f *File) DataRecordType() codec.RecordType {
	if f.dataType != 0 {
		return f.dataType
	}
	_, hi, ok := f.data.Bounds()
	if !ok {
		return codec.TypeData16
	}
	return codec.DataTypeFor(hi - 1)
}

// SetDataRecordType selects S1, S2 or S3 for data records on output. The
// start address record follows with the matching S9, S8 or S7.
func (f *File) SetDataRecordType(t codec.RecordType) error {
	if t.Kind() != codec.KindData {
		return ErrInvalidDataRecordType
	}
	f.dataType = t
	f.startType = t.StartType()
	return nil
}

// StartRecordType returns the record type used for the start address on output
func (f *File) StartRecordType() codec.RecordType {
	if f.startType != 0 {
		return f.startType
	}
	return f.DataRecordType().StartType()
}

// Get returns the byte at addr
func (f *File) Get(addr uint64) (byte, bool) {
	return f.data.Get(addr)
}

// GetRange returns the bytes in [start, end). The result aliases the file, so
// it can also be used to modify the range in place.
func (f *File) GetRange(start, end uint64) ([]byte, bool) {
	return f.data.Slice(start, end)
}

// Set overwrites the byte at addr. Addresses without data are not written.
func (f *File) Set(addr uint64, v byte) bool {
	return f.data.Set(addr, v)
}

// MustGet is like Get but panics if addr holds no data
func (f *File) MustGet(addr uint64) byte {
	v, ok := f.Get(addr)
	if !ok {
		panic(fmt.Sprintf("address 0x%08X does not exist in file", addr))
	}
	return v
}

// MustGetRange is like GetRange but panics if the range is not fully present
func (f *File) MustGetRange(start, end uint64) []byte {
	data, ok := f.GetRange(start, end)
	if !ok {
		panic(fmt.Sprintf("address range 0x%08X:0x%08X does not exist in file", start, end))
	}
	return data
}

// MustSet is like Set but panics if addr holds no data
func (f *File) MustSet(addr uint64, v byte) {
	if !f.Set(addr, v) {
		panic(fmt.Sprintf("address 0x%08X does not exist in file", addr))
	}
}

// Write stores data at addr. The range must not overlap data already in the
// file. A data record type taken from parsed input is widened if the new data
// needs more address bytes.
func (f *File) Write(addr uint64, data []byte) error {
	if err := f.data.Insert(addr, data); err != nil {
		return err
	}
	f.widenDataType()
	return nil
}

func (f *File) widenDataType() {
	_, hi, ok := f.data.Bounds()
	if !ok || f.dataType == 0 {
		return
	}
	if need := codec.DataTypeFor(hi - 1); need > f.dataType {
		f.dataType = need
	}
}

// Chunks returns a copy of the file's data chunks in address order
func (f *File) Chunks() []store.DataChunk {
	return f.data.Chunks()
}

// Size returns the number of data bytes in the file
func (f *File) Size() int {
	return f.data.Size()
}

// Bounds returns the lowest address and the address past the highest byte
func (f *File) Bounds() (lo, hi uint64, ok bool) {
	return f.data.Bounds()
}

// Explain describes the layout of the file's data
func (f *File) Explain(opts store.ExplainOptions) *store.ExplainResult {
	return f.data.Explain(opts)
}

// Clone returns a deep copy of the file
func (f *File) Clone() *File {
	c := *f
	if f.hasHeader {
		c.header = append([]byte{}, f.header...)
	}
	c.data = f.data.Clone()
	return &c
}
