package srecord

import (
	"github.com/ssargent/srex/pkg/codec"
	"github.com/ssargent/srex/pkg/store"
)

type iteratorState uint8

const (
	stateHeader iteratorState = iota
	stateData
	stateCount
	stateStartAddress
	stateFinished
)

// RecordIterator produces the records of a File in output order: header,
// data, record count, start address
type RecordIterator struct {
	file       *File
	recordSize int
	dataType   codec.RecordType
	startType  codec.RecordType

	state   iteratorState
	chunk   int
	windows *store.WindowIterator
	count   uint64

	record codec.Record
	err    error
}

// Records returns an iterator over the records of the file. Data records
// carry at most recordSize bytes each. Every call starts a new iteration.
func (f *File) Records(recordSize int) *RecordIterator {
	it := &RecordIterator{
		file:       f,
		recordSize: recordSize,
		dataType:   f.DataRecordType(),
		startType:  f.StartRecordType(),
	}
	if recordSize < 1 || recordSize > it.dataType.MaxDataBytes() {
		it.fail(ErrInvalidRecordSize)
	}
	return it
}

// Next advances to the next record
func (it *RecordIterator) Next() bool {
	for {
		switch it.state {
		case stateHeader:
			it.state = stateData
			if header, ok := it.file.HeaderData(); ok {
				it.record = codec.Record{Type: codec.TypeHeader, Data: header}
				return true
			}

		case stateData:
			if it.windows != nil && it.windows.Next() {
				addr, data := it.windows.Address(), it.windows.Data()
				if addr+uint64(len(data))-1 > it.dataType.MaxAddress() {
					it.fail(codec.ErrAddressOutOfRange)
					return false
				}
				it.count++
				it.record = codec.Record{Type: it.dataType, Address: addr, Data: data}
				return true
			}
			if it.chunk < it.file.data.Len() {
				it.windows = it.file.data.At(it.chunk).Windows(it.recordSize)
				it.chunk++
				continue
			}
			it.state = stateCount

		case stateCount:
			it.state = stateStartAddress
			if it.count <= codec.TypeCount24.MaxAddress() {
				it.record = *codec.NewCountRecord(it.count)
				return true
			}

		case stateStartAddress:
			it.state = stateFinished
			if addr, ok := it.file.StartAddress(); ok {
				if addr > it.startType.MaxAddress() {
					it.fail(codec.ErrAddressOutOfRange)
					return false
				}
				it.record = codec.Record{Type: it.startType, Address: addr}
				return true
			}

		default:
			return false
		}
	}
}

// Record returns the current record. It is only valid until the next call
// to Next, and its data aliases the file.
func (it *RecordIterator) Record() *codec.Record {
	return &it.record
}

// Err returns the error that stopped the iteration, if any
func (it *RecordIterator) Err() error {
	return it.err
}

// CountOmitted reports whether the record count was left out because it
// does not fit in an S6 record
func (it *RecordIterator) CountOmitted() bool {
	return it.state > stateCount && it.count > codec.TypeCount24.MaxAddress()
}

func (it *RecordIterator) fail(err error) {
	it.err = err
	it.state = stateFinished
}
