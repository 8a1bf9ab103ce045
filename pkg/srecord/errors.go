package srecord

import "errors"

var (
	// ErrInvalidRecordSize is returned when the data bytes per record do not fit the data record type
	ErrInvalidRecordSize = errors.New("srec: record size out of range for data record type")
	// ErrInvalidDataRecordType is returned when a non-data type is chosen for data records
	ErrInvalidDataRecordType = errors.New("srec: not a data record type")
	// ErrConflictingStartAddress is returned by Merge when both files set different start addresses
	ErrConflictingStartAddress = errors.New("srec: files have different start addresses")
)
