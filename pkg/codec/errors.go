package codec

import (
	"errors"
	"fmt"
)

// ErrorType identifies why an S-Record stream was rejected.
type ErrorType uint8

const (
	// Early, unexpected end of line while parsing the record type (S*)
	EolWhileParsingRecordType ErrorType = iota + 1
	// Early, unexpected end of line while parsing the byte count
	EolWhileParsingByteCount
	// Early, unexpected end of line while parsing the address
	EolWhileParsingAddress
	// Early, unexpected end of line while parsing data
	EolWhileParsingData
	// Early, unexpected end of line while parsing the checksum
	EolWhileParsingChecksum
	// Characters follow the checksum, which must end the line
	LineNotTerminatedAfterChecksum
	// First character of the line is not 'S'
	InvalidFirstCharacter
	// S4 records are reserved
	S4Reserved
	// Character after 'S' is not a digit
	InvalidRecordType
	// Byte count is not two hex digits
	InvalidByteCount
	// Byte count is smaller than address width plus checksum
	ByteCountTooLowForRecordType
	// Address contains non-hex characters
	InvalidAddress
	// Data contains non-hex characters
	InvalidData
	// Checksum is not two hex digits
	InvalidChecksum
	// Checksum computed from the record does not match the parsed one
	CalculatedChecksumNotMatchingParsedChecksum
	// Data for the same address was supplied more than once
	OverlappingData
	// Count record does not match the number of data records seen
	CalculatedNumRecordsNotMatchingParsedNumRecords
	// More than one S0 record
	MultipleHeaderRecords
	// More than one S7/S8/S9 record
	MultipleStartAddresses

	// Strict mode only: S1, S2 and S3 records mixed in one file
	MixedDataRecordTypes
	// Strict mode only: more than one S5/S6 record
	MultipleCountRecords
	// Strict mode only: header not first, data after a count, or any record
	// after the start address
	RecordOutOfOrder
	// Strict mode only: S0 address field is not zero
	NonZeroHeaderAddress
)

var errorDescriptions = map[ErrorType]string{
	EolWhileParsingRecordType:                       "unexpected end of line while parsing record type",
	EolWhileParsingByteCount:                        "unexpected end of line while parsing byte count",
	EolWhileParsingAddress:                          "unexpected end of line while parsing address",
	EolWhileParsingData:                             "unexpected end of line while parsing data",
	EolWhileParsingChecksum:                         "unexpected end of line while parsing checksum",
	LineNotTerminatedAfterChecksum:                  "line not terminated after checksum",
	InvalidFirstCharacter:                           "first character is not 'S'",
	S4Reserved:                                      "S4 record type is reserved",
	InvalidRecordType:                               "invalid record type",
	InvalidByteCount:                                "invalid byte count",
	ByteCountTooLowForRecordType:                    "byte count too low for record type",
	InvalidAddress:                                  "invalid address",
	InvalidData:                                     "invalid data",
	InvalidChecksum:                                 "invalid checksum",
	CalculatedChecksumNotMatchingParsedChecksum:     "calculated checksum does not match parsed checksum",
	OverlappingData:                                 "overlapping data",
	CalculatedNumRecordsNotMatchingParsedNumRecords: "number of data records does not match record count",
	MultipleHeaderRecords:                           "multiple header records",
	MultipleStartAddresses:                          "multiple start addresses",
	MixedDataRecordTypes:                            "mixed data record types",
	MultipleCountRecords:                            "multiple record count records",
	RecordOutOfOrder:                                "record out of order",
	NonZeroHeaderAddress:                            "header record address is not zero",
}

func (t ErrorType) String() string {
	if s, ok := errorDescriptions[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown error %d", uint8(t))
}

// ParseError reports a rejected S-Record stream. Line is the 1-based line the
// fault was found on, or 0 when the fault is not tied to a single line.
type ParseError struct {
	Type ErrorType
	Line int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("srec: line %d: %s", e.Line, e.Type)
	}
	return "srec: " + e.Type.String()
}

// Is matches parse errors of the same type. A target with a non-zero Line
// also has to match the line.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Type == e.Type && (t.Line == 0 || t.Line == e.Line)
}

// AtLine returns a copy of e attributed to line.
func (e *ParseError) AtLine(line int) *ParseError {
	return &ParseError{Type: e.Type, Line: line}
}

// Parse errors
var (
	ErrEolWhileParsingRecordType                       = &ParseError{Type: EolWhileParsingRecordType}
	ErrEolWhileParsingByteCount                        = &ParseError{Type: EolWhileParsingByteCount}
	ErrEolWhileParsingAddress                          = &ParseError{Type: EolWhileParsingAddress}
	ErrEolWhileParsingData                             = &ParseError{Type: EolWhileParsingData}
	ErrEolWhileParsingChecksum                         = &ParseError{Type: EolWhileParsingChecksum}
	ErrLineNotTerminatedAfterChecksum                  = &ParseError{Type: LineNotTerminatedAfterChecksum}
	ErrInvalidFirstCharacter                           = &ParseError{Type: InvalidFirstCharacter}
	ErrS4Reserved                                      = &ParseError{Type: S4Reserved}
	ErrInvalidRecordType                               = &ParseError{Type: InvalidRecordType}
	ErrInvalidByteCount                                = &ParseError{Type: InvalidByteCount}
	ErrByteCountTooLowForRecordType                    = &ParseError{Type: ByteCountTooLowForRecordType}
	ErrInvalidAddress                                  = &ParseError{Type: InvalidAddress}
	ErrInvalidData                                     = &ParseError{Type: InvalidData}
	ErrInvalidChecksum                                 = &ParseError{Type: InvalidChecksum}
	ErrCalculatedChecksumNotMatchingParsedChecksum     = &ParseError{Type: CalculatedChecksumNotMatchingParsedChecksum}
	ErrOverlappingData                                 = &ParseError{Type: OverlappingData}
	ErrCalculatedNumRecordsNotMatchingParsedNumRecords = &ParseError{Type: CalculatedNumRecordsNotMatchingParsedNumRecords}
	ErrMultipleHeaderRecords                           = &ParseError{Type: MultipleHeaderRecords}
	ErrMultipleStartAddresses                          = &ParseError{Type: MultipleStartAddresses}
	ErrMixedDataRecordTypes                            = &ParseError{Type: MixedDataRecordTypes}
	ErrMultipleCountRecords                            = &ParseError{Type: MultipleCountRecords}
	ErrRecordOutOfOrder                                = &ParseError{Type: RecordOutOfOrder}
	ErrNonZeroHeaderAddress                            = &ParseError{Type: NonZeroHeaderAddress}
)

// Encoding errors
var (
	ErrRecordTooLong     = errors.New("srec: record data too long for record type")
	ErrAddressOutOfRange = errors.New("srec: address does not fit record type")
	ErrUnknownRecordType = errors.New("srec: unknown record type")
)
