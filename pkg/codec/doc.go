// Package codec provides line-level parsing and serialization of Motorola
// S-Records.
//
// The codec package implements the textual record grammar of the S-Record
// format together with its checksum. It is the foundation for the sparse
// in-memory image model in package srecord.
//
// # Record Format
//
// Every record is a single line of ASCII text:
//
//	S<type><byte count><address><data><checksum>
//
// Fields:
//   - type: one decimal digit selecting the record type (S4 is reserved)
//   - byte count: 2 hex digits, the number of bytes that follow (address + data + checksum)
//   - address: 4, 6 or 8 hex digits depending on the record type, big-endian
//   - data: 2 hex digits per byte, at most 252 bytes
//   - checksum: 2 hex digits
//
// Address widths per record type:
//
//	S0 header          2 bytes
//	S1 data            2 bytes
//	S2 data            3 bytes
//	S3 data            4 bytes
//	S5 record count    2 bytes
//	S6 record count    3 bytes
//	S7 start address   4 bytes
//	S8 start address   3 bytes
//	S9 start address   2 bytes
//
// # Checksum
//
// The checksum is the one's complement of the low byte of the sum of the byte
// count, every address byte and every data byte.
//
// # Usage
//
// Decoding and encoding single lines:
//
//	c := codec.NewRecordCodec()
//
//	record, err := c.Decode("S1137AF00A0A0D0000000000000000000000000061")
//	if err != nil {
//	    return err
//	}
//
//	line, err := c.Encode(record)
//	if err != nil {
//	    return err
//	}
//
// Decode reuses a scratch buffer owned by the codec, so the Data of a decoded
// record is only valid until the next call to Decode. Use ParseRecord when the
// record must outlive the next line.
//
// # Error Handling
//
// Parsing is fail-fast: the first failing stage of the grammar is reported as
// a *ParseError whose Type identifies the fault. Sentinel values such as
// ErrCalculatedChecksumNotMatchingParsedChecksum can be matched with
// errors.Is regardless of the line number attached to the error.
//
// Encoding reports ErrRecordTooLong, ErrAddressOutOfRange and
// ErrUnknownRecordType.
//
// # Thread Safety
//
// RecordCodec instances hold a decode buffer and must not be shared between
// goroutines. Checksum, ParseRecord and EncodeRecord are safe for concurrent
// use.
package codec
