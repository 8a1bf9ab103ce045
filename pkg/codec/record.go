package codec

const (
	// MaxByteCount is the largest value of the byte count field
	MaxByteCount = 0xFF
	// MaxDataBytes is the largest data payload of any record (S0, S1, S5, S9)
	MaxDataBytes = MaxByteCount - 2 - 1

	hexDigits = "0123456789ABCDEF"
)

// Record represents one decoded S-Record line
type Record struct {
	Type    RecordType // Record type (S0-S9)
	Address uint64     // Address field; the record count for S5/S6
	Data    []byte     // Payload of S0/S1/S2/S3 records, empty otherwise
}

// NewHeaderRecord creates an S0 record
func NewHeaderRecord(data []byte) *Record {
	return &Record{Type: TypeHeader, Data: data}
}

// NewDataRecord creates a data record of type t (S1, S2 or S3)
func NewDataRecord(t RecordType, address uint64, data []byte) *Record {
	return &Record{Type: t, Address: address, Data: data}
}

// NewCountRecord creates an S5 record, or an S6 record when count does not fit
// in 16 bits. The returned record fails to encode if count needs more than 24
// bits.
func NewCountRecord(count uint64) *Record {
	t := TypeCount16
	if count > TypeCount16.MaxAddress() {
		t = TypeCount24
	}
	return &Record{Type: t, Address: count}
}

// NewStartAddressRecord creates a start address record of type t (S7, S8 or S9)
func NewStartAddressRecord(t RecordType, address uint64) *Record {
	return &Record{Type: t, Address: address}
}

// Kind returns what the record carries
func (r *Record) Kind() Kind {
	return r.Type.Kind()
}

// Count returns the record count of an S5/S6 record
func (r *Record) Count() uint64 {
	return r.Address
}

// ByteCount returns the value of the byte count field for the record
func (r *Record) ByteCount() int {
	return r.Type.AddressWidth() + len(r.Data) + 1
}

// Checksum returns the checksum the record encodes with
func (r *Record) Checksum() uint8 {
	return Checksum(uint8(r.ByteCount()), r.Address, r.Data)
}

// Validate checks that the record can be encoded
func (r *Record) Validate() error {
	if !r.Type.Valid() {
		return ErrUnknownRecordType
	}
	if r.Address > r.Type.MaxAddress() {
		return ErrAddressOutOfRange
	}
	if len(r.Data) > r.Type.MaxDataBytes() {
		return ErrRecordTooLong
	}
	return nil
}

// RecordCodec decodes and encodes S-Record lines
type RecordCodec struct {
	buf [MaxDataBytes]byte
}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// Decode parses one line into a Record. The Data of the returned record
// points into the codec's buffer and is overwritten by the next Decode.
func (c *RecordCodec) Decode(line string) (*Record, error) {
	// Record type
	if len(line) < 1 {
		return nil, ErrEolWhileParsingRecordType
	}
	if line[0] != 'S' {
		return nil, ErrInvalidFirstCharacter
	}
	if len(line) < 2 {
		return nil, ErrEolWhileParsingRecordType
	}
	recordType, err := RecordTypeFromTag(line[1])
	if err != nil {
		return nil, err
	}

	// Byte count
	pos := 2
	if len(line) < pos+2 {
		return nil, ErrEolWhileParsingByteCount
	}
	byteCount, ok := parseHex(line[pos : pos+2])
	if !ok {
		return nil, ErrInvalidByteCount
	}
	pos += 2

	// Address
	width := recordType.AddressWidth()
	if len(line) < pos+2*width {
		return nil, ErrEolWhileParsingAddress
	}
	address, ok := parseHex(line[pos : pos+2*width])
	if !ok {
		return nil, ErrInvalidAddress
	}
	pos += 2 * width

	// Data
	numDataBytes := int(byteCount) - (width + 1)
	if numDataBytes < 0 {
		return nil, ErrByteCountTooLowForRecordType
	}
	if len(line) < pos+2*numDataBytes {
		return nil, ErrEolWhileParsingData
	}
	data := c.buf[:numDataBytes]
	if !decodeHex(data, line[pos:pos+2*numDataBytes]) {
		return nil, ErrInvalidData
	}
	pos += 2 * numDataBytes

	// Checksum
	if len(line) < pos+2 {
		return nil, ErrEolWhileParsingChecksum
	}
	checksum, ok := parseHex(line[pos : pos+2])
	if !ok {
		return nil, ErrInvalidChecksum
	}
	pos += 2
	if uint8(checksum) != Checksum(uint8(byteCount), address, data) {
		return nil, ErrCalculatedChecksumNotMatchingParsedChecksum
	}

	if len(line) != pos {
		return nil, ErrLineNotTerminatedAfterChecksum
	}

	return &Record{Type: recordType, Address: address, Data: data}, nil
}

// Encode serializes a record into its canonical line (uppercase hex, without
// a line terminator)
func (c *RecordCodec) Encode(r *Record) (string, error) {
	var line [2 + 2*MaxByteCount + 2]byte
	buf, err := c.AppendEncode(line[:0], r)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// AppendEncode appends the canonical line of r to dst
func (c *RecordCodec) AppendEncode(dst []byte, r *Record) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return dst, err
	}

	byteCount := r.ByteCount()
	width := r.Type.AddressWidth()

	dst = append(dst, 'S', r.Type.Tag())
	dst = appendHexByte(dst, byte(byteCount))
	for shift := 8 * (width - 1); shift >= 0; shift -= 8 {
		dst = appendHexByte(dst, byte(r.Address>>uint(shift)))
	}
	for _, b := range r.Data {
		dst = appendHexByte(dst, b)
	}
	dst = appendHexByte(dst, r.Checksum())
	return dst, nil
}

// ParseRecord parses one line into a Record that owns its data
func ParseRecord(line string) (*Record, error) {
	var c RecordCodec
	r, err := c.Decode(line)
	if err != nil {
		return nil, err
	}
	r.Data = append([]byte(nil), r.Data...)
	return r, nil
}

// EncodeRecord serializes a record into its canonical line
func EncodeRecord(r *Record) (string, error) {
	var c RecordCodec
	return c.Encode(r)
}

func appendHexByte(dst []byte, b byte) []byte {
	return append(dst, hexDigits[b>>4], hexDigits[b&0x0F])
}

// fromHexChar converts a hex character into its value; both cases are accepted
func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// parseHex parses a big-endian hex field of at most 16 digits
func parseHex(s string) (uint64, bool) {
	var v uint64
	for i := 0; i < len(s); i++ {
		n, ok := fromHexChar(s[i])
		if !ok {
			return 0, false
		}
		v = v<<4 | uint64(n)
	}
	return v, true
}

// decodeHex decodes len(dst) bytes from the hex string s
func decodeHex(dst []byte, s string) bool {
	for i := range dst {
		hi, ok := fromHexChar(s[2*i])
		if !ok {
			return false
		}
		lo, ok := fromHexChar(s[2*i+1])
		if !ok {
			return false
		}
		dst[i] = hi<<4 | lo
	}
	return true
}
