package codec

// RecordType identifies the kind of an S-Record. The value is the digit
// following the leading 'S'.
type RecordType uint8

// Record types. S4 is reserved and has no constant.
const (
	TypeHeader  RecordType = 0 // S0, 16-bit address that should be 0x0000
	TypeData16  RecordType = 1 // S1, data with a 16-bit address
	TypeData24  RecordType = 2 // S2, data with a 24-bit address
	TypeData32  RecordType = 3 // S3, data with a 32-bit address
	TypeCount16 RecordType = 5 // S5, 16-bit count of preceding data records
	TypeCount24 RecordType = 6 // S6, 24-bit count of preceding data records
	TypeStart32 RecordType = 7 // S7, 32-bit start address
	TypeStart24 RecordType = 8 // S8, 24-bit start address
	TypeStart16 RecordType = 9 // S9, 16-bit start address
)

// Kind groups record types by what they carry.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindHeader
	KindData
	KindCount
	KindStartAddress
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindData:
		return "data"
	case KindCount:
		return "count"
	case KindStartAddress:
		return "start address"
	default:
		return "invalid"
	}
}

// recordTypes holds the kind and address width of every tag digit. The zero
// entry at index 4 marks the reserved S4.
var recordTypes = [10]struct {
	kind  Kind
	width int
}{
	TypeHeader:  {KindHeader, 2},
	TypeData16:  {KindData, 2},
	TypeData24:  {KindData, 3},
	TypeData32:  {KindData, 4},
	TypeCount16: {KindCount, 2},
	TypeCount24: {KindCount, 3},
	TypeStart32: {KindStartAddress, 4},
	TypeStart24: {KindStartAddress, 3},
	TypeStart16: {KindStartAddress, 2},
}

// RecordTypeFromTag maps the character following 'S' to a RecordType.
func RecordTypeFromTag(c byte) (RecordType, error) {
	switch {
	case c == '4':
		return 0, ErrS4Reserved
	case c < '0' || c > '9':
		return 0, ErrInvalidRecordType
	}
	return RecordType(c - '0'), nil
}

// Valid reports whether t is one of the nine legal record types.
func (t RecordType) Valid() bool {
	return int(t) < len(recordTypes) && recordTypes[t].kind != KindInvalid
}

// Kind returns what the record type carries.
func (t RecordType) Kind() Kind {
	if !t.Valid() {
		return KindInvalid
	}
	return recordTypes[t].kind
}

// AddressWidth returns the number of bytes in the address field, or 0 for an
// invalid type.
func (t RecordType) AddressWidth() int {
	if !t.Valid() {
		return 0
	}
	return recordTypes[t].width
}

// MaxAddress returns the largest value the address field can hold.
func (t RecordType) MaxAddress() uint64 {
	return 1<<(8*uint(t.AddressWidth())) - 1
}

// MaxDataBytes returns how many data bytes fit in one record of this type.
// The byte count is limited to 0xFF and also covers the address and checksum.
func (t RecordType) MaxDataBytes() int {
	if !t.Valid() {
		return 0
	}
	return MaxByteCount - t.AddressWidth() - 1
}

// Tag returns the digit character of the record type.
func (t RecordType) Tag() byte {
	return '0' + byte(t)
}

func (t RecordType) String() string {
	if !t.Valid() {
		return "S?"
	}
	return string([]byte{'S', t.Tag()})
}

// StartType returns the start address record type conventionally paired with
// a data record type (S1 with S9, S2 with S8, S3 with S7). Other types are
// returned unchanged.
func (t RecordType) StartType() RecordType {
	switch t {
	case TypeData16:
		return TypeStart16
	case TypeData24:
		return TypeStart24
	case TypeData32:
		return TypeStart32
	}
	return t
}

// DataType is the inverse of StartType.
func (t RecordType) DataType() RecordType {
	switch t {
	case TypeStart16:
		return TypeData16
	case TypeStart24:
		return TypeData24
	case TypeStart32:
		return TypeData32
	}
	return t
}

// DataTypeFor returns the narrowest data record type whose address field can
// hold lastAddress. Addresses beyond 32 bits still map to S3, which will fail
// to encode.
func DataTypeFor(lastAddress uint64) RecordType {
	switch {
	case lastAddress <= TypeData16.MaxAddress():
		return TypeData16
	case lastAddress <= TypeData24.MaxAddress():
		return TypeData24
	default:
		return TypeData32
	}
}
