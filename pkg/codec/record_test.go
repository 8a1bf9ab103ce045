package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRecordCodec_DecodeErrors(t *testing.T) {
	codec := NewRecordCodec()

	testCases := []struct {
		name string
		line string
		want error
	}{
		{"empty line", "", ErrEolWhileParsingRecordType},
		{"only S", "S", ErrEolWhileParsingRecordType},
		{"wrong first character", "X1070000", ErrInvalidFirstCharacter},
		{"lowercase s", "s107000001020304EE", ErrInvalidFirstCharacter},
		{"reserved S4", "S4", ErrS4Reserved},
		{"letter record type", "SA", ErrInvalidRecordType},
		{"missing byte count", "S1", ErrEolWhileParsingByteCount},
		{"short byte count", "S10", ErrEolWhileParsingByteCount},
		{"invalid byte count", "S1G7", ErrInvalidByteCount},
		{"missing address", "S107", ErrEolWhileParsingAddress},
		{"short S3 address", "S3070000", ErrEolWhileParsingAddress},
		{"invalid address", "S1070Z00", ErrInvalidAddress},
		{"byte count too low for S1", "S1020000", ErrByteCountTooLowForRecordType},
		{"byte count too low for S3", "S30400000000", ErrByteCountTooLowForRecordType},
		{"missing data", "S1070000010203", ErrEolWhileParsingData},
		{"invalid data", "S10700000102XX04EE", ErrInvalidData},
		{"missing checksum", "S10700000102030", ErrEolWhileParsingData},
		{"short checksum", "S107000001020304E", ErrEolWhileParsingChecksum},
		{"invalid checksum", "S107000001020304ZZ", ErrInvalidChecksum},
		{"wrong checksum", "S10700000102030400", ErrCalculatedChecksumNotMatchingParsedChecksum},
		{"trailing character", "S107000001020304EE0", ErrLineNotTerminatedAfterChecksum},
		{"trailing whitespace", "S107000001020304EE ", ErrLineNotTerminatedAfterChecksum},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record, err := codec.Decode(tc.line)
			if record != nil {
				t.Errorf("expected nil record, got %+v", record)
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("Decode(%q) error = %v, want %v", tc.line, err, tc.want)
			}
		})
	}
}

func TestRecordCodec_DecodeFailsFast(t *testing.T) {
	codec := NewRecordCodec()

	// Invalid data and a wrong checksum: only the first fault is reported
	_, err := codec.Decode("S1070000XX02030400")
	if !errors.Is(err, ErrInvalidData) {
		t.Errorf("expected InvalidData, got %v", err)
	}

	// Wrong checksum and trailing characters
	_, err = codec.Decode("S10700000102030400FF")
	if !errors.Is(err, ErrCalculatedChecksumNotMatchingParsedChecksum) {
		t.Errorf("expected checksum mismatch, got %v", err)
	}
}

func TestRecordCodec_Decode(t *testing.T) {
	codec := NewRecordCodec()

	testCases := []struct {
		name    string
		line    string
		rtype   RecordType
		address uint64
		data    []byte
	}{
		{"empty header", "S0030000FC", TypeHeader, 0, []byte{}},
		{"header", "S00600004844521B", TypeHeader, 0, []byte("HDR")},
		{"S1", "S10912340102030405069B", TypeData16, 0x1234, []byte{1, 2, 3, 4, 5, 6}},
		{"S2", "S20A12345601020304050644", TypeData24, 0x123456, []byte{1, 2, 3, 4, 5, 6}},
		{"S3", "S30B12345678010203040506CB", TypeData32, 0x12345678, []byte{1, 2, 3, 4, 5, 6}},
		{"S5", "S5031234B6", TypeCount16, 0x1234, []byte{}},
		{"S6", "S6041234565F", TypeCount24, 0x123456, []byte{}},
		{"S7", "S70512345678E6", TypeStart32, 0x12345678, []byte{}},
		{"S8", "S8041234565F", TypeStart24, 0x123456, []byte{}},
		{"S9", "S9031234B6", TypeStart16, 0x1234, []byte{}},
		{"lowercase hex", "S1071000deadbeefb0", TypeData16, 0x1000, []byte{0xDE, 0xAD, 0xBE, 0xEF}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record, err := codec.Decode(tc.line)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if record.Type != tc.rtype {
				t.Errorf("Type mismatch: got %v, want %v", record.Type, tc.rtype)
			}
			if record.Address != tc.address {
				t.Errorf("Address mismatch: got %#x, want %#x", record.Address, tc.address)
			}
			if !bytes.Equal(record.Data, tc.data) {
				t.Errorf("Data mismatch: got %x, want %x", record.Data, tc.data)
			}
		})
	}
}

func TestRecordCodec_DecodeReusesBuffer(t *testing.T) {
	codec := NewRecordCodec()

	first, err := codec.Decode("S107123401020304A8")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, err := codec.Decode("S1071000DEADBEEFB0"); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// The first record's data now shows the second line's payload
	if !bytes.Equal(first.Data, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("expected shared buffer, got %x", first.Data)
	}
}

func TestParseRecord_OwnsData(t *testing.T) {
	first, err := ParseRecord("S107123401020304A8")
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}
	if _, err := ParseRecord("S1071000DEADBEEFB0"); err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}

	if !bytes.Equal(first.Data, []byte{1, 2, 3, 4}) {
		t.Errorf("record data changed: %x", first.Data)
	}
}

func TestRecordCodec_Encode(t *testing.T) {
	codec := NewRecordCodec()

	testCases := []struct {
		name   string
		record *Record
		want   string
	}{
		{"empty S0", NewHeaderRecord(nil), "S0030000FC"},
		{"S0", NewHeaderRecord([]byte{0x48, 0x44, 0x52}), "S00600004844521B"},
		{"empty S1", NewDataRecord(TypeData16, 0, nil), "S1030000FC"},
		{"S1", NewDataRecord(TypeData16, 0x1234, []byte{1, 2, 3, 4, 5, 6}), "S10912340102030405069B"},
		{"empty S2", NewDataRecord(TypeData24, 0, nil), "S204000000FB"},
		{"S2", NewDataRecord(TypeData24, 0x123456, []byte{1, 2, 3, 4, 5, 6}), "S20A12345601020304050644"},
		{"empty S3", NewDataRecord(TypeData32, 0, nil), "S30500000000FA"},
		{"S3", NewDataRecord(TypeData32, 0x12345678, []byte{1, 2, 3, 4, 5, 6}), "S30B12345678010203040506CB"},
		{"S5 zero", NewCountRecord(0), "S5030000FC"},
		{"S5", NewCountRecord(0x1234), "S5031234B6"},
		{"S6 zero", &Record{Type: TypeCount24}, "S604000000FB"},
		{"S6", NewCountRecord(0x123456), "S6041234565F"},
		{"S7 zero", NewStartAddressRecord(TypeStart32, 0), "S70500000000FA"},
		{"S7", NewStartAddressRecord(TypeStart32, 0x12345678), "S70512345678E6"},
		{"S8 zero", NewStartAddressRecord(TypeStart24, 0), "S804000000FB"},
		{"S8", NewStartAddressRecord(TypeStart24, 0x123456), "S8041234565F"},
		{"S9 zero", NewStartAddressRecord(TypeStart16, 0), "S9030000FC"},
		{"S9", NewStartAddressRecord(TypeStart16, 0x1234), "S9031234B6"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := codec.Encode(tc.record)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Encode() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRecordCodec_EncodeErrors(t *testing.T) {
	codec := NewRecordCodec()

	testCases := []struct {
		name   string
		record *Record
		want   error
	}{
		{"reserved type", &Record{Type: 4}, ErrUnknownRecordType},
		{"out of range type", &Record{Type: 12}, ErrUnknownRecordType},
		{"S1 address above 16 bits", NewDataRecord(TypeData16, 0x10000, []byte{1}), ErrAddressOutOfRange},
		{"S8 address above 24 bits", NewStartAddressRecord(TypeStart24, 0x1000000), ErrAddressOutOfRange},
		{"S6 count above 24 bits", NewCountRecord(0x1000000), ErrAddressOutOfRange},
		{"S1 data too long", NewDataRecord(TypeData16, 0, make([]byte, 253)), ErrRecordTooLong},
		{"S3 data too long", NewDataRecord(TypeData32, 0, make([]byte, 251)), ErrRecordTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Encode(tc.record)
			if !errors.Is(err, tc.want) {
				t.Errorf("Encode() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRecordCodec_RoundTrip(t *testing.T) {
	codec := NewRecordCodec()

	lines := []string{
		"S00F000068656C6C6F202020202000003C",
		"S321000000007C0802A6900100049421FFF07C6C1B787C8C23783C6000003863000024",
		"S3210000001C4BFFFFE5398000007D83637880010014382100107C0803A64E800020E7",
		"S3130000003848656C6C6F20776F726C642E0A0040",
		"S5030003F9",
		"S70500000000FA",
		"S1137AF00A0A0D0000000000000000000000000061",
	}

	for _, line := range lines {
		record, err := codec.Decode(line)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", line, err)
		}
		got, err := codec.Encode(record)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if got != line {
			t.Errorf("round trip mismatch: got %q, want %q", got, line)
		}
	}
}

func TestRecordCodec_MaxLengthRecord(t *testing.T) {
	codec := NewRecordCodec()

	data := bytes.Repeat([]byte{0xA5}, MaxDataBytes)
	line, err := codec.Encode(NewDataRecord(TypeData16, 0x0100, data))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasPrefix(line, "S1FF0100") {
		t.Errorf("unexpected prefix: %q", line[:8])
	}

	record, err := codec.Decode(line)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(record.Data, data) {
		t.Error("data mismatch after decode")
	}
}

func TestRecordCodec_AppendEncode(t *testing.T) {
	codec := NewRecordCodec()

	buf := []byte("prefix:")
	buf, err := codec.AppendEncode(buf, NewCountRecord(3))
	if err != nil {
		t.Fatalf("AppendEncode failed: %v", err)
	}
	if string(buf) != "prefix:S5030003F9" {
		t.Errorf("AppendEncode() = %q", buf)
	}
}

func TestParseError(t *testing.T) {
	err := ErrOverlappingData.AtLine(7)

	if err.Error() != "srec: line 7: overlapping data" {
		t.Errorf("Error() = %q", err.Error())
	}
	if ErrOverlappingData.Error() != "srec: overlapping data" {
		t.Errorf("Error() = %q", ErrOverlappingData.Error())
	}
	if !errors.Is(err, ErrOverlappingData) {
		t.Error("expected error to match sentinel")
	}
	if !errors.Is(err, &ParseError{Type: OverlappingData, Line: 7}) {
		t.Error("expected error to match same line")
	}
	if errors.Is(err, &ParseError{Type: OverlappingData, Line: 8}) {
		t.Error("expected error not to match other line")
	}
	if errors.Is(err, ErrMultipleHeaderRecords) {
		t.Error("expected error not to match other type")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Line != 7 {
		t.Errorf("errors.As failed: %v", parseErr)
	}
}
