package codec

// Checksum computes the S-Record checksum for a record with the given byte
// count, address and data.
//
// All eight big-endian bytes of address are summed. The bytes above the
// record's address width are zero for any valid record, so they do not
// change the result.
func Checksum(byteCount uint8, address uint64, data []byte) uint8 {
	sum := byteCount
	for shift := 56; shift >= 0; shift -= 8 {
		sum += uint8(address >> uint(shift))
	}
	for _, b := range data {
		sum += b
	}
	return 0xFF - sum
}
