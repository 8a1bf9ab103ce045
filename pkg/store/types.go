package store

import "github.com/ssargent/srex/pkg/codec"

// Errors
var (
	ErrAddressOverflow = &StoreError{"data extends past the end of the address space"}

	// ErrOverlappingData is reported when two chunks claim the same address
	ErrOverlappingData = codec.ErrOverlappingData
)

// StoreError represents a chunk store error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
