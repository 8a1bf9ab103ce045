package store

import (
	"math"
	"slices"
	"sort"
)

// ChunkStore holds a sparse address space as a sorted list of data chunks.
// After every successful public mutation other than Absorb the chunks are
// sorted by address, non-empty, and neither overlap nor touch.
//
// A ChunkStore has a single owner and is not safe for concurrent use.
type ChunkStore struct {
	chunks []DataChunk
}

// NewChunkStore creates an empty chunk store
func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

// upper returns the index of the first chunk starting after addr
func (s *ChunkStore) upper(addr uint64) int {
	return sort.Search(len(s.chunks), func(i int) bool {
		return s.chunks[i].Address > addr
	})
}

// Locate finds the chunk containing addr. If there is none, the returned
// index is where a chunk starting at addr would be inserted.
func (s *ChunkStore) Locate(addr uint64) (int, bool) {
	i := s.upper(addr)
	if i > 0 && s.chunks[i-1].Contains(addr) {
		return i - 1, true
	}
	return i, false
}

// LocateForInsert is Locate with the chunk end included, so a chunk that
// ends exactly at addr is reported as found. It is only used to grow chunks
// while absorbing parsed data.
func (s *ChunkStore) LocateForInsert(addr uint64) (int, bool) {
	i := s.upper(addr)
	if i > 0 && addr <= s.chunks[i-1].End() {
		return i - 1, true
	}
	return i, false
}

func checkRange(addr uint64, data []byte) error {
	if uint64(len(data)) > math.MaxUint64-addr {
		return ErrAddressOverflow
	}
	return nil
}

// Absorb adds parsed data at addr. Data continuing the chunk that ends at
// addr is appended to it, data starting inside a chunk is rejected, and
// anything else becomes a new chunk. Neighbours that end up touching or
// overlapping are left for Coalesce.
func (s *ChunkStore) Absorb(addr uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := checkRange(addr, data); err != nil {
		return err
	}

	i, found := s.LocateForInsert(addr)
	if found {
		chunk := &s.chunks[i]
		if chunk.End() != addr {
			return ErrOverlappingData
		}
		chunk.Data = append(chunk.Data, data...)
		return nil
	}

	s.chunks = slices.Insert(s.chunks, i, DataChunk{
		Address: addr,
		Data:    append([]byte(nil), data...),
	})
	return nil
}

// Coalesce merges touching chunks and rejects overlapping ones. The store is
// unchanged when an overlap is found.
func (s *ChunkStore) Coalesce() error {
	if len(s.chunks) < 2 {
		return nil
	}

	merged := make([]DataChunk, 1, len(s.chunks))
	merged[0] = s.chunks[0]
	for _, next := range s.chunks[1:] {
		cur := &merged[len(merged)-1]
		switch {
		case next.Address == cur.End():
			cur.Data = append(cur.Data[:len(cur.Data):len(cur.Data)], next.Data...)
		case next.Address > cur.End():
			merged = append(merged, next)
		default:
			return ErrOverlappingData
		}
	}

	s.chunks = merged
	return nil
}

// Insert adds data at addr, merging it with the chunks it touches. Data that
// overlaps an existing chunk is rejected before anything is modified.
func (s *ChunkStore) Insert(addr uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := checkRange(addr, data); err != nil {
		return err
	}
	end := addr + uint64(len(data))

	// Check both neighbours first
	i := s.upper(addr)
	joinLeft, joinRight := false, false
	if i > 0 {
		left := s.chunks[i-1].End()
		if left > addr {
			return ErrOverlappingData
		}
		joinLeft = left == addr
	}
	if i < len(s.chunks) {
		right := s.chunks[i].Address
		if right < end {
			return ErrOverlappingData
		}
		joinRight = right == end
	}

	switch {
	case joinLeft && joinRight:
		left := &s.chunks[i-1]
		left.Data = append(append(left.Data, data...), s.chunks[i].Data...)
		s.chunks = slices.Delete(s.chunks, i, i+1)
	case joinLeft:
		left := &s.chunks[i-1]
		left.Data = append(left.Data, data...)
	case joinRight:
		right := &s.chunks[i]
		right.Data = append(append(make([]byte, 0, len(data)+len(right.Data)), data...), right.Data...)
		right.Address = addr
	default:
		s.chunks = slices.Insert(s.chunks, i, DataChunk{
			Address: addr,
			Data:    append([]byte(nil), data...),
		})
	}
	return nil
}

// Get returns the byte stored at addr
func (s *ChunkStore) Get(addr uint64) (byte, bool) {
	i, found := s.Locate(addr)
	if !found {
		return 0, false
	}
	return s.chunks[i].Get(addr)
}

// Set overwrites the byte stored at addr. Unallocated addresses are not
// written.
func (s *ChunkStore) Set(addr uint64, v byte) bool {
	i, found := s.Locate(addr)
	if !found {
		return false
	}
	return s.chunks[i].Set(addr, v)
}

// Slice returns the bytes in [start, end) if they all belong to one chunk.
// The result aliases the store.
func (s *ChunkStore) Slice(start, end uint64) ([]byte, bool) {
	i, found := s.Locate(start)
	if !found {
		return nil, false
	}
	return s.chunks[i].Slice(start, end)
}

// Len returns the number of chunks
func (s *ChunkStore) Len() int {
	return len(s.chunks)
}

// At returns the i-th chunk in address order. The pointer is valid until the
// next mutation of the store.
func (s *ChunkStore) At(i int) *DataChunk {
	return &s.chunks[i]
}

// Chunks returns a deep copy of all chunks in address order
func (s *ChunkStore) Chunks() []DataChunk {
	out := make([]DataChunk, len(s.chunks))
	for i, c := range s.chunks {
		out[i] = DataChunk{
			Address: c.Address,
			Data:    append([]byte(nil), c.Data...),
		}
	}
	return out
}

// Clone returns a deep copy of the store
func (s *ChunkStore) Clone() *ChunkStore {
	return &ChunkStore{chunks: s.Chunks()}
}

// Size returns the total number of bytes held
func (s *ChunkStore) Size() int {
	n := 0
	for i := range s.chunks {
		n += len(s.chunks[i].Data)
	}
	return n
}

// Bounds returns the lowest address and the address past the highest byte
func (s *ChunkStore) Bounds() (lo, hi uint64, ok bool) {
	if len(s.chunks) == 0 {
		return 0, 0, false
	}
	return s.chunks[0].Address, s.chunks[len(s.chunks)-1].End(), true
}
