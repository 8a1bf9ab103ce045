package store

// DataChunk is a contiguous run of bytes starting at Address. It covers the
// half-open range [Address, Address+len(Data)).
type DataChunk struct {
	Address uint64
	Data    []byte
}

// End returns the first address past the chunk
func (c *DataChunk) End() uint64 {
	return c.Address + uint64(len(c.Data))
}

// Len returns the number of bytes in the chunk
func (c *DataChunk) Len() int {
	return len(c.Data)
}

// Contains reports whether addr lies inside the chunk
func (c *DataChunk) Contains(addr uint64) bool {
	return addr >= c.Address && addr-c.Address < uint64(len(c.Data))
}

// Get returns the byte stored at addr
func (c *DataChunk) Get(addr uint64) (byte, bool) {
	if !c.Contains(addr) {
		return 0, false
	}
	return c.Data[addr-c.Address], true
}

// Set overwrites the byte stored at addr
func (c *DataChunk) Set(addr uint64, v byte) bool {
	if !c.Contains(addr) {
		return false
	}
	c.Data[addr-c.Address] = v
	return true
}

// Slice returns the bytes in [start, end). The result aliases the chunk, so
// writes through it modify the chunk. start must lie inside the chunk and end
// may be at most End(); anything else yields false, never a partial slice.
// An empty range is allowed at any address inside the chunk.
func (c *DataChunk) Slice(start, end uint64) ([]byte, bool) {
	if start > end || !c.Contains(start) {
		return nil, false
	}
	lo, hi := start-c.Address, end-c.Address
	if hi > uint64(len(c.Data)) {
		return nil, false
	}
	return c.Data[lo:hi:hi], true
}

// Windows returns an iterator over consecutive pieces of the chunk of at most
// size bytes each
func (c *DataChunk) Windows(size int) *WindowIterator {
	return &WindowIterator{chunk: c, size: size, pos: -1}
}

// WindowIterator walks a chunk in fixed-size windows, left to right. The last
// window may be shorter.
type WindowIterator struct {
	chunk *DataChunk
	size  int
	pos   int
	next  int
}

// Next advances to the next window
func (it *WindowIterator) Next() bool {
	if it.size <= 0 || it.next >= len(it.chunk.Data) {
		it.pos = len(it.chunk.Data)
		return false
	}
	it.pos = it.next
	it.next += it.size
	if it.next > len(it.chunk.Data) {
		it.next = len(it.chunk.Data)
	}
	return true
}

// Address returns the address of the current window
func (it *WindowIterator) Address() uint64 {
	return it.chunk.Address + uint64(it.pos)
}

// Data returns the bytes of the current window
func (it *WindowIterator) Data() []byte {
	if it.pos < 0 || it.pos >= len(it.chunk.Data) {
		return nil
	}
	return it.chunk.Data[it.pos:it.next]
}
