package srecord

// Merge adds the data of other to f. The header of f is kept when set and
// taken from other otherwise; the same goes for the start address, except
// that two different start addresses are an error. On error f is unchanged.
func (f *File) Merge(other *File) error {
	merged := f.Clone()

	for i := 0; i < other.data.Len(); i++ {
		chunk := other.data.At(i)
		if err := merged.data.Insert(chunk.Address, chunk.Data); err != nil {
			return err
		}
	}

	if !merged.hasHeader && other.hasHeader {
		merged.SetHeaderData(other.header)
	}

	if addr, ok := other.StartAddress(); ok {
		if merged.hasStartAddress && merged.startAddress != addr {
			return ErrConflictingStartAddress
		}
		if !merged.hasStartAddress {
			merged.SetStartAddress(addr)
			merged.startType = other.startType
		}
	}

	// Keep the wider of the two data record types, and never one too narrow
	// for the merged data
	if other.dataType > merged.dataType {
		merged.dataType = other.dataType
	}
	merged.widenDataType()

	*f = *merged
	return nil
}
