// Package srecord models a Motorola S-Record file as a sparse memory image.
//
// A File holds an optional header, the data records folded into a sorted
// list of non-overlapping chunks, and an optional start address. Files are
// built by parsing S-Record text or programmatically with Write, and turned
// back into text with Serialize or an Encoder.
//
// # Parsing
//
//	f, err := srecord.Parse(text)
//	if err != nil {
//	    var parseErr *codec.ParseError
//	    if errors.As(err, &parseErr) {
//	        // parseErr.Type and parseErr.Line describe the fault
//	    }
//	    return err
//	}
//
// The default parser accepts records in any order and mixed address widths
// as long as no address is supplied twice. WithStrict adds ordering and
// consistency checks.
//
// # Serialization
//
// Records are produced in the order header, data, record count, start
// address. Data records use the width seen while parsing, or the narrowest
// width that can hold the highest address.
//
//	text, err := f.Serialize(32)
//
// A File is not safe for concurrent use.
package srecord
