package srecord

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ssargent/srex/pkg/codec"
)

// parser folds records into a File one line at a time
type parser struct {
	config *parseConfig
	codec  *codec.RecordCodec
	file   *File

	numDataRecords uint64
	numRecords     int
	hasCount       bool
}

func newParser(opts []Option) *parser {
	return &parser{
		config: applyOptions(opts),
		codec:  codec.NewRecordCodec(),
		file:   New(),
	}
}

// Parse builds a File from S-Record text. Lines are separated by "\n" with
// an optional "\r" before it; a trailing newline at the end of the text is
// allowed.
func Parse(text string, opts ...Option) (*File, error) {
	p := newParser(opts)

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		if err := p.line(i+1, strings.TrimSuffix(line, "\r")); err != nil {
			return nil, err
		}
	}

	return p.finish()
}

// ParseReader is like Parse but reads the text from r
func ParseReader(r io.Reader, opts ...Option) (*File, error) {
	p := newParser(opts)
	br := bufio.NewReader(r)

	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("srec: read line %d: %w", n, err)
		}
		if line == "" && err == io.EOF {
			break
		}

		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if perr := p.line(n, line); perr != nil {
			return nil, perr
		}
		if err == io.EOF {
			break
		}
	}

	return p.finish()
}

func (p *parser) line(n int, line string) error {
	record, err := p.codec.Decode(line)
	if err != nil {
		return atLine(err, n)
	}
	if err := p.record(record); err != nil {
		return atLine(err, n)
	}
	p.numRecords++
	return nil
}

func (p *parser) record(r *codec.Record) error {
	if p.config.strict {
		if err := p.checkStrict(r); err != nil {
			return err
		}
	}

	f := p.file
	switch r.Kind() {
	case codec.KindHeader:
		if f.hasHeader {
			return codec.ErrMultipleHeaderRecords
		}
		f.SetHeaderData(r.Data)

	case codec.KindData:
		p.numDataRecords++
		if r.Type > f.dataType {
			f.dataType = r.Type
		}
		return f.data.Absorb(r.Address, r.Data)

	case codec.KindCount:
		p.hasCount = true
		if r.Count() != p.numDataRecords {
			return codec.ErrCalculatedNumRecordsNotMatchingParsedNumRecords
		}

	case codec.KindStartAddress:
		if f.hasStartAddress {
			return codec.ErrMultipleStartAddresses
		}
		f.SetStartAddress(r.Address)
		f.startType = r.Type
	}
	return nil
}

// checkStrict applies the validations only enabled by WithStrict
func (p *parser) checkStrict(r *codec.Record) error {
	f := p.file
	kind := r.Kind()

	if f.hasStartAddress && kind != codec.KindStartAddress {
		return codec.ErrRecordOutOfOrder
	}

	switch kind {
	case codec.KindHeader:
		if f.hasHeader {
			return nil
		}
		if p.numRecords > 0 {
			return codec.ErrRecordOutOfOrder
		}
		if r.Address != 0 {
			return codec.ErrNonZeroHeaderAddress
		}
	case codec.KindData:
		if p.hasCount {
			return codec.ErrRecordOutOfOrder
		}
		if f.dataType != 0 && f.dataType != r.Type {
			return codec.ErrMixedDataRecordTypes
		}
	case codec.KindCount:
		if p.hasCount {
			return codec.ErrMultipleCountRecords
		}
	}
	return nil
}

func (p *parser) finish() (*File, error) {
	if err := p.file.data.Coalesce(); err != nil {
		return nil, err
	}
	return p.file, nil
}

func atLine(err error, n int) error {
	var parseErr *codec.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.AtLine(n)
	}
	return fmt.Errorf("srec: line %d: %w", n, err)
}
