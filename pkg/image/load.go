package image

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/ssargent/srex/pkg/srecord"
)

// Decode reads an image in the format and compression named by spec
func Decode(r io.Reader, spec Spec) (*srecord.File, error) {
	rc, err := decompressor(r, spec.Compression)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	switch spec.Format {
	case FormatSRecord:
		var opts []srecord.Option
		if spec.Strict {
			opts = append(opts, srecord.WithStrict())
		}
		return srecord.ParseReader(rc, opts...)
	case FormatIntelHex:
		return decodeIntelHex(rc)
	case FormatBinary:
		return decodeBinary(rc, spec.BaseAddress)
	}
	return nil, ErrUnknownFormat
}

// Encode writes f in the format and compression named by spec
func Encode(w io.Writer, f *srecord.File, spec Spec) error {
	wc, err := compressor(w, spec.Compression)
	if err != nil {
		return err
	}

	switch spec.Format {
	case FormatSRecord:
		err = encodeSRecord(wc, f, spec)
	case FormatIntelHex:
		err = encodeIntelHex(wc, f)
	case FormatBinary:
		err = encodeBinary(wc, f, spec.FillByte)
	default:
		err = ErrUnknownFormat
	}

	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	return err
}

func encodeSRecord(w io.Writer, f *srecord.File, spec Spec) error {
	if spec.DataType != 0 {
		f = f.Clone()
		if err := f.SetDataRecordType(spec.DataType); err != nil {
			return err
		}
	}

	enc := srecord.NewEncoder(w)
	if spec.RecordSize != 0 {
		enc.RecordSize = spec.RecordSize
	}
	if spec.LineEnding != "" {
		enc.LineEnding = spec.LineEnding
	}
	if err := enc.Encode(f); err != nil {
		return err
	}

	if enc.CountOmitted() {
		glog.Warningf("too many data records for a count record, count omitted")
	}
	return nil
}

// Load reads the image at path. The format and compression follow the file
// name unless spec sets them.
func Load(path string, spec Spec) (*srecord.File, error) {
	spec, err := spec.ForPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	glog.V(1).Infof("loading %s (%s, compression %s)", path, spec.Format, spec.Compression)
	f, err := Decode(file, spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	glog.V(1).Infof("loaded %s: %d bytes in %d chunks", path, f.Size(), len(f.Chunks()))

	return f, nil
}

// Save writes f to path, replacing any existing file. The format and
// compression follow the file name unless spec sets them.
func Save(path string, f *srecord.File, spec Spec) (err error) {
	spec, err = spec.ForPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			err = errors.Join(fmt.Errorf("%s: %w", path, err), os.Remove(path))
		}
	}()

	glog.V(1).Infof("saving %s (%s, compression %s)", path, spec.Format, spec.Compression)
	return Encode(file, f, spec)
}
