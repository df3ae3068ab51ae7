package templater

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Binary format: magic, version byte, uvarint minimum block size, uvarint
// number of literals, each literal as uvarint length followed by its bytes.
const (
	binMagic   = "TPLR"
	binVersion = 1
)

// ErrFormat is matched by errors.Is for all FormatErrors.
var ErrFormat = errors.New("invalid template data")

// FormatError is returned when binary template data cannot be decoded.
type FormatError struct {
	// Offset of the defect in the binary data
	Offset int
	Reason string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("template data at %d: %s", e.Offset, e.Reason)
}

func (e FormatError) Unwrap() error { return ErrFormat }

// MarshalBinary encodes the literals and the minimum block size of t.
func (t *Template) MarshalBinary() ([]byte, error) {
	n := len(binMagic) + 1 + 2*binary.MaxVarintLen64
	for _, l := range t.lits {
		n += binary.MaxVarintLen64 + len(l)
	}
	buf := make([]byte, 0, n)
	buf = append(buf, binMagic...)
	buf = append(buf, binVersion)
	buf = binary.AppendUvarint(buf, uint64(t.MinBlockSize()))
	buf = binary.AppendUvarint(buf, uint64(len(t.lits)))
	for _, l := range t.lits {
		buf = binary.AppendUvarint(buf, uint64(len(l)))
		buf = append(buf, l...)
	}
	return buf, nil
}

// UnmarshalBinary replaces the literals and the minimum block size of t with
// those from data. The marker of t is kept. On error t is not modified.
func (t *Template) UnmarshalBinary(data []byte) error {
	if len(data) < len(binMagic)+1 || string(data[:len(binMagic)]) != binMagic {
		return FormatError{Reason: "not a template"}
	}
	if v := data[len(binMagic)]; v != binVersion {
		return FormatError{
			Offset: len(binMagic),
			Reason: fmt.Sprintf("unsupported version %d", v),
		}
	}
	dec := decoder{data: data, off: len(binMagic) + 1}
	minBlk := dec.uvarint("minimum block size")
	count := dec.uvarint("literal count")
	if dec.err == nil && count > uint64(len(data)-dec.off) {
		dec.fail("literal count exceeds data")
	}
	var lits []string
	for i := uint64(0); dec.err == nil && i < count; i++ {
		l := dec.uvarint("literal length")
		if dec.err != nil {
			break
		}
		if l == 0 || l > uint64(len(data)-dec.off) {
			dec.fail("invalid literal length")
			break
		}
		lits = append(lits, string(data[dec.off:dec.off+int(l)]))
		dec.off += int(l)
	}
	switch {
	case dec.err != nil:
		return dec.err
	case dec.off != len(data):
		return FormatError{Offset: dec.off, Reason: "trailing data"}
	case minBlk < 1 || minBlk > uint64(maxInt):
		return FormatError{Offset: len(binMagic) + 1, Reason: "invalid minimum block size"}
	}
	t.lits = lits
	t.minBlk = int(minBlk)
	t.learned = true
	return nil
}

const maxInt = int(^uint(0) >> 1)

type decoder struct {
	data []byte
	off  int
	err  error
}

func (d *decoder) fail(reason string) {
	d.err = FormatError{Offset: d.off, Reason: reason}
}

func (d *decoder) uvarint(what string) uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.data[d.off:])
	if n <= 0 {
		d.fail("invalid " + what)
		return 0
	}
	d.off += n
	return v
}

// WriteTo writes the binary form of t to w.
func (t *Template) WriteTo(w io.Writer) (int64, error) {
	data, err := t.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom reads the binary form of a template from r up to EOF.
func (t *Template) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	return int64(len(data)), t.UnmarshalBinary(data)
}

// Dump writes the binary form of t to file name.
func (t *Template) Dump(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err = t.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a template from a file written by Dump. The marker is set with
// WithMarker in opts, other options are superseded by the file content.
func Load(name string, opts ...Option) (*Template, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t := New(opts...)
	if _, err = t.ReadFrom(f); err != nil {
		return nil, err
	}
	return t, nil
}
