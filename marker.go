package templater

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseMarked reads the template segments from text where each occurrence of
// marker denotes a blank.
func ParseMarked(text, marker string) []Segment {
	t := Template{lits: splitMarked(text, marker)}
	return t.Segments()
}

func splitMarked(text, marker string) (lits []string) {
	if marker == "" {
		marker = DefaultMarker
	}
	for _, part := range strings.Split(text, marker) {
		if part != "" {
			lits = append(lits, part)
		}
	}
	return lits
}

// ErrMarker is matched by errors.Is for all MarkerErrors.
var ErrMarker = errors.New("literal contains marker")

// MarkerError is returned when a template cannot be written as marked text
// because one of its literals contains the marker.
type MarkerError struct {
	Marker, Literal string
}

func (e MarkerError) Error() string {
	return fmt.Sprintf("literal %q contains marker %q", e.Literal, e.Marker)
}

func (e MarkerError) Unwrap() error { return ErrMarker }

// Marked returns the text form of t with the template's marker at each
// blank. It fails if the text form would not read back as t.
func (t *Template) Marked() (string, error) {
	m := t.Marker()
	var sb strings.Builder
	sb.WriteString(m)
	for _, l := range t.lits {
		if strings.Contains(l, m) {
			return "", MarkerError{Marker: m, Literal: l}
		}
		sb.WriteString(l)
		sb.WriteString(m)
	}
	return sb.String(), nil
}

// WriteMarked writes the marked text form of t followed by a newline.
func (t *Template) WriteMarked(w io.Writer) error {
	text, err := t.Marked()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text+"\n")
	return err
}

// Save writes the marked text form of t to file name. The file is not
// created if t has no marked text form.
func (t *Template) Save(name string) error {
	text, err := t.Marked()
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err = io.WriteString(f, text+"\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadMarked creates a template from the marked text read from r. A single
// leading and a single trailing line break are ignored. The marker is set
// with WithMarker in opts.
func ReadMarked(r io.Reader, opts ...Option) (*Template, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := trimLineBreaks(string(data))
	return New(append(opts, WithText(text))...), nil
}

// Open creates a template from the marked text in file name, see ReadMarked.
func Open(name string, opts ...Option) (*Template, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMarked(f, opts...)
}

// ParseFile parses the content of file name. Line breaks "\r\n" are read as
// "\n" and a final line break is ignored.
func (t *Template) ParseFile(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	text, err := ReadText(f)
	if err != nil {
		return nil, err
	}
	return t.Parse(text)
}

// LearnFile learns the content of file name, read the same way as ParseFile
// does.
func (t *Template) LearnFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	text, err := ReadText(f)
	if err != nil {
		return err
	}
	t.Learn(text)
	return nil
}

func trimLineBreaks(s string) string {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		s = s[2:]
	case strings.HasPrefix(s, "\n"):
		s = s[1:]
	}
	switch {
	case strings.HasSuffix(s, "\r\n"):
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "\n"):
		s = s[:len(s)-1]
	}
	return s
}

// ReadText reads r up to EOF. Line breaks "\r\n" are read as "\n" and the
// last line break is dropped.
func ReadText(r io.Reader) (string, error) {
	var sb strings.Builder
	scn := bufio.NewScanner(r)
	scn.Buffer(nil, maxLineSize)
	first := true
	for scn.Scan() {
		if !first {
			sb.WriteByte('\n')
		}
		first = false
		sb.Write(scn.Bytes())
	}
	return sb.String(), scn.Err()
}

const maxLineSize = 1 << 30
