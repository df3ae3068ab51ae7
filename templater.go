package templater

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMarker denotes blanks in the marked text form of a template unless
// an other marker is set with WithMarker.
const DefaultMarker = "|||"

var (
	// ErrNoMatch is matched by errors.Is for all MatchErrors.
	ErrNoMatch = errors.New("no match")
	// ErrArgCount is matched by errors.Is for all ArgCountErrors.
	ErrArgCount = errors.New("argument count mismatch")
)

// Segment is either a blank or a non-empty literal text of a template.
type Segment struct {
	Literal string
	Blank   bool
}

// Blank is the blank segment.
var Blank = Segment{Blank: true}

// Lit returns the literal segment with text s.
func Lit(s string) Segment { return Segment{Literal: s} }

func (s Segment) String() string {
	if s.Blank {
		return "<blank>"
	}
	return fmt.Sprintf("%q", s.Literal)
}

// MatchError is returned by Parse when a literal of the template cannot be
// found in the parsed text.
type MatchError struct {
	// Literal is the literal text that was not found
	Literal string
	// Pos is the byte offset in the parsed text where the search started
	Pos int
}

func (e MatchError) Error() string {
	return fmt.Sprintf("no match for literal %q from offset %d", e.Literal, e.Pos)
}

func (e MatchError) Unwrap() error { return ErrNoMatch }

// ArgCountError is returned by Join when the number of values does not equal
// the number of blanks.
type ArgCountError struct {
	Blanks, Values int
}

func (e ArgCountError) Error() string {
	return fmt.Sprintf("template has %d blanks, got %d values", e.Blanks, e.Values)
}

func (e ArgCountError) Unwrap() error { return ErrArgCount }

// Template is a text with blanks. It alternates between blanks and literal
// texts, starting and ending with a blank. A zero Template is the template
// with a single blank. Templates are not safe for concurrent use.
type Template struct {
	// Only the literals are stored. Blanks are implicit before, after and
	// between them.
	lits    []string
	minBlk  int
	marker  string
	learned bool
}

type options struct {
	minBlockSize int
	marker       string
	segs         []Segment
	text         *string
}

// Option configures a template created with New.
type Option func(*options)

// WithMinBlockSize sets the minimum length in runes a common text must have
// to become a literal when learning. Values less than 1 are ignored.
func WithMinBlockSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minBlockSize = n
		}
	}
}

// WithMarker sets the marker that denotes blanks in the marked text form of
// the template. An empty marker is ignored.
func WithMarker(m string) Option {
	return func(o *options) {
		if m != "" {
			o.marker = m
		}
	}
}

// WithSegments presets the template. The segments are normalized.
func WithSegments(segs ...Segment) Option {
	return func(o *options) {
		o.segs = segs
		o.text = nil
	}
}

// WithText presets the template from a marked text, see ParseMarked.
func WithText(text string) Option {
	return func(o *options) {
		o.text = &text
		o.segs = nil
	}
}

// New creates a template. Without WithSegments or WithText the template has
// a single blank and the first example passed to Learn becomes its only
// literal.
func New(opts ...Option) *Template {
	o := options{minBlockSize: 1, marker: DefaultMarker}
	for _, opt := range opts {
		opt(&o)
	}
	t := &Template{minBlk: o.minBlockSize, marker: o.marker}
	switch {
	case o.text != nil:
		t.lits = splitMarked(*o.text, o.marker)
		t.learned = true
	case o.segs != nil:
		t.lits = literals(o.segs)
		t.learned = true
	}
	return t
}

// MinBlockSize returns the minimum rune length of learned literals.
func (t *Template) MinBlockSize() int {
	if t.minBlk < 1 {
		return 1
	}
	return t.minBlk
}

// Marker returns the marker used for the marked text form.
func (t *Template) Marker() string {
	if t.marker == "" {
		return DefaultMarker
	}
	return t.marker
}

// Blanks returns the number of blanks, i.e. the number of values returned by
// Parse and expected by Join.
func (t *Template) Blanks() int { return len(t.lits) + 1 }

// Literals returns a copy of the literal texts in order.
func (t *Template) Literals() []string {
	return append([]string(nil), t.lits...)
}

// Segments returns the template as alternating sequence of segments.
func (t *Template) Segments() []Segment {
	res := make([]Segment, 0, 2*len(t.lits)+1)
	res = append(res, Blank)
	for _, l := range t.lits {
		res = append(res, Lit(l), Blank)
	}
	return res
}

// Learn refines the template with example such that the example matches the
// template. Learning the first example makes it the only literal.
func (t *Template) Learn(example string) {
	if t.learned {
		t.lits = Refine(t.lits, example, t.MinBlockSize())
	} else {
		t.lits = Refine([]string{example}, example, t.MinBlockSize())
		t.learned = true
	}
}

// Parse extracts the content of each blank from text. Literals are searched
// left to right, each one after the end of the previous match.
func (t *Template) Parse(text string) ([]string, error) {
	res := make([]string, 0, t.Blanks())
	pos := 0
	for _, lit := range t.lits {
		i := strings.Index(text[pos:], lit)
		if i < 0 {
			return nil, MatchError{Literal: lit, Pos: pos}
		}
		res = append(res, text[pos:pos+i])
		pos += i + len(lit)
	}
	return append(res, text[pos:]), nil
}

// Join fills the blanks with values. The number of values must equal
// t.Blanks().
func (t *Template) Join(values []string) (string, error) {
	if len(values) != t.Blanks() {
		return "", ArgCountError{Blanks: t.Blanks(), Values: len(values)}
	}
	var sb strings.Builder
	sb.WriteString(values[0])
	for i, l := range t.lits {
		sb.WriteString(l)
		sb.WriteString(values[i+1])
	}
	return sb.String(), nil
}

// literals normalizes segs: adjacent literals are concatenated, empty
// literals and repeated blanks vanish.
func literals(segs []Segment) (lits []string) {
	var sb strings.Builder
	for _, s := range segs {
		if !s.Blank {
			sb.WriteString(s.Literal)
			continue
		}
		if sb.Len() > 0 {
			lits = append(lits, sb.String())
			sb.Reset()
		}
	}
	if sb.Len() > 0 {
		lits = append(lits, sb.String())
	}
	return lits
}
