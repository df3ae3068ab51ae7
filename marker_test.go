package templater

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var markedSegs = []Segment{Blank, Lit("<b>"), Blank, Lit("</b><u>"), Blank, Lit("</u>"), Blank}

func TestParseMarked(t *testing.T) {
	tests := []struct {
		text, marker string
		want         []Segment
	}{
		{"|||<b>|||</b><u>|||</u>|||", "|||", markedSegs},
		{"<b>|||</b><u>|||</u>", "|||", markedSegs},
		{"<b>||||||</b><u>|||</u>", "|||", markedSegs},
		{"+<u>+</u>+", "+", []Segment{Blank, Lit("<u>"), Blank, Lit("</u>"), Blank}},
		{"no marker", "|||", []Segment{Blank, Lit("no marker"), Blank}},
		{"", "|||", []Segment{Blank}},
	}
	for _, test := range tests {
		got := ParseMarked(test.text, test.marker)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("'%s': %s", test.text, diff)
		}
	}
}

func TestTemplate_Marked(t *testing.T) {
	tmpl := New(WithSegments(markedSegs...), WithMarker("|||"))
	text, err := tmpl.Marked()
	if err != nil {
		t.Fatal(err)
	}
	if text != "|||<b>|||</b><u>|||</u>|||" {
		t.Errorf("marked '%s'", text)
	}
	back := New(WithText(text), WithMarker("|||"))
	if diff := cmp.Diff(tmpl.Segments(), back.Segments()); diff != "" {
		t.Error(diff)
	}
	if s, err := New().Marked(); err != nil || s != DefaultMarker {
		t.Errorf("fresh template marked '%s' %v", s, err)
	}
}

func TestTemplate_Marked_literalWithMarker(t *testing.T) {
	tmpl := New(WithMarker("|||"))
	tmpl.Learn("a||| b")
	tmpl.Learn("a||| c")
	want := []Segment{Blank, Lit("a||| "), Blank}
	if diff := cmp.Diff(want, tmpl.Segments()); diff != "" {
		t.Fatal(diff)
	}
	_, err := tmpl.Marked()
	var merr MarkerError
	if !errors.As(err, &merr) || !errors.Is(err, ErrMarker) {
		t.Fatalf("unexpected error: %v", err)
	}
	if merr.Literal != "a||| " || merr.Marker != "|||" {
		t.Errorf("wrong error details: %+v", merr)
	}
	var sb strings.Builder
	if err = tmpl.WriteMarked(&sb); !errors.Is(err, ErrMarker) {
		t.Errorf("write: unexpected error: %v", err)
	}
	if sb.Len() > 0 {
		t.Errorf("wrote '%s'", sb.String())
	}
	name := filepath.Join(t.TempDir(), "marker.tmpl")
	if err = tmpl.Save(name); !errors.Is(err, ErrMarker) {
		t.Errorf("save: unexpected error: %v", err)
	}
	if _, err = os.Stat(name); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("save created file: %v", err)
	}
	other := New(WithSegments(tmpl.Segments()...), WithMarker("#"))
	if err = other.Save(name); err != nil {
		t.Fatal(err)
	}
	back, err := Open(name, WithMarker("#"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, back.Segments()); diff != "" {
		t.Error(diff)
	}
}

func TestTemplate_Save(t *testing.T) {
	name := filepath.Join(t.TempDir(), "test.html")
	tmpl := New(WithSegments(markedSegs...), WithMarker("|||"))
	if err := tmpl.Save(name); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if s := string(data); s != "|||<b>|||</b><u>|||</u>|||\n" {
		t.Errorf("saved '%s'", s)
	}
	back, err := Open(name, WithMarker("|||"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(markedSegs, back.Segments()); diff != "" {
		t.Error(diff)
	}
}

func TestOpen(t *testing.T) {
	for _, content := range []string{
		"|||<b>|||</b><u>|||</u>|||",
		"|||<b>|||</b><u>|||</u>|||\n",
		"|||<b>|||</b><u>|||</u>|||\r\n",
		"\n|||<b>|||</b><u>|||</u>|||",
		"\r\n|||<b>|||</b><u>|||</u>|||\r\n",
	} {
		name := filepath.Join(t.TempDir(), "test.html")
		if err := os.WriteFile(name, []byte(content), 0666); err != nil {
			t.Fatal(err)
		}
		tmpl, err := Open(name, WithMarker("|||"))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(markedSegs, tmpl.Segments()); diff != "" {
			t.Errorf("%q: %s", content, diff)
		}
	}
	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("unexpected error: %v", err)
		}
		var perr *fs.PathError
		if !errors.As(err, &perr) {
			t.Errorf("I/O error not passed through: %T", err)
		}
	})
}

func TestReadMarked_minBlockSize(t *testing.T) {
	tmpl, err := ReadMarked(strings.NewReader("#a#b#\n"),
		WithMarker("#"),
		WithMinBlockSize(3),
	)
	if err != nil {
		t.Fatal(err)
	}
	if n := tmpl.MinBlockSize(); n != 3 {
		t.Errorf("min block size %d", n)
	}
	if diff := cmp.Diff([]string{"a", "b"}, tmpl.Literals()); diff != "" {
		t.Error(diff)
	}
}

func TestTemplate_ParseFile(t *testing.T) {
	tmpl := New(WithText("+<u>+</u>+"), WithMarker("+"))
	want := []string{"testing ", " parsing ", " files"}
	for _, content := range []string{
		"testing <u> parsing </u> files\n",
		"testing <u> parsing </u> files\r\n",
		"testing <u> parsing </u> files",
	} {
		name := filepath.Join(t.TempDir(), "test.html")
		if err := os.WriteFile(name, []byte(content), 0666); err != nil {
			t.Fatal(err)
		}
		got, err := tmpl.ParseFile(name)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%q: %s", content, diff)
		}
	}
	t.Run("line breaks", func(t *testing.T) {
		tmpl := New(WithText("|||\n---\n|||"))
		name := filepath.Join(t.TempDir(), "test.txt")
		if err := os.WriteFile(name, []byte("a\r\nb\r\n---\r\nc\r\n\r\n"), 0666); err != nil {
			t.Fatal(err)
		}
		got, err := tmpl.ParseFile(name)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"a\nb", "c\n"}, got); diff != "" {
			t.Error(diff)
		}
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := tmpl.ParseFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
