// Package templating supports the use of templater in your Go tests. A test
// subject is checked against a template file. The subject must match the
// template and joining its blank values must reproduce the subject.
//
// Example reads the template from testdata/TestGreeting.tmpl:
//
//	func TestGreeting(t *testing.T) {
//		Fatal(t, "", strings.NewReader(Greet("Alice")))
//	}
//
// Template:
//
//	|||Hello, |||! You have ||| new messages.|||
//
// Running the test with TEMPLATING_RECORD=TestGreeting learns the subject into
// the template file. Recording with different subjects lets the template
// converge to the parts the subjects have in common.
package templating

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fractalqb/templater"
)

// When this environment variable is set to a regexp and the name of the current
// test matches calls to Error or Fatal will learn the subject into the template
// instead of checking it. E.g.
//
//	TEMPLATING_RECORD=TestRecording go test .
const RecordEnv = "TEMPLATING_RECORD"

// GoTestdataDir is the name of Go's default directory for testdata (see go help
// test).
const GoTestdataDir = "testdata"

func Error(t *testing.T, hint string, subj io.Reader) error {
	return defaultConfig.Error(t, hint, subj)
}

func Fatal(t *testing.T, hint string, subj io.Reader) {
	defaultConfig.Fatal(t, hint, subj)
}

func Record(t *testing.T, hint string, subj io.Reader) {
	defaultConfig.Record(t, hint, subj)
}

// Repo computes template file names from test names.
type Repo struct {
	Dir    string
	Suffix string
}

const (
	StdSuffix = ".tmpl"
	NoSuffix  = "\x00"
)

func (r Repo) Filename(t *testing.T, hint string) string {
	suffix := r.Suffix
	switch suffix {
	case "":
		suffix = StdSuffix
	case NoSuffix:
		suffix = ""
	}
	if hint == "" {
		return filepath.Join(r.Dir, t.Name()+suffix)
	}
	if suffix == "" || strings.HasSuffix(hint, suffix) {
		return filepath.Join(r.Dir, t.Name(), hint)
	}
	return filepath.Join(r.Dir, t.Name(), hint+suffix)
}

type Config struct {
	TemplateFile func(t *testing.T, hint string) string
	// Marker used in template files, defaults to templater.DefaultMarker
	Marker       string
	MinBlockSize int
	// Record replaces an existing template instead of learning into it
	RecordOverwrite bool
}

var defaultConfig = Config{
	TemplateFile: Repo{Dir: GoTestdataDir}.Filename,
	Marker:       templater.DefaultMarker,
	MinBlockSize: 1,
}

// MismatchError reports a subject that does not match its template.
type MismatchError struct {
	File string
	err  error
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("template %s: %s", e.File, e.err)
}

func (e MismatchError) Unwrap() error { return e.err }

var errNoRoundTrip = errors.New("join does not reproduce subject")

func (cfg Config) Error(t *testing.T, hint string, subj io.Reader) error {
	if recordTest(t) {
		cfg.Record(t, hint, subj)
		return nil
	}
	_, err := cfg.check(t, hint, subj)
	if err != nil {
		t.Error(err)
	}
	return err
}

func (cfg Config) Fatal(t *testing.T, hint string, subj io.Reader) {
	if recordTest(t) {
		cfg.Record(t, hint, subj)
		return
	}
	if _, err := cfg.check(t, hint, subj); err != nil {
		t.Fatal(err)
	}
}

// Values returns the blank values of subj with respect to the template. The
// test fails if subj does not match.
func (cfg Config) Values(t *testing.T, hint string, subj io.Reader) []string {
	values, err := cfg.check(t, hint, subj)
	if err != nil {
		t.Fatal(err)
	}
	return values
}

func recordTest(t *testing.T) bool {
	rec := os.Getenv(RecordEnv)
	if rec == "" {
		return false
	}
	r, err := regexp.Compile(rec)
	if err != nil {
		t.Logf("templating: invalid regexp '%s' in %s, not recording: %s", rec, RecordEnv, err)
		return false
	}
	return r.MatchString(t.Name())
}

func (cfg Config) options() []templater.Option {
	return []templater.Option{
		templater.WithMarker(cfg.Marker),
		templater.WithMinBlockSize(cfg.MinBlockSize),
	}
}

func (cfg Config) check(t *testing.T, hint string, subj io.Reader) ([]string, error) {
	tmplfile := cfg.TemplateFile(t, hint)
	if _, err := os.Stat(tmplfile); os.IsNotExist(err) {
		t.Logf("to record a template file run '%[1]s=%[2]s go test -run %[2]s'",
			RecordEnv,
			t.Name(),
		)
		return nil, fmt.Errorf("template file %s does not exists", tmplfile)
	}
	tmpl, err := templater.Open(tmplfile, cfg.options()...)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(subj)
	if err != nil {
		return nil, err
	}
	values, err := tmpl.Parse(string(data))
	if err != nil {
		return nil, MismatchError{File: tmplfile, err: err}
	}
	if s, err := tmpl.Join(values); err != nil {
		return nil, MismatchError{File: tmplfile, err: err}
	} else if s != string(data) {
		return nil, MismatchError{File: tmplfile, err: errNoRoundTrip}
	}
	return values, nil
}

func (cfg Config) Record(t *testing.T, hint string, subj io.Reader) {
	tmplfile, err := cfg.record(t, hint, subj)
	if err != nil {
		t.Fatal(err)
	}
	t.Errorf("templating recorder wrote: %s", tmplfile)
}

func (cfg Config) record(t *testing.T, hint string, subj io.Reader) (string, error) {
	data, err := io.ReadAll(subj)
	if err != nil {
		return "", err
	}
	tmplfile := cfg.TemplateFile(t, hint)
	var tmpl *templater.Template
	if _, err := os.Stat(tmplfile); os.IsNotExist(err) || cfg.RecordOverwrite {
		tmpl = templater.New(cfg.options()...)
	} else if tmpl, err = templater.Open(tmplfile, cfg.options()...); err != nil {
		return "", err
	}
	tmpl.Learn(string(data))
	dir := filepath.Dir(tmplfile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err = os.MkdirAll(dir, 0777); err != nil {
			return "", err
		}
	}
	return tmplfile, tmpl.Save(tmplfile)
}
