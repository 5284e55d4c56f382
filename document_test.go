package mdem

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func renderDocument(t *testing.T, src string, opts ...RenderOption) string {
	t.Helper()
	var out bytes.Buffer
	if err := RenderDocument(RenderRequest{
		Reader:  strings.NewReader(src),
		Writer:  &out,
		Options: opts,
	}); err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	return out.String()
}

func TestRenderDocumentGolden(t *testing.T) {
	variants := map[string][]RenderOption{
		"":       nil,
		".lines": {WithLineMode(true)},
	}
	paths, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	if err != nil {
		t.Fatalf("glob testdata: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no markdown files found under testdata")
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		for suffix, opts := range variants {
			goldenPath := strings.TrimSuffix(path, ".md") + suffix + ".golden"
			t.Run(filepath.Base(goldenPath), func(t *testing.T) {
				want, err := os.ReadFile(goldenPath)
				if err != nil {
					t.Fatalf("read golden %s: %v", goldenPath, err)
				}
				got := renderDocument(t, string(src), opts...)
				if got != string(want) {
					t.Fatalf("golden mismatch for %s (run go run ./cmd/gen-golden)\n got: %q\nwant: %q", goldenPath, got, string(want))
				}
			})
		}
	}
}

func TestRenderDocumentParagraphs(t *testing.T) {
	src := "  *one*\ttwo  \r\n  three**four**\r\n\r\n \t \n\n_five_"
	got := renderDocument(t, src)
	want := "<p><em>one</em>\ttwo\nthree<strong>four</strong></p>\n<p><em>five</em></p>\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenderDocumentLineMode(t *testing.T) {
	got := renderDocument(t, "*a\nb*\n", WithLineMode(true))
	want := "<p>*a</p>\n<p>b*</p>\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	got = renderDocument(t, "*a\nb*\n")
	if got != "<p><em>a\nb</em></p>\n" {
		t.Fatalf("paragraph mode joined lines wrong: %q", got)
	}
}

func TestRenderDocumentEmpty(t *testing.T) {
	if got := renderDocument(t, ""); got != "" {
		t.Fatalf("expected no output, got %q", got)
	}
	if got := renderDocument(t, "\n\n  \n"); got != "" {
		t.Fatalf("expected no output for blank lines, got %q", got)
	}
}

func TestRenderDocumentFrontMatter(t *testing.T) {
	src := "---\ntitle: x\ntags: [a]\n---\n*body*\n"
	if got := renderDocument(t, src); got != "<p><em>body</em></p>\n" {
		t.Fatalf("front matter not skipped: %q", got)
	}
	got := renderDocument(t, src, WithFrontMatter(true))
	want := "<p>---\ntitle: x\ntags: [a]\n---\n<em>body</em></p>\n"
	if got != want {
		t.Fatalf("kept front matter: got %q want %q", got, want)
	}
}

func TestRenderDocumentUnterminatedFrontMatter(t *testing.T) {
	got := renderDocument(t, "+++\nkey = 1\n*x*")
	want := "<p>+++\nkey = 1\n<em>x</em></p>\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenderDocumentStripsBOM(t *testing.T) {
	got := renderDocument(t, "\uFEFF*x*\n")
	if got != "<p><em>x</em></p>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderDocumentSanitizesByDefault(t *testing.T) {
	src := "*a\x01b*\xff\n"
	got := renderDocument(t, src)
	if got != "<p><em>ab</em></p>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderDocumentKeepsVerticalWhitespace(t *testing.T) {
	if got := renderDocument(t, "a\f_b_\n"); got != "<p>a\f<em>b</em></p>\n" {
		t.Fatalf("form feed: got %q", got)
	}
	if got := renderDocument(t, "_b_\va\n"); got != "<p><em>b</em>\va</p>\n" {
		t.Fatalf("vertical tab: got %q", got)
	}
}

func TestRenderDocumentStrictCountsLineEndings(t *testing.T) {
	// 2 control bytes in 102: below the ratio only when newlines count.
	src := strings.Repeat("abc\n", 25) + "\x01\x01\n"
	if err := ValidateInput([]byte(src)); err != nil {
		t.Fatalf("ValidateInput: %v", err)
	}
	if err := RenderDocument(RenderRequest{
		Reader:  strings.NewReader(src),
		Writer:  io.Discard,
		Options: []RenderOption{WithStrict(true)},
	}); err != nil {
		t.Fatalf("strict RenderDocument: %v", err)
	}
	crlf := strings.ReplaceAll(src, "\n", "\r\n")
	if err := RenderDocument(RenderRequest{
		Reader:  strings.NewReader(crlf),
		Writer:  io.Discard,
		Options: []RenderOption{WithStrict(true)},
	}); err != nil {
		t.Fatalf("strict RenderDocument CRLF: %v", err)
	}
}

func TestRenderDocumentStrict(t *testing.T) {
	var out bytes.Buffer
	err := RenderDocument(RenderRequest{
		Reader:  strings.NewReader("fine\nbad \xff\n"),
		Writer:  &out,
		Options: []RenderOption{WithStrict(true)},
	})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	err = RenderDocument(RenderRequest{
		Reader:  strings.NewReader("nul\x00byte"),
		Writer:  &out,
		Options: []RenderOption{WithStrict(true)},
	})
	if !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestRenderDocumentWrap(t *testing.T) {
	src := "*alpha beta gamma delta epsilon zeta eta theta iota kappa*"
	got := renderDocument(t, src, WithWrap(20))
	unwrapped := renderDocument(t, src)
	if strings.Join(strings.Fields(got), " ") != strings.Join(strings.Fields(unwrapped), " ") {
		t.Fatalf("wrapping changed words:\n%q\n%q", got, unwrapped)
	}
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped output, got %q", got)
	}
	for _, line := range lines {
		if len(line) > 20 {
			t.Fatalf("line %q longer than 20 columns", line)
		}
	}
	if got := renderDocument(t, src, WithWrap(-5)); got != unwrapped {
		t.Fatalf("negative width should disable wrapping: %q", got)
	}
}

func TestRenderDocumentWrapCountsTags(t *testing.T) {
	if got := renderDocument(t, "*aaaa* bbbb", WithWrap(10)); got != "<p><em>aaaa</em>\nbbbb</p>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderDocumentParagraphFunc(t *testing.T) {
	var paras []string
	collect := WithParagraphFunc(func(markdown string) error {
		paras = append(paras, markdown)
		return nil
	})
	src := "---\ntitle: x\n---\n  *a*\nb\x01\n\n\nc\n"
	if err := RenderDocument(RenderRequest{
		Reader:  strings.NewReader(src),
		Options: []RenderOption{collect},
	}); err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if len(paras) != 2 || paras[0] != "*a*\nb" || paras[1] != "c" {
		t.Fatalf("paragraphs %q", paras)
	}

	stop := errors.New("stop")
	err := RenderDocument(RenderRequest{
		Reader: strings.NewReader("a\n\nb\n"),
		Options: []RenderOption{WithParagraphFunc(func(string) error {
			return stop
		})},
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected callback error, got %v", err)
	}
}

func TestRenderDocumentNilArguments(t *testing.T) {
	if err := RenderDocument(RenderRequest{Writer: io.Discard}); err == nil {
		t.Fatalf("expected error for nil reader")
	}
	if err := RenderDocument(RenderRequest{Reader: strings.NewReader("x")}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderDocumentWriteError(t *testing.T) {
	err := RenderDocument(RenderRequest{
		Reader: strings.NewReader("*x*\n"),
		Writer: failingWriter{},
	})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestRenderDocumentReadError(t *testing.T) {
	err := RenderDocument(RenderRequest{
		Reader: failingReader{},
		Writer: io.Discard,
	})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected read error, got %v", err)
	}
}
