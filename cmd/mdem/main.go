package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdem"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/mdem")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns its exit status. Inputs and outputs
// are closed before it returns.
func run(argv []string, stdin *os.File, stdout, stderr io.Writer) int {
	var (
		outPath         string
		wrapFlag        string
		lineMode        bool
		keepFrontMatter bool
		strict          bool
		dumpTokens      bool
		showVersion     bool
	)

	flags := pflag.NewFlagSet("mdem", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&wrapFlag, "wrap", "w", "off", "Wrap paragraphs: off|auto|<columns>")
	flags.BoolVarP(&lineMode, "lines", "l", false, "Render every line as its own paragraph")
	flags.BoolVar(&keepFrontMatter, "keep-front-matter", false, "Render front matter as text instead of skipping it")
	flags.BoolVar(&strict, "strict", false, "Fail on invalid UTF-8 or binary input instead of dropping bad bytes")
	flags.BoolVar(&dumpTokens, "tokens", false, "Print resolved tokens per paragraph instead of HTML")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdem [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nConverts Markdown emphasis to HTML, one <p> per paragraph.")
		fmt.Fprintln(stderr, "If no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	args := flags.Args()
	if len(args) == 0 && term.IsTerminal(int(stdin.Fd())) {
		flags.Usage()
		return 2
	}

	width, err := resolveWrap(wrapFlag)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --wrap %q: %v\n", wrapFlag, err)
		return 2
	}

	reader, closer, err := openInputs(args, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	opts := []mdem.RenderOption{
		mdem.WithWrap(width),
		mdem.WithLineMode(lineMode),
		mdem.WithFrontMatter(keepFrontMatter),
		mdem.WithStrict(strict),
	}
	if dumpTokens {
		err = writeTokens(reader, writer, opts...)
	} else {
		err = mdem.RenderDocument(mdem.RenderRequest{
			Reader:  reader,
			Writer:  writer,
			Options: opts,
		})
	}
	if err != nil {
		fmt.Fprintf(stderr, "render: %v\n", err)
		if errors.Is(err, mdem.ErrInvalidUTF8) || errors.Is(err, mdem.ErrBinaryInput) {
			fmt.Fprintln(stderr, "hint: drop --strict to skip undecodable bytes")
		}
		return 1
	}
	return 0
}

// resolveWrap maps the --wrap flag to a column count, 0 meaning no wrapping.
func resolveWrap(mode string) (int, error) {
	switch value := strings.ToLower(strings.TrimSpace(mode)); value {
	case "", "off", "none", "0":
		return 0, nil
	case "auto":
		return terminalWidth(defaultWidth), nil
	default:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("expected off|auto|<columns>")
		}
		return n, nil
	}
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

// writeTokens prints Tokenize+Resolve output for every paragraph the
// document layer produces under opts, one token per line, with a blank line
// between paragraphs.
func writeTokens(r io.Reader, w io.Writer, opts ...mdem.RenderOption) error {
	first := true
	dump := func(markdown string) error {
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		for _, tok := range mdem.Resolve(mdem.Tokenize(markdown)) {
			if _, err := fmt.Fprintln(w, tok.String()); err != nil {
				return err
			}
		}
		return nil
	}
	return mdem.RenderDocument(mdem.RenderRequest{
		Reader:  r,
		Options: append(opts[:len(opts):len(opts)], mdem.WithParagraphFunc(dump)),
	})
}

// chainReader reads its sources one after another, opening each lazily.
type chainReader struct {
	opens  []func() (io.ReadCloser, error)
	cur    io.ReadCloser
	closed bool
}

func (c *chainReader) Read(p []byte) (int, error) {
	for !c.closed {
		if c.cur == nil {
			if len(c.opens) == 0 {
				c.closed = true
				break
			}
			rc, err := c.opens[0]()
			if err != nil {
				return 0, err
			}
			c.cur = rc
			c.opens = c.opens[1:]
		}
		n, err := c.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			_ = c.cur.Close()
			c.cur = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
	return 0, io.EOF
}

func (c *chainReader) Close() error {
	c.closed = true
	if c.cur != nil {
		err := c.cur.Close()
		c.cur = nil
		return err
	}
	return nil
}

func openInputs(args []string, stdin io.Reader) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return stdin, nil, nil
	}
	chain := &chainReader{}
	for _, raw := range args {
		open, err := inputOpener(raw, stdin)
		if err != nil {
			return nil, nil, err
		}
		chain.opens = append(chain.opens, open)
	}
	return chain, chain, nil
}

func inputOpener(raw string, stdin io.Reader) (func() (io.ReadCloser, error), error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return func() (io.ReadCloser, error) { return io.NopCloser(stdin), nil }, nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return func() (io.ReadCloser, error) { return openURL(raw) }, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return func() (io.ReadCloser, error) { return os.Open(normalizePath(path)) }, nil
		}
	}
	return func() (io.ReadCloser, error) { return os.Open(normalizePath(raw)) }, nil
}

func openURL(raw string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	if dir := filepath.Dir(clean); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
