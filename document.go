package mdem

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/reflow/wordwrap"
)

var documentPool = sync.Pool{
	New: func() any {
		return &documentRenderer{}
	},
}

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, 4096)
	},
}

var configPool = sync.Pool{
	New: func() any {
		return &renderConfig{}
	},
}

// RenderRequest configures RenderDocument.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []RenderOption
}

// RenderDocument splits a Markdown document into paragraphs and writes each
// one through Render, one HTML paragraph per output line.
//
// Paragraphs are separated by blank lines. Their lines are trimmed of
// surrounding spaces and tabs and joined with "\n". A leading front matter
// block is skipped unless WithFrontMatter(true) is given.
func RenderDocument(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render document: reader is nil")
	}
	cfg := configPool.Get().(*renderConfig)
	*cfg = renderConfig{}
	for _, opt := range req.Options {
		if opt != nil {
			opt(cfg)
		}
	}
	cfgVal := *cfg
	*cfg = renderConfig{}
	configPool.Put(cfg)
	if req.Writer == nil && cfgVal.paragraph == nil {
		return fmt.Errorf("render document: writer is nil")
	}

	reader := readerPool.Get().(*bufio.Reader)
	reader.Reset(req.Reader)
	d := documentPool.Get().(*documentRenderer)
	d.reset(req.Writer, cfgVal)

	err := d.run(reader)

	d.reset(nil, renderConfig{})
	documentPool.Put(d)
	reader.Reset(nil)
	readerPool.Put(reader)
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}

type documentRenderer struct {
	w       io.Writer
	cfg     renderConfig
	check   validator
	front   frontMatter
	para    []string
	out     strings.Builder
	started bool
}

func (d *documentRenderer) reset(w io.Writer, cfg renderConfig) {
	d.w = w
	d.cfg = cfg
	d.check.reset()
	d.front.reset()
	d.para = d.para[:0]
	d.out.Reset()
	d.started = false
}

func (d *documentRenderer) run(r *bufio.Reader) error {
	for {
		line, readErr := r.ReadString('\n')
		if line != "" {
			if err := d.line(line); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("read: %w", readErr)
		}
	}
	if !d.cfg.keepFrontMatter {
		for _, held := range d.front.finish() {
			if err := d.text(held); err != nil {
				return err
			}
		}
	}
	return d.flush()
}

func (d *documentRenderer) line(raw string) error {
	size := len(raw)
	raw = strings.TrimSuffix(raw, "\n")
	raw = strings.TrimSuffix(raw, "\r")
	if !d.started {
		raw = strings.TrimPrefix(raw, "\uFEFF")
		d.started = true
	}
	// stripped newline and BOM bytes still count toward the binary sample
	d.check.addBytes(size - len(raw))
	line, err := d.check.checkLine(raw, d.cfg.strict)
	if err != nil {
		return err
	}
	if d.cfg.keepFrontMatter {
		return d.text(line)
	}
	for _, l := range d.front.feed(line) {
		if err := d.text(l); err != nil {
			return err
		}
	}
	return nil
}

func (d *documentRenderer) text(line string) error {
	if strings.TrimSpace(line) == "" {
		return d.flush()
	}
	line = strings.Trim(line, " \t")
	if d.cfg.lineMode {
		return d.emit(line)
	}
	d.para = append(d.para, line)
	return nil
}

func (d *documentRenderer) flush() error {
	if len(d.para) == 0 {
		return nil
	}
	err := d.emit(strings.Join(d.para, "\n"))
	d.para = d.para[:0]
	return err
}

func (d *documentRenderer) emit(markdown string) error {
	if d.cfg.paragraph != nil {
		return d.cfg.paragraph(markdown)
	}
	d.out.Reset()
	writeParagraph(&d.out, markdown)
	html := d.out.String()
	if d.cfg.wrap > 0 {
		html = wordwrap.String(html, d.cfg.wrap)
	}
	if _, err := io.WriteString(d.w, html); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if _, err := io.WriteString(d.w, "\n"); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
