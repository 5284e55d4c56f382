package mdem

// RenderOption configures document rendering.
type RenderOption func(*renderConfig)

type renderConfig struct {
	wrap            int
	lineMode        bool
	keepFrontMatter bool
	strict          bool
	paragraph       func(markdown string) error
}

// WithWrap word-wraps every rendered paragraph to width columns. Lines are
// measured on the finished HTML, so <em> and <strong> tags count toward the
// width. A width of zero or less disables wrapping.
func WithWrap(width int) RenderOption {
	return func(cfg *renderConfig) {
		if width < 0 {
			width = 0
		}
		cfg.wrap = width
	}
}

// WithLineMode renders every non-blank line as its own paragraph instead of
// joining consecutive lines.
func WithLineMode(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.lineMode = enabled
	}
}

// WithFrontMatter keeps a leading front matter block as ordinary text. By
// default it is skipped.
func WithFrontMatter(keep bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.keepFrontMatter = keep
	}
}

// WithStrict makes invalid UTF-8 and binary-looking input an error. By default
// such bytes are dropped.
func WithStrict(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.strict = enabled
	}
}

// WithParagraphFunc hands the Markdown of every paragraph to fn instead of
// rendering it. Front matter, validation and paragraph splitting apply as
// usual, and RenderRequest.Writer may be nil. An error from fn stops the
// document.
func WithParagraphFunc(fn func(markdown string) error) RenderOption {
	return func(cfg *renderConfig) {
		cfg.paragraph = fn
	}
}
