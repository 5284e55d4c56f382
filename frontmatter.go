package mdem

import "strings"

const maxFrontMatterBytes = 64 * 1024

type frontMatterState uint8

const (
	frontMatterStart frontMatterState = iota
	frontMatterOpened
	frontMatterBody
	frontMatterDone
)

// frontMatter drops a leading ---, +++ or ;;; fenced metadata block from a
// stream of lines. A block that is never closed, or grows past
// maxFrontMatterBytes, is handed back as ordinary lines.
type frontMatter struct {
	state frontMatterState
	delim string
	held  []string
	size  int
	one   [1]string
}

func (f *frontMatter) reset() {
	f.state = frontMatterStart
	f.delim = ""
	f.held = f.held[:0]
	f.size = 0
}

// feed returns the lines that should be rendered now. The result is only
// valid until the next call.
func (f *frontMatter) feed(line string) []string {
	switch f.state {
	case frontMatterStart:
		delim, ok := frontMatterDelimiter(line)
		if !ok {
			f.state = frontMatterDone
			return f.pass(line)
		}
		f.delim = delim
		f.hold(line)
		f.state = frontMatterOpened
		return nil
	case frontMatterOpened:
		f.hold(line)
		if !frontMatterMetadataLikely(line) {
			return f.release()
		}
		f.state = frontMatterBody
		return nil
	case frontMatterBody:
		if strings.TrimSpace(line) == f.delim {
			f.state = frontMatterDone
			f.held = f.held[:0]
			f.size = 0
			return nil
		}
		f.hold(line)
		if f.size > maxFrontMatterBytes {
			return f.release()
		}
		return nil
	}
	return f.pass(line)
}

// finish returns any lines still held at end of input.
func (f *frontMatter) finish() []string {
	if f.state == frontMatterOpened || f.state == frontMatterBody {
		return f.release()
	}
	f.state = frontMatterDone
	return nil
}

func (f *frontMatter) hold(line string) {
	f.held = append(f.held, line)
	f.size += len(line) + 1
}

func (f *frontMatter) release() []string {
	f.state = frontMatterDone
	out := f.held
	f.held = nil
	f.size = 0
	return out
}

func (f *frontMatter) pass(line string) []string {
	f.one[0] = line
	return f.one[:]
}

func frontMatterDelimiter(line string) (string, bool) {
	switch trimmed := strings.TrimSpace(line); trimmed {
	case "---", "+++", ";;;":
		return trimmed, true
	}
	return "", false
}

func frontMatterMetadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.ContainsAny(trimmed, ":=")
}
