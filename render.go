package mdem

import "strings"

const (
	paragraphOpen  = "<p>"
	paragraphClose = "</p>"
)

// Render converts one span of inline Markdown to an HTML paragraph.
//
// Only * and _ emphasis is recognized. Apart from the inserted <em> and
// <strong> tags the text is copied verbatim; in particular &, <, > and " are
// not escaped.
func Render(markdown string) string {
	var b strings.Builder
	b.Grow(len(markdown) + len(paragraphOpen) + len(paragraphClose))
	writeParagraph(&b, markdown)
	return b.String()
}

func writeParagraph(b *strings.Builder, markdown string) {
	b.WriteString(paragraphOpen)
	for _, t := range Resolve(Tokenize(markdown)) {
		b.WriteString(t.Literal())
	}
	b.WriteString(paragraphClose)
}
