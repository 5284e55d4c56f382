// Package mdem renders CommonMark emphasis to HTML.
//
// Only * and _ emphasis and strong emphasis are recognized, following the
// delimiter run and flanking rules of CommonMark. Links, code spans, HTML and
// block structure are not parsed, and no character other than the inserted
// tags is escaped. Callers hand in text that is already isolated as inline
// content and use the returned fragment as is.
//
// Render works on a single span in three steps: Tokenize splits it into text
// and delimiter runs, Resolve pairs openers with closers and collapses them
// into markup, and the remaining tokens are concatenated inside <p></p>.
//
// Example:
//
//	html := mdem.Render("*foo **bar** baz*")
//	// <p><em>foo <strong>bar</strong> baz</em></p>
//
// RenderDocument applies Render to every paragraph of a larger document read
// from an io.Reader:
//
//	err := mdem.RenderDocument(mdem.RenderRequest{
//		Reader:  os.Stdin,
//		Writer:  os.Stdout,
//		Options: []mdem.RenderOption{mdem.WithWrap(80)},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
package mdem
