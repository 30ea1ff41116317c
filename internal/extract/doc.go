// Package extract derives page structure from raw HTML.
//
// The extractor runs four independent sub-extractions over the same
// document (header, hero, content sections, and footer), each driven by
// an ordered, first-match-wins list of tree queries. The result is a
// best-effort DomStructure: extraction never fails, it simply returns
// empty regions for markup it cannot interpret.
//
// Parsing is charset-aware (chardet detection with conversion to UTF-8)
// and tolerant of malformed markup via the html5 parser.
package extract
