package extract

import "github.com/PuerkitoBio/goquery"

// Extractor derives a DomStructure from raw HTML using ordered
// pattern-matching heuristics. Extraction is best-effort and never
// fails: unparseable input yields an empty structure.
type Extractor struct{}

// New creates a markup structural extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract runs the four region sub-extractions over the raw HTML.
func (e *Extractor) Extract(html string) DomStructure {
	out := DomStructure{
		Header:   Header{NavLinks: []Link{}},
		Sections: []DomSection{},
		Footer:   Footer{Links: []Link{}},
	}

	doc, err := LoadHTML(html)
	if err != nil {
		return out
	}

	out.Header = extractHeader(doc)
	out.Hero = extractHero(doc)
	out.Footer = extractFooter(doc)
	// Section extraction prunes header/footer nodes, so it parses its
	// own copy of the document.
	out.Sections = extractSections(html)

	return out
}

// firstMatch returns the first non-empty selection among the ordered
// selectors, or nil when none match.
func firstMatch(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if m := doc.Find(sel).First(); m.Length() > 0 {
			return m
		}
	}
	return nil
}
