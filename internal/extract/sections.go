package extract

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// minSectionTextLen is the cleaned-character threshold below which a
// paragraph is ignored.
const minSectionTextLen = 10

// sectionSkipPattern rejects candidate blocks that belong to another
// page region.
var sectionSkipPattern = regexp.MustCompile(`(?i)hero|header|footer|nav`)

// sectionContainerSelectors are the three container pattern classes,
// scanned in order. All matches of every pattern are collected; a block
// matched by more than one pattern is captured more than once. That
// overlap is preserved deliberately, see DESIGN.md.
var sectionContainerSelectors = []string{
	"section",
	"article",
	`div[class*="section"], div[class*="content-block"], div[class*="container"]`,
}

// extractSections scans its own parse of the raw HTML so that removing
// the header and footer regions does not disturb the document shared by
// the other sub-extractions.
func extractSections(html string) []DomSection {
	sections := []DomSection{}

	doc, err := LoadHTML(html)
	if err != nil {
		return sections
	}
	doc.Find("header, footer").Remove()

	// Indices increase strictly across all three patterns combined.
	index := 0
	for _, sel := range sectionContainerSelectors {
		doc.Find(sel).Each(func(_ int, block *goquery.Selection) {
			if sectionSkipPattern.MatchString(block.AttrOr("class", "")) {
				return
			}
			section, ok := sectionFrom(block)
			if !ok {
				return
			}
			section.Index = index
			index++
			sections = append(sections, section)
		})
	}

	return sections
}

func sectionFrom(block *goquery.Selection) (DomSection, bool) {
	section := DomSection{Texts: []TextBlock{}}

	if h := block.Find("h1, h2, h3, h4, h5, h6").First(); h.Length() > 0 {
		section.Heading = headingFrom(h)
	}

	block.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := Clean(p.Text())
		if len([]rune(text)) > minSectionTextLen {
			section.Texts = append(section.Texts, TextBlock{Text: text, Classes: classList(p)})
		}
	})

	if list := block.Find("ul, ol").First(); list.Length() > 0 {
		items := []TextBlock{}
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			items = append(items, TextBlock{Text: Clean(li.Text()), Classes: classList(li)})
		})
		section.List = &List{Items: items}
	}

	ok := section.Heading != nil || len(section.Texts) > 0 || section.List != nil
	return section, ok
}
