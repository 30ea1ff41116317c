package extract

import "github.com/PuerkitoBio/goquery"

// maxHeaderNavLinks caps navigation links when no explicit <nav> scope
// exists inside the header region.
const maxHeaderNavLinks = 10

// headerRegionSelectors locate the page header block, tried in order.
var headerRegionSelectors = []string{"header", "#header", ".header"}

// logoSelectors are tried in priority order; the first match wins
// regardless of document order.
var logoSelectors = []string{
	`img[class*="logo"]`,
	`a[class*="logo"] img`,
	`div[class*="logo"] img`,
	"img#logo",
}

func extractHeader(doc *goquery.Document) Header {
	header := Header{NavLinks: []Link{}}

	region := firstMatch(doc, headerRegionSelectors)
	if region == nil {
		return header
	}

	for _, sel := range logoSelectors {
		if img := region.Find(sel).First(); img.Length() > 0 {
			header.Logo = imageFrom(img)
			break
		}
	}

	// Prefer links scoped to an explicit nav region; otherwise take all
	// header links, capped.
	if nav := region.Find("nav").First(); nav.Length() > 0 {
		header.NavLinks = Links(nav)
	} else {
		links := Links(region)
		if len(links) > maxHeaderNavLinks {
			links = links[:maxHeaderNavLinks]
		}
		header.NavLinks = links
	}

	return header
}
