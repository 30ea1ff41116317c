package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// footerRegionSelectors locate the page footer block, tried in order.
var footerRegionSelectors = []string{"footer", "#footer", ".footer"}

// copyrightSelectors are the class-based copyright patterns, tried
// before the glyph/word content search.
var copyrightSelectors = []string{
	`p[class*="copyright"]`,
	`div[class*="copyright"]`,
	`span[class*="copyright"]`,
}

// copyrightContentQuery matches any paragraph whose string value carries
// a copyright glyph or the word "Copyright".
const copyrightContentQuery = `//p[contains(., "©") or contains(., "Copyright")]`

func extractFooter(doc *goquery.Document) Footer {
	footer := Footer{Links: []Link{}}

	region := firstMatch(doc, footerRegionSelectors)
	if region == nil {
		return footer
	}

	for _, sel := range copyrightSelectors {
		if m := region.Find(sel).First(); m.Length() > 0 {
			footer.Text = textBlockFrom(m)
			break
		}
	}
	if footer.Text == nil {
		footer.Text = copyrightByContent(region)
	}
	if footer.Text == nil {
		// Last resort: the first plain paragraph.
		if p := region.Find("p").First(); p.Length() > 0 {
			footer.Text = textBlockFrom(p)
		}
	}

	// Footer links are uncapped.
	footer.Links = Links(region)

	return footer
}

// copyrightByContent searches the region with an XPath content query;
// class-based selectors cannot express "text contains".
func copyrightByContent(region *goquery.Selection) *TextBlock {
	for _, node := range region.Nodes {
		p := htmlquery.FindOne(node, copyrightContentQuery)
		if p == nil {
			continue
		}
		return &TextBlock{
			Text:    Clean(htmlquery.InnerText(p)),
			Classes: nodeClasses(p),
		}
	}
	return nil
}

func nodeClasses(n *html.Node) []string {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			return strings.Fields(attr.Val)
		}
	}
	return nil
}
