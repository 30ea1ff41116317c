package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// heroMainScanLimit bounds the last-resort scan of <main> content.
const heroMainScanLimit = 3000

// heroContainerSelectors are tried in order; the first container that
// yields any content supplies the hero.
var heroContainerSelectors = []string{
	`section[class*="hero"]`,
	`div[class*="hero"]`,
	`section[class*="jumbotron"]`,
	`div[class*="jumbotron"]`,
	`section[class*="banner"]`,
	`div[class*="banner"]`,
	"section#hero",
}

// decorativeImagePattern filters out icons, logos and avatars when
// picking the hero image.
var decorativeImagePattern = regexp.MustCompile(`(?i)icon|logo|avatar`)

// ctaSelectors locate the call-to-action, tried in order.
var ctaSelectors = []string{
	`a[class*="btn"], a[class*="button"], a[class*="cta"]`,
	`button[class*="btn"], button[class*="button"], button[class*="cta"]`,
	`a[class*="primary"]`,
}

func extractHero(doc *goquery.Document) Hero {
	hero := Hero{}

	for _, container := range heroContainers(doc) {
		heading, image, button := heroContent(container)
		if heading == nil && image == nil && button == nil {
			continue
		}
		if hero.Heading == nil {
			hero.Heading = heading
		}
		if hero.Image == nil {
			hero.Image = image
		}
		if hero.Button == nil {
			hero.Button = button
		}
		// First container with real content wins; keep scanning only
		// while neither a heading nor an image has been found.
		if hero.Heading != nil || hero.Image != nil {
			break
		}
	}

	return hero
}

// heroContainers resolves the candidate containers in priority order.
// The final candidate is the leading slice of <main>, reparsed as a
// fragment.
func heroContainers(doc *goquery.Document) []*goquery.Selection {
	var containers []*goquery.Selection

	for _, sel := range heroContainerSelectors {
		if m := doc.Find(sel).First(); m.Length() > 0 {
			containers = append(containers, m)
		}
	}

	if m := doc.Find("main").First(); m.Length() > 0 {
		inner, err := m.Html()
		if err == nil && inner != "" {
			if len(inner) > heroMainScanLimit {
				inner = inner[:heroMainScanLimit]
			}
			if frag, err := goquery.NewDocumentFromReader(strings.NewReader(inner)); err == nil {
				containers = append(containers, frag.Selection)
			}
		}
	}

	return containers
}

func heroContent(container *goquery.Selection) (*Heading, *Image, *Button) {
	var heading *Heading
	// h1 wins over h2 when both exist.
	if h := container.Find("h1").First(); h.Length() > 0 {
		heading = headingFrom(h)
	} else if h := container.Find("h2").First(); h.Length() > 0 {
		heading = headingFrom(h)
	}

	var image *Image
	container.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if decorativeImagePattern.MatchString(s.AttrOr("src", "")) {
			return true
		}
		image = imageFrom(s)
		return false
	})

	return heading, image, heroButton(container)
}

func heroButton(container *goquery.Selection) *Button {
	for _, sel := range ctaSelectors {
		m := container.Find(sel).First()
		if m.Length() == 0 {
			continue
		}
		btnType := "link"
		if goquery.NodeName(m) == "button" {
			btnType = "button"
		}
		return &Button{
			Text:    Clean(m.Text()),
			Href:    m.AttrOr("href", ""),
			Type:    btnType,
			Classes: classList(m),
		}
	}
	return nil
}
