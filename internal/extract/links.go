package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Links collects every usable anchor within scope: non-empty cleaned
// text and a non-empty href that is not a fragment reference. Results
// are de-duplicated by the composite text|href key, first-seen order
// preserved.
func Links(scope *goquery.Selection) []Link {
	links := []Link{}
	seen := make(map[string]bool)

	scope.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		text := Clean(s.Text())
		if text == "" {
			return
		}

		key := text + "|" + href
		if seen[key] {
			return
		}
		seen[key] = true

		links = append(links, Link{
			Text:      text,
			Href:      href,
			Target:    s.AttrOr("target", ""),
			Classes:   classList(s),
			AriaLabel: s.AttrOr("aria-label", ""),
		})
	})

	return links
}

// classList splits the class attribute into individual class names.
func classList(s *goquery.Selection) []string {
	return strings.Fields(s.AttrOr("class", ""))
}

func imageFrom(s *goquery.Selection) *Image {
	return &Image{
		Src:     s.AttrOr("src", ""),
		Alt:     s.AttrOr("alt", ""),
		Width:   s.AttrOr("width", ""),
		Height:  s.AttrOr("height", ""),
		Classes: classList(s),
	}
}

func headingFrom(s *goquery.Selection) *Heading {
	return &Heading{
		Text:    Clean(s.Text()),
		HTMLTag: goquery.NodeName(s),
		ID:      s.AttrOr("id", ""),
		Classes: classList(s),
	}
}

func textBlockFrom(s *goquery.Selection) *TextBlock {
	return &TextBlock{
		Text:    Clean(s.Text()),
		Classes: classList(s),
	}
}
