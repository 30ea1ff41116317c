package extract

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// stripPolicy removes every tag, leaving only text content.
var stripPolicy = bluemonday.StrictPolicy()

// entityReplacer decodes the fixed set of entities the cleaner supports.
// The numeric aliases (&#34; &#39;) cover bluemonday's serializer, which
// re-emits quotes in numeric form.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#039;", "'",
	"&#39;", "'",
	"&#34;", `"`,
	"&nbsp;", " ",
	"&mdash;", "—",
	"&ndash;", "–",
	"&copy;", "©",
	"&reg;", "®",
	"&trade;", "™",
)

// Clean strips tags from a markup fragment, decodes common entities,
// collapses internal whitespace, and trims. It is total: any input,
// including the empty string, yields a valid (possibly empty) result.
func Clean(fragment string) string {
	if fragment == "" {
		return ""
	}
	text := stripPolicy.Sanitize(fragment)
	text = entityReplacer.Replace(text)
	return NormalizeWhitespace(text)
}

// NormalizeWhitespace collapses runs of whitespace into single spaces
// and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
