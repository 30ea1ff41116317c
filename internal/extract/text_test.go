package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanStripsTags(t *testing.T) {
	assert.Equal(t, "Hello World", Clean("<b>Hello</b> <i>World</i>"))
}

func TestCleanDecodesEntities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ampersand", "Fish &amp; Chips", "Fish & Chips"},
		{"angle brackets", "1 &lt; 2 &gt; 0", "1 < 2 > 0"},
		{"quotes", "&quot;quoted&quot; and &#039;single&#039;", `"quoted" and 'single'`},
		{"non-breaking space", "a&nbsp;b", "a b"},
		{"dashes", "a&mdash;b &ndash; c", "a—b – c"},
		{"marks", "&copy; 2024 Acme&reg; Widgets&trade;", "© 2024 Acme® Widgets™"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "one two three", Clean("  one\n\t two   three \n"))
}

func TestCleanEmpty(t *testing.T) {
	assert.Empty(t, Clean(""))
	assert.Empty(t, Clean("   \n\t  "))
	assert.Empty(t, Clean("<div><span></span></div>"))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b", NormalizeWhitespace("a  b"))
	assert.Equal(t, "", NormalizeWhitespace("   "))
}
