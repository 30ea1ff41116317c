package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selection(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Selection
}

func TestLinksSkipsEmptyAndFragmentHrefs(t *testing.T) {
	scope := selection(t, `
		<a href="/about">About</a>
		<a href="#top">Top</a>
		<a href="">Nowhere</a>
		<a href="/img"><img src="x.png"></a>`)

	links := Links(scope)

	require.Len(t, links, 1)
	assert.Equal(t, "About", links[0].Text)
	assert.Equal(t, "/about", links[0].Href)
}

func TestLinksDeduplicatesByTextAndHref(t *testing.T) {
	scope := selection(t, `
		<a href="/a" class="first">Same</a>
		<a href="/b">Other</a>
		<a href="/a" class="second">Same</a>`)

	links := Links(scope)

	require.Len(t, links, 2)
	assert.Equal(t, []string{"first"}, links[0].Classes)
	assert.Equal(t, "Other", links[1].Text)
}

func TestLinksCapturesAttributes(t *testing.T) {
	scope := selection(t, `<a href="/go" target="_blank" class="nav item" aria-label="Go there">Go</a>`)

	links := Links(scope)

	require.Len(t, links, 1)
	assert.Equal(t, "_blank", links[0].Target)
	assert.Equal(t, []string{"nav", "item"}, links[0].Classes)
	assert.Equal(t, "Go there", links[0].AriaLabel)
}

func TestExtractHeaderLogoPriority(t *testing.T) {
	// The plain image comes first in document order; the class-based
	// pattern still wins.
	e := New()
	out := e.Extract(`<header>
		<img src="/plain.png">
		<img class="site-logo" src="/logo.png">
	</header>`)

	require.NotNil(t, out.Header.Logo)
	assert.Equal(t, "/logo.png", out.Header.Logo.Src)
}

func TestExtractHeaderNavScope(t *testing.T) {
	e := New()
	out := e.Extract(`<header>
		<a href="/outside">Outside</a>
		<nav><a href="/in1">In1</a><a href="/in2">In2</a></nav>
	</header>`)

	require.Len(t, out.Header.NavLinks, 2)
	assert.Equal(t, "/in1", out.Header.NavLinks[0].Href)
}

func TestExtractHeaderLinkCapWithoutNav(t *testing.T) {
	var b strings.Builder
	b.WriteString("<header>")
	for i := 0; i < 14; i++ {
		b.WriteString(`<a href="/p` + string(rune('a'+i)) + `">Link ` + string(rune('a'+i)) + `</a>`)
	}
	b.WriteString("</header>")

	out := New().Extract(b.String())

	assert.Len(t, out.Header.NavLinks, 10)
}

func TestExtractHeroHeadingTieBreak(t *testing.T) {
	out := New().Extract(`<div class="hero">
		<h2>Secondary</h2>
		<h1>Primary</h1>
	</div>`)

	require.NotNil(t, out.Hero.Heading)
	assert.Equal(t, "Primary", out.Hero.Heading.Text)
	assert.Equal(t, "h1", out.Hero.Heading.HTMLTag)
}

func TestExtractHeroSkipsDecorativeImages(t *testing.T) {
	out := New().Extract(`<section class="hero">
		<img src="/icons/star.svg">
		<img src="/shot.jpg" alt="Product">
	</section>`)

	require.NotNil(t, out.Hero.Image)
	assert.Equal(t, "/shot.jpg", out.Hero.Image.Src)
	assert.Equal(t, "Product", out.Hero.Image.Alt)
}

func TestExtractHeroButtonType(t *testing.T) {
	out := New().Extract(`<div class="hero">
		<h1>Title</h1>
		<a class="btn-primary" href="/signup">Sign up</a>
	</div>`)

	require.NotNil(t, out.Hero.Button)
	assert.Equal(t, "link", out.Hero.Button.Type)
	assert.Equal(t, "/signup", out.Hero.Button.Href)

	out = New().Extract(`<div class="hero">
		<h1>Title</h1>
		<button class="btn">Buy</button>
	</div>`)

	require.NotNil(t, out.Hero.Button)
	assert.Equal(t, "button", out.Hero.Button.Type)
}

func TestExtractHeroFromMainFallback(t *testing.T) {
	out := New().Extract(`<main>
		<h1 id="title" class="big">Welcome</h1>
		<img src="/banner.jpg">
	</main>`)

	require.NotNil(t, out.Hero.Heading)
	assert.Equal(t, "Welcome", out.Hero.Heading.Text)
	assert.Equal(t, "title", out.Hero.Heading.ID)
	require.NotNil(t, out.Hero.Image)
	assert.Equal(t, "/banner.jpg", out.Hero.Image.Src)
}

func TestExtractSectionsSkipsShortText(t *testing.T) {
	out := New().Extract(`<section>
		<p>too short</p>
		<p>long enough to keep around</p>
	</section>`)

	require.Len(t, out.Sections, 1)
	require.Len(t, out.Sections[0].Texts, 1)
	assert.Equal(t, "long enough to keep around", out.Sections[0].Texts[0].Text)
}

func TestExtractSectionsSkipsOtherRegions(t *testing.T) {
	out := New().Extract(`
		<section class="hero-banner"><p>hero paragraph content here</p></section>
		<section class="features"><p>feature paragraph content here</p></section>`)

	require.Len(t, out.Sections, 1)
	assert.Equal(t, "feature paragraph content here", out.Sections[0].Texts[0].Text)
}

func TestExtractSectionsIndexAcrossPatterns(t *testing.T) {
	out := New().Extract(`
		<section><p>section paragraph long enough</p></section>
		<article><p>article paragraph long enough</p></article>
		<div class="content-block"><p>div paragraph long enough here</p></div>`)

	require.Len(t, out.Sections, 3)
	for i, s := range out.Sections {
		assert.Equal(t, i, s.Index)
	}
}

func TestExtractSectionsList(t *testing.T) {
	out := New().Extract(`<article>
		<h3>Features</h3>
		<ul><li>Fast</li><li>Small</li></ul>
	</article>`)

	require.Len(t, out.Sections, 1)
	require.NotNil(t, out.Sections[0].List)
	require.Len(t, out.Sections[0].List.Items, 2)
	assert.Equal(t, "Fast", out.Sections[0].List.Items[0].Text)
	require.NotNil(t, out.Sections[0].Heading)
	assert.Equal(t, "h3", out.Sections[0].Heading.HTMLTag)
}

func TestExtractFooterCopyrightClass(t *testing.T) {
	out := New().Extract(`<footer>
		<p>first paragraph</p>
		<p class="copyright-note">© 2024 Acme</p>
	</footer>`)

	require.NotNil(t, out.Footer.Text)
	assert.Equal(t, "© 2024 Acme", out.Footer.Text.Text)
	assert.Equal(t, []string{"copyright-note"}, out.Footer.Text.Classes)
}

func TestExtractFooterCopyrightContent(t *testing.T) {
	out := New().Extract(`<footer>
		<p>some footer prose</p>
		<p>Copyright 2024 Acme Inc</p>
	</footer>`)

	require.NotNil(t, out.Footer.Text)
	assert.Equal(t, "Copyright 2024 Acme Inc", out.Footer.Text.Text)
}

func TestExtractFooterFallsBackToFirstParagraph(t *testing.T) {
	out := New().Extract(`<footer><p>just a note</p></footer>`)

	require.NotNil(t, out.Footer.Text)
	assert.Equal(t, "just a note", out.Footer.Text.Text)
}

func TestExtractFooterLinksUncapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("<footer>")
	for i := 0; i < 14; i++ {
		b.WriteString(`<a href="/f` + string(rune('a'+i)) + `">Footer ` + string(rune('a'+i)) + `</a>`)
	}
	b.WriteString("</footer>")

	out := New().Extract(b.String())

	assert.Len(t, out.Footer.Links, 14)
}

func TestExtractEmptyAndInvalidInput(t *testing.T) {
	for _, in := range []string{"", "not markup at all", "<><><"} {
		out := New().Extract(in)

		assert.NotNil(t, out.Header.NavLinks)
		assert.NotNil(t, out.Sections)
		assert.NotNil(t, out.Footer.Links)
		assert.Nil(t, out.Hero.Heading)
	}
}

func TestExtractEndToEnd(t *testing.T) {
	out := New().Extract(`<header><img class="logo" src="/l.png"></header>` +
		`<section><h2>Hi</h2><p>1234567890a</p></section>` +
		`<footer><p>© 2024</p></footer>`)

	require.NotNil(t, out.Header.Logo)
	assert.Equal(t, "/l.png", out.Header.Logo.Src)

	require.Len(t, out.Sections, 1)
	require.NotNil(t, out.Sections[0].Heading)
	assert.Equal(t, "Hi", out.Sections[0].Heading.Text)
	require.Len(t, out.Sections[0].Texts, 1)
	assert.Equal(t, "1234567890a", out.Sections[0].Texts[0].Text)

	require.NotNil(t, out.Footer.Text)
	assert.Equal(t, "© 2024", out.Footer.Text.Text)
}
