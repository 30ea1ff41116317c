package extract

// DomStructure is the page structure derived purely from markup
// pattern-matching, before any vision model is consulted.
type DomStructure struct {
	Header   Header       `json:"header"`
	Hero     Hero         `json:"hero"`
	Sections []DomSection `json:"sections"`
	Footer   Footer       `json:"footer"`
}

// Header holds the logo and navigation links of the page header region.
type Header struct {
	Logo     *Image `json:"logo"`
	NavLinks []Link `json:"navLinks"`
}

// Hero holds the primary above-the-fold content block.
type Hero struct {
	Heading *Heading `json:"heading"`
	Image   *Image   `json:"image"`
	Button  *Button  `json:"button"`
}

// DomSection is one content block between header and footer.
type DomSection struct {
	Index   int         `json:"index"`
	Heading *Heading    `json:"heading"`
	Texts   []TextBlock `json:"texts"`
	List    *List       `json:"list"`
}

// List holds the item texts of the first list found in a section.
type List struct {
	Items []TextBlock `json:"items"`
}

// Footer holds the copyright text and all footer links.
type Footer struct {
	Text  *TextBlock `json:"text"`
	Links []Link     `json:"links"`
}

// Image describes an <img> element.
type Image struct {
	Src     string   `json:"src"`
	Alt     string   `json:"alt"`
	Width   string   `json:"width"`
	Height  string   `json:"height"`
	Classes []string `json:"classes"`
}

// Link describes an anchor with visible text and a usable href.
type Link struct {
	Text      string   `json:"text"`
	Href      string   `json:"href"`
	Target    string   `json:"target"`
	Classes   []string `json:"classes"`
	AriaLabel string   `json:"ariaLabel"`
}

// Button describes a call-to-action, either an anchor or a <button>.
type Button struct {
	Text    string   `json:"text"`
	Href    string   `json:"href"`
	Type    string   `json:"type"` // "link" or "button"
	Classes []string `json:"classes"`
}

// Heading describes an h1-h6 element.
type Heading struct {
	Text    string   `json:"text"`
	HTMLTag string   `json:"htmlTag"`
	ID      string   `json:"id"`
	Classes []string `json:"classes"`
}

// TextBlock is a cleaned fragment of visible text.
type TextBlock struct {
	Text    string   `json:"text"`
	Classes []string `json:"classes"`
}
