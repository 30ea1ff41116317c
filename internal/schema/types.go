package schema

// AnalyzedPage is the schema-conformant semantic description of a page.
type AnalyzedPage struct {
	PageIntent string    `json:"page_intent"`
	Sections   []Section `json:"sections"`
}

// Section is one named region of the page.
type Section struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	SectionIntent string    `json:"section_intent"`
	Elements      []Element `json:"elements"`
}

// Element is one typed item inside a section.
type Element struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Alt    string `json:"alt"`
	Intent string `json:"intent"`
}

// Section types.
const (
	SectionHeader  = "header"
	SectionHero    = "hero"
	SectionContent = "content"
	SectionSidebar = "sidebar"
	SectionFooter  = "footer"
	SectionOther   = "other"
)

// SectionTypes enumerates the valid section types in schema order.
var SectionTypes = []string{
	SectionHeader, SectionHero, SectionContent,
	SectionSidebar, SectionFooter, SectionOther,
}

// Element types.
const (
	ElementLogo     = "LOGO"
	ElementHeading  = "HEADING"
	ElementText     = "TEXT"
	ElementImage    = "IMAGE"
	ElementButton   = "BUTTON"
	ElementLink     = "LINK"
	ElementVideo    = "VIDEO"
	ElementForm     = "FORM"
	ElementInput    = "INPUT"
	ElementList     = "LIST"
	ElementListItem = "LIST_ITEM"
)

// ElementTypes enumerates the valid element types in schema order.
var ElementTypes = []string{
	ElementLogo, ElementHeading, ElementText, ElementImage,
	ElementButton, ElementLink, ElementVideo, ElementForm,
	ElementInput, ElementList, ElementListItem,
}
