package schema

import (
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// Sanitize coerces any JSON value into a structurally valid
// AnalyzedPage. It is total and idempotent: non-object input yields an
// empty page, missing or falsy fields get defaults, and scalar fields
// of the wrong type are stringified rather than dropped.
func Sanitize(input any) AnalyzedPage {
	if p, ok := input.(AnalyzedPage); ok {
		input = pageValue(p)
	}

	page := AnalyzedPage{Sections: []Section{}}
	m, ok := input.(map[string]any)
	if !ok {
		return page
	}

	page.PageIntent = coerceString(m["page_intent"])

	raw, ok := m["sections"].([]any)
	if !ok {
		return page
	}
	for i, entry := range raw {
		page.Sections = append(page.Sections, sanitizeSection(entry, i))
	}
	return page
}

func sanitizeSection(v any, index int) Section {
	section := Section{Elements: []Element{}}
	m, _ := v.(map[string]any)

	if falsy(m["id"]) {
		section.ID = fmt.Sprintf("sec_%03d", index)
	} else {
		section.ID = coerceString(m["id"])
	}
	if falsy(m["type"]) {
		section.Type = SectionOther
	} else {
		section.Type = coerceString(m["type"])
	}
	section.SectionIntent = coerceString(m["section_intent"])

	if elems, ok := m["elements"].([]any); ok {
		for _, e := range elems {
			section.Elements = append(section.Elements, sanitizeElement(e))
		}
	}
	return section
}

func sanitizeElement(v any) Element {
	m, _ := v.(map[string]any)

	element := Element{
		Type:   ElementText,
		Text:   coerceString(m["text"]),
		Alt:    coerceString(m["alt"]),
		Intent: coerceString(m["intent"]),
	}
	if !falsy(m["type"]) {
		element.Type = coerceString(m["type"])
	}
	return element
}

// falsy mirrors loose-typed emptiness: nil, false, empty string and
// numeric zero all count as absent for defaulting purposes.
func falsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64:
		return t == 0
	}
	return false
}

// coerceString stringifies any scalar; composite values are rendered
// as compact JSON so no information is silently lost.
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		if s, err := sonic.MarshalString(t); err == nil {
			return s
		}
		return fmt.Sprint(t)
	}
}

// pageValue lowers an already-typed page back to the generic form so a
// second Sanitize pass walks the same code path as the first.
func pageValue(p AnalyzedPage) any {
	data, err := sonic.Marshal(p)
	if err != nil {
		return nil
	}
	var v any
	if err := sonic.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}
