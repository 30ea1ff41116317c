package pipeline

import "strings"

// Placeholder tokens recognized in prompt templates, including
// caller-supplied overrides.
const (
	tokenMode   = "{{MODE}}"
	tokenDOM    = "{{DOM_STRUCTURE}}"
	tokenVision = "{{VISION_STRUCTURE}}"
)

const defaultVisionTemplate = `You are analyzing a rendered web page in {{MODE}} mode.

Look at the attached screenshot and describe the page as a JSON object with a "page_intent" string and a "sections" array. Each section has an "id", a "type" (one of header, hero, content, sidebar, footer, other), a "section_intent", and an "elements" array. Each element has a "type" (one of LOGO, HEADING, TEXT, IMAGE, BUTTON, LINK, VIDEO, FORM, INPUT, LIST, LIST_ITEM), a "text", an "alt", and an "intent".

Structure recovered from the page markup, for reference:
{{DOM_STRUCTURE}}

Base your answer on what is visible in the screenshot. Respond with JSON only, no commentary.`

const defaultMergeTemplate = `You are reconciling two readings of the same web page in {{MODE}} mode.

Markup-derived structure:
{{DOM_STRUCTURE}}

Vision-derived structure:
{{VISION_STRUCTURE}}

Merge both into one JSON object with a "page_intent" string and a "sections" array as before. Prefer the markup reading for text content and links; prefer the vision reading for section boundaries and intent. Keep every section that appears in either reading. Respond with JSON only, no commentary.`

// substitute fills only the first occurrence of a token. Templates
// repeating a placeholder keep the later occurrences verbatim.
func substitute(template, token, value string) string {
	return strings.Replace(template, token, value, 1)
}

// visionPrompt builds the vision-only prompt, honoring a caller
// template override.
func visionPrompt(override, domJSON string) string {
	tpl := defaultVisionTemplate
	if override != "" {
		tpl = override
	}
	tpl = substitute(tpl, tokenMode, "vision")
	return substitute(tpl, tokenDOM, domJSON)
}

// mergePrompt builds the reconciliation prompt, honoring a caller
// template override.
func mergePrompt(override, domJSON, visionJSON string) string {
	tpl := defaultMergeTemplate
	if override != "" {
		tpl = override
	}
	tpl = substitute(tpl, tokenMode, "merge")
	tpl = substitute(tpl, tokenDOM, domJSON)
	return substitute(tpl, tokenVision, visionJSON)
}
