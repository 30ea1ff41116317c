package schema

// Name identifies the analysis schema on the model wire format.
const Name = "WebsiteAnalysisSchema"

// JSONSchema returns the JSON Schema document for AnalyzedPage, built
// fresh per call so callers can embed it in request bodies without
// sharing state. Every object level closes with additionalProperties
// false; the model is not allowed to invent fields.
func JSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"page_intent": map[string]any{"type": "string", "minLength": 5},
			"sections": map[string]any{
				"type":     "array",
				"items":    sectionSchema(),
				"minItems": 1,
			},
		},
		"required":             []string{"page_intent", "sections"},
		"additionalProperties": false,
	}
}

func sectionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":             map[string]any{"type": "string", "minLength": 1},
			"type":           map[string]any{"type": "string", "enum": SectionTypes},
			"section_intent": map[string]any{"type": "string", "minLength": 3},
			"elements": map[string]any{
				"type":     "array",
				"items":    elementSchema(),
				"minItems": 1,
			},
		},
		"required":             []string{"id", "type", "section_intent", "elements"},
		"additionalProperties": false,
	}
}

func elementSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":   map[string]any{"type": "string", "enum": ElementTypes},
			"text":   map[string]any{"type": "string"},
			"alt":    map[string]any{"type": "string"},
			"intent": map[string]any{"type": "string", "minLength": 3},
		},
		"required":             []string{"type", "text", "alt", "intent"},
		"additionalProperties": false,
	}
}
