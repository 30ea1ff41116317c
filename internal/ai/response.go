package ai

import "github.com/bytedance/sonic"

// ExtractText pulls the model's textual output from a provider
// response body. Three shapes are understood, tried in order: a
// top-level output_text string, an output array of content parts, and
// finally the raw body itself. Extraction never fails; the worst case
// hands the whole body to the normalizer downstream.
func ExtractText(body []byte) string {
	var payload map[string]any
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return string(body)
	}

	if s, ok := payload["output_text"].(string); ok && s != "" {
		return s
	}

	if out, ok := payload["output"].([]any); ok {
		if s, ok := outputText(out); ok {
			return s
		}
	}

	return string(body)
}

// outputText scans output[].content[] for the first part typed
// output_text, falling back to the first part with any text field.
func outputText(output []any) (string, bool) {
	var fallback string
	var haveFallback bool

	for _, entry := range output {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		content, ok := m["content"].([]any)
		if !ok {
			continue
		}
		for _, part := range content {
			pm, ok := part.(map[string]any)
			if !ok {
				continue
			}
			text, ok := pm["text"].(string)
			if !ok {
				continue
			}
			if pm["type"] == "output_text" {
				return text, true
			}
			if !haveFallback {
				fallback = text
				haveFallback = true
			}
		}
	}
	return fallback, haveFallback
}
