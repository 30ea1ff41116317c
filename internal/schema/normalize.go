package schema

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// ErrInvalidJSON is the error field carried by the envelope Normalize
// produces when no JSON can be recovered from model output.
const ErrInvalidJSON = "Model did not return valid JSON"

// Normalize turns raw model output into a JSON value. Objects and
// arrays pass through untouched unless they are a previously wrapped
// envelope; strings go through text recovery; anything else is wrapped.
// Normalize never fails.
func Normalize(input any) any {
	switch v := input.(type) {
	case map[string]any:
		if raw, ok := envelopeRaw(v); ok {
			return NormalizeText(raw)
		}
		return v
	case []any:
		return v
	case string:
		return NormalizeText(v)
	case nil:
		return envelope("")
	default:
		return envelope(fmt.Sprint(v))
	}
}

// NormalizeText recovers a JSON value from model text. A strict parse
// of the whole string wins; otherwise the slice from the first "{" to
// the last "}" gets one more attempt. Unrecoverable text comes back as
// an error envelope carrying the original string.
func NormalizeText(text string) any {
	var out any
	if err := sonic.UnmarshalString(text, &out); err == nil {
		return out
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if err := sonic.UnmarshalString(text[start:end+1], &out); err == nil {
			return out
		}
	}

	return envelope(text)
}

func envelope(raw string) map[string]any {
	return map[string]any{"error": ErrInvalidJSON, "raw": raw}
}

// envelopeRaw reports whether an object is an internal wrapper rather
// than model payload, returning the wrapped raw text when present. The
// marker keys are raw, error, and status.
func envelopeRaw(m map[string]any) (string, bool) {
	_, hasRaw := m["raw"]
	_, hasErr := m["error"]
	_, hasStatus := m["status"]
	if !hasRaw && !hasErr && !hasStatus {
		return "", false
	}
	raw, _ := m["raw"].(string)
	return raw, true
}

// Diagnostic extracts the error message and raw text from an envelope
// value, reporting whether the value is one.
func Diagnostic(v any) (msg, raw string, ok bool) {
	m, isMap := v.(map[string]any)
	if !isMap {
		return "", "", false
	}
	msg, hasErr := m["error"].(string)
	if !hasErr {
		return "", "", false
	}
	raw, _ = m["raw"].(string)
	return msg, raw, true
}
