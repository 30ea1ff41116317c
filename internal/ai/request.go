package ai

import (
	"encoding/base64"

	"github.com/gabriel-vasile/mimetype"

	"github.com/sitelens/sitelens/internal/schema"
)

// Wire formats for model requests.
const (
	// FormatSchema is the structured-output wire format: the analysis
	// JSON Schema travels with the request and the provider enforces it.
	FormatSchema = "json_schema"

	// FormatGeneric is a plain prompt-plus-image body for providers
	// without structured output support.
	FormatGeneric = "generic"
)

// Image is screenshot bytes with an optional MIME type; when the type
// is empty it is sniffed from the content.
type Image struct {
	Data []byte
	MIME string
}

// ContentType returns the image's MIME type, detecting it when unset.
func (i *Image) ContentType() string {
	if i.MIME != "" {
		return i.MIME
	}
	return mimetype.Detect(i.Data).String()
}

func (i *Image) dataURL() string {
	return "data:" + i.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

func buildRequest(model, format, prompt string, img *Image) map[string]any {
	if format == FormatGeneric {
		return genericRequest(prompt, img)
	}
	return schemaRequest(model, prompt, img)
}

// schemaRequest builds the structured-output body: one user turn with
// the image first, then the prompt, temperature pinned to zero, and
// the analysis schema attached under text.format.
func schemaRequest(model, prompt string, img *Image) map[string]any {
	content := []map[string]any{}
	if img != nil {
		content = append(content, map[string]any{
			"type":      "input_image",
			"image_url": img.dataURL(),
		})
	}
	content = append(content, map[string]any{
		"type": "input_text",
		"text": prompt,
	})

	return map[string]any{
		"model": model,
		"input": []map[string]any{
			{"role": "user", "content": content},
		},
		"temperature": 0,
		"text": map[string]any{
			"format": map[string]any{
				"type":   "json_schema",
				"name":   schema.Name,
				"schema": schema.JSONSchema(),
			},
		},
	}
}

func genericRequest(prompt string, img *Image) map[string]any {
	body := map[string]any{"prompt": prompt}
	if img != nil {
		body["image"] = map[string]any{
			"mime":   img.ContentType(),
			"base64": base64.StdEncoding.EncodeToString(img.Data),
		}
	}
	return body
}
