package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallUnavailableWithoutEndpoint(t *testing.T) {
	c := NewClient(Config{})

	_, err := c.Call(context.Background(), "prompt", nil, CallOptions{})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCallSchemaFormat(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"output_text":"{\"page_intent\":\"x\",\"sections\":[]}"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Model: "vision-1", Format: FormatSchema})
	out, err := c.Call(context.Background(), "analyze this", &Image{Data: pngBytes(), MIME: "image/png"}, CallOptions{})

	require.NoError(t, err)
	assert.Equal(t, `{"page_intent":"x","sections":[]}`, out)

	assert.Equal(t, "vision-1", got["model"])
	assert.EqualValues(t, 0, got["temperature"])

	input := got["input"].([]any)
	require.Len(t, input, 1)
	turn := input[0].(map[string]any)
	assert.Equal(t, "user", turn["role"])
	content := turn["content"].([]any)
	require.Len(t, content, 2)
	assert.Equal(t, "input_image", content[0].(map[string]any)["type"])
	assert.Equal(t, "input_text", content[1].(map[string]any)["type"])

	format := got["text"].(map[string]any)["format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "WebsiteAnalysisSchema", format["name"])
	assert.NotNil(t, format["schema"])
}

func TestCallGenericFormat(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"output_text":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Format: FormatGeneric})
	_, err := c.Call(context.Background(), "describe", &Image{Data: pngBytes()}, CallOptions{})

	require.NoError(t, err)
	assert.Equal(t, "describe", got["prompt"])
	img := got["image"].(map[string]any)
	assert.Equal(t, "image/png", img["mime"])
	assert.NotEmpty(t, img["base64"])
}

func TestCallUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	_, err := c.Call(context.Background(), "p", nil, CallOptions{})

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
	assert.Contains(t, upstream.Payload, "rate limited")
}

func TestCallTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	_, err := c.Call(context.Background(), "p", nil, CallOptions{Timeout: 20 * time.Millisecond})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCallOptionOverridesModel(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"output_text":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Model: "default-model"})
	_, err := c.Call(context.Background(), "p", nil, CallOptions{Model: "override"})

	require.NoError(t, err)
	assert.Equal(t, "override", got["model"])
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"top-level output_text",
			`{"output_text":"hello"}`,
			"hello",
		},
		{
			"output content part",
			`{"output":[{"content":[{"type":"output_text","text":"parts"}]}]}`,
			"parts",
		},
		{
			"output_text wins over earlier text field",
			`{"output":[{"content":[{"type":"reasoning","text":"skip"},{"type":"output_text","text":"keep"}]}]}`,
			"keep",
		},
		{
			"fallback to any text field",
			`{"output":[{"content":[{"type":"message","text":"fallback"}]}]}`,
			"fallback",
		},
		{
			"unknown shape returns body",
			`{"choices":[{"message":"x"}]}`,
			`{"choices":[{"message":"x"}]}`,
		},
		{
			"non-json body returns body",
			`plain text answer`,
			`plain text answer`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText([]byte(tt.body)))
		})
	}
}

func TestImageContentTypeSniffing(t *testing.T) {
	img := &Image{Data: pngBytes()}

	assert.Equal(t, "image/png", img.ContentType())
}

func TestUpstreamErrorUnwrapsNowhere(t *testing.T) {
	err := error(&UpstreamError{Status: 502, Payload: "bad"})

	assert.False(t, errors.Is(err, ErrTimeout))
	assert.Contains(t, err.Error(), "502")
}

// pngBytes returns a minimal PNG header, enough for MIME sniffing.
func pngBytes() []byte {
	return []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
}
