package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()

	assert.Equal(t, DefaultWidth, o.Width)
	assert.Equal(t, DefaultHeight, o.Height)
	assert.Equal(t, "png", o.ImageType)
	assert.Equal(t, DefaultQuality, o.Quality)
	assert.Equal(t, "image/png", o.mime())
}

func TestOptionsJPEG(t *testing.T) {
	o := Options{ImageType: "jpeg", Quality: 50}.withDefaults()

	assert.Equal(t, "jpeg", o.ImageType)
	assert.Equal(t, 50, o.Quality)
	assert.Equal(t, "image/jpeg", o.mime())
}

func TestOptionsUnknownImageTypeFallsBackToPNG(t *testing.T) {
	o := Options{ImageType: "webp"}.withDefaults()

	assert.Equal(t, "png", o.ImageType)
}

func TestStaticRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sitelens-test", r.Header.Get("User-Agent"))
		w.Write([]byte("<html><body>static page</body></html>"))
	}))
	defer srv.Close()

	s := NewStatic(5*time.Second, "sitelens-test")
	html, err := s.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "static page")
}

func TestStaticRenderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewStatic(5*time.Second, "").Render(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestStaticScreenshotUnsupported(t *testing.T) {
	_, _, err := NewStatic(0, "").Screenshot(context.Background(), "https://example.com", Options{})

	assert.ErrorIs(t, err, ErrScreenshotUnsupported)
}
