package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imageplatform/api/internal/image"
	"github.com/imageplatform/api/internal/metrics"
	"github.com/imageplatform/api/internal/storage"
)

func newTestRouter(t *testing.T, opts RouterOptions) (http.Handler, *storage.MemoryStorage) {
	t.Helper()
	mem := storage.NewMemoryStorage("http://objects.local")

	reg := prometheus.NewRegistry()
	obs, err := metrics.NewPrometheusObserver("imageplatform", reg)
	require.NoError(t, err)

	svc := image.NewService(mem, image.Config{
		Bucket:             "images",
		BaseFolder:         "original",
		OptimizerDomain:    "https://img.example.com",
		OptimizerProjectID: "proj",
		OptimizerQuery:     "w=300",
	}, image.WithObserver(obs))

	if opts.AllowedOrigins == nil {
		opts.AllowedOrigins = []string{"*"}
	}
	opts.Gatherer = reg
	opts.Logger = zerolog.Nop()
	return NewRouter(image.NewHandler(svc, 1<<20), opts), mem
}

func uploadRequest(t *testing.T, path, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, RouterOptions{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Image Platform backend is running"}`, rec.Body.String())
}

func TestUploadRoutes(t *testing.T) {
	router, mem := newTestRouter(t, RouterOptions{})

	for _, path := range []string{"/api/images/upload", "/api/images"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, path, "dog.webp", "image/webp", []byte("webp")))
		require.Equal(t, http.StatusOK, rec.Code, path)

		var got image.UploadResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, strings.HasPrefix(got.ObjectKey, "original/"), got.ObjectKey)
		assert.True(t, strings.HasSuffix(got.ObjectKey, ".webp"), got.ObjectKey)
		assert.Equal(t, "http://objects.local/images/"+got.ObjectKey, got.ObjectURL)
		assert.Equal(t, "https://img.example.com/proj/"+got.ObjectKey+"?w=300", got.OptimizedURL)
	}
	assert.Equal(t, 2, mem.Len())
}

func TestUploadRejectsText(t *testing.T) {
	router, mem := newTestRouter(t, RouterOptions{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/api/images/upload", "photo.jpg", "text/plain", []byte("hello")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"not an image"}`, rec.Body.String())
	assert.Zero(t, mem.Len())
}

func TestUploadRateLimited(t *testing.T) {
	router, _ := newTestRouter(t, RouterOptions{RateLimitRPS: 0.001, RateLimitBurst: 1})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, uploadRequest(t, "/api/images/upload", "a.png", "image/png", []byte("a")))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, uploadRequest(t, "/api/images/upload", "b.png", "image/png", []byte("b")))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	health := httptest.NewRecorder()
	router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t, RouterOptions{})

	req := httptest.NewRequest(http.MethodOptions, "/api/images/upload", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, RouterOptions{})

	up := httptest.NewRecorder()
	router.ServeHTTP(up, uploadRequest(t, "/api/images/upload", "a.png", "image/png", []byte("abc")))
	require.Equal(t, http.StatusOK, up.Code)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "imageplatform_uploaded_bytes_total 3")
}
