package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imageplatform/api/internal/image"
	"github.com/imageplatform/api/internal/storage"
)

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadCommandRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	mem := storage.NewMemoryStorage("http://objects.local")
	svc := image.NewService(mem, image.Config{Bucket: "images", BaseFolder: "original", OptimizerDomain: "https://img", OptimizerProjectID: "p", OptimizerQuery: "w=1"})

	var out bytes.Buffer
	o := &UploadOptions{Out: &out}
	require.NoError(t, o.Run(context.Background(), svc, path))

	var got image.UploadResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Regexp(t, `^original/\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}\.png$`, got.ObjectKey)

	obj, ok := mem.Object("images", got.ObjectKey)
	require.True(t, ok)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, pngHeader, obj.Data)
}

func TestUploadCommandRejectsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	mem := storage.NewMemoryStorage("")
	svc := image.NewService(mem, image.Config{Bucket: "images", BaseFolder: "original"})

	err := (&UploadOptions{Out: &bytes.Buffer{}}).Run(context.Background(), svc, path)
	require.ErrorIs(t, err, image.ErrInvalidInput)
	assert.Zero(t, mem.Len())
}

func TestDetectContentTypeSniffs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	ct, err := detectContentType(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCommand()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "upload")
}
