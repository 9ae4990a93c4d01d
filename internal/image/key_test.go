package image

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"photo.jpg", ".jpg"},
		{"archive.tar.gz", ".gz"},
		{"photo", ""},
		{"", ""},
		{"photo.", "."},
		{".hidden", ".hidden"},
		{"dir.v2/photo", ".v2/photo"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.filename))
		})
	}
}

func TestObjectKey(t *testing.T) {
	day := time.Date(2025, time.November, 20, 23, 59, 0, 0, time.Local)
	id := "0f8c2a5e-3b1d-4c1e-9a57-6b2f7c0d9e41"

	assert.Equal(t, "original/2025/11/20/"+id+".jpg", ObjectKey("original", day, id, "photo.jpg"))
	assert.Equal(t, "original/2025/11/20/"+id, ObjectKey("original", day, id, "photo"))
	assert.Equal(t, "original/2025/11/20/"+id+".", ObjectKey("original", day, id, "photo."))

	january := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "thumbs/2026/01/05/"+id+".png", ObjectKey("thumbs", january, id, "a.png"))
}

func TestOptimizerURL(t *testing.T) {
	got := OptimizerURL("https://img.example.com", "proj42", "original/2025/11/20/x.jpg", "type=f&w=300&h=300")
	assert.Equal(t, "https://img.example.com/proj42/original/2025/11/20/x.jpg?type=f&w=300&h=300", got)
}
