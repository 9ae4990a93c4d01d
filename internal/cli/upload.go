package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/imageplatform/api/internal/image"
)

// UploadOptions defines the options for the `upload` command.
type UploadOptions struct {
	ContentType string
	Out         io.Writer
}

// NewUploadOptions provides an initialised UploadOptions instance.
func NewUploadOptions() *UploadOptions {
	return &UploadOptions{Out: os.Stdout}
}

// NewUploadCommand creates the `upload` command.
func NewUploadCommand(o *UploadOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a local image through the same pipeline as the API",
		Example: `  # Upload and print objectUrl, objectKey and optimizedUrl
  imageplatform upload ./photo.jpg

  # Override the detected content type
  imageplatform upload ./scan --content-type image/png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			return o.Run(ctx, a.images, args[0])
		},
	}

	cmd.Flags().StringVar(&o.ContentType, "content-type", "", "Content type to send (detected from the file when empty)")

	return cmd
}

// Run uploads path with svc and prints the result as JSON.
func (o *UploadOptions) Run(ctx context.Context, svc *image.Service, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	contentType := o.ContentType
	if contentType == "" {
		if contentType, err = detectContentType(path); err != nil {
			return err
		}
	}

	result, err := svc.Upload(ctx, &image.UploadRequest{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}

	enc := json.NewEncoder(o.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// detectContentType prefers the extension and falls back to sniffing the
// first 512 bytes.
func detectContentType(path string) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}
