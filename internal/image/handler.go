package image

import (
	"errors"
	"io"
	"net/http"

	"github.com/imageplatform/api/internal/response"
)

// formField is the multipart field carrying the image.
const formField = "file"

// multipartMemory is how much of the form is kept in memory before spilling
// file parts to temporary files.
const multipartMemory = 8 << 20

// Handler holds HTTP handlers for image endpoints.
type Handler struct {
	svc      *Service
	maxBytes int64
}

// NewHandler creates a new image Handler. maxBytes caps the whole request body.
func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// Upload godoc
//
//	@Summary		Upload image
//	@Description	Stores one image in object storage and returns its public URL, object key, and image optimizer URL.
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Image file (content type image/*)"
//	@Success		200		{object}	UploadResult
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		413		{object}	response.ErrorBody
//	@Failure		429		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/images/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(w, "file too large")
			return
		}
		response.BadRequest(w, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	var req *UploadRequest
	if files := r.MultipartForm.File[formField]; len(files) > 0 {
		fh := files[0]
		req = &UploadRequest{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		}
	}

	result, err := h.svc.Upload(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "failed to store image")
		return
	}

	response.OK(w, result)
}
