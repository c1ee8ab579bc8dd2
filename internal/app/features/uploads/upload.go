// internal/app/features/uploads/upload.go
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/storagepath"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	folderImages = "images"
	folderSlider = "slider"

	formField = "image"

	// multipartOverhead leaves room for boundaries and part headers on
	// top of the file itself.
	multipartOverhead = 64 << 10
)

// folders are searched in this order when deleting by filename.
var folders = []string{folderImages, folderSlider}

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Result describes a stored upload.
type Result struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

func (h *Handler) tooLarge() *apperr.Error {
	return apperr.PayloadTooLarge(fmt.Sprintf("File is too large. Maximum size is %s.", humanBytes(h.MaxBytes)))
}

// uploadTo handles POST /uploads/image and /uploads/slider.
func (h *Handler) uploadTo(folder string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+multipartOverhead)
		if err := r.ParseMultipartForm(h.MaxBytes + multipartOverhead); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
				respond.Error(w, h.tooLarge(), "")
				return
			}
			h.ErrLog.LogBadRequest(w, r, "parse upload failed", err, "Invalid upload. Send multipart/form-data with an image field.")
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		file, header, err := r.FormFile(formField)
		if err != nil {
			respond.Error(w, apperr.Invalid(formField, "No image uploaded."), "")
			return
		}
		defer file.Close()

		if header.Size > h.MaxBytes {
			respond.Error(w, h.tooLarge(), "")
			return
		}
		contentType := detectContentType(file)
		if !allowedTypes[contentType] {
			respond.Error(w, apperr.Invalid(formField, "Only JPEG, PNG, WebP and GIF images are allowed."), "")
			return
		}

		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "store upload")
		defer cancel()

		res, err := h.put(ctx, folder, header.Filename, file, header.Size, contentType)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "store upload failed", err, "Could not store the file.")
			return
		}

		h.Log.Info("file uploaded", zap.String("folder", folder), zap.String("filename", res.Filename), zap.Int64("size", res.Size))
		h.AuditLog.Admin(ctx, r, audit.EventFileUploaded, res.Filename, map[string]string{
			"folder":       folder,
			"content_type": contentType,
			"size":         strconv.FormatInt(res.Size, 10),
		})
		respond.Created(w, "File uploaded", res)
	}
}

// put stores r as folder/<uuid8>-<sanitised name>.
func (h *Handler) put(ctx context.Context, folder, filename string, r io.Reader, size int64, contentType string) (Result, error) {
	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], storagepath.SanitizeFilename(filename))
	p := path.Join(folder, name)

	if err := h.Storage.Put(ctx, p, r, &storage.PutOptions{ContentType: contentType}); err != nil {
		return Result{}, fmt.Errorf("put %s: %w", p, err)
	}
	return Result{
		URL:         h.Storage.URL(p),
		Filename:    name,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// detectContentType sniffs the first 512 bytes and rewinds.
func detectContentType(file io.ReadSeeker) string {
	buf := make([]byte, 512)
	n, _ := io.ReadFull(file, buf)
	_, _ = file.Seek(0, io.SeekStart)
	if n == 0 {
		return "application/octet-stream"
	}
	return http.DetectContentType(buf[:n])
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
