// internal/app/features/uploads/delete.go
package uploads

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/storagepath"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /uploads/{filename}. The name is the one
// returned by the upload; whichever folder holds it loses it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "filename"))
	if err != nil || name == "" || strings.HasPrefix(name, ".") || storagepath.SanitizeFilename(name) != name {
		respond.Error(w, apperr.Invalid("filename", "Invalid filename."), "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete upload")
	defer cancel()

	for _, folder := range folders {
		p := path.Join(folder, name)
		ok, err := h.Storage.Exists(ctx, p)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "stat upload failed", err, "Could not delete the file.")
			return
		}
		if !ok {
			continue
		}
		if err := h.Storage.Delete(ctx, p); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respond.Error(w, apperr.NotFound("file"), "")
				return
			}
			h.ErrLog.LogServerError(w, r, "delete upload failed", err, "Could not delete the file.")
			return
		}

		h.Log.Info("file deleted", zap.String("path", p))
		h.AuditLog.Admin(ctx, r, audit.EventFileDeleted, name, map[string]string{"folder": folder})
		respond.Message(w, "File deleted", nil)
		return
	}

	respond.Error(w, apperr.NotFound("file"), "")
}
