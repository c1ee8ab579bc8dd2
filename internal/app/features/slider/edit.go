// internal/app/features/slider/edit.go
package slider

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/estatehub/internal/app/store/audit"
	sliderstore "github.com/dalemusser/estatehub/internal/app/store/slider"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/ordering"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/storagepath"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// HandleCreate handles POST /slider-images. Without an order the image is
// appended to the end of the slider.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.normalize()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create slider image")
	defer cancel()

	img, err := sliderstore.New(h.DB).Create(ctx, in.model(), in.Order)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create slider image failed", err, "Could not create slider image.")
		return
	}

	h.Log.Info("slider image created", zap.String("image_id", img.ID.Hex()))
	h.AuditLog.Admin(ctx, r, audit.EventSliderImageCreated, img.ID.Hex(), nil)
	respond.Created(w, "Slider image created", img)
}

// HandleUpdate handles PUT /slider-images/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, aerr := imageID(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	var in updateInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.normalize()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}
	set := in.set()
	if len(set) == 0 {
		respond.Error(w, apperr.Invalid("body", "No fields to update."), "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update slider image")
	defer cancel()

	img, err := sliderstore.New(h.DB).Update(ctx, oid, set)
	if err != nil {
		h.ErrLog.Respond(w, r, "slider image", err)
		return
	}

	h.Log.Info("slider image updated", zap.String("image_id", img.ID.Hex()))
	h.AuditLog.Admin(ctx, r, audit.EventSliderImageUpdated, img.ID.Hex(), nil)
	respond.Message(w, "Slider image updated", img)
}

// HandleDelete handles DELETE /slider-images/{id}. When the image was
// uploaded to this server's storage the file is removed as well.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, aerr := imageID(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete slider image")
	defer cancel()

	img, err := sliderstore.New(h.DB).Delete(ctx, oid)
	if err != nil {
		h.ErrLog.Respond(w, r, "slider image", err)
		return
	}
	h.removeFile(ctx, img.ImageURL)

	h.Log.Info("slider image deleted", zap.String("image_id", oid.Hex()))
	h.AuditLog.Admin(ctx, r, audit.EventSliderImageDeleted, oid.Hex(), nil)
	respond.Message(w, "Slider image deleted", nil)
}

// removeFile deletes the stored object behind url, if any. Failures are
// logged; the record is already gone.
func (h *Handler) removeFile(ctx context.Context, url string) {
	if h.Storage == nil {
		return
	}
	p, ok := storagepath.PathFromURL(h.Storage, url)
	if !ok {
		return
	}
	if err := h.Storage.Delete(ctx, p); err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.Log.Warn("slider file cleanup failed", zap.String("path", p), zap.Error(err))
	}
}

// HandleReorder handles PUT /slider-images/reorder {"imageIds":[...]}.
func (h *Handler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var in reorderInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	plan, err := ordering.Plan("imageIds", ordering.HexIDs(in.ImageIDs))
	if err != nil {
		h.ErrLog.Respond(w, r, "slider images", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "reorder slider images")
	defer cancel()

	if err := sliderstore.New(h.DB).Reorder(ctx, plan); err != nil {
		h.ErrLog.Respond(w, r, "slider images", err)
		return
	}

	h.Log.Info("slider images reordered", zap.Int("count", len(plan)))
	h.AuditLog.Admin(ctx, r, audit.EventSliderReordered, "", map[string]string{"count": strconv.Itoa(len(plan))})
	respond.Message(w, "Slider images reordered", nil)
}
