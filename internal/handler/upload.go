package handler

import (
	"net/http"

	"github.com/mementoapp/memento/internal/ctxkeys"
	"github.com/mementoapp/memento/internal/metrics"
	"github.com/mementoapp/memento/internal/model"
	"github.com/mementoapp/memento/internal/respond"
	"github.com/mementoapp/memento/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

func (h *UploadHandler) ImageSignature(w http.ResponseWriter, r *http.Request) {
	h.signature(w, r, model.UploadKindImage)
}

func (h *UploadHandler) AudioSignature(w http.ResponseWriter, r *http.Request) {
	h.signature(w, r, model.UploadKindAudio)
}

func (h *UploadHandler) signature(w http.ResponseWriter, r *http.Request, kind string) {
	user := ctxkeys.User(r.Context())

	signature, err := h.uploadService.Signature(r.Context(), user.ID, kind)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	metrics.RecordUploadSignature(kind)
	respond.JSON(w, http.StatusOK, signature)
}
