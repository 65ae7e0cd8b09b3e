package handler

import (
	"net/http"

	"github.com/mementoapp/memento/internal/ctxkeys"
	"github.com/mementoapp/memento/internal/respond"
	"github.com/mementoapp/memento/internal/service"
)

type createAudioRequest struct {
	ImageID string `json:"image_id" validate:"required"`
	URL     string `json:"url" validate:"required,url,max=2048"`
}

type updateAudioRequest struct {
	URL *string `json:"url" validate:"omitnil,url,max=2048"`
}

type AudioHandler struct {
	audioService *service.AudioService
}

func NewAudioHandler(audioService *service.AudioService) *AudioHandler {
	return &AudioHandler{
		audioService: audioService,
	}
}

func (h *AudioHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createAudioRequest
	err := decode(w, r, &req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	audio, err := h.audioService.Create(r.Context(), user.ID, req.ImageID, req.URL)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, audio)
}

func (h *AudioHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	audio, err := h.audioService.Audio(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, audio)
}

func (h *AudioHandler) ByImage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	audio, err := h.audioService.AudioByImage(r.Context(), user.ID, r.PathValue("image_id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, audio)
}

func (h *AudioHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateAudioRequest
	err := decode(w, r, &req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	audio, err := h.audioService.Update(r.Context(), user.ID, r.PathValue("id"), req.URL)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, audio)
}

func (h *AudioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.audioService.Delete(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.NoContent(w)
}
