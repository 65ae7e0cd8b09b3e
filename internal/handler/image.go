package handler

import (
	"net/http"

	"github.com/mementoapp/memento/internal/ctxkeys"
	"github.com/mementoapp/memento/internal/model"
	"github.com/mementoapp/memento/internal/respond"
	"github.com/mementoapp/memento/internal/service"
)

type createImageRequest struct {
	AlbumID   string   `json:"album_id" validate:"required"`
	ImageURL  string   `json:"image_url" validate:"required,url,max=2048"`
	Caption   *string  `json:"caption" validate:"omitnil,max=2000"`
	Latitude  *float64 `json:"latitude" validate:"omitnil,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitnil,longitude"`
}

type updateImageRequest struct {
	Caption   *string  `json:"caption" validate:"omitnil,max=2000"`
	ImageURL  *string  `json:"image_url" validate:"omitnil,url,max=2048"`
	Latitude  *float64 `json:"latitude" validate:"omitnil,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitnil,longitude"`
}

type ImageHandler struct {
	imageService *service.ImageService
}

func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

func (h *ImageHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createImageRequest
	err := decode(w, r, &req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	image, err := h.imageService.Create(r.Context(), user.ID, service.NewImage{
		AlbumID:   req.AlbumID,
		ImageURL:  req.ImageURL,
		Caption:   req.Caption,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, image)
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	image, err := h.imageService.Image(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, image)
}

func (h *ImageHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateImageRequest
	err := decode(w, r, &req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	image, err := h.imageService.Update(r.Context(), user.ID, r.PathValue("id"), model.ImagePatch{
		Caption:   req.Caption,
		ImageURL:  req.ImageURL,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, image)
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.imageService.Delete(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.NoContent(w)
}

func (h *ImageHandler) AlbumImages(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	images, err := h.imageService.AlbumImages(r.Context(), user.ID, r.PathValue("album_id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, images)
}
