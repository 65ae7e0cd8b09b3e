package handler

import (
	"net/http"

	"github.com/mementoapp/memento/internal/ctxkeys"
	"github.com/mementoapp/memento/internal/respond"
	"github.com/mementoapp/memento/internal/service"
)

type createAlbumRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

type updateAlbumRequest struct {
	Name *string `json:"name" validate:"omitnil,notblank,max=100"`
}

type addMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type AlbumHandler struct {
	albumService *service.AlbumService
}

func NewAlbumHandler(albumService *service.AlbumService) *AlbumHandler {
	return &AlbumHandler{
		albumService: albumService,
	}
}

func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createAlbumRequest
	err := decode(w, r, &req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	album, err := h.albumService.Create(r.Context(), user.ID, req.Name)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, album)
}

func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	albums, err := h.albumService.Albums(r.Context(), user.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, albums)
}

func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	album, err := h.albumService.Album(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, album)
}

func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateAlbumRequest
	err := decode(w, r, &req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	album, err := h.albumService.Update(r.Context(), user.ID, r.PathValue("id"), req.Name)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, album)
}

func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.albumService.Delete(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.NoContent(w)
}

func (h *AlbumHandler) Members(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	members, err := h.albumService.Members(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, members)
}

func (h *AlbumHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req addMemberRequest
	err := decode(w, r, &req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	member, err := h.albumService.AddMember(r.Context(), user.ID, r.PathValue("id"), req.UserID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, member)
}

func (h *AlbumHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.albumService.RemoveMember(r.Context(), user.ID, r.PathValue("id"), r.PathValue("user_id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.NoContent(w)
}
