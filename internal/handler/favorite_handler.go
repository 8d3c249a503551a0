package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"contentrec/internal/service"

	"github.com/go-chi/chi/v5"
)

type FavoriteHandler struct {
	svc *service.FavoriteService
}

func NewFavoriteHandler(s *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: s}
}

type favoriteRequest struct {
	ContentID int `json:"contentId"`
}

// @Summary Marcar favorito
// @Tags favorites
// @Security BearerAuth
// @Accept json
// @Param body body favoriteRequest true "favorito"
// @Success 204
// @Router /me/favorites [post]
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	if err := h.svc.Add(r.Context(), userID, req.ContentID); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Quitar favorito
// @Tags favorites
// @Security BearerAuth
// @Param id path int true "contentId"
// @Success 204
// @Router /me/favorites/{id} [delete]
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	contentID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	if err := h.svc.Remove(r.Context(), userID, contentID); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Favoritos del usuario autenticado
// @Tags favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.FavoriteDoc
// @Router /me/favorites [get]
func (h *FavoriteHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	list, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
