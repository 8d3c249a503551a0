package handler

import (
	"encoding/json"
	"net/http"

	"contentrec/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(s *service.VoteService) *VoteHandler { return &VoteHandler{svc: s} }

type voteRequest struct {
	ContentID  int `json:"contentId"`
	CategoryID int `json:"categoryId"`
	Vote       int `json:"vote"` // -1 | 0 | 1
}

// @Summary Votar una categoría de un contenido
// @Tags votes
// @Security BearerAuth
// @Accept json
// @Param body body voteRequest true "voto"
// @Success 204
// @Router /me/category-votes [post]
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	if err := h.svc.Cast(r.Context(), req.ContentID, req.CategoryID, userID, req.Vote); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
