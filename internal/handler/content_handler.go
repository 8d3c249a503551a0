package handler

import (
	"net/http"
	"strconv"

	"contentrec/internal/service"

	"github.com/go-chi/chi/v5"
)

type ContentHandler struct {
	svc       *service.ContentService
	consensus *service.ConsensusService
}

func NewContentHandler(svc *service.ContentService, consensus *service.ConsensusService) *ContentHandler {
	return &ContentHandler{svc: svc, consensus: consensus}
}

// @Summary Catálogo publicado
// @Tags contents
// @Produce json
// @Success 200 {array} models.ContentDoc
// @Router /contents [get]
func (h *ContentHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	contents, err := h.svc.ListPublished(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, http.StatusOK, contents)
}

// @Summary Detalle de un contenido
// @Tags contents
// @Produce json
// @Param id path int true "contentId"
// @Success 200 {object} map[string]any
// @Router /contents/{id} [get]
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	contentID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	content, err := h.svc.GetByID(r.Context(), contentID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if content == nil {
		http.Error(w, "content not found", 404)
		return
	}

	// el detalle lleva el consenso de categorías, como en la vista clásica
	consensus, err := h.consensus.Consensus(r.Context(), contentID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"content":   content,
		"consensus": consensus,
	})
}

// @Summary Contenido popular
// @Tags contents
// @Produce json
// @Param n query int false "cantidad (máx 50)"
// @Success 200 {array} models.ContentDoc
// @Router /contents/popular [get]
func (h *ContentHandler) Popular(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))

	contents, err := h.svc.Popular(r.Context(), n)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, http.StatusOK, contents)
}

// @Summary Contenido similar por features de texto
// @Tags contents
// @Produce json
// @Param id path int true "contentId"
// @Param n query int false "cantidad (máx 50)"
// @Success 200 {array} models.ContentDoc
// @Router /contents/{id}/similar [get]
func (h *ContentHandler) Similar(w http.ResponseWriter, r *http.Request) {
	contentID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))

	contents, err := h.svc.Similar(r.Context(), contentID, n)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, http.StatusOK, contents)
}

// @Summary Consenso de categorías de un contenido
// @Tags contents
// @Produce json
// @Param id path int true "contentId"
// @Success 200 {object} map[string]float64
// @Router /contents/{id}/consensus [get]
func (h *ContentHandler) Consensus(w http.ResponseWriter, r *http.Request) {
	contentID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	consensus, err := h.consensus.Consensus(r.Context(), contentID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, http.StatusOK, consensus)
}
