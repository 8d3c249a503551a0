package handler

import (
	"net/http"
	"strconv"
	"time"

	"contentrec/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

// @Summary Recomendaciones para un usuario (admin)
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId"
// @Param k query int false "cantidad de recomendaciones (máx 50)"
// @Param refresh query bool false "si true, purga el caché y reentrena"
// @Success 200 {array} models.RecItem
// @Router /users/{id}/recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	h.serve(w, r, userID)
}

// @Summary Recomendaciones del usuario autenticado
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param k query int false "cantidad de recomendaciones (máx 50)"
// @Param refresh query bool false "si true, purga el caché y reentrena"
// @Success 200 {array} models.RecItem
// @Router /me/recommendations [get]
func (h *RecommendHandler) GetMyRecommendations(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, UserIDFromContext(r.Context()))
}

func (h *RecommendHandler) serve(w http.ResponseWriter, r *http.Request, userID int) {
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	refresh := r.URL.Query().Get("refresh") == "true"

	items, err := h.svc.Recommend(r.Context(), service.RecRequest{
		UserID:  userID,
		K:       k,
		Refresh: refresh,
	})
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// @Summary Historial de recomendaciones del usuario autenticado
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param limit query int false "cantidad máxima (defecto 20)"
// @Success 200 {array} models.Recommendation
// @Router /me/recommendations/history [get]
func (h *RecommendHandler) GetMyHistory(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	recs, err := h.svc.History(r.Context(), userID, limit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Recomendaciones en tiempo real (WebSocket)
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId"
// @Param k query int false "cantidad de recomendaciones (máx 50)"
// @Param refresh query bool false "si true, purga el caché y reentrena"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/ws/recommendations [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", 400)
		return
	}
	defer conn.Close()

	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	refresh := r.URL.Query().Get("refresh") == "true"

	// Mensaje inicial
	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, iniciando cálculo…",
	})

	// avisos de progreso reales del pipeline (features/matrix/training/inference)
	items, err := h.svc.Recommend(r.Context(), service.RecRequest{
		UserID:  userID,
		K:       k,
		Refresh: refresh,
		OnStage: func(stage string) {
			conn.WriteJSON(map[string]any{
				"type":  "progress",
				"stage": stage,
			})
		},
	})
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	// Mensaje final con recomendaciones
	conn.WriteJSON(map[string]any{
		"type":        "recommendations",
		"userId":      userID,
		"items":       items,
		"generatedAt": time.Now(),
	})
}
