package handler

import (
	"encoding/json"
	"net/http"

	"contentrec/internal/models"
	"contentrec/internal/service"

	"github.com/go-chi/chi/v5"
)

// AdminMaintenanceHandler expone endpoints de mantenimiento del motor.
type AdminMaintenanceHandler struct {
	svc *service.AdminMaintenanceService
}

func NewAdminMaintenanceHandler(svc *service.AdminMaintenanceService) *AdminMaintenanceHandler {
	return &AdminMaintenanceHandler{svc: svc}
}

// MountAdminMaintenanceRoutes registra las rutas bajo /admin/maintenance.
func MountAdminMaintenanceRoutes(r chi.Router, h *AdminMaintenanceHandler) {
	r.Route("/admin/maintenance", func(r chi.Router) {
		r.Get("/engine/summary", h.GetSummary)
		r.Post("/recommendations/rebuild", h.Rebuild)
	})
}

// @Summary Resumen de estado del motor
// @Description Conteos de contenidos publicados, interacciones y usuarios con señal.
// @Tags admin-maintenance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.AdminEngineSummary
// @Failure 500 {string} string "error interno"
// @Router /admin/maintenance/engine/summary [get]
func (h *AdminMaintenanceHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.GetEngineSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// @Summary Recalcular recomendaciones cacheadas
// @Description Delega el recálculo al refresher; body vacío = todos los usuarios.
// @Tags admin-maintenance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.RebuildRecommendationsRequest false "alcance del rebuild"
// @Success 200 {object} cluster.RefreshResult
// @Failure 502 {string} string "refresher no disponible"
// @Router /admin/maintenance/recommendations/rebuild [post]
func (h *AdminMaintenanceHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	var req models.RebuildRecommendationsRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	res, err := h.svc.RebuildRecommendations(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
