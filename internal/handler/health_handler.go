package handler

import (
	"net/http"
	"time"
)

// @Summary Healthcheck
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "contentrec-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
