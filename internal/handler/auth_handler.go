package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"contentrec/internal/service"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler { return &AuthHandler{svc: s} }

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Username string `json:"username,omitempty"`
	About    string `json:"about,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Registro de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "datos de registro"
// @Success 201 {object} models.UserDoc
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email y password son obligatorios", 400)
		return
	}

	u, err := h.svc.Register(r.Context(), service.RegisterUserData{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Username: req.Username,
		About:    req.About,
	})
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credenciales"
// @Success 200 {object} map[string]any
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	token, u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  u,
	})
}

type updateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
	Username *string `json:"username,omitempty"`
	About    *string `json:"about,omitempty"`
}

// @Summary Actualizar usuario (admin)
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Param id path int true "userId"
// @Param body body updateUserRequest true "campos a actualizar"
// @Success 204
// @Router /users/{id}/update [put]
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	err := h.svc.UpdateUser(r.Context(), userID, service.UpdateUserData{
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
		Username: req.Username,
		About:    req.About,
	})
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Perfil del usuario autenticado
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.UserDoc
// @Router /me/profile [get]
func (h *AuthHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	u, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if u == nil {
		http.Error(w, "user not found", 404)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// @Summary Info de un usuario por id (admin)
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId"
// @Success 200 {object} models.UserDoc
// @Router /users/{id} [get]
func (h *AuthHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	u, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if u == nil {
		http.Error(w, "user not found", 404)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// @Summary Listar usuarios (admin)
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Param role query string false "user|admin"
// @Param q query string false "búsqueda por email/username"
// @Router /users [get]
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	q := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 50
	}

	users, err := h.svc.ListUsers(r.Context(), role, q, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
