package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"virtual-pet/internal/middleware"
	"virtual-pet/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /auth/register, /auth/login y /auth/me.
// limit se aplica a register/login (puede ser nil).
func RegisterRoutes(r chi.Router, svc *Service, limit func(http.Handler) http.Handler, log logger.Logger) {
	public := r
	if limit != nil {
		public = r.With(limit)
	}
	public.Post("/auth/register", registerHandler(svc, log))
	public.Post("/auth/login", loginHandler(svc, log))

	r.With(middleware.RequireAuth).Get("/auth/me", meHandler(svc, log))
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse es la vista pública del usuario (sin hash).
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	IsPremium bool   `json:"isPremium"`
	FoodCount int    `json:"foodCount"`
}

type sessionResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type meResponse struct {
	User UserResponse `json:"user"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea el usuario con 10 de comida y su mascota inicial, y devuelve un token.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "username y password"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} ErrorResponse "campos faltantes / usuario existente"
// @Failure 429 {object} ErrorResponse "rate limit"
// @Router /auth/register [post]
func registerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Username and password are required")
			return
		}

		sess, err := svc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "Username and password are required")
			case errors.Is(err, ErrUsernameTaken):
				writeError(w, http.StatusBadRequest, "User already exists")
			default:
				log.Error("registration error", map[string]any{"err": err})
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, sessionResponse{
			Message: "User created successfully",
			Token:   sess.Token,
			User:    ToResponse(sess.User),
		})
	}
}

// loginHandler godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "username y password"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} ErrorResponse "campos faltantes"
// @Failure 401 {object} ErrorResponse "credenciales inválidas"
// @Router /auth/login [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Username and password are required")
			return
		}

		sess, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "Username and password are required")
			case errors.Is(err, ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "Invalid credentials")
			default:
				log.Error("login error", map[string]any{"err": err})
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{
			Message: "Login successful",
			Token:   sess.Token,
			User:    ToResponse(sess.User),
		})
	}
}

// meHandler godoc
// @Summary Usuario actual
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} meResponse
// @Failure 401 {object} ErrorResponse "sin token"
// @Failure 403 {object} ErrorResponse "token inválido"
// @Failure 404 {object} ErrorResponse "usuario inexistente"
// @Router /auth/me [get]
func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := svc.Me(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			log.Error("get user error", map[string]any{"err": err, "user_id": claims.UserID})
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, meResponse{User: ToResponse(u)})
	}
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		IsPremium: u.IsPremium,
		FoodCount: u.FoodCount,
	}
}

// ErrorResponse es el cuerpo de todos los errores.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (users/pets)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
