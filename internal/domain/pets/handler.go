package pets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"virtual-pet/internal/domain/users"
	"virtual-pet/internal/middleware"
	"virtual-pet/internal/platform/logger"
	"virtual-pet/internal/ports/payments"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /pet/* y las acciones de cuenta que mutan plan o comida
// (/auth/upgrade, /auth/downgrade, /auth/purchase-food). Todas requieren token.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/pet", func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Get("/", getPetHandler(svc, log))
		pr.Post("/eat", eatHandler(svc, log))
		pr.Post("/play", playHandler(svc, log))
		pr.Post("/study", studyHandler(svc, log))
		pr.Put("/name", renameHandler(svc, log))
		pr.Put("/appearance", appearanceHandler(svc, log))
		pr.Post("/reset", resetHandler(svc, log))
	})

	ar := r.With(middleware.RequireAuth)
	ar.Post("/auth/upgrade", upgradeHandler(svc, log))
	ar.Post("/auth/downgrade", downgradeHandler(svc, log))
	ar.Post("/auth/purchase-food", purchaseFoodHandler(svc, log))
}

type petResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Happiness    int     `json:"happiness"`
	Energy       int     `json:"energy"`
	Intelligence int     `json:"intelligence"`
	PetType      PetType `json:"petType"`
	Color        Color   `json:"color"`
	UserID       string  `json:"userId"`
}

type changesResponse struct {
	Happiness    int `json:"happiness"`
	Energy       int `json:"energy"`
	Intelligence int `json:"intelligence"`
}

type getPetResponse struct {
	Pet petResponse `json:"pet"`
}

// actionResponse cubre eat/play/study/reset/name/appearance; user y changes son opcionales.
type actionResponse struct {
	Message string              `json:"message"`
	Pet     *petResponse        `json:"pet,omitempty"`
	User    *users.UserResponse `json:"user,omitempty"`
	Changes *changesResponse    `json:"changes,omitempty"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type appearanceRequest struct {
	PetType *string `json:"petType"`
	Color   *string `json:"color"`
}

type purchaseFoodRequest struct {
	Amount int     `json:"amount"`
	Price  float64 `json:"price"`
}

// getPetHandler godoc
// @Summary Ver mi mascota
// @Tags pet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} getPetResponse
// @Failure 401 {object} users.ErrorResponse "sin token"
// @Failure 404 {object} users.ErrorResponse "pet not found"
// @Router /pet [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, log, "get pet", claims.UserID, err)
			return
		}
		writeJSON(w, http.StatusOK, getPetResponse{Pet: toPetResponse(p)})
	}
}

// eatHandler godoc
// @Summary Comer
// @Description Consume 1 de comida: energy +12, happiness +3, intelligence -4 (clamp 0..100). Requiere intelligence >= 4.
// @Tags pet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} actionResponse
// @Failure 400 {object} users.ErrorResponse "sin comida / sin inteligencia"
// @Router /pet/eat [post]
func eatHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		out, err := svc.Eat(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, log, "eat", claims.UserID, err)
			return
		}

		msg := "Pet ate successfully!"
		if out.User.IsPremium {
			msg = "Pet ate premium food!"
		}
		writeJSON(w, http.StatusOK, withChanges(msg, out, true))
	}
}

// playHandler godoc
// @Summary Jugar (premium)
// @Description happiness +15, intelligence +10, energy -5. Requiere premium y energy >= 5.
// @Tags pet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} actionResponse
// @Failure 400 {object} users.ErrorResponse "sin energía"
// @Failure 403 {object} users.ErrorResponse "premium requerido"
// @Router /pet/play [post]
func playHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		out, err := svc.Play(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, log, "play", claims.UserID, err)
			return
		}
		writeJSON(w, http.StatusOK, withChanges("Played with pet!", out, false))
	}
}

// studyHandler godoc
// @Summary Estudiar (premium)
// @Description intelligence +18, happiness +8, energy -6. Requiere premium y energy >= 6.
// @Tags pet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} actionResponse
// @Failure 400 {object} users.ErrorResponse "sin energía"
// @Failure 403 {object} users.ErrorResponse "premium requerido"
// @Router /pet/study [post]
func studyHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		out, err := svc.Study(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, log, "study", claims.UserID, err)
			return
		}
		writeJSON(w, http.StatusOK, withChanges("Studied with pet!", out, false))
	}
}

// renameHandler godoc
// @Summary Cambiar nombre
// @Tags pet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body renameRequest true "nombre nuevo"
// @Success 200 {object} actionResponse
// @Failure 400 {object} users.ErrorResponse "nombre vacío"
// @Router /pet/name [put]
func renameHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req renameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Pet name is required")
			return
		}

		out, err := svc.Rename(r.Context(), claims.UserID, req.Name)
		if err != nil {
			writeServiceError(w, log, "rename", claims.UserID, err)
			return
		}
		p := toPetResponse(out.Pet)
		writeJSON(w, http.StatusOK, actionResponse{Message: "Pet name updated!", Pet: &p})
	}
}

// appearanceHandler godoc
// @Summary Cambiar apariencia
// @Description rabbit/dragon y cualquier color distinto de orange requieren premium.
// @Tags pet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body appearanceRequest true "petType y/o color"
// @Success 200 {object} actionResponse
// @Failure 400 {object} users.ErrorResponse "valor inválido"
// @Failure 403 {object} users.ErrorResponse "premium requerido"
// @Router /pet/appearance [put]
func appearanceHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req appearanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Pet type or color is required")
			return
		}

		change := AppearanceChange{Type: req.PetType, Color: req.Color}
		out, err := svc.UpdateAppearance(r.Context(), claims.UserID, change)
		if err != nil {
			writeServiceError(w, log, "appearance", claims.UserID, err)
			return
		}

		_, typeSet := trimmed(change.Type)
		_, colorSet := trimmed(change.Color)
		msg := "Pet appearance updated!"
		switch {
		case typeSet && !colorSet:
			msg = "Pet emoji updated!"
		case colorSet && !typeSet:
			msg = "Pet color updated!"
		}

		p := toPetResponse(out.Pet)
		writeJSON(w, http.StatusOK, actionResponse{Message: msg, Pet: &p})
	}
}

// resetHandler godoc
// @Summary Reset (testing)
// @Description Stats a 50 y comida a 10.
// @Tags pet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} actionResponse
// @Router /pet/reset [post]
func resetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		out, err := svc.Reset(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, log, "reset", claims.UserID, err)
			return
		}

		p := toPetResponse(out.Pet)
		u := users.ToResponse(out.User)
		writeJSON(w, http.StatusOK, actionResponse{
			Message: "Pet stats and food count reset successfully!",
			Pet:     &p,
			User:    &u,
		})
	}
}

// upgradeHandler godoc
// @Summary Pasar a premium (testing)
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} actionResponse
// @Router /auth/upgrade [post]
func upgradeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		out, err := svc.Upgrade(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, log, "upgrade", claims.UserID, err)
			return
		}
		u := users.ToResponse(out.User)
		writeJSON(w, http.StatusOK, actionResponse{Message: "Successfully upgraded to premium!", User: &u})
	}
}

// downgradeHandler godoc
// @Summary Volver a free (testing)
// @Description Si la mascota es rabbit/dragon vuelve a cat; el color no cambia.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} actionResponse
// @Router /auth/downgrade [post]
func downgradeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		out, err := svc.Downgrade(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, log, "downgrade", claims.UserID, err)
			return
		}

		u := users.ToResponse(out.User)
		resp := actionResponse{Message: "Successfully downgraded to free!", User: &u}
		if out.Pet.ID != "" {
			p := toPetResponse(out.Pet)
			resp.Pet = &p
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// purchaseFoodHandler godoc
// @Summary Comprar comida
// @Description amount y price deben ser positivos. El cobro pasa por el autorizador de pagos.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body purchaseFoodRequest true "cantidad y precio"
// @Success 200 {object} actionResponse
// @Failure 400 {object} users.ErrorResponse "amount/price inválidos o tope de comida"
// @Failure 402 {object} users.ErrorResponse "pago rechazado"
// @Router /auth/purchase-food [post]
func purchaseFoodHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req purchaseFoodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Amount and price must be positive")
			return
		}

		out, err := svc.PurchaseFood(r.Context(), claims.UserID, req.Amount, req.Price)
		if err != nil {
			writeServiceError(w, log, "purchase food", claims.UserID, err)
			return
		}

		u := users.ToResponse(out.User)
		writeJSON(w, http.StatusOK, actionResponse{
			Message: fmt.Sprintf("Successfully purchased %d food!", req.Amount),
			User:    &u,
		})
	}
}

func withChanges(msg string, out Outcome, includeUser bool) actionResponse {
	p := toPetResponse(out.Pet)
	c := changesResponse{
		Happiness:    out.Changes.Happiness,
		Energy:       out.Changes.Energy,
		Intelligence: out.Changes.Intelligence,
	}
	resp := actionResponse{Message: msg, Pet: &p, Changes: &c}
	if includeUser {
		u := users.ToResponse(out.User)
		resp.User = &u
	}
	return resp
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:           p.ID,
		Name:         p.Name,
		Happiness:    p.Happiness,
		Energy:       p.Energy,
		Intelligence: p.Intelligence,
		PetType:      p.Type,
		Color:        p.Color,
		UserID:       p.UserID,
	}
}

// statusFor mapea la razón del rechazo al status HTTP.
func statusFor(reason Reason) int {
	switch reason {
	case ReasonNotFound:
		return http.StatusNotFound
	case ReasonPremiumRequired:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// writeServiceError: rechazos con su mensaje; fallos inesperados como 500 genérico
// (la causa solo va al log).
func writeServiceError(w http.ResponseWriter, log logger.Logger, op, userID string, err error) {
	var rej *Rejection
	switch {
	case errors.As(err, &rej):
		writeError(w, statusFor(rej.Reason), rej.Message)
	case errors.Is(err, payments.ErrDeclined):
		writeError(w, http.StatusPaymentRequired, "Payment declined")
	default:
		log.Error(op+" error", map[string]any{"err": err, "user_id": userID})
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (users/pets)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, users.ErrorResponse{Error: msg})
}
