package router

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"virtual-pet/internal/adapters/auth/bcrypthash"
	"virtual-pet/internal/adapters/auth/jwtauth"
	"virtual-pet/internal/adapters/payments/stub"
	"virtual-pet/internal/adapters/storage"
	"virtual-pet/internal/domain/pets"
	"virtual-pet/internal/domain/users"
	"virtual-pet/internal/middleware"
	"virtual-pet/internal/platform/logger"
	"virtual-pet/internal/platform/metrics"
	"virtual-pet/internal/ports/auth"
	"virtual-pet/internal/ports/payments"

	_ "virtual-pet/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Store: si es nil, in-memory (modo dev / tests).
	Store *storage.Store

	// JWT: sin Secret se usa uno aleatorio por proceso (solo dev: los tokens no sobreviven un reinicio).
	JWT jwtauth.Config

	Hasher   auth.PasswordHasher // default bcrypt cost 10
	Payments payments.Authorizer // default stub (aprueba todo)
	Metrics  *metrics.Metrics    // opcional; sin esto no hay /metrics
	Logger   logger.Logger

	FrontendURL string

	// AuthRateLimit en req/s por IP para register/login. 0 = sin límite.
	AuthRateLimit float64
	AuthRateBurst int
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	store := opts.Store
	if store == nil {
		store = storage.NewMemory()
	}

	jwtCfg := opts.JWT
	if len(jwtCfg.Secret) == 0 {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("router: random jwt secret: %w", err)
		}
		jwtCfg.Secret = secret
		log.Warn("JWT secret not configured, using an ephemeral one", nil)
	}

	hasher := opts.Hasher
	if hasher == nil {
		hasher = bcrypthash.New(bcrypthash.DefaultCost)
	}
	authorizer := opts.Payments
	if authorizer == nil {
		authorizer = stub.New(log)
	}

	issuer, err := jwtauth.NewIssuer(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("router: jwt issuer: %w", err)
	}

	// Services por módulo
	petsSvc := pets.NewService(store.Pets, store.Users).WithPayments(authorizer)
	if opts.Metrics != nil {
		petsSvc.WithRecorder(opts.Metrics)
	}
	usersSvc := users.NewService(store.Users, hasher, issuer, petsSvc, log)

	verifier, err := jwtauth.NewVerifier(jwtCfg, usersSvc)
	if err != nil {
		return nil, fmt.Errorf("router: jwt verifier: %w", err)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(cors.Handler(corsOptions(opts.FrontendURL)))

	r.Use(middleware.AuthContext(verifier))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, users.ErrorResponse{Error: "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, users.ErrorResponse{Error: "Method not allowed"})
	})

	r.Get("/health", healthHandler(store))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var limit func(http.Handler) http.Handler
	if opts.AuthRateLimit > 0 {
		limit = middleware.NewRateLimiter(opts.AuthRateLimit, opts.AuthRateBurst, log).Handler
	}

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, limit, log)
	pets.RegisterRoutes(r, petsSvc, log)

	return r, nil
}

func corsOptions(frontendURL string) cors.Options {
	origins := []string{"*"}
	if u := strings.TrimSpace(frontendURL); u != "" {
		origins = []string{strings.TrimRight(u, "/")}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: origins[0] != "*",
		MaxAge:           300,
	}
}

func healthHandler(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
