package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"virtual-pet/internal/ports/auth"
)

type ctxKey string

const authKey ctxKey = "auth"

// authState guarda el resultado de verificar el token del request.
type authState struct {
	claims auth.Claims
	err    error
}

// AuthContext:
// - Si viene Bearer token => Verify() y guarda claims (o el error) en el contexto.
// - Si no viene token, el request sigue igual.
// - No corta acá: RequireAuth (o el handler) decide 401/403.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			st := authState{}
			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				st.err = err
			} else {
				st.claims = claims
			}

			ctx := context.WithValue(r.Context(), authKey, st)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth corta con:
// - 401 si no hay token o el usuario del token ya no existe
// - 403 si el token es inválido o expiró
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, ok := r.Context().Value(authKey).(authState)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}
		if st.err != nil {
			if errors.Is(st.err, auth.ErrUnknownSubject) {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			writeError(w, http.StatusForbidden, "Invalid or expired token")
			return
		}
		if strings.TrimSpace(st.claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	st, ok := ctx.Value(authKey).(authState)
	if !ok || st.err != nil {
		return auth.Claims{}, false
	}
	return st.claims, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
