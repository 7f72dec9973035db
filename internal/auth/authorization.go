package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/worklink/worklink-backend/internal"
	"github.com/worklink/worklink-backend/internal/principal"
)

// PrincipalDirectory is the existence check used after token verification.
// Tokens can outlive accounts, so every authenticated request re-checks that
// the principal still exists.
type PrincipalDirectory interface {
	Exists(kind, id string) (bool, error)
}

// KindAuthorization guards endpoint groups by principal kind. A verified
// access token is necessary but not sufficient; the kind claim must match
// the group the route belongs to.
type KindAuthorization struct {
	tokens     TokenGeneratorAPI
	principals PrincipalDirectory
	logger     *slog.Logger
}

func NewKindAuthorization(tokens TokenGeneratorAPI, principals PrincipalDirectory, logger *slog.Logger) *KindAuthorization {
	return &KindAuthorization{
		tokens:     tokens,
		principals: principals,
		logger:     logger,
	}
}

func (ka *KindAuthorization) RequireUser() func(http.Handler) http.Handler {
	return ka.requireKind(principal.KindUser)
}

func (ka *KindAuthorization) RequireEmployer() func(http.Handler) http.Handler {
	return ka.requireKind(principal.KindEmployer)
}

func (ka *KindAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ka.requireKind(principal.KindAdmin)
}

func (ka *KindAuthorization) requireKind(kind string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := ka.tokens.ValidateToken(token)
			if err != nil {
				ka.logger.WarnContext(r.Context(), "token validation failed", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Refresh tokens are only good for the refresh endpoint.
			if claims.TokenKind == TokenKindRefresh {
				ka.logger.WarnContext(r.Context(), "refresh token used as access token", "principal_id", claims.PrincipalID)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if claims.Kind != kind {
				ka.logger.WarnContext(r.Context(), "access denied: wrong principal kind",
					"principal_id", claims.PrincipalID,
					"token_kind", claims.Kind,
					"required_kind", kind)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			exists, err := ka.principals.Exists(claims.Kind, claims.PrincipalID)
			if err != nil {
				ka.logger.ErrorContext(r.Context(), "principal lookup failed", "error", err, "principal_id", claims.PrincipalID)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if !exists {
				ka.logger.WarnContext(r.Context(), "token for deleted principal", "principal_id", claims.PrincipalID, "kind", claims.Kind)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := internal.ContextWithPrincipal(r.Context(), &internal.Principal{
				ID:   claims.PrincipalID,
				Kind: claims.Kind,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
