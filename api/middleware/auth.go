package middleware

import (
	"net/http"
	"strings"

	"github.com/shopsphere/marketplace-backend/api/responses"
	pkgauth "github.com/shopsphere/marketplace-backend/pkg/auth"
	"github.com/shopsphere/marketplace-backend/pkg/auth/session"
	"github.com/shopsphere/marketplace-backend/pkg/config"
	pkgerrors "github.com/shopsphere/marketplace-backend/pkg/errors"
	"github.com/shopsphere/marketplace-backend/pkg/logger"
)

// AuthCookieName is the cookie checked when no Authorization header is set.
const AuthCookieName = "auth_token"

// Auth validates the caller's access token and seeds the request context
// with a verified Identity. The token is read from the Authorization
// bearer header first, then from the auth_token cookie.
func Auth(cfg config.JWTConfig, checker session.Checker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ident, err := pkgauth.IdentityFromClaims(claims)
			if err != nil {
				// Malformed role/vendor pairing fails closed.
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token claims"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if checker != nil {
				ok, err := checker.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := WithIdentity(r.Context(), ident)
			ctx = withAccessID(ctx, claims.ID)

			if logg != nil {
				ctx = logg.WithUserID(ctx, ident.UserID().String())
				ctx = logg.WithActorRole(ctx, string(ident.Role()))
				if vendorID, ok := ident.VendorID(); ok {
					ctx = logg.WithVendorID(ctx, vendorID.String())
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw != "" {
		if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			return strings.TrimSpace(raw[7:])
		}
		return raw
	}
	if cookie, err := r.Cookie(AuthCookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
