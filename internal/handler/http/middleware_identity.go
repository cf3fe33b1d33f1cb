package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
)

// identityClaims is the token payload recognized by the sync server. The
// tenant claim scopes the request to one content catalog.
type identityClaims struct {
	jwt.RegisteredClaims
	Tenant string `json:"tenant,omitempty"`
}

// withIdentity resolves the tenant for the request. Requests without an
// Authorization header run against the default tenant; a present but
// invalid token is rejected.
func (h *Handler) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r.WithContext(utils.SetTenantToContext(ctx, utils.DefaultTenant)))
			return
		}

		tenant, err := h.tenantFromHeader(header)
		if err != nil {
			log.Error().Str("func", "*Handler.withIdentity").Err(err).Msg("identity token rejected")
			writeError(w, r, err.Error(), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.SetTenantToContext(ctx, tenant)))
	})
}

func (h *Handler) tenantFromHeader(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", ErrInvalidAuthorizationHeader
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(h.tokenSignKey), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Tenant == "" {
		return utils.DefaultTenant, nil
	}

	return claims.Tenant, nil
}
