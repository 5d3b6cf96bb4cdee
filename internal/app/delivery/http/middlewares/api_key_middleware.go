package middlewares

import (
	"net/http"

	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// RequireAdminAPIKey guards schedule mutations. When no admin key is
// configured the guard is a no-op, which keeps local development friction
// free.
func (m *Middlewares) RequireAdminAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		configuredKey := m.InternalConfig.App.AdminAPIKey
		if configuredKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		if apiKey != configuredKey {
			m.Log.Warn("API key authentication failed",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingMethodKey, r.Method),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}
