package middlewares

import (
	"net/http"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

// BrowserSession binds every request to a browser session id. The id travels
// in a signed cookie; a missing, expired or tampered cookie starts a new
// session.
func (m *Middlewares) BrowserSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestIDFromContext(r.Context())
		sessionCfg := m.InternalConfig.Session
		secret := m.InternalConfig.JWT.Secret

		sessionID := ""
		if cookie, err := r.Cookie(sessionCfg.CookieName); err == nil && cookie.Value != "" {
			sessionID, err = utils.ParseSessionJWT(cookie.Value, secret)
			if err != nil {
				m.Log.Warn("Middlewares.BrowserSession discarding invalid session cookie",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
			}
		}

		if sessionID == "" {
			expiry := time.Duration(sessionCfg.ExpiredTimeInMinutes) * time.Minute
			sessionID = utils.GenerateSessionID()
			token, err := utils.GenerateSessionJWT(sessionID, secret, expiry)
			if err != nil {
				utils.BuildErrorResponse(m.Log, w, err)
				return
			}

			// Lax keeps the cookie on the top-level redirect back from the
			// authorization server.
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCfg.CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(expiry.Seconds()),
				HttpOnly: true,
				Secure:   sessionCfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
			m.Log.Info("Middlewares.BrowserSession started new session",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, sessionID),
			)
		}

		next.ServeHTTP(w, r.WithContext(utils.ContextWithSessionID(r.Context(), sessionID)))
	})
}
