package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/botdash/internal/dashboard"
)

const (
	SessionCookieName = "botdash_session"

	sessionKeyClientID = "client_id"
	sessionKeyTheme    = "theme"
	sessionMaxAge      = 30 * 24 * 60 * 60

	contextKeyClientID = "httpapi_client_id"
	contextKeyTheme    = "httpapi_theme"

	logEventLoadSession = "load_session"
	logEventSaveSession = "save_session"
)

// SessionManager keeps the per-browser client id and theme in a signed
// cookie.
type SessionManager struct {
	logger *zap.Logger
	store  *sessions.CookieStore
}

func NewSessionManager(logger *zap.Logger, secret []byte, secureCookies bool) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{logger: logger, store: store}
}

// Middleware loads the session, assigning a client id on first visit, and
// exposes client id and theme to handlers.
func (manager *SessionManager) Middleware() gin.HandlerFunc {
	return func(context *gin.Context) {
		sessionInstance := manager.load(context)

		clientID := extractString(sessionInstance.Values[sessionKeyClientID])
		if clientID == "" {
			clientID = uuid.NewString()
			sessionInstance.Values[sessionKeyClientID] = clientID
			if saveErr := sessionInstance.Save(context.Request, context.Writer); saveErr != nil {
				manager.logger.Warn(logEventSaveSession, zap.Error(saveErr))
			}
		}

		context.Set(contextKeyClientID, clientID)
		context.Set(contextKeyTheme, dashboard.ParseTheme(extractString(sessionInstance.Values[sessionKeyTheme])))
		context.Next()
	}
}

// SaveTheme persists theme for the current browser.
func (manager *SessionManager) SaveTheme(context *gin.Context, theme dashboard.Theme) error {
	sessionInstance := manager.load(context)
	sessionInstance.Values[sessionKeyTheme] = string(theme)
	if saveErr := sessionInstance.Save(context.Request, context.Writer); saveErr != nil {
		return saveErr
	}
	context.Set(contextKeyTheme, theme)
	return nil
}

func (manager *SessionManager) load(context *gin.Context) *sessions.Session {
	sessionInstance, sessionErr := manager.store.Get(context.Request, SessionCookieName)
	if sessionErr != nil {
		// A cookie signed with an old secret still yields a fresh session.
		manager.logger.Warn(logEventLoadSession, zap.Error(sessionErr))
	}
	return sessionInstance
}

func ClientIDFromContext(context *gin.Context) string {
	value, exists := context.Get(contextKeyClientID)
	if !exists {
		return ""
	}
	clientID, _ := value.(string)
	return clientID
}

func ThemeFromContext(context *gin.Context) dashboard.Theme {
	value, exists := context.Get(contextKeyTheme)
	if !exists {
		return dashboard.ThemeLight
	}
	theme, ok := value.(dashboard.Theme)
	if !ok {
		return dashboard.ThemeLight
	}
	return theme
}

func extractString(value interface{}) string {
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}
