package bff

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	bridgeapp "github.com/storefront-samples/go-bff-server/internal/domains/bridge/application"
	"github.com/storefront-samples/go-bff-server/internal/domains/bridge/ports"
	sessiondomain "github.com/storefront-samples/go-bff-server/internal/domains/session/domain"
	apierrors "github.com/storefront-samples/go-bff-server/internal/shared/errors"
)

// AuthAPI exposes the session-bridging endpoints.
type AuthAPI struct {
	bridge *bridgeapp.Service
	logger *slog.Logger
}

func NewAuthAPI(bridge *bridgeapp.Service, logger *slog.Logger) AuthAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return AuthAPI{bridge: bridge, logger: logger}
}

// Post /bff/auth/login
// Relay the credentials upstream; on success swap the upstream cookies for a
// freshly issued bff_sid.
func (api AuthAPI) Login(c *gin.Context) {
	result, err := api.bridge.Login(c.Request.Context(), c.Request.Body, c.ContentType())
	if err != nil {
		api.logger.Error("bridged login failed", slog.String("error", err.Error()))
		apierrors.Respond(c, apierrors.NewGatewayProblem("login upstream is unreachable"))
		return
	}
	if result.SessionID != "" {
		setSessionCookie(c, result.SessionID, sessionCookieMaxAge)
	}
	relayResponse(c, &result.Relay)
}

// Post /bff/auth/logout
// Always 204: logging out twice, or without a session, is not an error.
func (api AuthAPI) Logout(c *gin.Context) {
	sessionID := ""
	if cookie, err := c.Request.Cookie(sessiondomain.CookieName); err == nil {
		sessionID = cookie.Value
	}
	if err := api.bridge.Logout(c.Request.Context(), sessionID); err != nil {
		apierrors.RespondError(c, err)
		return
	}
	setSessionCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// Get /bff/auth/me
// Relay the upstream current-user response verbatim.
func (api AuthAPI) Me(c *gin.Context) {
	relay, err := api.bridge.CurrentUser(c.Request.Context())
	if err != nil {
		api.logger.Error("current-user relay failed", slog.String("error", err.Error()))
		apierrors.Respond(c, apierrors.NewGatewayProblem("account upstream is unreachable"))
		return
	}
	relayResponse(c, relay)
}

// sessionCookieMaxAge of zero makes bff_sid a session cookie; the bridged
// entry's lifetime is governed by the store, not the browser.
const sessionCookieMaxAge = 0

func setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessiondomain.CookieName, value, maxAge, "/", "", true, true)
}

func relayResponse(c *gin.Context, relay *ports.Relay) {
	contentType := relay.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(relay.Status, contentType, relay.Body)
}
