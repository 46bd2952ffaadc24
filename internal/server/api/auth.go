package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	accountsapp "github.com/storefront-samples/go-bff-server/internal/domains/accounts/application"
	"github.com/storefront-samples/go-bff-server/internal/domains/accounts/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/accounts/ports"
	apierrors "github.com/storefront-samples/go-bff-server/internal/shared/errors"
)

// AuthCookieName is the upstream auth cookie the BFF bridge captures.
const AuthCookieName = "storefront_auth"

// AuthAPI implements the cookie auth endpoints.
type AuthAPI struct {
	accounts *accountsapp.Service
	logger   *slog.Logger
}

func NewAuthAPI(accounts *accountsapp.Service, logger *slog.Logger) AuthAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return AuthAPI{accounts: accounts, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Post /api/login
// Issues the storefront_auth cookie on success.
func (api AuthAPI) Login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail("request body must be JSON"))
		return
	}
	token, user, err := api.accounts.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid username or password"))
			return
		}
		apierrors.RespondError(c, err)
		return
	}
	api.logger.Info("user logged in", slog.String("username", user.Username))
	setAuthCookie(c, token, 0)
	c.JSON(http.StatusOK, toTransportUser(user))
}

// Post /api/logout
// Always 204.
func (api AuthAPI) Logout(c *gin.Context) {
	if err := api.accounts.Logout(c.Request.Context(), tokenFrom(c)); err != nil {
		apierrors.RespondError(c, err)
		return
	}
	setAuthCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// Get /api/account/user-info
// Resolves the auth cookie or a bearer token to the current account.
func (api AuthAPI) UserInfo(c *gin.Context) {
	user, err := api.accounts.CurrentUser(c.Request.Context(), tokenFrom(c))
	if err != nil {
		if errors.Is(err, ports.ErrNotAuthenticated) {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("not authenticated"))
			return
		}
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransportUser(user))
}

// User is the transport representation of an account.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

func toTransportUser(user *domain.User) User {
	return User{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}
}

func setAuthCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, value, maxAge, "/", "", false, true)
}

// tokenFrom prefers the auth cookie and falls back to a bearer token, so
// both browser sessions and forwarded-credential callers resolve.
func tokenFrom(c *gin.Context) string {
	if cookie, err := c.Request.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authorization := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authorization, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
