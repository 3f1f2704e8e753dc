package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workify/backend/internal/application/identity"
	"github.com/workify/backend/internal/interfaces/http/dto"
	"github.com/workify/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	ssoService  *identity.SSOService
}

// NewAuthHandler creates a new auth handler. ssoService is nil when
// single sign-on is disabled.
func NewAuthHandler(authService *identity.AuthService, ssoService *identity.SSOService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		ssoService:  ssoService,
	}
}

// Login godoc
// @ID           loginAuth
// @Summary      Password login
// @Description  Authenticate a local account with username and password. Regular users sign in through SSO.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginInput true "Login credentials"
// @Success      200 {object} APIResponse[identity.LoginResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginInput
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RefreshToken godoc
// @ID           refreshTokenAuth
// @Summary      Refresh access token
// @Description  Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RefreshTokenInput true "Refresh token"
// @Success      200 {object} APIResponse[identity.RefreshTokenResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req identity.RefreshTokenInput
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout godoc
// @ID           logoutAuth
// @Summary      Logout
// @Description  Revoke the current access token. When SSO is enabled the response names the provider logout URL.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[identity.LogoutResult]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		h.Unauthorized(c, "Invalid token claims")
		return
	}

	err = h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		UserID:   userID,
		TokenJTI: claims.ID,
		TokenTTL: claims.GetRemainingTTL(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result := identity.LogoutResult{}
	if h.ssoService != nil {
		result.LogoutURL = h.ssoService.LogoutURL()
	}
	h.Success(c, result)
}

// GetCurrentUser godoc
// @ID           getCurrentUserAuth
// @Summary      Current user
// @Description  Return the signed-in user with its effective permissions
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[identity.UserInfo]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := h.actorID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// SSOAuthorize godoc
// @ID           ssoAuthorizeAuth
// @Summary      Start SSO login
// @Description  Return the identity provider URL the browser must visit. next is where the client goes after login.
// @Tags         auth
// @Produce      json
// @Param        next query string false "Path to return to after login"
// @Success      200 {object} APIResponse[identity.AuthorizeResult]
// @Failure      404 {object} ErrorResponse
// @Router       /auth/sso/authorize [get]
func (h *AuthHandler) SSOAuthorize(c *gin.Context) {
	if h.ssoService == nil {
		h.NotFound(c, "Single sign-on is not enabled")
		return
	}

	result, err := h.ssoService.Authorize(c.Request.Context(), c.Query("next"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ssoCallbackQuery carries the parameters the provider redirects with
type ssoCallbackQuery struct {
	Code             string `form:"code"`
	State            string `form:"state" binding:"required"`
	Error            string `form:"error"`
	ErrorDescription string `form:"error_description"`
}

// SSOCallback godoc
// @ID           ssoCallbackAuth
// @Summary      Finish SSO login
// @Description  Exchange the authorization code for the user's profile and issue a token pair
// @Tags         auth
// @Produce      json
// @Param        code  query string false "Authorization code"
// @Param        state query string true  "State returned by authorize"
// @Success      200 {object} APIResponse[identity.SSOLoginResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /auth/sso/callback [get]
func (h *AuthHandler) SSOCallback(c *gin.Context) {
	if h.ssoService == nil {
		h.NotFound(c, "Single sign-on is not enabled")
		return
	}

	var q ssoCallbackQuery
	if !h.bindQuery(c, &q) {
		return
	}
	if q.Error != "" {
		msg := q.Error
		if q.ErrorDescription != "" {
			msg += ": " + q.ErrorDescription
		}
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, msg)
		return
	}
	if q.Code == "" {
		h.BadRequest(c, "Authorization code is required")
		return
	}

	result, err := h.ssoService.Callback(c.Request.Context(), q.Code, q.State)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
