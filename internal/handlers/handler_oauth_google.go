package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

const oauthStateCookieName = "oauthState"

// GoogleOAuthHandler handles the Google sign-in flows: the browser redirect
// flow and the two direct ID-token flows (Google client SDK and Firebase Auth).
type GoogleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthHandlerSvcFacade
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(os portssvc.GoogleOAuthHandlerSvcFacade, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		oauthService: os,
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerGoogleOAuthRoutes sets up the Google sign-in routes under /api/auth.
func registerGoogleOAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService, cfg)

	google := r.Group("/api/auth/google")
	{
		google.GET("", h.RedirectToGoogle)
		google.GET("/callback", h.HandleGoogleCallback)
		google.POST("/token", h.HandleGoogleIDToken)
		google.POST("/firebase", h.HandleFirebaseIDToken)
	}
}

// RedirectToGoogle godoc
// @Summary Start Google sign-in
// @Description Redirects the browser to Google's consent screen with a CSRF state cookie.
// @Tags auth
// @Success 307
// @Router /api/auth/google [get]
func (h *GoogleOAuthHandler) RedirectToGoogle(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := h.oauthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, 600, "/api/auth/google", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetGoogleLoginURL(ctx, state))
}

// HandleGoogleCallback godoc
// @Summary Google sign-in callback
// @Description Verifies the state, exchanges the authorization code and redirects to the frontend with a session token.
// @Tags auth
// @Success 307
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/google/callback [get]
func (h *GoogleOAuthHandler) HandleGoogleCallback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	stateCookie, err := c.Cookie(oauthStateCookieName)
	if err != nil || stateCookie == "" || stateCookie != c.Query("state") {
		logger.Warn("OAuth state mismatch on Google callback")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/api/auth/google", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	oauthToken, err := h.oauthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange Google authorization code", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	info, err := h.oauthService.GetUserInfo(ctx, oauthToken)
	if err != nil {
		logger.Error("Failed to fetch Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	accessToken, err := h.signInGoogleUser(c, *info)
	if err != nil {
		respondError(c, err)
		return
	}

	callback := h.cfg.UserCallbackURL + "?token=" + url.QueryEscape(accessToken)
	c.Redirect(http.StatusTemporaryRedirect, callback)
}

// HandleGoogleIDToken godoc
// @Summary Google ID-token sign-in
// @Description Verifies an ID token obtained by the Google client SDK and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.GoogleTokenRequest true "Google ID token"
// @Success 200 {object} dto.GoogleAuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/google/token [post]
func (h *GoogleOAuthHandler) HandleGoogleIDToken(c *gin.Context) {
	h.handleIDToken(c, h.oauthService.ValidateGoogleIDToken)
}

// HandleFirebaseIDToken godoc
// @Summary Firebase ID-token sign-in
// @Description Verifies an ID token issued by Firebase Authentication and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.GoogleTokenRequest true "Firebase ID token"
// @Success 200 {object} dto.GoogleAuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/google/firebase [post]
func (h *GoogleOAuthHandler) HandleFirebaseIDToken(c *gin.Context) {
	h.handleIDToken(c, h.oauthService.ValidateFirebaseIDToken)
}

func (h *GoogleOAuthHandler) handleIDToken(c *gin.Context, validate func(ctx context.Context, idTokenString string) (*idtoken.Payload, error)) {
	ctx := c.Request.Context()

	var req dto.GoogleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	payload, err := validate(ctx, req.IDToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Rejected Google ID token", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Token no valido o expirado"})
		return
	}

	info := userInfoFromPayload(payload)
	user, err := h.userService.LinkOrCreateGoogleUser(ctx, info)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err)
		return
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user, false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, refreshToken, int(time.Until(refreshExpiry).Seconds()), h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	c.JSON(http.StatusOK, dto.GoogleAuthResponse{Token: accessToken, User: dto.ToUserResponse(user)})
}

// signInGoogleUser links or provisions the account and returns an access
// token, leaving the refresh token in its cookie.
func (h *GoogleOAuthHandler) signInGoogleUser(c *gin.Context, info domain.GoogleUserInfo) (string, error) {
	ctx := c.Request.Context()

	user, err := h.userService.LinkOrCreateGoogleUser(ctx, info)
	if err != nil {
		return "", err
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", err
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user, false)
	if err != nil {
		return "", err
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, refreshToken, int(time.Until(refreshExpiry).Seconds()), h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	return accessToken, nil
}

// userInfoFromPayload maps the verified ID-token claims onto the profile
// shape used by the redirect flow.
func userInfoFromPayload(payload *idtoken.Payload) domain.GoogleUserInfo {
	info := domain.GoogleUserInfo{ID: payload.Subject}
	if v, ok := payload.Claims["email"].(string); ok {
		info.Email = v
	}
	if v, ok := payload.Claims["email_verified"].(bool); ok {
		info.VerifiedEmail = v
	}
	if v, ok := payload.Claims["name"].(string); ok {
		info.Name = v
	}
	if v, ok := payload.Claims["picture"].(string); ok {
		info.Picture = v
	}
	return info
}
