package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/apperrors"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes under /api/auth.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.TokenService, cfg)

	// Credential guessing: 5 attempts per minute per IP.
	loginRate, _ := limiter.NewRateFromFormatted("5-M")
	loginLimiter := limiter.New(memory.NewStore(), loginRate)

	// Reset-email flooding: 3 requests per 5 minutes per IP. The service adds
	// a per-account issuance interval on top.
	resetLimiter := limiter.New(memory.NewStore(), limiter.Rate{
		Period: 5 * time.Minute,
		Limit:  3,
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/confirmar", h.Confirmar)
		auth.POST("/olvido-password", middleware.RateLimit(resetLimiter), h.OlvidoPassword)
		auth.POST("/restablecer-password", h.RestablecerPassword)
		auth.POST("/refresh-token", h.RefreshToken)
		auth.POST("/logout", h.Logout)
	}
}

// setRefreshTokenCookie writes the refresh token as an HttpOnly cookie scoped
// to the auth routes, so scripts never see it and catalog requests never
// carry it.
func (h *AuthHandler) setRefreshTokenCookie(c *gin.Context, token string, expiry time.Time) {
	c.SetSameSite(http.SameSiteStrictMode)
	maxAge := int(time.Until(expiry).Seconds())
	c.SetCookie(h.cfg.RefreshTokenCookieName, token, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) clearRefreshTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns an access token. The refresh token is set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Account not verified"
// @Failure 429 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	user, err := h.userService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err)
		return
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user, req.RememberMe)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshTokenCookie(c, refreshToken, refreshExpiry)
	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, Name: user.Name})
}

// RefreshToken godoc
// @Summary Refresh the access token
// @Description Exchanges the refresh-token cookie for a fresh access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := c.Request.Context()

	// A missing cookie is 401; a cookie that fails validation is 403 so the
	// client can tell "log in again" apart from "retry with credentials".
	cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || cookie == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Token no valido o expirado"})
		return
	}

	claims, err := h.tokenService.ValidateRefreshToken(ctx, cookie)
	if err != nil {
		h.clearRefreshTokenCookie(c)
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Token no valido o expirado"})
		return
	}

	user, err := h.userService.GetUserByID(ctx, claims.Subject)
	if err != nil {
		h.clearRefreshTokenCookie(c)
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Token no valido o expirado"})
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented refresh token and clears its cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil && cookie != "" {
		if err := h.tokenService.RevokeRefreshToken(ctx, cookie); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to revoke refresh token on logout", slog.String("error", err.Error()))
		}
	}

	h.clearRefreshTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"msg": "Sesion cerrada"})
}

// Register godoc
// @Summary Register a new account
// @Description Creates an unverified account and emails a verification link.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration Info"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	if _, err := h.userService.RegisterUser(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Usuario creado correctamente, revisa tu email para confirmar tu cuenta"})
}

// Confirmar godoc
// @Summary Confirm an account
// @Description Consumes the emailed verification token and activates the account.
// @Tags auth
// @Accept json
// @Produce json
// @Param confirm body dto.ConfirmRequest true "Email and verification token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/confirmar [post]
func (h *AuthHandler) Confirmar(c *gin.Context) {
	var req dto.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	if err := h.userService.ConfirmEmail(c.Request.Context(), req.Email, req.Token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Usuario confirmado correctamente"})
}

// OlvidoPassword godoc
// @Summary Request a password reset
// @Description Emails a single-use reset link. Responds identically whether or not the email is registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 429 {object} ErrorResponse
// @Router /api/auth/olvido-password [post]
func (h *AuthHandler) OlvidoPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	if err := h.userService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	// Same response for registered and unknown addresses.
	c.JSON(http.StatusOK, gin.H{"msg": "Si el email esta registrado, hemos enviado las instrucciones"})
}

// RestablecerPassword godoc
// @Summary Reset the password
// @Description Consumes the emailed reset token and stores the new password.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Email, token and new password"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/auth/restablecer-password [post]
func (h *AuthHandler) RestablecerPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	if req.NewPassword != req.NewPassword2 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Las contrasenas no coinciden"})
		return
	}

	user, err := h.userService.ResetPassword(c.Request.Context(), req.Email, req.Token, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Contrasena actualizada correctamente, " + user.Name})
}

// CambiarPassword godoc
// @Summary Change the password
// @Description Verifies the current password before storing the new one. Requires authentication.
// @Tags auth
// @Accept json
// @Produce json
// @Param change body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/cambiar-password [post]
func (h *AuthHandler) CambiarPassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		// Here a wrong current password is an authentication failure, unlike
		// the 400 the login form gets.
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Usuario o contrasena incorrectos"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Contrasena actualizada correctamente"})
}

// Perfil godoc
// @Summary Current user profile
// @Description Returns the authenticated user's public record.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/perfil [get]
func (h *AuthHandler) Perfil(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
