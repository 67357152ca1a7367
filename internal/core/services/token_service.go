package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/apperrors"
	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/config"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/revocation"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils"
	"github.com/google/uuid"
)

// tokenService implements TokenSvcFacade. Access and refresh tokens are both
// HS256 JWTs, signed with independent secrets so neither class can stand in
// for the other. Refresh tokens additionally carry a jti that feeds the
// optional revocation denylist.
type tokenService struct {
	cfg      *config.Config
	denylist *revocation.Store
}

// NewTokenService creates a new instance of tokenService. denylist may be nil
// when Redis is not configured; revocation then degrades to a no-op.
func NewTokenService(cfg *config.Config, denylist *revocation.Store) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		denylist: denylist,
	}
}

// GenerateAccessToken creates a short-lived access token for the given user.
// The display name travels in the claims so authenticated requests need no
// user lookup.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, user.Name, "", "", s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a refresh token for the given user. rememberMe
// stretches the lifetime to the persistent-login duration.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User, rememberMe bool) (string, time.Time, error) {
	expiry := s.cfg.RefreshTokenExpiryDuration
	if rememberMe {
		expiry = s.cfg.RefreshTokenRememberMeDuration
	}
	expiryTime := time.Now().Add(expiry)

	refreshToken, err := utils.GenerateJWT(user.UserID, "", "", uuid.NewString(), s.cfg.RefreshTokenSecret, s.cfg.JWTIssuer, expiry)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return refreshToken, expiryTime, nil
}

// ValidateRefreshToken verifies the token's signature and claims, then checks
// the revocation denylist. Every failure surfaces as ErrInvalidToken so a
// caller cannot learn which check tripped.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*utils.AppClaims, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.RefreshTokenSecret)
	if err != nil {
		logger.Warn("Refresh token validation failed", slog.String("error", err.Error()))
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Subject == "" || claims.Purpose != "" {
		logger.Warn("Refresh token carries unexpected claims")
		return nil, apperrors.ErrInvalidToken
	}

	if claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			// Fail closed: an unreachable denylist must not let revoked
			// tokens back in.
			logger.Error("Denylist check failed", slog.String("error", err.Error()))
			return nil, apperrors.ErrInvalidToken
		}
		if revoked {
			logger.Warn("Revoked refresh token presented", slog.String("user_id", claims.Subject))
			return nil, apperrors.ErrInvalidToken
		}
	}

	return claims, nil
}

// RevokeRefreshToken denylists the token's jti for its remaining lifetime.
// Invalid tokens are ignored: there is nothing left to revoke.
func (s *tokenService) RevokeRefreshToken(ctx context.Context, tokenString string) error {
	if !s.denylist.Enabled() {
		return nil
	}

	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.RefreshTokenSecret)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	return s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}
