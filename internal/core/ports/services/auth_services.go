package services

import (
	"context"
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for session token management.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a short-lived access token carrying the
	// user's id and display name.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a refresh token; rememberMe extends its
	// lifetime to the persistent-login duration.
	GenerateRefreshToken(ctx context.Context, user *domain.User, rememberMe bool) (string, time.Time, error)

	// ValidateRefreshToken verifies a refresh token and checks it against
	// the revocation denylist. All failures surface as apperrors.ErrInvalidToken.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*utils.AppClaims, error)

	// RevokeRefreshToken denylists the token's id for its remaining
	// lifetime. A no-op when no denylist is configured.
	RevokeRefreshToken(ctx context.Context, tokenString string) error
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string used as the CSRF
	// token for the redirect flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken validates an ID token issued for the Google
	// OAuth client and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
	// ValidateFirebaseIDToken validates an ID token issued by Firebase
	// Authentication for the configured project.
	ValidateFirebaseIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
