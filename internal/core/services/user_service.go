package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/apperrors"
	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	portsrepo "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/repositories"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/config"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils"
	"github.com/google/uuid"
)

// userService implements UserSvcFacade: local credentials, email
// verification, password reset and Google identity linking.
//
// Out-of-band tokens (verification and reset) are signed JWTs tagged with a
// purpose claim. The currently-active one is also stored on the user row and
// cleared when consumed, which makes each token single-use even while its
// signature is still valid.
type userService struct {
	userRepo  portsrepo.UserRepositoryFacade
	cfg       *config.Config
	mailer    portssvc.EmailDispatcher
	analytics *utils.PosthogClientWrapper
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config, mailer portssvc.EmailDispatcher, analytics *utils.PosthogClientWrapper) portssvc.UserSvcFacade {
	return &userService{
		userRepo:  userRepo,
		cfg:       cfg,
		mailer:    mailer,
		analytics: analytics,
	}
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// AuthenticateUser verifies email + password. Unknown email and wrong
// password both yield ErrInvalidCredentials so a caller cannot probe for
// registered addresses.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Login attempt for unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}

	if user.IsFederated() {
		logger.Warn("Password login attempt on federated account", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrWrongProvider
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Login attempt with wrong password", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.Verified {
		logger.Warn("Login attempt on unverified account", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrForbidden
	}

	s.analytics.Enqueue(user.UserID, utils.EventUserLoggedIn, nil)
	return user, nil
}

// RegisterUser creates an unverified local account and dispatches the
// verification email without blocking the request.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := utils.NormalizeEmail(req.Email)

	hash, err := utils.HashPassword(req.Password1)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Name:          req.Name,
		Email:         email,
		PasswordHash:  hash,
		AuthProvider:  domain.ProviderLocal,
		Verified:      false,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	token, err := utils.GenerateJWT(user.UserID, "", utils.PurposeVerify, "", s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.VerifyTokenExpiryDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	user.ActionToken = token
	user.TokenIssuedAt = &now

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to save new user: %w", err)
	}

	s.mailer.SendVerificationEmail(ctx, user.Email, user.Name, token)
	s.analytics.Enqueue(user.UserID, utils.EventUserRegistered, nil)

	return &user, nil
}

// ConfirmEmail consumes a verification token exactly once. An unknown email
// surfaces as ErrNotFound; expired, forged, mismatched and already-consumed
// tokens all surface as ErrInvalidToken.
func (s *userService) ConfirmEmail(ctx context.Context, email, token string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to look up user for confirmation: %w", err)
	}

	if err := s.consumeActionToken(user, token, utils.PurposeVerify); err != nil {
		logger.Warn("Verification token rejected", slog.String("user_id", user.UserID))
		return err
	}

	user.Verified = true
	user.LastUpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	s.analytics.Enqueue(user.UserID, utils.EventUserVerified, nil)
	return nil
}

// RequestPasswordReset issues and emails a reset token. It reports success
// whether or not the email belongs to an account, and silently skips
// re-issuance inside the minimum re-request interval.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up user for password reset: %w", err)
	}

	if user.IsFederated() {
		logger.Info("Password reset requested for federated account", slog.String("user_id", user.UserID))
		return nil
	}

	now := time.Now()
	if user.TokenIssuedAt != nil && now.Sub(*user.TokenIssuedAt) < s.cfg.ResetRequestMinInterval {
		logger.Info("Password reset re-request inside minimum interval", slog.String("user_id", user.UserID))
		return nil
	}

	token, err := utils.GenerateJWT(user.UserID, "", utils.PurposeReset, "", s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.ResetTokenExpiryDuration)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	user.ActionToken = token
	user.TokenIssuedAt = &now
	user.LastUpdatedAt = now

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	s.mailer.SendResetEmail(ctx, user.Email, user.Name, token)
	return nil
}

// ResetPassword consumes a reset token exactly once and stores the new
// password hash. The returned account lets callers greet the user by name.
// An unknown email surfaces as ErrNotFound.
func (s *userService) ResetPassword(ctx context.Context, email, token, newPassword string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up user for password reset: %w", err)
	}

	// A federated account never has a password to reset, and never gets a
	// token issued; anything presented is forged.
	if user.IsFederated() {
		logger.Warn("Password reset attempt on federated account", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.consumeActionToken(user, token, utils.PurposeReset); err != nil {
		logger.Warn("Reset token rejected", slog.String("user_id", user.UserID))
		return nil, err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash new password: %w", err)
	}
	user.PasswordHash = hash
	user.LastUpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to store new password: %w", err)
	}

	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to look up user for password change: %w", err)
	}

	if user.IsFederated() {
		logger.Warn("Password change attempt on federated account", slog.String("user_id", user.UserID))
		return apperrors.ErrWrongProvider
	}

	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		logger.Warn("Password change with wrong current password", slog.String("user_id", user.UserID))
		return apperrors.ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	user.PasswordHash = hash
	user.LastUpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}
	return nil
}

// LinkOrCreateGoogleUser resolves a verified Google identity assertion to an
// account: by Google subject id first, then by email (linking the account),
// and finally by auto-provisioning a fresh federated account.
func (s *userService) LinkOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByGoogleID(ctx, info.ID)
	if err == nil {
		s.analytics.Enqueue(user.UserID, utils.EventGoogleSignIn, nil)
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by google id: %w", err)
	}

	email := utils.NormalizeEmail(info.Email)
	user, err = s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		// Existing local account with the same address: link it. Google has
		// asserted ownership of the email, so the account counts as verified
		// and the provider flips to google. The stored hash is kept in case
		// the account is ever unlinked.
		user.GoogleID = info.ID
		user.AuthProvider = domain.ProviderGoogle
		user.Verified = true
		user.AvatarURL = info.Picture
		user.LastUpdatedAt = time.Now()

		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("failed to link google identity: %w", err)
		}
		logger.Info("Linked google identity to existing account", slog.String("user_id", user.UserID))
		s.analytics.Enqueue(user.UserID, utils.EventGoogleSignIn, nil)
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:        uuid.NewString(),
		Name:          info.Name,
		Email:         email,
		AuthProvider:  domain.ProviderGoogle,
		GoogleID:      info.ID,
		AvatarURL:     info.Picture,
		Verified:      true,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to provision google user: %w", err)
	}
	logger.Info("Auto-provisioned account from google identity", slog.String("user_id", newUser.UserID))

	s.mailer.SendWelcomeEmail(ctx, newUser.Email, newUser.Name)
	s.analytics.Enqueue(newUser.UserID, utils.EventGoogleSignIn, nil)
	return &newUser, nil
}

// consumeActionToken validates a purpose-tagged token against the stored
// single-use copy and clears it on success. Callers persist the cleared user.
func (s *userService) consumeActionToken(user *domain.User, token, purpose string) error {
	if user.ActionToken == "" {
		return apperrors.ErrInvalidToken
	}

	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	if claims.Purpose != purpose || claims.Subject != user.UserID {
		return apperrors.ErrInvalidToken
	}
	if token != user.ActionToken {
		return apperrors.ErrInvalidToken
	}

	user.ActionToken = ""
	user.TokenIssuedAt = nil
	return nil
}
