package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/apperrors"
	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/core/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/config"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock EmailDispatcher ---

// mockMailer records dispatched emails so tests can replay emailed tokens.
type mockMailer struct {
	verificationTokens []string
	resetTokens        []string
	welcomes           []string
}

func (m *mockMailer) SendVerificationEmail(ctx context.Context, to, name, token string) {
	m.verificationTokens = append(m.verificationTokens, token)
}

func (m *mockMailer) SendResetEmail(ctx context.Context, to, name, token string) {
	m.resetTokens = append(m.resetTokens, token)
}

func (m *mockMailer) SendWelcomeEmail(ctx context.Context, to, name string) {
	m.welcomes = append(m.welcomes, to)
}

// --- Test Suite ---

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mailer       *mockMailer
	cfg          *config.Config
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mailer = &mockMailer{}
	suite.cfg = &config.Config{
		JWTSecret:                 "test-jwt-secret",
		JWTIssuer:                 "biblioteca-multimedia-test",
		JWTExpiryDuration:         15 * time.Minute,
		VerifyTokenExpiryDuration: 30 * time.Minute,
		ResetTokenExpiryDuration:  time.Hour,
		ResetRequestMinInterval:   5 * time.Minute,
	}
	suite.service = services.NewUserService(suite.mockUserRepo, suite.cfg, suite.mailer, nil)
}

func (suite *UserServiceTestSuite) mustHash(password string) string {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return hash
}

func (suite *UserServiceTestSuite) localUser(email, password string, verified bool) *domain.User {
	return &domain.User{
		UserID:       uuid.NewString(),
		Name:         "Lectora",
		Email:        email,
		PasswordHash: suite.mustHash(password),
		AuthProvider: domain.ProviderLocal,
		Verified:     verified,
	}
}

// --- RegisterUser ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:      "Lectora",
		Email:     "Lectora@Example.COM",
		Password1: "secreta123",
		Password2: "secreta123",
	}

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		saved = user
		return user.Email == "lectora@example.com" &&
			user.AuthProvider == domain.ProviderLocal &&
			!user.Verified &&
			user.ActionToken != "" &&
			user.PasswordHash != req.Password1
	})).Return(nil).Once()

	created, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("lectora@example.com", created.Email, "email must be normalized before storage")
	suite.True(utils.CheckPasswordHash(req.Password1, created.PasswordHash), "stored hash must verify the original password")

	suite.Require().Len(suite.mailer.verificationTokens, 1)
	suite.Equal(saved.ActionToken, suite.mailer.verificationTokens[0], "emailed token must match the stored single-use copy")

	claims, err := utils.ParseAndValidateJWT(saved.ActionToken, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(utils.PurposeVerify, claims.Purpose)
	suite.Equal(saved.UserID, claims.Subject)

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:      "Lectora",
		Email:     "lectora@example.com",
		Password1: "secreta123",
		Password2: "secreta123",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.RegisterUser(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(created)
	suite.Empty(suite.mailer.verificationTokens, "no verification email on duplicate registration")
}

// --- AuthenticateUser ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "secreta123", true)

	suite.mockUserRepo.On("FindUserByEmail", ctx, "lectora@example.com").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "  Lectora@Example.COM ", "secreta123")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateUser(ctx, "ghost@example.com", "whatever")

	suite.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.Nil(got)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "secreta123", true)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "lectora@example.com").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "lectora@example.com", "incorrecta")

	suite.Require().ErrorIs(err, apperrors.ErrInvalidCredentials, "wrong password and unknown email must be indistinguishable")
	suite.Nil(got)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_FederatedAccount() {
	ctx := context.Background()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "google@example.com",
		AuthProvider: domain.ProviderGoogle,
		GoogleID:     "google-sub-1",
		Verified:     true,
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "google@example.com").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "google@example.com", "any")

	suite.Require().ErrorIs(err, apperrors.ErrWrongProvider)
	suite.Nil(got)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnverifiedAccount() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "secreta123", false)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "lectora@example.com").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "lectora@example.com", "secreta123")

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(got)
}

// --- ConfirmEmail ---

func (suite *UserServiceTestSuite) TestConfirmEmail_RoundTrip() {
	ctx := context.Background()

	// Register first so the stored token and the emailed token line up.
	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.User)
	}).Return(nil).Once()

	_, err := suite.service.RegisterUser(ctx, dto.RegisterRequest{
		Name:      "Lectora",
		Email:     "lectora@example.com",
		Password1: "secreta123",
		Password2: "secreta123",
	})
	suite.Require().NoError(err)
	token := suite.mailer.verificationTokens[0]

	suite.mockUserRepo.On("FindUserByEmail", ctx, "lectora@example.com").Return(&saved, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Verified && user.ActionToken == "" && user.TokenIssuedAt == nil
	})).Return(nil).Once()

	err = suite.service.ConfirmEmail(ctx, "lectora@example.com", token)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestConfirmEmail_TokenAlreadyConsumed() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "secreta123", true)
	user.ActionToken = ""

	token, err := utils.GenerateJWT(user.UserID, "", utils.PurposeVerify, "", suite.cfg.JWTSecret, suite.cfg.JWTIssuer, time.Minute)
	suite.Require().NoError(err)

	suite.mockUserRepo.On("FindUserByEmail", ctx, "lectora@example.com").Return(user, nil).Once()

	err = suite.service.ConfirmEmail(ctx, "lectora@example.com", token)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidToken, "a consumed token must not verify twice even while its signature is valid")
}

func (suite *UserServiceTestSuite) TestConfirmEmail_TokenForOtherUser() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "secreta123", false)

	// Token signed for a different subject.
	token, err := utils.GenerateJWT(uuid.NewString(), "", utils.PurposeVerify, "", suite.cfg.JWTSecret, suite.cfg.JWTIssuer, time.Minute)
	suite.Require().NoError(err)
	user.ActionToken = token

	suite.mockUserRepo.On("FindUserByEmail", ctx, "lectora@example.com").Return(user, nil).Once()

	err = suite.service.ConfirmEmail(ctx, "lectora@example.com", token)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *UserServiceTestSuite) TestConfirmEmail_UnknownEmail() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ConfirmEmail(ctx, "ghost@example.com", "whatever")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound, "an unregistered address is reported as not found, not as a bad token")
}

// --- RequestPasswordReset ---

func (suite *UserServiceTestSuite) TestRequestPasswordReset_UnknownEmailIsSilent() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.RequestPasswordReset(ctx, "ghost@example.com")

	suite.Require().NoError(err, "unknown email must not be distinguishable from a registered one")
	suite.Empty(suite.mailer.resetTokens)
}

func (suite *UserServiceTestSuite) TestRequestPasswordReset_FederatedIsSilent() {
	ctx := context.Background()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "google@example.com",
		AuthProvider: domain.ProviderGoogle,
		Verified:     true,
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "google@example.com").Return(user, nil).Once()

	err := suite.service.RequestPasswordReset(ctx, "google@example.com")

	suite.Require().NoError(err)
	suite.Empty(suite.mailer.resetTokens, "federated accounts never get reset tokens")
}

func (suite *UserServiceTestSuite) TestRequestPasswordReset_ThrottledInsideInterval() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "secreta123", true)
	recent := time.Now().Add(-time.Minute)
	user.ActionToken = "previous-token"
	user.TokenIssuedAt = &recent

	suite.mockUserRepo.On("FindUserByEmail", ctx, "lectora@example.com").Return(user, nil).Once()

	err := suite.service.RequestPasswordReset(ctx, "lectora@example.com")

	suite.Require().NoError(err)
	suite.Empty(suite.mailer.resetTokens, "re-request inside the minimum interval must not issue a new token")
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRequestPasswordReset_IssuesToken() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "secreta123", true)

	var stored domain.User
	suite.mockUserRepo.On("FindUserByEmail", ctx, "lectora@example.com").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		stored = u
		return u.ActionToken != "" && u.TokenIssuedAt != nil
	})).Return(nil).Once()

	err := suite.service.RequestPasswordReset(ctx, "lectora@example.com")

	suite.Require().NoError(err)
	suite.Require().Len(suite.mailer.resetTokens, 1)
	suite.Equal(stored.ActionToken, suite.mailer.resetTokens[0])

	claims, err := utils.ParseAndValidateJWT(stored.ActionToken, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(utils.PurposeReset, claims.Purpose)
}

// --- ResetPassword ---

func (suite *UserServiceTestSuite) TestResetPassword_RoundTripIsSingleUse() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "vieja123", true)

	token, err := utils.GenerateJWT(user.UserID, "", utils.PurposeReset, "", suite.cfg.JWTSecret, suite.cfg.JWTIssuer, time.Hour)
	suite.Require().NoError(err)
	now := time.Now()
	user.ActionToken = token
	user.TokenIssuedAt = &now

	var stored domain.User
	suite.mockUserRepo.On("FindUserByEmail", ctx, "lectora@example.com").Return(user, nil).Twice()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		stored = u
		return u.ActionToken == "" && u.TokenIssuedAt == nil
	})).Return(nil).Once()

	got, err := suite.service.ResetPassword(ctx, "lectora@example.com", token, "nueva456")
	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.True(utils.CheckPasswordHash("nueva456", stored.PasswordHash))
	suite.False(utils.CheckPasswordHash("vieja123", stored.PasswordHash))

	// The mock returns the same (now consumed) user; replaying the token fails.
	_, err = suite.service.ResetPassword(ctx, "lectora@example.com", token, "otra789")
	suite.Require().ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *UserServiceTestSuite) TestResetPassword_VerifyTokenRejected() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "vieja123", true)

	// A verification token, even when stored, must not reset a password.
	token, err := utils.GenerateJWT(user.UserID, "", utils.PurposeVerify, "", suite.cfg.JWTSecret, suite.cfg.JWTIssuer, time.Hour)
	suite.Require().NoError(err)
	user.ActionToken = token

	suite.mockUserRepo.On("FindUserByEmail", ctx, "lectora@example.com").Return(user, nil).Once()

	_, err = suite.service.ResetPassword(ctx, "lectora@example.com", token, "nueva456")

	suite.Require().ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *UserServiceTestSuite) TestResetPassword_FederatedRejected() {
	ctx := context.Background()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "google@example.com",
		AuthProvider: domain.ProviderGoogle,
		Verified:     true,
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "google@example.com").Return(user, nil).Once()

	_, err := suite.service.ResetPassword(ctx, "google@example.com", "any-token", "nueva456")

	suite.Require().ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *UserServiceTestSuite) TestResetPassword_UnknownEmail() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResetPassword(ctx, "ghost@example.com", "any-token", "nueva456")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound, "an unregistered address is reported as not found, not as a bad token")
}

// --- ChangePassword ---

func (suite *UserServiceTestSuite) TestChangePassword_Success() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "vieja123", true)

	var stored domain.User
	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		stored = u
		return u.UserID == user.UserID
	})).Return(nil).Once()

	err := suite.service.ChangePassword(ctx, user.UserID, "vieja123", "nueva456")

	suite.Require().NoError(err)
	suite.True(utils.CheckPasswordHash("nueva456", stored.PasswordHash))
}

func (suite *UserServiceTestSuite) TestChangePassword_WrongCurrentPassword() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "vieja123", true)
	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	err := suite.service.ChangePassword(ctx, user.UserID, "incorrecta", "nueva456")

	suite.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestChangePassword_FederatedRejected() {
	ctx := context.Background()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "google@example.com",
		AuthProvider: domain.ProviderGoogle,
		Verified:     true,
	}
	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	err := suite.service.ChangePassword(ctx, user.UserID, "any", "nueva456")

	suite.Require().ErrorIs(err, apperrors.ErrWrongProvider)
}

// --- LinkOrCreateGoogleUser ---

func (suite *UserServiceTestSuite) TestLinkOrCreateGoogleUser_ExistingBySubject() {
	ctx := context.Background()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "google@example.com",
		AuthProvider: domain.ProviderGoogle,
		GoogleID:     "google-sub-1",
		Verified:     true,
	}
	suite.mockUserRepo.On("FindUserByGoogleID", ctx, "google-sub-1").Return(user, nil).Once()

	got, err := suite.service.LinkOrCreateGoogleUser(ctx, domain.GoogleUserInfo{
		ID:    "google-sub-1",
		Email: "google@example.com",
		Name:  "Google User",
	})

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestLinkOrCreateGoogleUser_LinksExistingLocalAccount() {
	ctx := context.Background()
	user := suite.localUser("lectora@example.com", "secreta123", false)

	user.AvatarURL = "https://example.com/old.png"

	suite.mockUserRepo.On("FindUserByGoogleID", ctx, "google-sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "lectora@example.com").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.GoogleID == "google-sub-2" && u.Verified && u.AuthProvider == domain.ProviderGoogle
	})).Return(nil).Once()

	got, err := suite.service.LinkOrCreateGoogleUser(ctx, domain.GoogleUserInfo{
		ID:      "google-sub-2",
		Email:   "Lectora@Example.com",
		Name:    "Lectora",
		Picture: "https://example.com/new.png",
	})

	suite.Require().NoError(err)
	suite.Equal("google-sub-2", got.GoogleID)
	suite.Equal(domain.ProviderGoogle, got.AuthProvider, "linking moves the account to the google provider")
	suite.True(got.Verified, "google asserting email ownership verifies the account")
	suite.Equal("https://example.com/new.png", got.AvatarURL, "the google picture replaces the stored avatar")
	suite.NotEmpty(got.PasswordHash, "linking must not drop the local password")
}

func (suite *UserServiceTestSuite) TestLinkOrCreateGoogleUser_AutoProvisions() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByGoogleID", ctx, "google-sub-3").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nueva@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == domain.ProviderGoogle &&
			u.GoogleID == "google-sub-3" &&
			u.Verified &&
			u.PasswordHash == ""
	})).Return(nil).Once()

	got, err := suite.service.LinkOrCreateGoogleUser(ctx, domain.GoogleUserInfo{
		ID:      "google-sub-3",
		Email:   "nueva@example.com",
		Name:    "Nueva",
		Picture: "https://example.com/avatar.png",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ProviderGoogle, got.AuthProvider)
	suite.Equal("https://example.com/avatar.png", got.AvatarURL)
	suite.Require().Len(suite.mailer.welcomes, 1)
	suite.Equal("nueva@example.com", suite.mailer.welcomes[0])
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
