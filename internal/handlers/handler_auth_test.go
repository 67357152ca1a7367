package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/apperrors"
	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/handlers"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/config"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// newTestConfig returns the minimal config the routes need.
func newTestConfig() *config.Config {
	return &config.Config{
		IsProduction:           true, // skips swagger registration
		JWTSecret:              testJWTSecret,
		JWTIssuer:              "bm-test",
		RefreshTokenCookieName: "refreshToken",
		RefreshTokenCookiePath: "/api/auth",
	}
}

// newTestRouter wires the full route table against the given mocks.
func newTestRouter(services *portssvc.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	_ = dto.RegisterCustomValidators()
	r := gin.New()
	handlers.RegisterRoutes(r, newTestConfig(), services)
	return r
}

// generateTestToken creates an access token the auth middleware accepts.
func generateTestToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, "Lectora", "", "", testJWTSecret, "bm-test", time.Hour)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

type AuthHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockUserService  *MockUserService
	mockTokenService *MockTokenService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		User:               suite.mockUserService,
		TokenService:       suite.mockTokenService,
		GoogleOAuthHandler: new(MockGoogleOAuthService),
		Book:               new(MockBookService),
		Movie:              new(MockMovieService),
		Series:             new(MockSeriesService),
		Pending:            new(MockPendingService),
		Stats:              new(MockStatsService),
	})
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: uuid.NewString(), Name: "Lectora", Email: "lectora@example.com", Verified: true}
	expiry := time.Now().Add(24 * time.Hour)

	suite.mockUserService.On("AuthenticateUser", mock.Anything, "lectora@example.com", "secret123").
		Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, user).
		Return("access-token", time.Now().Add(15*time.Minute), nil).Once()
	suite.mockTokenService.On("GenerateRefreshToken", mock.Anything, user, false).
		Return("refresh-token", expiry, nil).Once()

	w := suite.postJSON("/api/auth/login", dto.LoginRequest{Email: "lectora@example.com", Password: "secret123"})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("access-token", resp.Token)
	suite.Equal("Lectora", resp.Name)

	// Refresh token travels only in the cookie.
	cookies := w.Result().Cookies()
	var refreshCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == "refreshToken" {
			refreshCookie = c
		}
	}
	suite.Require().NotNil(refreshCookie, "expected refresh token cookie")
	suite.Equal("refresh-token", refreshCookie.Value)
	suite.True(refreshCookie.HttpOnly)
	suite.Equal("/api/auth", refreshCookie.Path)
	suite.NotContains(w.Body.String(), "refresh-token")

	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "lectora@example.com", "wrong").
		Return(nil, apperrors.ErrInvalidCredentials).Once()

	w := suite.postJSON("/api/auth/login", dto.LoginRequest{Email: "lectora@example.com", Password: "wrong"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Usuario o contrasena incorrectos")
	suite.mockTokenService.AssertNotCalled(suite.T(), "GenerateAccessToken")
}

func (suite *AuthHandlerTestSuite) TestLogin_UnknownEmailLooksLikeBadCredentials() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "ghost@example.com", "anything").
		Return(nil, apperrors.ErrInvalidCredentials).Once()

	w := suite.postJSON("/api/auth/login", dto.LoginRequest{Email: "ghost@example.com", Password: "anything"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Usuario o contrasena incorrectos")
}

func (suite *AuthHandlerTestSuite) TestLogin_FederatedAccountRejected() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "google@example.com", "secret123").
		Return(nil, apperrors.ErrWrongProvider).Once()

	w := suite.postJSON("/api/auth/login", dto.LoginRequest{Email: "google@example.com", Password: "secret123"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Google")
}

func (suite *AuthHandlerTestSuite) TestLogin_UnverifiedAccountIsForbidden() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "nueva@example.com", "secret123").
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.postJSON("/api/auth/login", dto.LoginRequest{Email: "nueva@example.com", Password: "secret123"})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	req := dto.RegisterRequest{
		Name:      "Lectora",
		Email:     "lectora@example.com",
		Password1: "secret123",
		Password2: "secret123",
	}
	suite.mockUserService.On("RegisterUser", mock.Anything, req).
		Return(&domain.User{UserID: uuid.NewString(), Name: "Lectora"}, nil).Once()

	w := suite.postJSON("/api/auth/register", req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_PasswordMismatchRejectedAtBinding() {
	w := suite.postJSON("/api/auth/register", dto.RegisterRequest{
		Name:      "Lectora",
		Email:     "lectora@example.com",
		Password1: "secret123",
		Password2: "different",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "RegisterUser")
}

func (suite *AuthHandlerTestSuite) TestConfirmar_InvalidToken() {
	suite.mockUserService.On("ConfirmEmail", mock.Anything, "lectora@example.com", "bad-token").
		Return(apperrors.ErrInvalidToken).Once()

	w := suite.postJSON("/api/auth/confirmar", dto.ConfirmRequest{Email: "lectora@example.com", Token: "bad-token"})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestConfirmar_UnknownEmail() {
	suite.mockUserService.On("ConfirmEmail", mock.Anything, "desconocida@example.com", "some-token").
		Return(apperrors.ErrNotFound).Once()

	w := suite.postJSON("/api/auth/confirmar", dto.ConfirmRequest{Email: "desconocida@example.com", Token: "some-token"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AuthHandlerTestSuite) TestOlvidoPassword_AlwaysGenericSuccess() {
	suite.mockUserService.On("RequestPasswordReset", mock.Anything, "desconocida@example.com").
		Return(nil).Once()

	w := suite.postJSON("/api/auth/olvido-password", dto.ForgotPasswordRequest{Email: "desconocida@example.com"})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Si el email esta registrado")
}

func (suite *AuthHandlerTestSuite) TestRestablecerPassword_Success() {
	suite.mockUserService.On("ResetPassword", mock.Anything, "lectora@example.com", "reset-token", "newsecret").
		Return(&domain.User{UserID: uuid.NewString(), Name: "Lectora"}, nil).Once()

	w := suite.postJSON("/api/auth/restablecer-password", dto.ResetPasswordRequest{
		Email:        "lectora@example.com",
		Token:        "reset-token",
		NewPassword:  "newsecret",
		NewPassword2: "newsecret",
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Lectora")
}

func (suite *AuthHandlerTestSuite) TestRestablecerPassword_Mismatch() {
	w := suite.postJSON("/api/auth/restablecer-password", dto.ResetPasswordRequest{
		Email:        "lectora@example.com",
		Token:        "reset-token",
		NewPassword:  "newsecret",
		NewPassword2: "different",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Las contrasenas no coinciden")
	suite.mockUserService.AssertNotCalled(suite.T(), "ResetPassword")
}

func (suite *AuthHandlerTestSuite) TestRestablecerPassword_UnknownEmail() {
	suite.mockUserService.On("ResetPassword", mock.Anything, "desconocida@example.com", "reset-token", "newsecret").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.postJSON("/api/auth/restablecer-password", dto.ResetPasswordRequest{
		Email:        "desconocida@example.com",
		Token:        "reset-token",
		NewPassword:  "newsecret",
		NewPassword2: "newsecret",
	})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRefreshToken_Success() {
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Name: "Lectora", Verified: true}
	claims := &utils.AppClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}

	suite.mockTokenService.On("ValidateRefreshToken", mock.Anything, "refresh-token").
		Return(claims, nil).Once()
	suite.mockUserService.On("GetUserByID", mock.Anything, userID).
		Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, user).
		Return("new-access-token", time.Now().Add(15*time.Minute), nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh-token"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RefreshTokenResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("new-access-token", resp.Token)
}

func (suite *AuthHandlerTestSuite) TestRefreshToken_MissingCookie() {
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/refresh-token", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokenService.AssertNotCalled(suite.T(), "ValidateRefreshToken")
}

func (suite *AuthHandlerTestSuite) TestRefreshToken_RevokedTokenClearsCookie() {
	suite.mockTokenService.On("ValidateRefreshToken", mock.Anything, "revoked").
		Return(nil, apperrors.ErrInvalidToken).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "revoked"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == "refreshToken" {
			suite.Empty(c.Value)
			suite.Negative(c.MaxAge)
		}
	}
}

func (suite *AuthHandlerTestSuite) TestLogout_RevokesAndClearsCookie() {
	suite.mockTokenService.On("RevokeRefreshToken", mock.Anything, "refresh-token").
		Return(nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh-token"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestCambiarPassword_RequiresAuth() {
	w := suite.postJSON("/api/cambiar-password", dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
		NewPassword2:    "newsecret",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "ChangePassword")
}

func (suite *AuthHandlerTestSuite) TestCambiarPassword_Success() {
	userID := uuid.NewString()
	suite.mockUserService.On("ChangePassword", mock.Anything, userID, "secret123", "newsecret").
		Return(nil).Once()

	payload, _ := json.Marshal(dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
		NewPassword2:    "newsecret",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/cambiar-password", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestCambiarPassword_WrongCurrentPassword() {
	userID := uuid.NewString()
	suite.mockUserService.On("ChangePassword", mock.Anything, userID, "incorrecta", "newsecret").
		Return(apperrors.ErrInvalidCredentials).Once()

	payload, _ := json.Marshal(dto.ChangePasswordRequest{
		CurrentPassword: "incorrecta",
		NewPassword:     "newsecret",
		NewPassword2:    "newsecret",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/cambiar-password", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestPerfil_ReturnsAuthenticatedUser() {
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Name: "Lectora", Email: "lectora@example.com", Verified: true}
	suite.mockUserService.On("GetUserByID", mock.Anything, userID).
		Return(user, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/perfil", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("lectora@example.com", resp.Email)
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
