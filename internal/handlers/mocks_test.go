package handlers_test

import (
	"context"
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ConfirmEmail(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}
func (m *MockUserService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockUserService) ResetPassword(ctx context.Context, email, token, newPassword string) (*domain.User, error) {
	args := m.Called(ctx, email, token, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}
func (m *MockUserService) LinkOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User, rememberMe bool) (string, time.Time, error) {
	args := m.Called(ctx, user, rememberMe)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*utils.AppClaims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.AppClaims), args.Error(1)
}
func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}
func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}
func (m *MockGoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}
func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}
func (m *MockGoogleOAuthService) ValidateFirebaseIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)

// --- Mock BookService ---
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) ListBooks(ctx context.Context, userID string, page int) ([]domain.Book, int, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Book), args.Int(1), args.Error(2)
}
func (m *MockBookService) SearchBooks(ctx context.Context, userID, text string, page int) ([]domain.Book, int, error) {
	args := m.Called(ctx, userID, text, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Book), args.Int(1), args.Error(2)
}
func (m *MockBookService) GetBook(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) AddBook(ctx context.Context, userID string, req dto.BookRequest) (*domain.Book, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) UpdateBook(ctx context.Context, userID, bookID string, req dto.BookRequest) (*domain.Book, error) {
	args := m.Called(ctx, userID, bookID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) DeleteBook(ctx context.Context, userID, bookID string) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

var _ portssvc.BookSvcFacade = (*MockBookService)(nil)

// --- Mock MovieService ---
type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) ListMovies(ctx context.Context, userID string, page int) ([]domain.Movie, int, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Movie), args.Int(1), args.Error(2)
}
func (m *MockMovieService) SearchMovies(ctx context.Context, userID, text string, page int) ([]domain.Movie, int, error) {
	args := m.Called(ctx, userID, text, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Movie), args.Int(1), args.Error(2)
}
func (m *MockMovieService) GetMovie(ctx context.Context, userID, movieID string) (*domain.Movie, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}
func (m *MockMovieService) AddMovie(ctx context.Context, userID string, req dto.MovieRequest) (*domain.Movie, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}
func (m *MockMovieService) UpdateMovie(ctx context.Context, userID, movieID string, req dto.MovieRequest) (*domain.Movie, error) {
	args := m.Called(ctx, userID, movieID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}
func (m *MockMovieService) DeleteMovie(ctx context.Context, userID, movieID string) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

var _ portssvc.MovieSvcFacade = (*MockMovieService)(nil)

// --- Mock SeriesService ---
type MockSeriesService struct {
	mock.Mock
}

func (m *MockSeriesService) ListSeries(ctx context.Context, userID string, page int) ([]domain.Series, int, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Series), args.Int(1), args.Error(2)
}
func (m *MockSeriesService) SearchSeries(ctx context.Context, userID, text string, page int) ([]domain.Series, int, error) {
	args := m.Called(ctx, userID, text, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Series), args.Int(1), args.Error(2)
}
func (m *MockSeriesService) GetSeries(ctx context.Context, userID, seriesID string) (*domain.Series, error) {
	args := m.Called(ctx, userID, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Series), args.Error(1)
}
func (m *MockSeriesService) AddSeries(ctx context.Context, userID string, req dto.SeriesRequest) (*domain.Series, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Series), args.Error(1)
}
func (m *MockSeriesService) UpdateSeries(ctx context.Context, userID, seriesID string, req dto.SeriesRequest) (*domain.Series, error) {
	args := m.Called(ctx, userID, seriesID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Series), args.Error(1)
}
func (m *MockSeriesService) DeleteSeries(ctx context.Context, userID, seriesID string) error {
	args := m.Called(ctx, userID, seriesID)
	return args.Error(0)
}

var _ portssvc.SeriesSvcFacade = (*MockSeriesService)(nil)

// --- Mock PendingService ---
type MockPendingService struct {
	mock.Mock
}

func (m *MockPendingService) ListPending(ctx context.Context, userID string, page int) ([]domain.PendingItem, int, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PendingItem), args.Int(1), args.Error(2)
}
func (m *MockPendingService) SearchPending(ctx context.Context, userID, text string, page int) ([]domain.PendingItem, int, error) {
	args := m.Called(ctx, userID, text, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PendingItem), args.Int(1), args.Error(2)
}
func (m *MockPendingService) GetPending(ctx context.Context, userID, pendingID string) (*domain.PendingItem, error) {
	args := m.Called(ctx, userID, pendingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingItem), args.Error(1)
}
func (m *MockPendingService) AddPending(ctx context.Context, userID string, req dto.PendingRequest) (*domain.PendingItem, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingItem), args.Error(1)
}
func (m *MockPendingService) UpdatePending(ctx context.Context, userID, pendingID string, req dto.PendingRequest) (*domain.PendingItem, error) {
	args := m.Called(ctx, userID, pendingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingItem), args.Error(1)
}
func (m *MockPendingService) DeletePending(ctx context.Context, userID, pendingID string) error {
	args := m.Called(ctx, userID, pendingID)
	return args.Error(0)
}
func (m *MockPendingService) MoveToBooks(ctx context.Context, userID string, req dto.MovimientoRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

var _ portssvc.PendingSvcFacade = (*MockPendingService)(nil)

// --- Mock StatsService ---
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Leaderboard(ctx context.Context) (*domain.Leaderboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Leaderboard), args.Error(1)
}
func (m *MockStatsService) BookStats(ctx context.Context) (*domain.CategoryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryStats), args.Error(1)
}
func (m *MockStatsService) MovieStats(ctx context.Context) (*domain.CategoryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryStats), args.Error(1)
}
func (m *MockStatsService) SeriesStats(ctx context.Context) (*domain.CategoryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryStats), args.Error(1)
}
func (m *MockStatsService) UserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

var _ portssvc.StatsSvcFacade = (*MockStatsService)(nil)
