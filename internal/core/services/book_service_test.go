package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/apperrors"
	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	"github.com/biblioteca-multimedia/bm_backend/internal/core/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock BookRepository ---

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindBooks(ctx context.Context, userID string, limit, offset int) ([]domain.Book, error) {
	args := m.Called(ctx, userID, limit, offset)
	var books []domain.Book
	if args.Get(0) != nil {
		books = args.Get(0).([]domain.Book)
	}
	return books, args.Error(1)
}

func (m *MockBookRepository) CountBooks(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookRepository) SearchBooks(ctx context.Context, userID, text string, limit, offset int) ([]domain.Book, int, error) {
	args := m.Called(ctx, userID, text, limit, offset)
	var books []domain.Book
	if args.Get(0) != nil {
		books = args.Get(0).([]domain.Book)
	}
	return books, args.Int(1), args.Error(2)
}

func (m *MockBookRepository) FindBookByID(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, userID, bookID)
	var book *domain.Book
	if args.Get(0) != nil {
		book = args.Get(0).(*domain.Book)
	}
	return book, args.Error(1)
}

func (m *MockBookRepository) SaveBook(ctx context.Context, userID string, book domain.Book) error {
	args := m.Called(ctx, userID, book)
	return args.Error(0)
}

func (m *MockBookRepository) UpdateBook(ctx context.Context, userID string, book domain.Book) error {
	args := m.Called(ctx, userID, book)
	return args.Error(0)
}

func (m *MockBookRepository) DeleteBook(ctx context.Context, userID, bookID string) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func TestBookService_ListBooksResolvesPages(t *testing.T) {
	repo := new(MockBookRepository)
	svc := services.NewBookService(repo)
	ctx := context.Background()
	userID := uuid.NewString()

	repo.On("CountBooks", ctx, userID).Return(45, nil).Once()
	repo.On("FindBooks", ctx, userID, pagination.PageSize, 2*pagination.PageSize).
		Return([]domain.Book{{Title: "Rayuela"}}, nil).Once()

	books, total, err := svc.ListBooks(ctx, userID, 3)

	require.NoError(t, err)
	assert.Equal(t, 45, total)
	assert.Len(t, books, 1)
	repo.AssertExpectations(t)
}

func TestBookService_ListBooksClampsPageNumber(t *testing.T) {
	repo := new(MockBookRepository)
	svc := services.NewBookService(repo)
	ctx := context.Background()
	userID := uuid.NewString()

	repo.On("CountBooks", ctx, userID).Return(0, nil).Once()
	repo.On("FindBooks", ctx, userID, pagination.PageSize, 0).Return([]domain.Book{}, nil).Once()

	_, total, err := svc.ListBooks(ctx, userID, -2)

	require.NoError(t, err)
	assert.Zero(t, total)
	repo.AssertExpectations(t)
}

func TestBookService_SearchBooksEmptyResultIsNotFound(t *testing.T) {
	repo := new(MockBookRepository)
	svc := services.NewBookService(repo)
	ctx := context.Background()
	userID := uuid.NewString()

	repo.On("SearchBooks", ctx, userID, "inexistente", pagination.PageSize, 0).
		Return([]domain.Book{}, 0, nil).Once()

	_, _, err := svc.SearchBooks(ctx, userID, "inexistente", 1)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBookService_AddBookRejectsFutureDate(t *testing.T) {
	repo := new(MockBookRepository)
	svc := services.NewBookService(repo)
	ctx := context.Background()

	_, err := svc.AddBook(ctx, uuid.NewString(), dto.BookRequest{
		Date:   time.Now().Add(48 * time.Hour),
		Title:  "Del Futuro",
		Author: "Nadie",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "SaveBook", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookService_AddBookAssignsID(t *testing.T) {
	repo := new(MockBookRepository)
	svc := services.NewBookService(repo)
	ctx := context.Background()
	userID := uuid.NewString()
	rating := 5

	repo.On("SaveBook", ctx, userID, mock.MatchedBy(func(b domain.Book) bool {
		return b.BookID != "" && b.Title == "Rayuela" && b.Rating != nil && *b.Rating == 5
	})).Return(nil).Once()

	book, err := svc.AddBook(ctx, userID, dto.BookRequest{
		Date:   time.Now().Add(-24 * time.Hour),
		Title:  "Rayuela",
		Author: "Cortazar",
		Rating: &rating,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, book.BookID)
	repo.AssertExpectations(t)
}

func TestBookService_UpdateBookKeepsID(t *testing.T) {
	repo := new(MockBookRepository)
	svc := services.NewBookService(repo)
	ctx := context.Background()
	userID := uuid.NewString()
	bookID := uuid.NewString()

	repo.On("UpdateBook", ctx, userID, mock.MatchedBy(func(b domain.Book) bool {
		return b.BookID == bookID
	})).Return(apperrors.ErrNotFound).Once()

	_, err := svc.UpdateBook(ctx, userID, bookID, dto.BookRequest{
		Date:   time.Now().Add(-time.Hour),
		Title:  "Rayuela",
		Author: "Cortazar",
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
