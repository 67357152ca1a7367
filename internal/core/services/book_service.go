package services

import (
	"context"
	"fmt"
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/apperrors"
	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	portsrepo "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/repositories"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

// bookService implements BookSvcFacade on top of the book repository.
type bookService struct {
	bookRepo portsrepo.BookRepository
}

// NewBookService creates a new instance of bookService.
func NewBookService(bookRepo portsrepo.BookRepository) portssvc.BookSvcFacade {
	return &bookService{bookRepo: bookRepo}
}

func (s *bookService) ListBooks(ctx context.Context, userID string, page int) ([]domain.Book, int, error) {
	p := pagination.Resolve(page)

	total, err := s.bookRepo.CountBooks(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	books, err := s.bookRepo.FindBooks(ctx, userID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	return books, total, nil
}

func (s *bookService) SearchBooks(ctx context.Context, userID, text string, page int) ([]domain.Book, int, error) {
	p := pagination.Resolve(page)

	books, total, err := s.bookRepo.SearchBooks(ctx, userID, text, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search books: %w", err)
	}
	if total == 0 {
		return nil, 0, apperrors.ErrNotFound
	}
	return books, total, nil
}

func (s *bookService) GetBook(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	return s.bookRepo.FindBookByID(ctx, userID, bookID)
}

func (s *bookService) AddBook(ctx context.Context, userID string, req dto.BookRequest) (*domain.Book, error) {
	if err := validateConsumptionDate(req.Date); err != nil {
		return nil, err
	}

	book := domain.Book{
		BookID:      uuid.NewString(),
		Date:        req.Date,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Description: req.Description,
		Rating:      req.Rating,
	}

	if err := s.bookRepo.SaveBook(ctx, userID, book); err != nil {
		return nil, fmt.Errorf("failed to save book: %w", err)
	}
	return &book, nil
}

func (s *bookService) UpdateBook(ctx context.Context, userID, bookID string, req dto.BookRequest) (*domain.Book, error) {
	if err := validateConsumptionDate(req.Date); err != nil {
		return nil, err
	}

	book := domain.Book{
		BookID:      bookID,
		Date:        req.Date,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Description: req.Description,
		Rating:      req.Rating,
	}

	if err := s.bookRepo.UpdateBook(ctx, userID, book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, userID, bookID string) error {
	return s.bookRepo.DeleteBook(ctx, userID, bookID)
}

// validateConsumptionDate rejects catalog dates in the future. Items record
// what was already read or watched.
func validateConsumptionDate(date time.Time) error {
	if date.After(time.Now()) {
		return apperrors.ErrValidation
	}
	return nil
}
