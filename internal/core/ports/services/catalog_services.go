package services

import (
	"context"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
)

// BookSvcFacade manages a user's book catalog. Listings are newest-first and
// page-numbered; the int results are the total item count for page math.
type BookSvcFacade interface {
	ListBooks(ctx context.Context, userID string, page int) ([]domain.Book, int, error)
	// SearchBooks matches free text against title/author/genre/description.
	// An empty result set yields apperrors.ErrNotFound.
	SearchBooks(ctx context.Context, userID, text string, page int) ([]domain.Book, int, error)
	GetBook(ctx context.Context, userID, bookID string) (*domain.Book, error)
	AddBook(ctx context.Context, userID string, req dto.BookRequest) (*domain.Book, error)
	UpdateBook(ctx context.Context, userID, bookID string, req dto.BookRequest) (*domain.Book, error)
	DeleteBook(ctx context.Context, userID, bookID string) error
}

// MovieSvcFacade manages a user's movie catalog.
type MovieSvcFacade interface {
	ListMovies(ctx context.Context, userID string, page int) ([]domain.Movie, int, error)
	SearchMovies(ctx context.Context, userID, text string, page int) ([]domain.Movie, int, error)
	GetMovie(ctx context.Context, userID, movieID string) (*domain.Movie, error)
	AddMovie(ctx context.Context, userID string, req dto.MovieRequest) (*domain.Movie, error)
	UpdateMovie(ctx context.Context, userID, movieID string, req dto.MovieRequest) (*domain.Movie, error)
	DeleteMovie(ctx context.Context, userID, movieID string) error
}

// SeriesSvcFacade manages a user's series catalog.
type SeriesSvcFacade interface {
	ListSeries(ctx context.Context, userID string, page int) ([]domain.Series, int, error)
	SearchSeries(ctx context.Context, userID, text string, page int) ([]domain.Series, int, error)
	GetSeries(ctx context.Context, userID, seriesID string) (*domain.Series, error)
	AddSeries(ctx context.Context, userID string, req dto.SeriesRequest) (*domain.Series, error)
	UpdateSeries(ctx context.Context, userID, seriesID string, req dto.SeriesRequest) (*domain.Series, error)
	DeleteSeries(ctx context.Context, userID, seriesID string) error
}

// PendingSvcFacade manages the pending-to-consume list.
type PendingSvcFacade interface {
	ListPending(ctx context.Context, userID string, page int) ([]domain.PendingItem, int, error)
	SearchPending(ctx context.Context, userID, text string, page int) ([]domain.PendingItem, int, error)
	GetPending(ctx context.Context, userID, pendingID string) (*domain.PendingItem, error)
	AddPending(ctx context.Context, userID string, req dto.PendingRequest) (*domain.PendingItem, error)
	UpdatePending(ctx context.Context, userID, pendingID string, req dto.PendingRequest) (*domain.PendingItem, error)
	DeletePending(ctx context.Context, userID, pendingID string) error

	// MoveToBooks turns a pending item into a catalog book atomically.
	MoveToBooks(ctx context.Context, userID string, req dto.MovimientoRequest) error
}
