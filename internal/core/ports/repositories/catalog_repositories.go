package repositories

import (
	"context"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
)

// BookRepository defines persistence for a user's book catalog.
// List and search results come back newest-first by consumption date.
type BookRepository interface {
	FindBooks(ctx context.Context, userID string, limit, offset int) ([]domain.Book, error)
	CountBooks(ctx context.Context, userID string) (int, error)
	// SearchBooks matches text case-insensitively against title, author,
	// genre and description. The int result is the total match count.
	SearchBooks(ctx context.Context, userID, text string, limit, offset int) ([]domain.Book, int, error)
	FindBookByID(ctx context.Context, userID, bookID string) (*domain.Book, error)
	SaveBook(ctx context.Context, userID string, book domain.Book) error
	UpdateBook(ctx context.Context, userID string, book domain.Book) error
	DeleteBook(ctx context.Context, userID, bookID string) error
}

// MovieRepository defines persistence for a user's movie catalog.
type MovieRepository interface {
	FindMovies(ctx context.Context, userID string, limit, offset int) ([]domain.Movie, error)
	CountMovies(ctx context.Context, userID string) (int, error)
	SearchMovies(ctx context.Context, userID, text string, limit, offset int) ([]domain.Movie, int, error)
	FindMovieByID(ctx context.Context, userID, movieID string) (*domain.Movie, error)
	SaveMovie(ctx context.Context, userID string, movie domain.Movie) error
	UpdateMovie(ctx context.Context, userID string, movie domain.Movie) error
	DeleteMovie(ctx context.Context, userID, movieID string) error
}

// SeriesRepository defines persistence for a user's series catalog.
type SeriesRepository interface {
	FindSeries(ctx context.Context, userID string, limit, offset int) ([]domain.Series, error)
	CountSeries(ctx context.Context, userID string) (int, error)
	SearchSeries(ctx context.Context, userID, text string, limit, offset int) ([]domain.Series, int, error)
	FindSeriesByID(ctx context.Context, userID, seriesID string) (*domain.Series, error)
	SaveSeries(ctx context.Context, userID string, series domain.Series) error
	UpdateSeries(ctx context.Context, userID string, series domain.Series) error
	DeleteSeries(ctx context.Context, userID, seriesID string) error
}

// PendingRepository defines persistence for the pending-to-consume list.
type PendingRepository interface {
	FindPendingItems(ctx context.Context, userID string, limit, offset int) ([]domain.PendingItem, error)
	CountPendingItems(ctx context.Context, userID string) (int, error)
	SearchPendingItems(ctx context.Context, userID, text string, limit, offset int) ([]domain.PendingItem, int, error)
	FindPendingItemByID(ctx context.Context, userID, pendingID string) (*domain.PendingItem, error)
	SavePendingItem(ctx context.Context, userID string, item domain.PendingItem) error
	UpdatePendingItem(ctx context.Context, userID string, item domain.PendingItem) error
	DeletePendingItem(ctx context.Context, userID, pendingID string) error

	// MovePendingToBook appends the book and removes the pending item in one
	// transaction. Returns apperrors.ErrNotFound when the pending item does
	// not belong to the user.
	MovePendingToBook(ctx context.Context, userID, pendingID string, book domain.Book) error
}
