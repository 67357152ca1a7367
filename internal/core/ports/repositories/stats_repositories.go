package repositories

import (
	"context"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
)

// UserCatalogCounts are one user's raw per-category aggregates. Averages are
// nil when the category has no rated items; the service layer turns them
// into rounded decimals.
type UserCatalogCounts struct {
	Books   int
	Movies  int
	Series  int
	Pending int

	AvgBookRating   *float64
	AvgMovieRating  *float64
	AvgSeriesRating *float64
}

// StatsRepository aggregates catalog data across users for the leaderboard.
type StatsRepository interface {
	// CountUsers returns the total number of registered users.
	CountUsers(ctx context.Context) (int, error)

	// BookStats returns the cross-user book aggregate with the top N users.
	BookStats(ctx context.Context, topN int) (*domain.CategoryStats, error)
	MovieStats(ctx context.Context, topN int) (*domain.CategoryStats, error)
	SeriesStats(ctx context.Context, topN int) (*domain.CategoryStats, error)

	// UserCounts returns one user's own catalog aggregates.
	UserCounts(ctx context.Context, userID string) (*UserCatalogCounts, error)
}
