package services

import (
	"context"
	"fmt"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	portsrepo "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/repositories"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// leaderboardSize is how many users each category leaderboard shows.
const leaderboardSize = 3

// statsService implements StatsSvcFacade on top of the stats repository.
// Average ratings are fixed-point decimals rounded to two places so the API
// never leaks float artifacts like 3.6666666666666665.
type statsService struct {
	statsRepo portsrepo.StatsRepository
}

// NewStatsService creates a new instance of statsService.
func NewStatsService(statsRepo portsrepo.StatsRepository) portssvc.StatsSvcFacade {
	return &statsService{statsRepo: statsRepo}
}

// Leaderboard returns the top users per category plus the total user count.
func (s *statsService) Leaderboard(ctx context.Context) (*domain.Leaderboard, error) {
	totalUsers, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	books, err := s.statsRepo.BookStats(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate books: %w", err)
	}
	series, err := s.statsRepo.SeriesStats(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate series: %w", err)
	}
	movies, err := s.statsRepo.MovieStats(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate movies: %w", err)
	}

	return &domain.Leaderboard{
		TopBooks:   books.TopUsers,
		TopSeries:  series.TopUsers,
		TopMovies:  movies.TopUsers,
		TotalUsers: totalUsers,
	}, nil
}

func (s *statsService) BookStats(ctx context.Context) (*domain.CategoryStats, error) {
	return s.statsRepo.BookStats(ctx, leaderboardSize)
}

func (s *statsService) MovieStats(ctx context.Context) (*domain.CategoryStats, error) {
	return s.statsRepo.MovieStats(ctx, leaderboardSize)
}

func (s *statsService) SeriesStats(ctx context.Context) (*domain.CategoryStats, error) {
	return s.statsRepo.SeriesStats(ctx, leaderboardSize)
}

// UserStats returns the caller's own counts and rounded average ratings.
func (s *statsService) UserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	counts, err := s.statsRepo.UserCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user catalog: %w", err)
	}

	return &domain.UserStats{
		Books:         counts.Books,
		Series:        counts.Series,
		Movies:        counts.Movies,
		Pending:       counts.Pending,
		AvgBookRating: roundedAverage(counts.AvgBookRating),
		AvgSeries:     roundedAverage(counts.AvgSeriesRating),
		AvgMovies:     roundedAverage(counts.AvgMovieRating),
	}, nil
}

// roundedAverage converts a raw average to a two-place decimal, keeping nil
// for categories without rated items.
func roundedAverage(avg *float64) *decimal.Decimal {
	if avg == nil {
		return nil
	}
	d := decimal.NewFromFloat(*avg).Round(2)
	return &d
}
