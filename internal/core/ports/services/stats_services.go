package services

import (
	"context"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
)

// StatsSvcFacade computes the cross-user leaderboard and per-user summaries.
type StatsSvcFacade interface {
	// Leaderboard returns the top users per category plus the user count.
	Leaderboard(ctx context.Context) (*domain.Leaderboard, error)

	// BookStats returns the cross-user aggregate for books.
	BookStats(ctx context.Context) (*domain.CategoryStats, error)
	MovieStats(ctx context.Context) (*domain.CategoryStats, error)
	SeriesStats(ctx context.Context) (*domain.CategoryStats, error)

	// UserStats returns the caller's own counts and average ratings.
	UserStats(ctx context.Context, userID string) (*domain.UserStats, error)
}
