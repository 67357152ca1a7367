package pgsql

import (
	"context"
	"fmt"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	portsrepo "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStatsRepository struct {
	BaseRepository
}

func newPgxStatsRepository(pool *pgxpool.Pool) portsrepo.StatsRepository {
	return &PgxStatsRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.StatsRepository = (*PgxStatsRepository)(nil)

func (r *PgxStatsRepository) CountUsers(ctx context.Context) (int, error) {
	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

// categoryStats aggregates one catalog table across all users. The table name
// is interpolated from a fixed caller-supplied constant, never from input.
func (r *PgxStatsRepository) categoryStats(ctx context.Context, table string, topN int) (*domain.CategoryStats, error) {
	stats := &domain.CategoryStats{TopUsers: []domain.TopUser{}}

	query := fmt.Sprintf(`
        SELECT COUNT(*), COUNT(DISTINCT user_id) FROM %s;
    `, table)
	err := r.Pool.QueryRow(ctx, query).Scan(&stats.Total, &stats.UsersWithItems)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", table, err)
	}

	topQuery := fmt.Sprintf(`
        SELECT u.user_id, u.name, COUNT(*) AS cnt
        FROM %s c
        JOIN users u ON u.user_id = c.user_id
        GROUP BY u.user_id, u.name
        ORDER BY cnt DESC, u.name
        LIMIT $1;
    `, table)
	rows, err := r.Pool.Query(ctx, topQuery, topN)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users for %s: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var t domain.TopUser
		if err := rows.Scan(&t.UserID, &t.Name, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top user row: %w", err)
		}
		stats.TopUsers = append(stats.TopUsers, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating top user rows: %w", rows.Err())
	}
	return stats, nil
}

func (r *PgxStatsRepository) BookStats(ctx context.Context, topN int) (*domain.CategoryStats, error) {
	return r.categoryStats(ctx, "books", topN)
}

func (r *PgxStatsRepository) MovieStats(ctx context.Context, topN int) (*domain.CategoryStats, error) {
	return r.categoryStats(ctx, "movies", topN)
}

func (r *PgxStatsRepository) SeriesStats(ctx context.Context, topN int) (*domain.CategoryStats, error) {
	return r.categoryStats(ctx, "series", topN)
}

func (r *PgxStatsRepository) UserCounts(ctx context.Context, userID string) (*portsrepo.UserCatalogCounts, error) {
	counts := &portsrepo.UserCatalogCounts{}
	query := `
        SELECT
            (SELECT COUNT(*) FROM books WHERE user_id = $1),
            (SELECT COUNT(*) FROM movies WHERE user_id = $1),
            (SELECT COUNT(*) FROM series WHERE user_id = $1),
            (SELECT COUNT(*) FROM pending_items WHERE user_id = $1),
            (SELECT AVG(rating) FROM books WHERE user_id = $1 AND rating IS NOT NULL),
            (SELECT AVG(rating) FROM movies WHERE user_id = $1 AND rating IS NOT NULL),
            (SELECT AVG(rating) FROM series WHERE user_id = $1 AND rating IS NOT NULL);
    `
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&counts.Books, &counts.Movies, &counts.Series, &counts.Pending,
		&counts.AvgBookRating, &counts.AvgMovieRating, &counts.AvgSeriesRating,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user catalog: %w", err)
	}
	return counts, nil
}
