package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/biblioteca-multimedia/bm_backend/internal/apperrors"
	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	portsrepo "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/repositories"
	"github.com/biblioteca-multimedia/bm_backend/internal/models"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSeriesRepository struct {
	BaseRepository
}

func newPgxSeriesRepository(pool *pgxpool.Pool) portsrepo.SeriesRepository {
	return &PgxSeriesRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SeriesRepository = (*PgxSeriesRepository)(nil)

const seriesColumns = `series_id, user_id, consumed_at, title, director, description, rating`

func scanSeriesRows(rows pgx.Rows) ([]domain.Series, error) {
	defer rows.Close()
	series := []domain.Series{}
	for rows.Next() {
		var m models.Series
		if err := rows.Scan(&m.SeriesID, &m.UserID, &m.Date, &m.Title, &m.Director, &m.Description, &m.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan series row: %w", err)
		}
		series = append(series, mapping.ToDomainSeries(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating series rows: %w", rows.Err())
	}
	return series, nil
}

func (r *PgxSeriesRepository) FindSeries(ctx context.Context, userID string, limit, offset int) ([]domain.Series, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM series
        WHERE user_id = $1
        ORDER BY consumed_at DESC, series_id
        LIMIT $2 OFFSET $3;
    `, seriesColumns)
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	return scanSeriesRows(rows)
}

func (r *PgxSeriesRepository) CountSeries(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM series WHERE user_id = $1;`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count series: %w", err)
	}
	return total, nil
}

func (r *PgxSeriesRepository) SearchSeries(ctx context.Context, userID, text string, limit, offset int) ([]domain.Series, int, error) {
	pattern := "%" + text + "%"
	filter := `
        user_id = $1 AND (
            title ILIKE $2 OR COALESCE(director, '') ILIKE $2 OR COALESCE(description, '') ILIKE $2
        )`

	var total int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM series WHERE `+filter+`;`, userID, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count series matches: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT %s FROM series
        WHERE %s
        ORDER BY consumed_at DESC, series_id
        LIMIT $3 OFFSET $4;
    `, seriesColumns, filter)
	rows, err := r.Pool.Query(ctx, query, userID, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search series: %w", err)
	}
	series, err := scanSeriesRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return series, total, nil
}

func (r *PgxSeriesRepository) FindSeriesByID(ctx context.Context, userID, seriesID string) (*domain.Series, error) {
	query := fmt.Sprintf(`SELECT %s FROM series WHERE user_id = $1 AND series_id = $2;`, seriesColumns)
	var m models.Series
	err := r.Pool.QueryRow(ctx, query, userID, seriesID).Scan(
		&m.SeriesID, &m.UserID, &m.Date, &m.Title, &m.Director, &m.Description, &m.Rating,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find series %s: %w", seriesID, err)
	}
	s := mapping.ToDomainSeries(m)
	return &s, nil
}

func (r *PgxSeriesRepository) SaveSeries(ctx context.Context, userID string, series domain.Series) error {
	m := mapping.ToModelSeries(series, userID)
	query := `
        INSERT INTO series (series_id, user_id, consumed_at, title, director, description, rating)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query, m.SeriesID, m.UserID, m.Date, m.Title, m.Director, m.Description, m.Rating)
	if err != nil {
		return fmt.Errorf("failed to save series: %w", err)
	}
	return nil
}

func (r *PgxSeriesRepository) UpdateSeries(ctx context.Context, userID string, series domain.Series) error {
	m := mapping.ToModelSeries(series, userID)
	query := `
        UPDATE series
        SET consumed_at = $1, title = $2, director = $3, description = $4, rating = $5
        WHERE user_id = $6 AND series_id = $7;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, m.Date, m.Title, m.Director, m.Description, m.Rating, m.UserID, m.SeriesID)
	if err != nil {
		return fmt.Errorf("failed to update series: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSeriesRepository) DeleteSeries(ctx context.Context, userID, seriesID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM series WHERE user_id = $1 AND series_id = $2;`, userID, seriesID)
	if err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
