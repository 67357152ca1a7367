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

type PgxMovieRepository struct {
	BaseRepository
}

func newPgxMovieRepository(pool *pgxpool.Pool) portsrepo.MovieRepository {
	return &PgxMovieRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.MovieRepository = (*PgxMovieRepository)(nil)

const movieColumns = `movie_id, user_id, consumed_at, title, director, description, rating`

func scanMovies(rows pgx.Rows) ([]domain.Movie, error) {
	defer rows.Close()
	movies := []domain.Movie{}
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.MovieID, &m.UserID, &m.Date, &m.Title, &m.Director, &m.Description, &m.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}
		movies = append(movies, mapping.ToDomainMovie(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating movie rows: %w", rows.Err())
	}
	return movies, nil
}

func (r *PgxMovieRepository) FindMovies(ctx context.Context, userID string, limit, offset int) ([]domain.Movie, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM movies
        WHERE user_id = $1
        ORDER BY consumed_at DESC, movie_id
        LIMIT $2 OFFSET $3;
    `, movieColumns)
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	return scanMovies(rows)
}

func (r *PgxMovieRepository) CountMovies(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies WHERE user_id = $1;`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return total, nil
}

func (r *PgxMovieRepository) SearchMovies(ctx context.Context, userID, text string, limit, offset int) ([]domain.Movie, int, error) {
	pattern := "%" + text + "%"
	filter := `
        user_id = $1 AND (
            title ILIKE $2 OR COALESCE(director, '') ILIKE $2 OR COALESCE(description, '') ILIKE $2
        )`

	var total int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies WHERE `+filter+`;`, userID, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count movie matches: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT %s FROM movies
        WHERE %s
        ORDER BY consumed_at DESC, movie_id
        LIMIT $3 OFFSET $4;
    `, movieColumns, filter)
	rows, err := r.Pool.Query(ctx, query, userID, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search movies: %w", err)
	}
	movies, err := scanMovies(rows)
	if err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

func (r *PgxMovieRepository) FindMovieByID(ctx context.Context, userID, movieID string) (*domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE user_id = $1 AND movie_id = $2;`, movieColumns)
	var m models.Movie
	err := r.Pool.QueryRow(ctx, query, userID, movieID).Scan(
		&m.MovieID, &m.UserID, &m.Date, &m.Title, &m.Director, &m.Description, &m.Rating,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movie %s: %w", movieID, err)
	}
	movie := mapping.ToDomainMovie(m)
	return &movie, nil
}

func (r *PgxMovieRepository) SaveMovie(ctx context.Context, userID string, movie domain.Movie) error {
	m := mapping.ToModelMovie(movie, userID)
	query := `
        INSERT INTO movies (movie_id, user_id, consumed_at, title, director, description, rating)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query, m.MovieID, m.UserID, m.Date, m.Title, m.Director, m.Description, m.Rating)
	if err != nil {
		return fmt.Errorf("failed to save movie: %w", err)
	}
	return nil
}

func (r *PgxMovieRepository) UpdateMovie(ctx context.Context, userID string, movie domain.Movie) error {
	m := mapping.ToModelMovie(movie, userID)
	query := `
        UPDATE movies
        SET consumed_at = $1, title = $2, director = $3, description = $4, rating = $5
        WHERE user_id = $6 AND movie_id = $7;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, m.Date, m.Title, m.Director, m.Description, m.Rating, m.UserID, m.MovieID)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxMovieRepository) DeleteMovie(ctx context.Context, userID, movieID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM movies WHERE user_id = $1 AND movie_id = $2;`, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
