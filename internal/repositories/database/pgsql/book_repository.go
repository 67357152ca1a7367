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

type PgxBookRepository struct {
	BaseRepository
}

func newPgxBookRepository(pool *pgxpool.Pool) portsrepo.BookRepository {
	return &PgxBookRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BookRepository = (*PgxBookRepository)(nil)

const bookColumns = `book_id, user_id, consumed_at, title, author, genre, description, rating`

func scanBooks(rows pgx.Rows) ([]domain.Book, error) {
	defer rows.Close()
	books := []domain.Book{}
	for rows.Next() {
		var m models.Book
		err := rows.Scan(&m.BookID, &m.UserID, &m.Date, &m.Title, &m.Author, &m.Genre, &m.Description, &m.Rating)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, mapping.ToDomainBook(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", rows.Err())
	}
	return books, nil
}

func (r *PgxBookRepository) FindBooks(ctx context.Context, userID string, limit, offset int) ([]domain.Book, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM books
        WHERE user_id = $1
        ORDER BY consumed_at DESC, book_id
        LIMIT $2 OFFSET $3;
    `, bookColumns)
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	return scanBooks(rows)
}

func (r *PgxBookRepository) CountBooks(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE user_id = $1;`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return total, nil
}

func (r *PgxBookRepository) SearchBooks(ctx context.Context, userID, text string, limit, offset int) ([]domain.Book, int, error) {
	pattern := "%" + text + "%"
	filter := `
        user_id = $1 AND (
            title ILIKE $2 OR author ILIKE $2 OR
            COALESCE(genre, '') ILIKE $2 OR COALESCE(description, '') ILIKE $2
        )`

	var total int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE `+filter+`;`, userID, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count book matches: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT %s FROM books
        WHERE %s
        ORDER BY consumed_at DESC, book_id
        LIMIT $3 OFFSET $4;
    `, bookColumns, filter)
	rows, err := r.Pool.Query(ctx, query, userID, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search books: %w", err)
	}
	books, err := scanBooks(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *PgxBookRepository) FindBookByID(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE user_id = $1 AND book_id = $2;`, bookColumns)
	var m models.Book
	err := r.Pool.QueryRow(ctx, query, userID, bookID).Scan(
		&m.BookID, &m.UserID, &m.Date, &m.Title, &m.Author, &m.Genre, &m.Description, &m.Rating,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book %s: %w", bookID, err)
	}
	book := mapping.ToDomainBook(m)
	return &book, nil
}

func (r *PgxBookRepository) SaveBook(ctx context.Context, userID string, book domain.Book) error {
	m := mapping.ToModelBook(book, userID)
	query := `
        INSERT INTO books (book_id, user_id, consumed_at, title, author, genre, description, rating)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query, m.BookID, m.UserID, m.Date, m.Title, m.Author, m.Genre, m.Description, m.Rating)
	if err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

func (r *PgxBookRepository) UpdateBook(ctx context.Context, userID string, book domain.Book) error {
	m := mapping.ToModelBook(book, userID)
	query := `
        UPDATE books
        SET consumed_at = $1, title = $2, author = $3, genre = $4, description = $5, rating = $6
        WHERE user_id = $7 AND book_id = $8;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, m.Date, m.Title, m.Author, m.Genre, m.Description, m.Rating, m.UserID, m.BookID)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBookRepository) DeleteBook(ctx context.Context, userID, bookID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM books WHERE user_id = $1 AND book_id = $2;`, userID, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
