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

type PgxPendingRepository struct {
	BaseRepository
}

func newPgxPendingRepository(pool *pgxpool.Pool) portsrepo.PendingRepository {
	return &PgxPendingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PendingRepository = (*PgxPendingRepository)(nil)

const pendingColumns = `pending_id, user_id, kind, title, author_or_director, description`

func scanPendingItems(rows pgx.Rows) ([]domain.PendingItem, error) {
	defer rows.Close()
	items := []domain.PendingItem{}
	for rows.Next() {
		var m models.PendingItem
		if err := rows.Scan(&m.PendingID, &m.UserID, &m.Kind, &m.Title, &m.AuthorOrDirector, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan pending row: %w", err)
		}
		items = append(items, mapping.ToDomainPendingItem(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating pending rows: %w", rows.Err())
	}
	return items, nil
}

func (r *PgxPendingRepository) FindPendingItems(ctx context.Context, userID string, limit, offset int) ([]domain.PendingItem, error) {
	// Pending items keep insertion order, matching the list's historical behavior.
	query := fmt.Sprintf(`
        SELECT %s FROM pending_items
        WHERE user_id = $1
        ORDER BY created_at, pending_id
        LIMIT $2 OFFSET $3;
    `, pendingColumns)
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending items: %w", err)
	}
	return scanPendingItems(rows)
}

func (r *PgxPendingRepository) CountPendingItems(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM pending_items WHERE user_id = $1;`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending items: %w", err)
	}
	return total, nil
}

func (r *PgxPendingRepository) SearchPendingItems(ctx context.Context, userID, text string, limit, offset int) ([]domain.PendingItem, int, error) {
	pattern := "%" + text + "%"
	filter := `
        user_id = $1 AND (
            title ILIKE $2 OR COALESCE(author_or_director, '') ILIKE $2 OR COALESCE(description, '') ILIKE $2
        )`

	var total int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM pending_items WHERE `+filter+`;`, userID, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count pending matches: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT %s FROM pending_items
        WHERE %s
        ORDER BY created_at, pending_id
        LIMIT $3 OFFSET $4;
    `, pendingColumns, filter)
	rows, err := r.Pool.Query(ctx, query, userID, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search pending items: %w", err)
	}
	items, err := scanPendingItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PgxPendingRepository) FindPendingItemByID(ctx context.Context, userID, pendingID string) (*domain.PendingItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM pending_items WHERE user_id = $1 AND pending_id = $2;`, pendingColumns)
	var m models.PendingItem
	err := r.Pool.QueryRow(ctx, query, userID, pendingID).Scan(
		&m.PendingID, &m.UserID, &m.Kind, &m.Title, &m.AuthorOrDirector, &m.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pending item %s: %w", pendingID, err)
	}
	item := mapping.ToDomainPendingItem(m)
	return &item, nil
}

func (r *PgxPendingRepository) SavePendingItem(ctx context.Context, userID string, item domain.PendingItem) error {
	m := mapping.ToModelPendingItem(item, userID)
	query := `
        INSERT INTO pending_items (pending_id, user_id, kind, title, author_or_director, description)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.Pool.Exec(ctx, query, m.PendingID, m.UserID, m.Kind, m.Title, m.AuthorOrDirector, m.Description)
	if err != nil {
		return fmt.Errorf("failed to save pending item: %w", err)
	}
	return nil
}

func (r *PgxPendingRepository) UpdatePendingItem(ctx context.Context, userID string, item domain.PendingItem) error {
	m := mapping.ToModelPendingItem(item, userID)
	query := `
        UPDATE pending_items
        SET kind = $1, title = $2, author_or_director = $3, description = $4
        WHERE user_id = $5 AND pending_id = $6;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, m.Kind, m.Title, m.AuthorOrDirector, m.Description, m.UserID, m.PendingID)
	if err != nil {
		return fmt.Errorf("failed to update pending item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPendingRepository) DeletePendingItem(ctx context.Context, userID, pendingID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM pending_items WHERE user_id = $1 AND pending_id = $2;`, userID, pendingID)
	if err != nil {
		return fmt.Errorf("failed to delete pending item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MovePendingToBook inserts the book and removes the pending item inside one
// transaction so a crash cannot leave the item in both lists or neither.
func (r *PgxPendingRepository) MovePendingToBook(ctx context.Context, userID, pendingID string, book domain.Book) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	cmdTag, err := tx.Exec(ctx, `DELETE FROM pending_items WHERE user_id = $1 AND pending_id = $2;`, userID, pendingID)
	if err != nil {
		return fmt.Errorf("failed to remove pending item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	m := mapping.ToModelBook(book, userID)
	_, err = tx.Exec(ctx, `
        INSERT INTO books (book_id, user_id, consumed_at, title, author, genre, description, rating)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `, m.BookID, m.UserID, m.Date, m.Title, m.Author, m.Genre, m.Description, m.Rating)
	if err != nil {
		return fmt.Errorf("failed to insert moved book: %w", err)
	}

	return r.Commit(ctx, tx)
}
