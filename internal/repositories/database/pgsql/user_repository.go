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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, password_hash, auth_provider, google_id,
	avatar_url, verified, action_token, token_issued_at, created_at, last_updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.AuthProvider,
		&m.GoogleID,
		&m.AvatarURL,
		&m.Verified,
		&m.ActionToken,
		&m.TokenIssuedAt,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1;`, userColumns)
	return scanUser(r.Pool.QueryRow(ctx, query, userID))
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1;`, userColumns)
	return scanUser(r.Pool.QueryRow(ctx, query, email))
}

func (r *PgxUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE google_id = $1;`, userColumns)
	return scanUser(r.Pool.QueryRow(ctx, query, googleID))
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (user_id, name, email, password_hash, auth_provider, google_id,
            avatar_url, verified, action_token, token_issued_at, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.AuthProvider,
		m.GoogleID,
		m.AvatarURL,
		m.Verified,
		m.ActionToken,
		m.TokenIssuedAt,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// UpdateUser replaces the whole record keyed by user_id, matching the
// atomic save-full-record contract of the store.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET name = $1, email = $2, password_hash = $3, auth_provider = $4, google_id = $5,
            avatar_url = $6, verified = $7, action_token = $8, token_issued_at = $9,
            last_updated_at = $10
        WHERE user_id = $11;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.AuthProvider,
		m.GoogleID,
		m.AvatarURL,
		m.Verified,
		m.ActionToken,
		m.TokenIssuedAt,
		m.LastUpdatedAt,
		m.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
