package models

import (
	"database/sql"
	"time"
)

// User mirrors the users table row.
type User struct {
	UserID        string         `db:"user_id"`
	Name          string         `db:"name"`
	Email         string         `db:"email"`
	PasswordHash  sql.NullString `db:"password_hash"`
	AuthProvider  string         `db:"auth_provider"`
	GoogleID      sql.NullString `db:"google_id"`
	AvatarURL     sql.NullString `db:"avatar_url"`
	Verified      bool           `db:"verified"`
	ActionToken   sql.NullString `db:"action_token"`
	TokenIssuedAt sql.NullTime   `db:"token_issued_at"`
	CreatedAt     time.Time      `db:"created_at"`
	LastUpdatedAt time.Time      `db:"last_updated_at"`
}
