package models

import (
	"database/sql"
	"time"
)

// Book mirrors the books table row. Books belong to exactly one user.
type Book struct {
	BookID      string         `db:"book_id"`
	UserID      string         `db:"user_id"`
	Date        time.Time      `db:"consumed_at"`
	Title       string         `db:"title"`
	Author      string         `db:"author"`
	Genre       sql.NullString `db:"genre"`
	Description sql.NullString `db:"description"`
	Rating      sql.NullInt32  `db:"rating"`
}

// Movie mirrors the movies table row.
type Movie struct {
	MovieID     string         `db:"movie_id"`
	UserID      string         `db:"user_id"`
	Date        time.Time      `db:"consumed_at"`
	Title       string         `db:"title"`
	Director    sql.NullString `db:"director"`
	Description sql.NullString `db:"description"`
	Rating      sql.NullInt32  `db:"rating"`
}

// Series mirrors the series table row.
type Series struct {
	SeriesID    string         `db:"series_id"`
	UserID      string         `db:"user_id"`
	Date        time.Time      `db:"consumed_at"`
	Title       string         `db:"title"`
	Director    sql.NullString `db:"director"`
	Description sql.NullString `db:"description"`
	Rating      sql.NullInt32  `db:"rating"`
}

// PendingItem mirrors the pending_items table row.
type PendingItem struct {
	PendingID        string         `db:"pending_id"`
	UserID           string         `db:"user_id"`
	Kind             string         `db:"kind"`
	Title            string         `db:"title"`
	AuthorOrDirector sql.NullString `db:"author_or_director"`
	Description      sql.NullString `db:"description"`
}
