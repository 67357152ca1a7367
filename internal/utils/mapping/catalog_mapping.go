package mapping

import (
	"database/sql"
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	"github.com/biblioteca-multimedia/bm_backend/internal/models"
)

// ToDomainBook converts a model Book to a domain Book
func ToDomainBook(m models.Book) domain.Book {
	return domain.Book{
		BookID:      m.BookID,
		Date:        m.Date,
		Title:       m.Title,
		Author:      m.Author,
		Genre:       m.Genre.String,
		Description: m.Description.String,
		Rating:      fromNullInt32(m.Rating),
	}
}

// ToModelBook converts a domain Book owned by userID to a model Book
func ToModelBook(d domain.Book, userID string) models.Book {
	return models.Book{
		BookID:      d.BookID,
		UserID:      userID,
		Date:        d.Date,
		Title:       d.Title,
		Author:      d.Author,
		Genre:       toNullString(d.Genre),
		Description: toNullString(d.Description),
		Rating:      toNullInt32(d.Rating),
	}
}

// ToDomainMovie converts a model Movie to a domain Movie
func ToDomainMovie(m models.Movie) domain.Movie {
	return domain.Movie{
		MovieID:     m.MovieID,
		Date:        m.Date,
		Title:       m.Title,
		Director:    m.Director.String,
		Description: m.Description.String,
		Rating:      fromNullInt32(m.Rating),
	}
}

// ToModelMovie converts a domain Movie owned by userID to a model Movie
func ToModelMovie(d domain.Movie, userID string) models.Movie {
	return models.Movie{
		MovieID:     d.MovieID,
		UserID:      userID,
		Date:        d.Date,
		Title:       d.Title,
		Director:    toNullString(d.Director),
		Description: toNullString(d.Description),
		Rating:      toNullInt32(d.Rating),
	}
}

// ToDomainSeries converts a model Series to a domain Series
func ToDomainSeries(m models.Series) domain.Series {
	return domain.Series{
		SeriesID:    m.SeriesID,
		Date:        m.Date,
		Title:       m.Title,
		Director:    m.Director.String,
		Description: m.Description.String,
		Rating:      fromNullInt32(m.Rating),
	}
}

// ToModelSeries converts a domain Series owned by userID to a model Series
func ToModelSeries(d domain.Series, userID string) models.Series {
	return models.Series{
		SeriesID:    d.SeriesID,
		UserID:      userID,
		Date:        d.Date,
		Title:       d.Title,
		Director:    toNullString(d.Director),
		Description: toNullString(d.Description),
		Rating:      toNullInt32(d.Rating),
	}
}

// ToDomainPendingItem converts a model PendingItem to a domain PendingItem
func ToDomainPendingItem(m models.PendingItem) domain.PendingItem {
	return domain.PendingItem{
		PendingID:        m.PendingID,
		Kind:             domain.PendingKind(m.Kind),
		Title:            m.Title,
		AuthorOrDirector: m.AuthorOrDirector.String,
		Description:      m.Description.String,
	}
}

// ToModelPendingItem converts a domain PendingItem owned by userID to a model PendingItem
func ToModelPendingItem(d domain.PendingItem, userID string) models.PendingItem {
	return models.PendingItem{
		PendingID:        d.PendingID,
		UserID:           userID,
		Kind:             string(d.Kind),
		Title:            d.Title,
		AuthorOrDirector: toNullString(d.AuthorOrDirector),
		Description:      toNullString(d.Description),
	}
}

func toNullInt32(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func fromNullInt32(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

func toNullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
