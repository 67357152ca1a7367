package mapping

import (
	"database/sql"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	"github.com/biblioteca-multimedia/bm_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:        d.UserID,
		Name:          d.Name,
		Email:         d.Email,
		PasswordHash:  toNullString(d.PasswordHash),
		AuthProvider:  string(d.AuthProvider),
		GoogleID:      toNullString(d.GoogleID),
		AvatarURL:     toNullString(d.AvatarURL),
		Verified:      d.Verified,
		ActionToken:   toNullString(d.ActionToken),
		TokenIssuedAt: toNullTimePtr(d.TokenIssuedAt),
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:        m.UserID,
		Name:          m.Name,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash.String,
		AuthProvider:  domain.AuthProvider(m.AuthProvider),
		GoogleID:      m.GoogleID.String,
		AvatarURL:     m.AvatarURL.String,
		Verified:      m.Verified,
		ActionToken:   m.ActionToken.String,
		TokenIssuedAt: fromNullTime(m.TokenIssuedAt),
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
