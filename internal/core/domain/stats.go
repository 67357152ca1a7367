package domain

import "github.com/shopspring/decimal"

// TopUser is one leaderboard row: a user and how many items they hold in a category.
type TopUser struct {
	UserID string `json:"userId"`
	Name   string `json:"nombre"`
	Count  int    `json:"cantidad"`
}

// CategoryStats aggregates one catalog category across all users.
type CategoryStats struct {
	Total          int       `json:"total"`
	TopUsers       []TopUser `json:"topUsuarios"`
	UsersWithItems int       `json:"usuariosConItems"`
}

// Leaderboard is the cross-user summary for all three categories.
type Leaderboard struct {
	TopBooks   []TopUser `json:"topLibros"`
	TopSeries  []TopUser `json:"topSeries"`
	TopMovies  []TopUser `json:"topPeliculas"`
	TotalUsers int       `json:"totalUsuarios"`
}

// UserStats are the caller's own counts, with per-category average ratings.
// Averages are nil when the category has no rated items.
type UserStats struct {
	Books         int              `json:"libros"`
	Series        int              `json:"series"`
	Movies        int              `json:"peliculas"`
	Pending       int              `json:"pendientes"`
	AvgBookRating *decimal.Decimal `json:"promedioLibros"`
	AvgSeries     *decimal.Decimal `json:"promedioSeries"`
	AvgMovies     *decimal.Decimal `json:"promedioPeliculas"`
}
