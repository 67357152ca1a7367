package domain

import "time"

// PendingKind is the category a pending item belongs to.
type PendingKind string

const (
	PendingLibros    PendingKind = "Libros"
	PendingPeliculas PendingKind = "Peliculas"
	PendingSeries    PendingKind = "Series"
)

// Book is a consumed book in a user's catalog. Rating is 1..5, nil when unrated.
type Book struct {
	BookID      string    `json:"id"`
	Date        time.Time `json:"fecha"`
	Title       string    `json:"titulo"`
	Author      string    `json:"autor"`
	Genre       string    `json:"genero"`
	Description string    `json:"descripcion"`
	Rating      *int      `json:"valuacion"`
}

// Movie is a consumed movie in a user's catalog.
type Movie struct {
	MovieID     string    `json:"id"`
	Date        time.Time `json:"fecha"`
	Title       string    `json:"titulo"`
	Director    string    `json:"director"`
	Description string    `json:"descripcion"`
	Rating      *int      `json:"valuacion"`
}

// Series is a watched series in a user's catalog.
type Series struct {
	SeriesID    string    `json:"id"`
	Date        time.Time `json:"fecha"`
	Title       string    `json:"titulo"`
	Director    string    `json:"director"`
	Description string    `json:"descripcion"`
	Rating      *int      `json:"valuacion"`
}

// PendingItem is an item on the "pending to consume" list.
type PendingItem struct {
	PendingID        string      `json:"id"`
	Kind             PendingKind `json:"tipo"`
	Title            string      `json:"titulo"`
	AuthorOrDirector string      `json:"autorDirector"`
	Description      string      `json:"descripcion"`
}
