package dto

import (
	"time"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
)

// BookRequest is the body of /carga-libros and book updates.
type BookRequest struct {
	Date        time.Time `json:"fecha" binding:"required"`
	Title       string    `json:"titulo" binding:"required"`
	Author      string    `json:"autor" binding:"required"`
	Genre       string    `json:"genero"`
	Description string    `json:"descripcion"`
	Rating      *int      `json:"valuacion" binding:"omitempty,min=1,max=5"`
}

// MovieRequest is the body of /carga-peliculas and movie updates.
type MovieRequest struct {
	Date        time.Time `json:"fecha" binding:"required"`
	Title       string    `json:"titulo" binding:"required"`
	Director    string    `json:"director"`
	Description string    `json:"descripcion"`
	Rating      *int      `json:"valuacion" binding:"omitempty,min=1,max=5"`
}

// SeriesRequest is the body of /carga-series and series updates.
type SeriesRequest struct {
	Date        time.Time `json:"fecha" binding:"required"`
	Title       string    `json:"titulo" binding:"required"`
	Director    string    `json:"director"`
	Description string    `json:"descripcion"`
	Rating      *int      `json:"valuacion" binding:"omitempty,min=1,max=5"`
}

// PendingRequest is the body of /carga-pendientes and pending updates.
type PendingRequest struct {
	Kind             string `json:"tipo" binding:"required,oneof=Libros Peliculas Series"`
	Title            string `json:"titulo" binding:"required"`
	AuthorOrDirector string `json:"autorDirector"`
	Description      string `json:"descripcion"`
}

// MovimientoRequest moves a pending item into the book catalog.
type MovimientoRequest struct {
	PendingID   string    `json:"pendienteId" binding:"required"`
	Date        time.Time `json:"fecha" binding:"required"`
	Title       string    `json:"titulo" binding:"required"`
	Author      string    `json:"autor"`
	Genre       string    `json:"genero"`
	Description string    `json:"descripcion"`
}

// BookListResponse is a page of books plus page math.
type BookListResponse struct {
	Books       []domain.Book `json:"libros"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	TotalBooks  int           `json:"totalLibros"`
	SearchText  string        `json:"textoBuscado,omitempty"`
}

// MovieListResponse is a page of movies plus page math.
type MovieListResponse struct {
	Movies      []domain.Movie `json:"peliculas"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	TotalMovies int            `json:"totalPeliculas"`
	SearchText  string         `json:"textoBuscado,omitempty"`
}

// SeriesListResponse is a page of series plus page math.
type SeriesListResponse struct {
	Series      []domain.Series `json:"series"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	TotalSeries int             `json:"totalSeries"`
	SearchText  string          `json:"textoBuscado,omitempty"`
}

// PendingListResponse is a page of pending items plus page math.
type PendingListResponse struct {
	Pending      []domain.PendingItem `json:"pendientes"`
	TotalPages   int                  `json:"totalPages"`
	CurrentPage  int                  `json:"currentPage"`
	TotalPending int                  `json:"totalPendientes"`
	SearchText   string               `json:"textoBuscado,omitempty"`
}
