package handlers

import (
	"net/http"

	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// MovieHandler handles the movie catalog requests.
type MovieHandler struct {
	movieService portssvc.MovieSvcFacade
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(ms portssvc.MovieSvcFacade) *MovieHandler {
	return &MovieHandler{movieService: ms}
}

// registerMovieRoutes sets up the authenticated movie routes.
func registerMovieRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewMovieHandler(services.Movie)

	rg.GET("/peliculas", h.ListMovies)
	rg.GET("/peliculas/buscar/:texto", h.SearchMovies)
	rg.GET("/peliculas/:id", h.GetMovie)
	rg.POST("/carga-peliculas", h.AddMovie)
	rg.PUT("/peliculas/:id", h.UpdateMovie)
	rg.DELETE("/peliculas/:id", h.DeleteMovie)
}

// ListMovies godoc
// @Summary List movies
// @Tags peliculas
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.MovieListResponse
// @Security BearerAuth
// @Router /api/peliculas [get]
func (h *MovieHandler) ListMovies(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	page := pageFromQuery(c)
	movies, total, err := h.movieService.ListMovies(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MovieListResponse{
		Movies:      movies,
		TotalPages:  pagination.TotalPages(total),
		CurrentPage: page,
		TotalMovies: total,
	})
}

// SearchMovies godoc
// @Summary Search movies
// @Tags peliculas
// @Produce json
// @Param texto path string true "Search text"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.MovieListResponse
// @Failure 404 {object} ErrorResponse "No matches"
// @Security BearerAuth
// @Router /api/peliculas/buscar/{texto} [get]
func (h *MovieHandler) SearchMovies(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	text := searchTextFromParam(c)
	page := pageFromQuery(c)
	movies, total, err := h.movieService.SearchMovies(c.Request.Context(), userID, text, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MovieListResponse{
		Movies:      movies,
		TotalPages:  pagination.TotalPages(total),
		CurrentPage: page,
		TotalMovies: total,
		SearchText:  text,
	})
}

// GetMovie godoc
// @Summary Get one movie
// @Tags peliculas
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} domain.Movie
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/peliculas/{id} [get]
func (h *MovieHandler) GetMovie(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	movie, err := h.movieService.GetMovie(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// AddMovie godoc
// @Summary Add a movie
// @Tags peliculas
// @Accept json
// @Produce json
// @Param movie body dto.MovieRequest true "Movie data"
// @Success 201 {object} domain.Movie
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/carga-peliculas [post]
func (h *MovieHandler) AddMovie(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	movie, err := h.movieService.AddMovie(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, movie)
}

// UpdateMovie godoc
// @Summary Update a movie
// @Tags peliculas
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param movie body dto.MovieRequest true "Movie data"
// @Success 200 {object} domain.Movie
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/peliculas/{id} [put]
func (h *MovieHandler) UpdateMovie(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	movie, err := h.movieService.UpdateMovie(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// DeleteMovie godoc
// @Summary Delete a movie
// @Tags peliculas
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/peliculas/{id} [delete]
func (h *MovieHandler) DeleteMovie(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	if err := h.movieService.DeleteMovie(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Pelicula eliminada"})
}
