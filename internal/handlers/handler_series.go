package handlers

import (
	"net/http"

	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// SeriesHandler handles the series catalog requests.
type SeriesHandler struct {
	seriesService portssvc.SeriesSvcFacade
}

// NewSeriesHandler creates a new SeriesHandler.
func NewSeriesHandler(ss portssvc.SeriesSvcFacade) *SeriesHandler {
	return &SeriesHandler{seriesService: ss}
}

// registerSeriesRoutes sets up the authenticated series routes.
func registerSeriesRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewSeriesHandler(services.Series)

	rg.GET("/series", h.ListSeries)
	rg.GET("/series/buscar/:texto", h.SearchSeries)
	rg.GET("/series/:id", h.GetSeries)
	rg.POST("/carga-series", h.AddSeries)
	rg.PUT("/series/:id", h.UpdateSeries)
	rg.DELETE("/series/:id", h.DeleteSeries)
}

// ListSeries godoc
// @Summary List series
// @Tags series
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.SeriesListResponse
// @Security BearerAuth
// @Router /api/series [get]
func (h *SeriesHandler) ListSeries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	page := pageFromQuery(c)
	series, total, err := h.seriesService.ListSeries(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SeriesListResponse{
		Series:      series,
		TotalPages:  pagination.TotalPages(total),
		CurrentPage: page,
		TotalSeries: total,
	})
}

// SearchSeries godoc
// @Summary Search series
// @Tags series
// @Produce json
// @Param texto path string true "Search text"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.SeriesListResponse
// @Failure 404 {object} ErrorResponse "No matches"
// @Security BearerAuth
// @Router /api/series/buscar/{texto} [get]
func (h *SeriesHandler) SearchSeries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	text := searchTextFromParam(c)
	page := pageFromQuery(c)
	series, total, err := h.seriesService.SearchSeries(c.Request.Context(), userID, text, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SeriesListResponse{
		Series:      series,
		TotalPages:  pagination.TotalPages(total),
		CurrentPage: page,
		TotalSeries: total,
		SearchText:  text,
	})
}

// GetSeries godoc
// @Summary Get one series
// @Tags series
// @Produce json
// @Param id path string true "Series ID"
// @Success 200 {object} domain.Series
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/series/{id} [get]
func (h *SeriesHandler) GetSeries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	series, err := h.seriesService.GetSeries(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}

// AddSeries godoc
// @Summary Add a series
// @Tags series
// @Accept json
// @Produce json
// @Param series body dto.SeriesRequest true "Series data"
// @Success 201 {object} domain.Series
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/carga-series [post]
func (h *SeriesHandler) AddSeries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	var req dto.SeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	series, err := h.seriesService.AddSeries(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, series)
}

// UpdateSeries godoc
// @Summary Update a series
// @Tags series
// @Accept json
// @Produce json
// @Param id path string true "Series ID"
// @Param series body dto.SeriesRequest true "Series data"
// @Success 200 {object} domain.Series
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/series/{id} [put]
func (h *SeriesHandler) UpdateSeries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	var req dto.SeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	series, err := h.seriesService.UpdateSeries(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}

// DeleteSeries godoc
// @Summary Delete a series
// @Tags series
// @Produce json
// @Param id path string true "Series ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/series/{id} [delete]
func (h *SeriesHandler) DeleteSeries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	if err := h.seriesService.DeleteSeries(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Serie eliminada"})
}
