package handlers

import (
	"net/http"

	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// StatsHandler handles the statistics requests.
type StatsHandler struct {
	statsService portssvc.StatsSvcFacade
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ss portssvc.StatsSvcFacade) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// registerStatsRoutes sets up the authenticated statistics routes.
func registerStatsRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewStatsHandler(services.Stats)

	rg.GET("/estadisticas", h.Leaderboard)
	rg.GET("/estadisticas-libros", h.BookStats)
	rg.GET("/estadisticas-peliculas", h.MovieStats)
	rg.GET("/estadisticas-series", h.SeriesStats)
	rg.GET("/estadisticas-user", h.UserStats)
}

// Leaderboard godoc
// @Summary Cross-user leaderboard
// @Description Top users per category plus the registered user count.
// @Tags estadisticas
// @Produce json
// @Success 200 {object} domain.Leaderboard
// @Security BearerAuth
// @Router /api/estadisticas [get]
func (h *StatsHandler) Leaderboard(c *gin.Context) {
	board, err := h.statsService.Leaderboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// BookStats godoc
// @Summary Book statistics
// @Tags estadisticas
// @Produce json
// @Success 200 {object} domain.CategoryStats
// @Security BearerAuth
// @Router /api/estadisticas-libros [get]
func (h *StatsHandler) BookStats(c *gin.Context) {
	stats, err := h.statsService.BookStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// MovieStats godoc
// @Summary Movie statistics
// @Tags estadisticas
// @Produce json
// @Success 200 {object} domain.CategoryStats
// @Security BearerAuth
// @Router /api/estadisticas-peliculas [get]
func (h *StatsHandler) MovieStats(c *gin.Context) {
	stats, err := h.statsService.MovieStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// SeriesStats godoc
// @Summary Series statistics
// @Tags estadisticas
// @Produce json
// @Success 200 {object} domain.CategoryStats
// @Security BearerAuth
// @Router /api/estadisticas-series [get]
func (h *StatsHandler) SeriesStats(c *gin.Context) {
	stats, err := h.statsService.SeriesStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UserStats godoc
// @Summary Personal statistics
// @Description Counts and average ratings for the caller's catalogs.
// @Tags estadisticas
// @Produce json
// @Success 200 {object} domain.UserStats
// @Security BearerAuth
// @Router /api/estadisticas-user [get]
func (h *StatsHandler) UserStats(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	stats, err := h.statsService.UserStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
