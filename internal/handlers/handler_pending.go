package handlers

import (
	"net/http"

	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// PendingHandler handles the pending-to-consume list requests.
type PendingHandler struct {
	pendingService portssvc.PendingSvcFacade
}

// NewPendingHandler creates a new PendingHandler.
func NewPendingHandler(ps portssvc.PendingSvcFacade) *PendingHandler {
	return &PendingHandler{pendingService: ps}
}

// registerPendingRoutes sets up the authenticated pending-list routes.
func registerPendingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewPendingHandler(services.Pending)

	rg.GET("/pendientes", h.ListPending)
	rg.GET("/pendientes/buscar/:texto", h.SearchPending)
	rg.GET("/pendientes/:id", h.GetPending)
	rg.POST("/carga-pendientes", h.AddPending)
	rg.PUT("/pendientes/:id", h.UpdatePending)
	rg.DELETE("/pendientes/:id", h.DeletePending)
	rg.POST("/movimiento", h.MoveToBooks)
}

// ListPending godoc
// @Summary List pending items
// @Tags pendientes
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.PendingListResponse
// @Security BearerAuth
// @Router /api/pendientes [get]
func (h *PendingHandler) ListPending(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	page := pageFromQuery(c)
	items, total, err := h.pendingService.ListPending(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PendingListResponse{
		Pending:      items,
		TotalPages:   pagination.TotalPages(total),
		CurrentPage:  page,
		TotalPending: total,
	})
}

// SearchPending godoc
// @Summary Search pending items
// @Tags pendientes
// @Produce json
// @Param texto path string true "Search text"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.PendingListResponse
// @Failure 404 {object} ErrorResponse "No matches"
// @Security BearerAuth
// @Router /api/pendientes/buscar/{texto} [get]
func (h *PendingHandler) SearchPending(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	text := searchTextFromParam(c)
	page := pageFromQuery(c)
	items, total, err := h.pendingService.SearchPending(c.Request.Context(), userID, text, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PendingListResponse{
		Pending:      items,
		TotalPages:   pagination.TotalPages(total),
		CurrentPage:  page,
		TotalPending: total,
		SearchText:   text,
	})
}

// GetPending godoc
// @Summary Get one pending item
// @Tags pendientes
// @Produce json
// @Param id path string true "Pending item ID"
// @Success 200 {object} domain.PendingItem
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/pendientes/{id} [get]
func (h *PendingHandler) GetPending(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	item, err := h.pendingService.GetPending(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// AddPending godoc
// @Summary Add a pending item
// @Tags pendientes
// @Accept json
// @Produce json
// @Param pending body dto.PendingRequest true "Pending item data"
// @Success 201 {object} domain.PendingItem
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/carga-pendientes [post]
func (h *PendingHandler) AddPending(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	var req dto.PendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	item, err := h.pendingService.AddPending(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdatePending godoc
// @Summary Update a pending item
// @Tags pendientes
// @Accept json
// @Produce json
// @Param id path string true "Pending item ID"
// @Param pending body dto.PendingRequest true "Pending item data"
// @Success 200 {object} domain.PendingItem
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/pendientes/{id} [put]
func (h *PendingHandler) UpdatePending(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	var req dto.PendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	item, err := h.pendingService.UpdatePending(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeletePending godoc
// @Summary Delete a pending item
// @Tags pendientes
// @Produce json
// @Param id path string true "Pending item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/pendientes/{id} [delete]
func (h *PendingHandler) DeletePending(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	if err := h.pendingService.DeletePending(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Pendiente eliminado"})
}

// MoveToBooks godoc
// @Summary Move a pending item to the book catalog
// @Description Deletes the pending item and creates the book in one transaction.
// @Tags pendientes
// @Accept json
// @Produce json
// @Param movimiento body dto.MovimientoRequest true "Movement data"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse "Pending item not found"
// @Security BearerAuth
// @Router /api/movimiento [post]
func (h *PendingHandler) MoveToBooks(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	var req dto.MovimientoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	if err := h.pendingService.MoveToBooks(c.Request.Context(), userID, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Pendiente movido a libros"})
}
