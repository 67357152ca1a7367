package handlers

import (
	"net/http"

	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// BookHandler handles the book catalog requests.
type BookHandler struct {
	bookService portssvc.BookSvcFacade
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(bs portssvc.BookSvcFacade) *BookHandler {
	return &BookHandler{bookService: bs}
}

// registerBookRoutes sets up the authenticated book routes.
func registerBookRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewBookHandler(services.Book)

	rg.GET("/libros", h.ListBooks)
	rg.GET("/libros/buscar/:texto", h.SearchBooks)
	rg.GET("/libros/:id", h.GetBook)
	rg.POST("/carga-libros", h.AddBook)
	rg.PUT("/libros/:id", h.UpdateBook)
	rg.DELETE("/libros/:id", h.DeleteBook)
}

// ListBooks godoc
// @Summary List books
// @Description Returns one page of the user's books, newest first.
// @Tags libros
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.BookListResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/libros [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	page := pageFromQuery(c)
	books, total, err := h.bookService.ListBooks(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BookListResponse{
		Books:       books,
		TotalPages:  pagination.TotalPages(total),
		CurrentPage: page,
		TotalBooks:  total,
	})
}

// SearchBooks godoc
// @Summary Search books
// @Description Free-text search over title, author, genre and description. Underscores in the path stand for spaces.
// @Tags libros
// @Produce json
// @Param texto path string true "Search text"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.BookListResponse
// @Failure 404 {object} ErrorResponse "No matches"
// @Security BearerAuth
// @Router /api/libros/buscar/{texto} [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	text := searchTextFromParam(c)
	page := pageFromQuery(c)
	books, total, err := h.bookService.SearchBooks(c.Request.Context(), userID, text, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BookListResponse{
		Books:       books,
		TotalPages:  pagination.TotalPages(total),
		CurrentPage: page,
		TotalBooks:  total,
		SearchText:  text,
	})
}

// GetBook godoc
// @Summary Get one book
// @Tags libros
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} domain.Book
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/libros/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	book, err := h.bookService.GetBook(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// AddBook godoc
// @Summary Add a book
// @Tags libros
// @Accept json
// @Produce json
// @Param book body dto.BookRequest true "Book data"
// @Success 201 {object} domain.Book
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/carga-libros [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	book, err := h.bookService.AddBook(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

// UpdateBook godoc
// @Summary Update a book
// @Tags libros
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param book body dto.BookRequest true "Book data"
// @Success 200 {object} domain.Book
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/libros/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no validos"})
		return
	}

	book, err := h.bookService.UpdateBook(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary Delete a book
// @Tags libros
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/libros/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No autorizado"})
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Libro eliminado"})
}
