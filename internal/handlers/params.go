package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// pageFromQuery reads the ?page= query parameter. Missing or malformed
// values fall back to the first page.
func pageFromQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// searchTextFromParam decodes the :texto path segment, where the frontend
// encodes spaces as underscores.
func searchTextFromParam(c *gin.Context) string {
	return strings.ReplaceAll(c.Param("texto"), "_", " ")
}
