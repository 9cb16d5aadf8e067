package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/goleads/internal/catalog"
)

// ProductHandler serves the static product catalog.
type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(cat *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

func (h *ProductHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.catalog.Categories,
		"industries": h.catalog.Industries,
		"equipment":  h.catalog.Equipment,
	})
}

func (h *ProductHandler) GetByCode(c *gin.Context) {
	info, ok := h.catalog.Find(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, info)
}
