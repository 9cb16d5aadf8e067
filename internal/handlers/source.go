package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
	"github.com/jonesrussell/goleads/internal/repository"
)

type SourceHandler struct {
	repo   *repository.SourceRepository
	logger logger.Logger
}

func NewSourceHandler(repo *repository.SourceRepository, log logger.Logger) *SourceHandler {
	return &SourceHandler{repo: repo, logger: log}
}

func (h *SourceHandler) Create(c *gin.Context) {
	var source models.Source
	if err := c.ShouldBindJSON(&source); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.repo.Create(c.Request.Context(), &source); err != nil {
		h.logger.Error("Failed to create source",
			logger.String("domain", source.Domain),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create source"})
		return
	}

	h.logger.Info("Source created",
		logger.String("source_id", source.ID),
		logger.String("domain", source.Domain),
	)
	c.JSON(http.StatusCreated, source)
}

func (h *SourceHandler) List(c *gin.Context) {
	filter := repository.SourceFilter{
		Category:  models.SourceCategory(c.Query("category")),
		Frequency: models.CrawlFrequency(c.Query("frequency")),
		Status:    models.CrawlStatus(c.Query("status")),
	}

	sources, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list sources", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sources"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sources": sources, "count": len(sources)})
}

func (h *SourceHandler) GetByID(c *gin.Context) {
	source, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Source not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get source"})
		return
	}
	c.JSON(http.StatusOK, source)
}

func (h *SourceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var source models.Source
	if err := c.ShouldBindJSON(&source); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	source.ID = id

	if err := h.repo.Update(c.Request.Context(), &source); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Source not found"})
			return
		}
		h.logger.Error("Failed to update source", logger.String("source_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update source"})
		return
	}

	updated, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, source)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *SourceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Source not found"})
			return
		}
		h.logger.Error("Failed to delete source", logger.String("source_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete source"})
		return
	}

	h.logger.Info("Source deleted", logger.String("source_id", id))
	c.JSON(http.StatusNoContent, nil)
}
