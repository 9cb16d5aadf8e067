// Package handlers exposes the HTTP API over gin.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
	"github.com/jonesrussell/goleads/internal/reconcile"
	"github.com/jonesrussell/goleads/internal/repository"
)

type LeadHandler struct {
	repo       *repository.LeadRepository
	reconciler *reconcile.Reconciler
	logger     logger.Logger
}

func NewLeadHandler(repo *repository.LeadRepository, rec *reconcile.Reconciler, log logger.Logger) *LeadHandler {
	return &LeadHandler{repo: repo, reconciler: rec, logger: log}
}

func (h *LeadHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := repository.LeadFilter{
		Status:     c.Query("status"),
		Urgency:    c.Query("urgency"),
		AssignedTo: c.Query("assignedTo"),
		Territory:  c.Query("territory"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		Page:       page,
		Limit:      limit,
	}

	leads, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leads"})
		return
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	c.JSON(http.StatusOK, gin.H{
		"leads":       leads,
		"total":       total,
		"currentPage": page,
		"totalPages":  totalPages,
	})
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	lead, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		h.logger.Error("Failed to get lead", logger.String("lead_id", c.Param("id")), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lead"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

// Create is the manual intake path: inference, scoring, owner assignment,
// and notification dispatch all happen in the reconciler.
func (h *LeadHandler) Create(c *gin.Context) {
	var input reconcile.ManualLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	lead, err := h.reconciler.CreateManual(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("Failed to create lead",
			logger.String("company", input.CompanyName),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lead"})
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// leadUpdateRequest whitelists the fields a caller may change directly.
// Contact attempts and feedback go through their own endpoints.
type leadUpdateRequest struct {
	Status         *models.LeadStatus     `json:"status"`
	NextAction     *models.NextAction     `json:"nextAction"`
	CompanyDetails *models.CompanyDetails `json:"companyDetails"`
	Facilities     []models.Facility      `json:"facilities"`
}

func (h *LeadHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req leadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	lead, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lead"})
		return
	}

	if req.Status != nil {
		lead.Status = *req.Status
	}
	if req.NextAction != nil {
		lead.NextAction = req.NextAction
	}
	if req.CompanyDetails != nil {
		lead.CompanyDetails = *req.CompanyDetails
	}
	if req.Facilities != nil {
		lead.Facilities = req.Facilities
	}

	if err := h.repo.Save(c.Request.Context(), lead); err != nil {
		h.logger.Error("Failed to update lead", logger.String("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) SubmitFeedback(c *gin.Context) {
	var feedback models.Feedback
	if err := c.ShouldBindJSON(&feedback); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	lead, err := h.reconciler.ApplyFeedback(c.Request.Context(), c.Param("id"), feedback)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		h.logger.Error("Failed to submit feedback", logger.String("lead_id", c.Param("id")), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feedback"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) AddContactAttempt(c *gin.Context) {
	var attempt models.ContactAttempt
	if err := c.ShouldBindJSON(&attempt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	lead, err := h.reconciler.ApplyContactAttempt(c.Request.Context(), c.Param("id"), attempt)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		h.logger.Error("Failed to add contact attempt", logger.String("lead_id", c.Param("id")), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add contact attempt"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		h.logger.Error("Failed to delete lead", logger.String("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lead"})
		return
	}

	h.logger.Info("Lead deleted", logger.String("lead_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted"})
}
