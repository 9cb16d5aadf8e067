package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/notify"
	"github.com/jonesrussell/goleads/internal/repository"
)

// NotificationHandler exposes a test-dispatch endpoint so channel
// configuration can be verified against a real lead.
type NotificationHandler struct {
	dispatcher *notify.Dispatcher
	leads      *repository.LeadRepository
	officers   *repository.OfficerRepository
	logger     logger.Logger
}

func NewNotificationHandler(
	dispatcher *notify.Dispatcher,
	leads *repository.LeadRepository,
	officers *repository.OfficerRepository,
	log logger.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		dispatcher: dispatcher,
		leads:      leads,
		officers:   officers,
		logger:     log,
	}
}

type testDispatchRequest struct {
	LeadID    string `json:"leadId" binding:"required"`
	OfficerID string `json:"officerId" binding:"required"`
}

func (h *NotificationHandler) TestDispatch(c *gin.Context) {
	var req testDispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	lead, err := h.leads.GetByID(c.Request.Context(), req.LeadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lead"})
		return
	}

	officer, err := h.officers.GetByID(c.Request.Context(), req.OfficerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Officer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get officer"})
		return
	}

	results := h.dispatcher.Dispatch(c.Request.Context(), officer, lead)
	c.JSON(http.StatusOK, gin.H{"results": results})
}
