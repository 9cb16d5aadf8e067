package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/goleads/internal/logger"
)

// DashboardHandler serves aggregate statistics for the reporting UI.
type DashboardHandler struct {
	db     *sql.DB
	logger logger.Logger
}

func NewDashboardHandler(db *sql.DB, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{db: db, logger: log}
}

type productCount struct {
	Product       string  `json:"product"`
	Count         int     `json:"count"`
	AvgConfidence float64 `json:"avgConfidence"`
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	var totalLeads int
	var avgScore sql.NullFloat64
	err := h.db.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG((lead_score->>'total')::numeric) FROM leads`,
	).Scan(&totalLeads, &avgScore)
	if err != nil {
		h.logger.Error("Failed to query lead totals", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	byStatus, err := h.countBy(ctx, "status")
	if err != nil {
		h.logger.Error("Failed to group by status", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	byUrgency, err := h.countBy(ctx, "urgency")
	if err != nil {
		h.logger.Error("Failed to group by urgency", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	topProducts, err := h.topProducts(ctx)
	if err != nil {
		h.logger.Error("Failed to rank products", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalLeads":     totalLeads,
		"avgLeadScore":   avgScore.Float64,
		"leadsByStatus":  byStatus,
		"leadsByUrgency": byUrgency,
		"topProducts":    topProducts,
	})
}

// countBy groups leads on a whitelisted enum column.
func (h *DashboardHandler) countBy(ctx context.Context, column string) (map[string]int, error) {
	if column != "status" && column != "urgency" {
		return nil, sql.ErrNoRows
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT `+column+`, COUNT(*) FROM leads GROUP BY `+column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if scanErr := rows.Scan(&key, &count); scanErr != nil {
			return nil, scanErr
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

func (h *DashboardHandler) topProducts(ctx context.Context) ([]productCount, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT rec->>'product',
		       COUNT(*),
		       AVG((rec->>'confidence')::numeric)
		FROM leads, jsonb_array_elements(product_recommendations) rec
		GROUP BY rec->>'product'
		ORDER BY COUNT(*) DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []productCount
	for rows.Next() {
		var p productCount
		if scanErr := rows.Scan(&p.Product, &p.Count, &p.AvgConfidence); scanErr != nil {
			return nil, scanErr
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	rows, err := h.db.QueryContext(c.Request.Context(), `
		SELECT id, company_name, status, urgency, (lead_score->>'total')::numeric, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT 10
	`)
	if err != nil {
		h.logger.Error("Failed to query recent activity", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query activity"})
		return
	}
	defer rows.Close()

	type recentLead struct {
		ID          string    `json:"id"`
		CompanyName string    `json:"companyName"`
		Status      string    `json:"status"`
		Urgency     string    `json:"urgency"`
		Score       float64   `json:"score"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	var recent []recentLead
	for rows.Next() {
		var r recentLead
		if scanErr := rows.Scan(&r.ID, &r.CompanyName, &r.Status, &r.Urgency, &r.Score, &r.CreatedAt); scanErr != nil {
			h.logger.Error("Failed to scan activity row", logger.Error(scanErr))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query activity"})
			return
		}
		recent = append(recent, r)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query activity"})
		return
	}

	c.JSON(http.StatusOK, recent)
}
