package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/models"
	"github.com/jonesrussell/goleads/internal/repository"
	"github.com/jonesrussell/goleads/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLeadTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewLeadRepository(db, testhelpers.NewTestLogger())
	handler := NewLeadHandler(repo, nil, testhelpers.NewTestLogger())

	router := gin.New()
	router.GET("/leads", handler.List)
	router.GET("/leads/:id", handler.GetByID)
	router.PUT("/leads/:id", handler.Update)
	router.DELETE("/leads/:id", handler.Delete)
	return router, mock
}

func leadRows() *sqlmock.Rows {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "company_name", "company_details", "facilities",
		"product_recommendations", "signals", "lead_score", "urgency", "status",
		"assigned_to", "territory", "region", "next_action", "feedback",
		"contact_attempts", "metadata", "created_at", "updated_at",
	}).AddRow(
		"lead-1", "Acme Steel",
		[]byte(`{}`), []byte(`[]`), []byte(`[]`), []byte(`[]`),
		[]byte(`{"total":60}`), "medium", "new",
		nil, "", "", nil, nil, []byte(`[]`), []byte(`{}`),
		now, now,
	)
}

func TestLeadHandler_GetByID(t *testing.T) {
	router, mock := newLeadTestRouter(t)

	mock.ExpectQuery("FROM leads WHERE id").
		WithArgs("lead-1").
		WillReturnRows(leadRows())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/leads/lead-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var lead models.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))
	assert.Equal(t, "Acme Steel", lead.CompanyName)
}

func TestLeadHandler_GetByID_NotFound(t *testing.T) {
	router, mock := newLeadTestRouter(t)

	mock.ExpectQuery("FROM leads WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/leads/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeadHandler_List(t *testing.T) {
	router, mock := newLeadTestRouter(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectQuery("FROM leads WHERE 1=1").
		WillReturnRows(leadRows())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/leads?page=1&limit=20", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total       int `json:"total"`
		CurrentPage int `json:"currentPage"`
		TotalPages  int `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 41, resp.Total)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, 3, resp.TotalPages)
}

func TestLeadHandler_Update_RejectsUnknownStatus(t *testing.T) {
	router, _ := newLeadTestRouter(t)

	body, _ := json.Marshal(map[string]string{"status": "archived"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/leads/lead-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeadHandler_Update_WhitelistedFields(t *testing.T) {
	router, mock := newLeadTestRouter(t)

	mock.ExpectQuery("FROM leads WHERE id").
		WithArgs("lead-1").
		WillReturnRows(leadRows())
	mock.ExpectExec("UPDATE leads SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body, _ := json.Marshal(map[string]any{
		"status": "qualified",
		"companyDetails": map[string]string{
			"industry": "power",
		},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/leads/lead-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var lead models.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))
	assert.Equal(t, models.StatusQualified, lead.Status)
	assert.Equal(t, "power", lead.CompanyDetails.Industry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadHandler_Delete_NotFound(t *testing.T) {
	router, mock := newLeadTestRouter(t)

	mock.ExpectExec("DELETE FROM leads").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/leads/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
