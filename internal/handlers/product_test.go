package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/catalog"
)

func newProductTestRouter() *gin.Engine {
	handler := NewProductHandler(catalog.Default())
	router := gin.New()
	router.GET("/products", handler.List)
	router.GET("/products/:code", handler.GetByCode)
	return router
}

func TestProductHandler_List(t *testing.T) {
	router := newProductTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []catalog.Category        `json:"categories"`
		Industries []catalog.IndustryMapping `json:"industries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Categories, 3)
	assert.NotEmpty(t, resp.Industries)
}

func TestProductHandler_GetByCode(t *testing.T) {
	router := newProductTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/HSD", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "High Speed Diesel")
}

func TestProductHandler_GetByCode_Unknown(t *testing.T) {
	router := newProductTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/LNG", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
