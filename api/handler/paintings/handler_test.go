package paintings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artfolio/gallery-backend/api/common"
	"github.com/artfolio/gallery-backend/database/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// --- 测试请求 DTO 绑定 ---

func TestCreatePaintingRequestBinding(t *testing.T) {
	router := setupTestRouter(t)
	router.POST("/test", func(c *gin.Context) {
		var req createPaintingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		common.RespondSuccess(c, req)
	})

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
	}{
		{
			name: "valid request",
			body: map[string]interface{}{
				"title":      "Sunset",
				"medium":     "Oil on canvas",
				"year":       "2023",
				"price":      1200.0,
				"categories": []string{"Landscape"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing title",
			body:       map[string]interface{}{"medium": "Oil"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "negative price",
			body: map[string]interface{}{
				"title": "Sunset",
				"price": -5.0,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "empty category name",
			body: map[string]interface{}{
				"title":      "Sunset",
				"categories": []string{""},
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, router, http.MethodPost, "/test", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestReorderRequestBinding(t *testing.T) {
	router := setupTestRouter(t)
	router.PUT("/test", func(c *gin.Context) {
		var req reorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		common.RespondSuccess(c, req)
	})

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
	}{
		{
			name: "valid items",
			body: map[string]interface{}{
				"order": []map[string]interface{}{{"id": 1, "order": 10}, {"id": 2, "order": 5}},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing order list",
			body:       map[string]interface{}{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "empty order list",
			body: map[string]interface{}{
				"order": []map[string]interface{}{},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "item without id",
			body: map[string]interface{}{
				"order": []map[string]interface{}{{"order": 10}},
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, router, http.MethodPut, "/test", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestListPaintingsQueryBinding(t *testing.T) {
	router := setupTestRouter(t)
	router.GET("/test", func(c *gin.Context) {
		var query listPaintingsQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			common.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		common.RespondSuccess(c, query)
	})

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"defaults", "", http.StatusOK},
		{"full query", "?page=2&perPage=24&category=Landscape&year=2023&search=sun&sortBy=price&sortOrder=asc&minPrice=10&maxPrice=100", http.StatusOK},
		{"zero page", "?page=0", http.StatusBadRequest},
		{"bad sort column", "?sortBy=password", http.StatusBadRequest},
		{"bad sort order", "?sortOrder=sideways", http.StatusBadRequest},
		{"negative price", "?minPrice=-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// --- 测试响应转换 ---

func TestToPaintingResponse(t *testing.T) {
	price := 1500.0
	p := &models.Painting{
		Model:        gorm.Model{ID: 7, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Title:        "Sunset",
		Medium:       "Oil on canvas",
		Year:         "2023",
		Price:        &price,
		IsAvailable:  true,
		Featured:     true,
		DisplayOrder: 42,
		Identifier:   "abc.jpg",
		ImageURL:     "/images/abc.jpg",
		Categories: []models.PaintingCategory{
			{Name: "Landscape"},
			{Name: "Abstract"},
		},
	}

	resp := toPaintingResponse(p)
	assert.EqualValues(t, 7, resp.ID)
	assert.Equal(t, "Sunset", resp.Title)
	assert.Equal(t, 42, resp.Order)
	assert.Equal(t, []string{"Landscape", "Abstract"}, resp.Categories)
	assert.Equal(t, "/images/abc.jpg", resp.ImageURL)
	assert.Equal(t, "/thumbnails/abc.jpg", resp.ThumbnailURL)
	require.NotNil(t, resp.Price)
	assert.Equal(t, 1500.0, *resp.Price)
}

func TestToPaintingResponseWithoutImage(t *testing.T) {
	resp := toPaintingResponse(&models.Painting{Title: "Bare"})
	assert.Empty(t, resp.ThumbnailURL)
	assert.Empty(t, resp.ImageURL)
	assert.NotNil(t, resp.Categories)
	assert.Empty(t, resp.Categories)
}
