package exhibitions

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/artfolio/gallery-backend/api/common"
	"github.com/artfolio/gallery-backend/database/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateExhibitionRequestBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req createExhibitionRequest
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
				"title":    "Spring Show",
				"date":     "March 2024",
				"location": "Main gallery",
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing title",
			body:       map[string]interface{}{"date": "March 2024"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonBody, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(jsonBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestToExhibitionResponse(t *testing.T) {
	e := &models.Exhibition{
		Model:        gorm.Model{ID: 3},
		Title:        "Spring Show",
		Date:         "March 2024",
		Location:     "Main gallery",
		DisplayOrder: 5,
		Photos: []models.ExhibitionPhoto{
			{Title: "Entrance", Identifier: "a.jpg", ImageURL: "/images/a.jpg", DisplayOrder: 2},
			{Title: "Hall", Identifier: "b.jpg", ImageURL: "/images/b.jpg", DisplayOrder: 1},
		},
	}

	resp := toExhibitionResponse(e)
	assert.EqualValues(t, 3, resp.ID)
	assert.Equal(t, 5, resp.Order)
	require.Len(t, resp.Photos, 2)
	assert.Equal(t, "/thumbnails/a.jpg", resp.Photos[0].ThumbnailURL)
	assert.Equal(t, "/images/b.jpg", resp.Photos[1].ImageURL)
}
