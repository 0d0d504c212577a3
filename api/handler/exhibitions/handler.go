package exhibitions

import (
	"net/http"
	"strconv"
	"time"

	"github.com/artfolio/gallery-backend/api/common"
	"github.com/artfolio/gallery-backend/database/models"
	svcExhibitions "github.com/artfolio/gallery-backend/internal/exhibitions"
	"github.com/gin-gonic/gin"
)

// Handler 展览处理器
type Handler struct {
	svc *svcExhibitions.Service
}

// NewHandler 创建新的展览处理器
func NewHandler(svc *svcExhibitions.Service) *Handler {
	return &Handler{svc: svc}
}

type photoResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Order        int    `json:"order"`
}

type exhibitionResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Location    string          `json:"location"`
	Order       int             `json:"order"`
	Photos      []photoResponse `json:"photos"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func toPhotoResponse(p *models.ExhibitionPhoto) photoResponse {
	return photoResponse{
		ID:           p.ID,
		Title:        p.Title,
		ImageURL:     p.ImageURL,
		ThumbnailURL: "/thumbnails/" + p.Identifier,
		Order:        p.DisplayOrder,
	}
}

func toExhibitionResponse(e *models.Exhibition) exhibitionResponse {
	photos := make([]photoResponse, len(e.Photos))
	for i := range e.Photos {
		photos[i] = toPhotoResponse(&e.Photos[i])
	}

	return exhibitionResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		Order:       e.DisplayOrder,
		Photos:      photos,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

func toExhibitionResponses(list []*models.Exhibition) []exhibitionResponse {
	responses := make([]exhibitionResponse, len(list))
	for i, e := range list {
		responses[i] = toExhibitionResponse(e)
	}
	return responses
}

// parseIDParam 解析路径中的数字 ID，非法时直接响应 400
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		common.RespondError(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
