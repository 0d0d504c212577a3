package paintings

import (
	"time"

	"github.com/artfolio/gallery-backend/database/models"
	"github.com/artfolio/gallery-backend/internal/gallery"
)

// Handler 画作处理器
type Handler struct {
	svc *gallery.Service
}

// NewHandler 创建新的画作处理器
func NewHandler(svc *gallery.Service) *Handler {
	return &Handler{svc: svc}
}

// paintingResponse 画作响应体，字段命名与前端约定保持 camelCase
type paintingResponse struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Medium       string   `json:"medium"`
	Year         string   `json:"year"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price"`
	IsAvailable  bool     `json:"isAvailable"`
	Featured     bool     `json:"featured"`
	Order        int      `json:"order"`
	Categories   []string `json:"categories"`
	ImageURL     string   `json:"imageUrl"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

func toPaintingResponse(p *models.Painting) paintingResponse {
	thumbnailURL := ""
	if p.Identifier != "" {
		thumbnailURL = "/thumbnails/" + p.Identifier
	}

	return paintingResponse{
		ID:           p.ID,
		Title:        p.Title,
		Medium:       p.Medium,
		Year:         p.Year,
		Description:  p.Description,
		Price:        p.Price,
		IsAvailable:  p.IsAvailable,
		Featured:     p.Featured,
		Order:        p.DisplayOrder,
		Categories:   p.CategoryNames(),
		ImageURL:     p.ImageURL,
		ThumbnailURL: thumbnailURL,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

func toPaintingResponses(list []*models.Painting) []paintingResponse {
	responses := make([]paintingResponse, len(list))
	for i, p := range list {
		responses[i] = toPaintingResponse(p)
	}
	return responses
}
