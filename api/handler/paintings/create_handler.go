package paintings

import (
	"net/http"
	"strconv"

	"github.com/artfolio/gallery-backend/api/common"
	"github.com/artfolio/gallery-backend/database/models"
	"github.com/gin-gonic/gin"
)

type createPaintingRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Medium      string   `json:"medium" binding:"max=100"`
	Year        string   `json:"year" binding:"max=16"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	IsAvailable *bool    `json:"isAvailable"`
	Featured    bool     `json:"featured"`
	Categories  []string `json:"categories" binding:"omitempty,dive,required,max=100"`
}

// CreatePaintingHandler 创建画作，排序号自动排到最前
func (h *Handler) CreatePaintingHandler(c *gin.Context) {
	var req createPaintingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	painting := models.Painting{
		Title:       req.Title,
		Medium:      req.Medium,
		Year:        req.Year,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: isAvailable,
		Featured:    req.Featured,
	}
	for _, name := range req.Categories {
		painting.Categories = append(painting.Categories, models.PaintingCategory{Name: name})
	}

	if err := h.svc.CreatePainting(c.Request.Context(), &painting); err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccessMessage(c, "Painting created", toPaintingResponse(&painting))
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
