package paintings

import (
	"net/http"

	"github.com/artfolio/gallery-backend/api/common"
	"github.com/gin-gonic/gin"
)

type updatePaintingRequest struct {
	Title       *string   `json:"title" binding:"omitempty,max=200"`
	Medium      *string   `json:"medium" binding:"omitempty,max=100"`
	Year        *string   `json:"year" binding:"omitempty,max=16"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	IsAvailable *bool     `json:"isAvailable"`
	Featured    *bool     `json:"featured"`
	Categories  *[]string `json:"categories" binding:"omitempty,dive,required,max=100"`
}

// UpdatePaintingHandler 部分更新画作，缺省字段保持不变
func (h *Handler) UpdatePaintingHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updatePaintingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Medium != nil {
		updates["medium"] = *req.Medium
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	var categories []string
	if req.Categories != nil {
		categories = *req.Categories
	}

	painting, err := h.svc.UpdatePainting(c.Request.Context(), id, updates, categories)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccessMessage(c, "Painting updated", toPaintingResponse(painting))
}
