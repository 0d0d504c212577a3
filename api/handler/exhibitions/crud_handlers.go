package exhibitions

import (
	"net/http"

	"github.com/artfolio/gallery-backend/api/common"
	"github.com/artfolio/gallery-backend/database/models"
	"github.com/gin-gonic/gin"
)

type createExhibitionRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"max=64"`
	Location    string `json:"location" binding:"max=200"`
}

type updateExhibitionRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Date        *string `json:"date" binding:"omitempty,max=64"`
	Location    *string `json:"location" binding:"omitempty,max=200"`
}

// ListExhibitionsHandler 公开展览列表
func (h *Handler) ListExhibitionsHandler(c *gin.Context) {
	exhibitionList, err := h.svc.ListExhibitions(c.Request.Context())
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccess(c, gin.H{
		"exhibitions": toExhibitionResponses(exhibitionList),
		"total":       len(exhibitionList),
	})
}

// GetExhibitionHandler 获取单个展览
func (h *Handler) GetExhibitionHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	exhibition, err := h.svc.GetExhibition(c.Request.Context(), id)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccess(c, toExhibitionResponse(exhibition))
}

// CreateExhibitionHandler 创建展览
func (h *Handler) CreateExhibitionHandler(c *gin.Context) {
	var req createExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	exhibition := models.Exhibition{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	}

	if err := h.svc.CreateExhibition(c.Request.Context(), &exhibition); err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccessMessage(c, "Exhibition created", toExhibitionResponse(&exhibition))
}

// UpdateExhibitionHandler 部分更新展览
func (h *Handler) UpdateExhibitionHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}

	exhibition, err := h.svc.UpdateExhibition(c.Request.Context(), id, updates)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccessMessage(c, "Exhibition updated", toExhibitionResponse(exhibition))
}

// DeleteExhibitionHandler 删除展览及其全部照片
func (h *Handler) DeleteExhibitionHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteExhibition(c.Request.Context(), id); err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccessMessage(c, "Exhibition deleted", nil)
}
