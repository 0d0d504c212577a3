package exhibitions

import (
	"net/http"

	"github.com/artfolio/gallery-backend/api/common"
	"github.com/artfolio/gallery-backend/database/repo/exhibitions"
	"github.com/gin-gonic/gin"
)

type reorderItemRequest struct {
	ID    uint `json:"id" binding:"required"`
	Order int  `json:"order"`
}

type reorderRequest struct {
	Order []reorderItemRequest `json:"order" binding:"required,min=1,dive"`
}

type reorderResponse struct {
	Updated int `json:"updated"`
}

// UploadPhotosHandler 批量上传展览照片（multipart 字段名 photos，可选同序 titles）
func (h *Handler) UploadPhotosHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := form.File["photos"]
	titles := form.Value["titles"]

	exhibition, err := h.svc.UploadPhotos(c.Request.Context(), id, files, titles)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccessMessage(c, "Photos uploaded", toExhibitionResponse(exhibition))
}

// DeletePhotoHandler 删除展览内单张照片
func (h *Handler) DeletePhotoHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	photoID, ok := parseIDParam(c, "photoId")
	if !ok {
		return
	}

	if err := h.svc.DeletePhoto(c.Request.Context(), id, photoID); err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccessMessage(c, "Photo deleted", nil)
}

// ReorderExhibitionsHandler 批量更新展览排序
func (h *Handler) ReorderExhibitionsHandler(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.ReorderExhibitions(c.Request.Context(), toReorderItems(req.Order))
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.Respond(c, http.StatusOK, "success", "Order updated", reorderResponse{Updated: updated})
}

// ReorderPhotosHandler 批量更新展览内照片排序
func (h *Handler) ReorderPhotosHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.ReorderPhotos(c.Request.Context(), id, toReorderItems(req.Order))
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.Respond(c, http.StatusOK, "success", "Order updated", reorderResponse{Updated: updated})
}

func toReorderItems(items []reorderItemRequest) []exhibitions.ReorderItem {
	converted := make([]exhibitions.ReorderItem, len(items))
	for i, item := range items {
		converted[i] = exhibitions.ReorderItem{ID: item.ID, Order: item.Order}
	}
	return converted
}
