package paintings

import (
	"net/http"

	"github.com/artfolio/gallery-backend/api/common"
	"github.com/gin-gonic/gin"
)

// UploadImageHandler 上传或替换画作图片（multipart 字段名 image）
func (h *Handler) UploadImageHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Missing image file")
		return
	}

	painting, err := h.svc.UploadImage(c.Request.Context(), id, fileHeader)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccessMessage(c, "Image uploaded", toPaintingResponse(painting))
}
