package paintings

import (
	"github.com/artfolio/gallery-backend/api/common"
	"github.com/gin-gonic/gin"
)

// DeletePaintingHandler 删除画作及其存储文件
func (h *Handler) DeletePaintingHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePainting(c.Request.Context(), id); err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccessMessage(c, "Painting deleted", nil)
}
