package paintings

import (
	"net/http"

	"github.com/artfolio/gallery-backend/api/common"
	"github.com/artfolio/gallery-backend/database/repo/paintings"
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

// ReorderPaintingsHandler 批量更新画作排序，整批原子生效
func (h *Handler) ReorderPaintingsHandler(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]paintings.ReorderItem, len(req.Order))
	for i, item := range req.Order {
		items[i] = paintings.ReorderItem{ID: item.ID, Order: item.Order}
	}

	updated, err := h.svc.ReorderPaintings(c.Request.Context(), items)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.Respond(c, http.StatusOK, "success", "Order updated", reorderResponse{Updated: updated})
}
