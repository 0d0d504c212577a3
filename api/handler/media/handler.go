package media

import (
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/artfolio/gallery-backend/api/common"
	"github.com/artfolio/gallery-backend/internal/gallery"
	"github.com/artfolio/gallery-backend/storage"
	"github.com/gin-gonic/gin"
)

// Handler 图片流式访问处理器
type Handler struct {
	storage storage.Provider
}

// NewHandler 创建图片访问处理器
func NewHandler(storageProvider storage.Provider) *Handler {
	return &Handler{storage: storageProvider}
}

// GetImage 按存储标识返回原图，支持 Range 请求
func (h *Handler) GetImage(c *gin.Context) {
	h.serve(c, c.Param("identifier"))
}

// GetThumbnail 返回缩略图，缺失时回退到原图
func (h *Handler) GetThumbnail(c *gin.Context) {
	identifier := c.Param("identifier")
	thumbIdentifier := gallery.ThumbnailPrefix + identifier

	if exists, err := h.storage.Exists(c.Request.Context(), thumbIdentifier); err == nil && exists {
		h.serve(c, thumbIdentifier)
		return
	}
	h.serve(c, identifier)
}

func (h *Handler) serve(c *gin.Context, identifier string) {
	if !storage.IsValidIdentifier(identifier) {
		common.RespondError(c, http.StatusBadRequest, "Invalid image identifier")
		return
	}

	reader, err := h.storage.GetWithContext(c.Request.Context(), identifier)
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Image not found")
		return
	}
	defer reader.Close()

	if contentType := mime.TypeByExtension(filepath.Ext(identifier)); contentType != "" {
		c.Header("Content-Type", contentType)
	}
	c.Header("Cache-Control", "public, max-age=31536000, immutable")

	http.ServeContent(c.Writer, c.Request, identifier, time.Time{}, reader)
}
