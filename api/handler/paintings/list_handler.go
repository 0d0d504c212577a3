package paintings

import (
	"net/http"

	"github.com/artfolio/gallery-backend/api/common"
	"github.com/artfolio/gallery-backend/database/repo/paintings"
	"github.com/gin-gonic/gin"
)

type listPaintingsQuery struct {
	Page      int      `form:"page,default=1" binding:"omitempty,min=1"`
	PerPage   int      `form:"perPage,default=12" binding:"omitempty,min=1"`
	Category  string   `form:"category"`
	Year      string   `form:"year"`
	Search    string   `form:"search"`
	SortBy    string   `form:"sortBy" binding:"omitempty,oneof=created_at title year price"`
	SortOrder string   `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	MinPrice  *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice  *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Available *bool    `form:"available"`
}

type listPaintingsResponse struct {
	Paintings   []paintingResponse `json:"paintings"`
	TotalCount  int64              `json:"totalCount"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
	HasNextPage bool               `json:"hasNextPage"`
	HasPrevPage bool               `json:"hasPrevPage"`
}

// ListPaintingsHandler 公开画作列表，支持过滤、排序与分页
func (h *Handler) ListPaintingsHandler(c *gin.Context) {
	var query listPaintingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if query.MinPrice != nil && query.MaxPrice != nil && *query.MinPrice > *query.MaxPrice {
		common.RespondError(c, http.StatusBadRequest, "minPrice must not exceed maxPrice")
		return
	}

	// 公开列表默认只展示可售画作
	onlyAvailable := query.Available == nil || *query.Available

	page, perPage := paintings.NormalizePage(query.Page, query.PerPage)
	params := paintings.ListParams{
		Category:      query.Category,
		Year:          query.Year,
		Search:        query.Search,
		PriceMin:      query.MinPrice,
		PriceMax:      query.MaxPrice,
		OnlyAvailable: onlyAvailable,
		SortBy:        query.SortBy,
		SortOrder:     query.SortOrder,
		Page:          page,
		PerPage:       perPage,
	}

	result, err := h.svc.ListPaintings(c.Request.Context(), params)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	totalPages := int((result.Total + int64(perPage) - 1) / int64(perPage))
	common.RespondSuccess(c, listPaintingsResponse{
		Paintings:   toPaintingResponses(result.Paintings),
		TotalCount:  result.Total,
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	})
}

// AdminListPaintingsHandler 管理端完整列表，不分页，供拖拽排序使用
func (h *Handler) AdminListPaintingsHandler(c *gin.Context) {
	var query listPaintingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	// 管理端默认包含未上架画作，仅在显式请求时过滤
	params := paintings.ListParams{
		Category:      query.Category,
		Year:          query.Year,
		Search:        query.Search,
		PriceMin:      query.MinPrice,
		PriceMax:      query.MaxPrice,
		OnlyAvailable: query.Available != nil && *query.Available,
		SortBy:        query.SortBy,
		SortOrder:     query.SortOrder,
		Unpaginated:   true,
	}

	result, err := h.svc.ListPaintings(c.Request.Context(), params)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccess(c, gin.H{
		"paintings": toPaintingResponses(result.Paintings),
		"total":     result.Total,
	})
}

// GetPaintingHandler 获取单幅画作
func (h *Handler) GetPaintingHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	painting, err := h.svc.GetPainting(c.Request.Context(), id)
	if err != nil {
		common.RespondDomainError(c, err)
		return
	}

	common.RespondSuccess(c, toPaintingResponse(painting))
}
