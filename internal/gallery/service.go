package gallery

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/artfolio/gallery-backend/cache"
	"github.com/artfolio/gallery-backend/config"
	"github.com/artfolio/gallery-backend/database/models"
	"github.com/artfolio/gallery-backend/database/repo/paintings"
	"github.com/artfolio/gallery-backend/internal/errs"
	"github.com/artfolio/gallery-backend/storage"
	"github.com/artfolio/gallery-backend/utils/imaging"
	"github.com/google/uuid"
)

// ThumbnailPrefix 缩略图在存储层的键前缀
const ThumbnailPrefix = "thumb_"

// Service 画廊服务 - 组合仓库、存储与缓存
type Service struct {
	repo          *paintings.Repository
	storage       storage.Provider
	cacheProvider cache.Provider
	listTTL       time.Duration
	thumbnailEdge int
}

// NewService 创建画廊服务
func NewService(repo *paintings.Repository, storageProvider storage.Provider, cacheProvider cache.Provider, cfg *config.Config) *Service {
	return &Service{
		repo:          repo,
		storage:       storageProvider,
		cacheProvider: cacheProvider,
		listTTL:       time.Duration(cfg.CacheListTTL) * time.Second,
		thumbnailEdge: cfg.ThumbnailMaxEdge,
	}
}

// ListResult 列表查询结果
type ListResult struct {
	Paintings []*models.Painting
	Total     int64
}

// ListPaintings 查询画作列表，公开查询走版本化缓存
func (s *Service) ListPaintings(ctx context.Context, params paintings.ListParams) (*ListResult, error) {
	load := func() (*ListResult, error) {
		items, total, err := s.repo.WithContext(ctx).ListPaintings(params)
		if err != nil {
			return nil, err
		}
		return &ListResult{Paintings: items, Total: total}, nil
	}

	// 管理端未分页视图绕过缓存，始终反映最新排序
	if params.Unpaginated || s.cacheProvider == nil {
		return load()
	}

	key := cache.VersionedKey(ctx, s.cacheProvider, cache.PaintingListVersion, cache.PaintingList, listVariant(params))
	return cache.GetOrLoad(ctx, s.cacheProvider, key, s.listTTL, load)
}

// GetPainting 获取单幅画作
func (s *Service) GetPainting(ctx context.Context, id uint) (*models.Painting, error) {
	return s.repo.WithContext(ctx).GetPaintingByID(id)
}

// CreatePainting 创建画作
func (s *Service) CreatePainting(ctx context.Context, painting *models.Painting) error {
	if err := s.repo.WithContext(ctx).CreatePainting(painting); err != nil {
		return err
	}
	s.invalidateLists(ctx)
	return nil
}

// UpdatePainting 部分更新画作
func (s *Service) UpdatePainting(ctx context.Context, id uint, updates map[string]interface{}, categories []string) (*models.Painting, error) {
	painting, err := s.repo.WithContext(ctx).UpdatePainting(id, updates, categories)
	if err != nil {
		return nil, err
	}
	s.invalidateLists(ctx)
	return painting, nil
}

// DeletePainting 删除画作并尽力清理存储文件
func (s *Service) DeletePainting(ctx context.Context, id uint) error {
	painting, err := s.repo.WithContext(ctx).DeletePainting(id)
	if err != nil {
		return err
	}

	s.removeFiles(ctx, painting.Identifier)
	s.invalidateLists(ctx)
	return nil
}

// ReorderPaintings 批量更新画作排序
func (s *Service) ReorderPaintings(ctx context.Context, items []paintings.ReorderItem) (int, error) {
	updated, err := s.repo.WithContext(ctx).ReorderPaintings(items)
	if err != nil {
		return 0, err
	}
	s.invalidateLists(ctx)
	return updated, nil
}

// UploadImage 上传画作图片：存原图与缩略图，更新记录并清理旧文件
func (s *Service) UploadImage(ctx context.Context, id uint, fileHeader *multipart.FileHeader) (*models.Painting, error) {
	identifier, err := s.saveImageWithThumbnail(ctx, fileHeader)
	if err != nil {
		return nil, err
	}

	painting, oldIdentifier, err := s.repo.WithContext(ctx).SetImage(id, identifier, "/images/"+identifier)
	if err != nil {
		// 记录更新失败，回收刚写入的文件
		s.removeFiles(ctx, identifier)
		return nil, err
	}

	if oldIdentifier != "" && oldIdentifier != identifier {
		s.removeFiles(ctx, oldIdentifier)
	}
	s.invalidateLists(ctx)
	return painting, nil
}

// saveImageWithThumbnail 保存原图及缩略图，返回生成的存储标识
func (s *Service) saveImageWithThumbnail(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExt(ext) {
		return "", errs.NewValidation(fmt.Sprintf("unsupported image type: %s", ext))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	identifier := uuid.New().String() + ext
	if err := s.storage.SaveWithContext(ctx, identifier, file); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	// 缩略图生成失败不阻塞上传，缩略图接口会回退到原图
	if _, err := file.Seek(0, 0); err == nil {
		if thumb, _, thumbErr := imaging.Thumbnail(file, s.thumbnailEdge); thumbErr == nil {
			if saveErr := s.storage.SaveWithContext(ctx, ThumbnailPrefix+identifier, bytes.NewReader(thumb)); saveErr != nil {
				log.Printf("Failed to save thumbnail for %s: %v", identifier, saveErr)
			}
		} else {
			log.Printf("Failed to generate thumbnail for %s: %v", identifier, thumbErr)
		}
	}

	return identifier, nil
}

// removeFiles 尽力删除原图及缩略图，失败只记日志
func (s *Service) removeFiles(ctx context.Context, identifier string) {
	if identifier == "" {
		return
	}
	if err := s.storage.DeleteWithContext(ctx, identifier); err != nil {
		log.Printf("Failed to delete stored file %s: %v", identifier, err)
	}
	if err := s.storage.DeleteWithContext(ctx, ThumbnailPrefix+identifier); err != nil {
		log.Printf("Failed to delete thumbnail %s: %v", ThumbnailPrefix+identifier, err)
	}
}

func (s *Service) invalidateLists(ctx context.Context) {
	if s.cacheProvider == nil {
		return
	}
	cache.BumpVersion(ctx, s.cacheProvider, cache.PaintingListVersion)
}

// listVariant 将查询参数编码为缓存键片段
func listVariant(params paintings.ListParams) string {
	page, perPage := paintings.NormalizePage(params.Page, params.PerPage)

	var b strings.Builder
	fmt.Fprintf(&b, "p=%d,pp=%d", page, perPage)
	if params.Category != "" {
		fmt.Fprintf(&b, ",c=%s", params.Category)
	}
	if params.Year != "" {
		fmt.Fprintf(&b, ",y=%s", params.Year)
	}
	if params.Search != "" {
		fmt.Fprintf(&b, ",q=%s", params.Search)
	}
	if params.PriceMin != nil {
		fmt.Fprintf(&b, ",pmin=%g", *params.PriceMin)
	}
	if params.PriceMax != nil {
		fmt.Fprintf(&b, ",pmax=%g", *params.PriceMax)
	}
	if params.OnlyAvailable {
		b.WriteString(",avail=1")
	}
	if params.SortBy != "" {
		fmt.Fprintf(&b, ",sb=%s,so=%s", params.SortBy, params.SortOrder)
	}
	return b.String()
}

func allowedImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return true
	}
	return false
}
