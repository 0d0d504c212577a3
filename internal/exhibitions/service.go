package exhibitions

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
	"github.com/artfolio/gallery-backend/database/repo/exhibitions"
	"github.com/artfolio/gallery-backend/internal/errs"
	"github.com/artfolio/gallery-backend/internal/gallery"
	"github.com/artfolio/gallery-backend/storage"
	"github.com/artfolio/gallery-backend/utils/imaging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// 批量上传时的并发上限
const uploadConcurrency = 4

// Service 展览服务 - 组合仓库、存储与缓存
type Service struct {
	repo          *exhibitions.Repository
	storage       storage.Provider
	cacheProvider cache.Provider
	listTTL       time.Duration
	thumbnailEdge int
	maxBatchSize  int
}

// NewService 创建展览服务
func NewService(repo *exhibitions.Repository, storageProvider storage.Provider, cacheProvider cache.Provider, cfg *config.Config) *Service {
	return &Service{
		repo:          repo,
		storage:       storageProvider,
		cacheProvider: cacheProvider,
		listTTL:       time.Duration(cfg.CacheListTTL) * time.Second,
		thumbnailEdge: cfg.ThumbnailMaxEdge,
		maxBatchSize:  cfg.UploadMaxBatchSize,
	}
}

// ListExhibitions 获取全部展览，走版本化缓存
func (s *Service) ListExhibitions(ctx context.Context) ([]*models.Exhibition, error) {
	load := func() ([]*models.Exhibition, error) {
		return s.repo.WithContext(ctx).ListExhibitions()
	}

	if s.cacheProvider == nil {
		return load()
	}

	key := cache.VersionedKey(ctx, s.cacheProvider, cache.ExhibitionListVersion, cache.ExhibitionList, "all")
	return cache.GetOrLoad(ctx, s.cacheProvider, key, s.listTTL, load)
}

// GetExhibition 获取单个展览
func (s *Service) GetExhibition(ctx context.Context, id uint) (*models.Exhibition, error) {
	return s.repo.WithContext(ctx).GetExhibitionByID(id)
}

// CreateExhibition 创建展览
func (s *Service) CreateExhibition(ctx context.Context, exhibition *models.Exhibition) error {
	if err := s.repo.WithContext(ctx).CreateExhibition(exhibition); err != nil {
		return err
	}
	s.invalidateLists(ctx)
	return nil
}

// UpdateExhibition 部分更新展览
func (s *Service) UpdateExhibition(ctx context.Context, id uint, updates map[string]interface{}) (*models.Exhibition, error) {
	exhibition, err := s.repo.WithContext(ctx).UpdateExhibition(id, updates)
	if err != nil {
		return nil, err
	}
	s.invalidateLists(ctx)
	return exhibition, nil
}

// DeleteExhibition 删除展览并尽力清理全部照片文件
func (s *Service) DeleteExhibition(ctx context.Context, id uint) error {
	exhibition, err := s.repo.WithContext(ctx).DeleteExhibition(id)
	if err != nil {
		return err
	}

	for _, photo := range exhibition.Photos {
		s.removeFiles(ctx, photo.Identifier)
	}
	s.invalidateLists(ctx)
	return nil
}

// ReorderExhibitions 批量更新展览排序
func (s *Service) ReorderExhibitions(ctx context.Context, items []exhibitions.ReorderItem) (int, error) {
	updated, err := s.repo.WithContext(ctx).ReorderExhibitions(items)
	if err != nil {
		return 0, err
	}
	s.invalidateLists(ctx)
	return updated, nil
}

// UploadPhotos 批量上传展览照片
// 文件并发写入存储，全部成功后一次性入库；任一文件失败则回收已写入的文件
func (s *Service) UploadPhotos(ctx context.Context, exhibitionID uint, files []*multipart.FileHeader, titles []string) (*models.Exhibition, error) {
	if len(files) == 0 {
		return nil, errs.NewValidation("photos must be a non-empty list")
	}
	if s.maxBatchSize > 0 && len(files) > s.maxBatchSize {
		return nil, errs.NewValidation(fmt.Sprintf("too many files in one batch (max %d)", s.maxBatchSize))
	}

	identifiers := make([]string, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(uploadConcurrency)
	for i, fileHeader := range files {
		i, fileHeader := i, fileHeader
		group.Go(func() error {
			identifier, err := s.savePhotoWithThumbnail(groupCtx, fileHeader)
			if err != nil {
				return errs.NewValidationAt(i, err.Error())
			}
			identifiers[i] = identifier
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		for _, identifier := range identifiers {
			if identifier != "" {
				s.removeFiles(ctx, identifier)
			}
		}
		return nil, err
	}

	photos := make([]*models.ExhibitionPhoto, len(files))
	for i, identifier := range identifiers {
		title := ""
		if i < len(titles) {
			title = titles[i]
		}
		photos[i] = &models.ExhibitionPhoto{
			Identifier: identifier,
			ImageURL:   "/images/" + identifier,
			Title:      title,
		}
	}

	if err := s.repo.WithContext(ctx).AddPhotos(exhibitionID, photos); err != nil {
		for _, identifier := range identifiers {
			s.removeFiles(ctx, identifier)
		}
		return nil, err
	}

	s.invalidateLists(ctx)
	return s.repo.WithContext(ctx).GetExhibitionByID(exhibitionID)
}

// DeletePhoto 删除展览照片并尽力清理文件
func (s *Service) DeletePhoto(ctx context.Context, exhibitionID, photoID uint) error {
	photo, err := s.repo.WithContext(ctx).DeletePhoto(exhibitionID, photoID)
	if err != nil {
		return err
	}

	s.removeFiles(ctx, photo.Identifier)
	s.invalidateLists(ctx)
	return nil
}

// ReorderPhotos 批量更新展览内照片排序
func (s *Service) ReorderPhotos(ctx context.Context, exhibitionID uint, items []exhibitions.ReorderItem) (int, error) {
	updated, err := s.repo.WithContext(ctx).ReorderPhotos(exhibitionID, items)
	if err != nil {
		return 0, err
	}
	s.invalidateLists(ctx)
	return updated, nil
}

// savePhotoWithThumbnail 保存照片原图及缩略图，返回生成的存储标识
func (s *Service) savePhotoWithThumbnail(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		return "", fmt.Errorf("unsupported image type: %s", ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	identifier := uuid.New().String() + ext
	if err := s.storage.SaveWithContext(ctx, identifier, file); err != nil {
		return "", fmt.Errorf("failed to save photo: %w", err)
	}

	if _, err := file.Seek(0, 0); err == nil {
		if thumb, _, thumbErr := imaging.Thumbnail(file, s.thumbnailEdge); thumbErr == nil {
			if saveErr := s.storage.SaveWithContext(ctx, gallery.ThumbnailPrefix+identifier, bytes.NewReader(thumb)); saveErr != nil {
				log.Printf("Failed to save thumbnail for %s: %v", identifier, saveErr)
			}
		}
	}

	return identifier, nil
}

func (s *Service) removeFiles(ctx context.Context, identifier string) {
	if identifier == "" {
		return
	}
	if err := s.storage.DeleteWithContext(ctx, identifier); err != nil {
		log.Printf("Failed to delete stored file %s: %v", identifier, err)
	}
	if err := s.storage.DeleteWithContext(ctx, gallery.ThumbnailPrefix+identifier); err != nil {
		log.Printf("Failed to delete thumbnail %s: %v", gallery.ThumbnailPrefix+identifier, err)
	}
}

func (s *Service) invalidateLists(ctx context.Context) {
	if s.cacheProvider == nil {
		return
	}
	cache.BumpVersion(ctx, s.cacheProvider, cache.ExhibitionListVersion)
}
