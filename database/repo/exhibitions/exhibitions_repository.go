package exhibitions

import (
	"context"
	"errors"

	"github.com/artfolio/gallery-backend/database/models"
	"github.com/artfolio/gallery-backend/internal/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 展览仓库 - 封装展览及展览照片的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的展览仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ReorderItem 照片重排序条目
type ReorderItem struct {
	ID    uint
	Order int
}

// ListExhibitions 获取全部展览（含照片），按 display_order 降序
func (r *Repository) ListExhibitions() ([]*models.Exhibition, error) {
	var exhibitionList []*models.Exhibition
	err := r.db.
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order DESC, id ASC")
		}).
		Order("display_order DESC, created_at DESC").
		Find(&exhibitionList).Error
	return exhibitionList, err
}

// GetExhibitionByID 通过ID获取展览（含照片）
func (r *Repository) GetExhibitionByID(id uint) (*models.Exhibition, error) {
	var exhibition models.Exhibition
	err := r.db.
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order DESC, id ASC")
		}).
		First(&exhibition, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("exhibition", id)
		}
		return nil, err
	}
	return &exhibition, nil
}

// CreateExhibition 创建展览，display_order 自动取当前最大值加一
func (r *Repository) CreateExhibition(e *models.Exhibition) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		if err := tx.Model(&models.Exhibition{}).
			Select("COALESCE(MAX(display_order), 0)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}
		e.DisplayOrder = maxOrder + 1

		return tx.Create(e).Error
	})
}

// UpdateExhibition 部分更新展览
func (r *Repository) UpdateExhibition(id uint, updates map[string]interface{}) (*models.Exhibition, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var exhibition models.Exhibition
		if err := tx.First(&exhibition, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("exhibition", id)
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&exhibition).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetExhibitionByID(id)
}

// DeleteExhibition 删除展览及其全部照片行
// 返回被删除的展览（含照片）供调用方清理存储文件
func (r *Repository) DeleteExhibition(id uint) (*models.Exhibition, error) {
	var exhibition models.Exhibition

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Photos").First(&exhibition, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("exhibition", id)
			}
			return err
		}

		if err := tx.Where("exhibition_id = ?", id).Delete(&models.ExhibitionPhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&exhibition).Error
	})
	if err != nil {
		return nil, err
	}
	return &exhibition, nil
}

// ReorderExhibitions 在单个事务内应用一批展览排序更新
func (r *Repository) ReorderExhibitions(items []ReorderItem) (int, error) {
	if len(items) == 0 {
		return 0, errs.NewValidation("order items must be a non-empty list")
	}

	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	updated := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if missing, err := missingIDs(tx.Model(&models.Exhibition{}), ids); err != nil {
			return err
		} else if len(missing) > 0 {
			return errs.NewNotFound("exhibition", missing...)
		}

		for _, item := range items {
			result := tx.Model(&models.Exhibition{}).
				Where("id = ?", item.ID).
				Update("display_order", item.Order)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errs.NewConflict("exhibition", item.ID)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// AddPhotos 批量追加照片，展览内序号从当前最大值之后连续递增
// 保持调用方提交的切片顺序
func (r *Repository) AddPhotos(exhibitionID uint, photos []*models.ExhibitionPhoto) error {
	if len(photos) == 0 {
		return errs.NewValidation("photos must be a non-empty list")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var exhibition models.Exhibition
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&exhibition, exhibitionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("exhibition", exhibitionID)
			}
			return err
		}

		var maxOrder int
		if err := tx.Model(&models.ExhibitionPhoto{}).
			Where("exhibition_id = ?", exhibitionID).
			Select("COALESCE(MAX(display_order), 0)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}

		for i, photo := range photos {
			photo.ExhibitionID = exhibitionID
			photo.DisplayOrder = maxOrder + i + 1
		}
		return tx.Create(&photos).Error
	})
}

// GetPhoto 获取展览内的单张照片
func (r *Repository) GetPhoto(exhibitionID, photoID uint) (*models.ExhibitionPhoto, error) {
	var photo models.ExhibitionPhoto
	err := r.db.Where("exhibition_id = ?", exhibitionID).First(&photo, photoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("exhibition photo", photoID)
		}
		return nil, err
	}
	return &photo, nil
}

// DeletePhoto 删除展览内的单张照片，返回被删除的记录供调用方清理文件
func (r *Repository) DeletePhoto(exhibitionID, photoID uint) (*models.ExhibitionPhoto, error) {
	var photo models.ExhibitionPhoto

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exhibition_id = ?", exhibitionID).First(&photo, photoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("exhibition photo", photoID)
			}
			return err
		}
		return tx.Delete(&photo).Error
	})
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// ReorderPhotos 在单个事务内重排展览内的照片
// 条目必须全部属于该展览，越界条目按不存在处理
func (r *Repository) ReorderPhotos(exhibitionID uint, items []ReorderItem) (int, error) {
	if len(items) == 0 {
		return 0, errs.NewValidation("order items must be a non-empty list")
	}

	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	updated := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var exhibition models.Exhibition
		if err := tx.Select("id").First(&exhibition, exhibitionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("exhibition", exhibitionID)
			}
			return err
		}

		scope := tx.Model(&models.ExhibitionPhoto{}).Where("exhibition_id = ?", exhibitionID)
		if missing, err := missingIDs(scope, ids); err != nil {
			return err
		} else if len(missing) > 0 {
			return errs.NewNotFound("exhibition photo", missing...)
		}

		for _, item := range items {
			result := tx.Model(&models.ExhibitionPhoto{}).
				Where("id = ? AND exhibition_id = ?", item.ID, exhibitionID).
				Update("display_order", item.Order)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errs.NewConflict("exhibition photo", item.ID)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// missingIDs 返回 ids 中不在给定查询范围内的标识符，保持提交顺序
func missingIDs(db *gorm.DB, ids []uint) ([]uint, error) {
	var existing []uint
	if err := db.Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return nil, err
	}

	existingSet := make(map[uint]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	var missing []uint
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := existingSet[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
