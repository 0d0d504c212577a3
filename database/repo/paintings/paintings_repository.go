package paintings

import (
	"context"
	"errors"
	"strings"

	"github.com/artfolio/gallery-backend/database/models"
	"github.com/artfolio/gallery-backend/internal/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DefaultPerPage 公开列表默认分页大小
	DefaultPerPage = 12

	// MaxPerPage 分页大小上限，超出时被钳制
	MaxPerPage = 50

	// AllWorksCategory 表示不过滤分类的哨兵值
	AllWorksCategory = "All Works"
)

// Repository 画作仓库 - 封装所有画作相关的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的画作仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ReorderItem 重排序条目，Order 为调用方计算的目标序号
type ReorderItem struct {
	ID    uint
	Order int
}

// ListParams 列表过滤、排序与分页参数，过滤条件之间为 AND 关系
type ListParams struct {
	Category      string
	Year          string
	Search        string
	PriceMin      *float64
	PriceMax      *float64
	OnlyAvailable bool

	SortBy    string
	SortOrder string

	Page    int
	PerPage int

	// Unpaginated 返回完整过滤结果，供管理端拖拽排序使用
	Unpaginated bool
}

// 次排序键白名单，主排序键固定为 display_order DESC
var sortColumns = map[string]string{
	"created_at": "created_at",
	"title":      "title",
	"year":       "year",
	"price":      "price",
}

// NormalizePage 规范化分页参数，perPage 钳制到 MaxPerPage
func NormalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// CreatePainting 创建画作，display_order 自动取当前最大值加一
// 精选槽位检查与写入在同一事务内完成
func (r *Repository) CreatePainting(p *models.Painting) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if p.Featured {
			if err := checkFeaturedSlot(tx, 0); err != nil {
				return err
			}
		}

		var maxOrder int
		if err := tx.Model(&models.Painting{}).
			Select("COALESCE(MAX(display_order), 0)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}
		p.DisplayOrder = maxOrder + 1

		return tx.Create(p).Error
	})
}

// GetPaintingByID 通过ID获取画作（含分类）
func (r *Repository) GetPaintingByID(id uint) (*models.Painting, error) {
	var painting models.Painting
	err := r.db.Preload("Categories").First(&painting, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("painting", id)
		}
		return nil, err
	}
	return &painting, nil
}

// UpdatePainting 部分更新画作；categories 为 nil 时不改动分类
// featured 置真时在同一事务内做槽位检查，排除自身
func (r *Repository) UpdatePainting(id uint, updates map[string]interface{}, categories []string) (*models.Painting, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var painting models.Painting
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&painting, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("painting", id)
			}
			return err
		}

		if featured, ok := updates["featured"].(bool); ok && featured && !painting.Featured {
			if err := checkFeaturedSlot(tx, id); err != nil {
				return err
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&painting).Updates(updates).Error; err != nil {
				return err
			}
		}

		if categories != nil {
			if err := replaceCategories(tx, id, categories); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetPaintingByID(id)
}

// SetImage 更新画作图片，返回被替换的旧存储标识（可能为空）
func (r *Repository) SetImage(id uint, identifier, imageURL string) (*models.Painting, string, error) {
	var oldIdentifier string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var painting models.Painting
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&painting, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("painting", id)
			}
			return err
		}

		oldIdentifier = painting.Identifier
		return tx.Model(&painting).Updates(map[string]interface{}{
			"identifier": identifier,
			"image_url":  imageURL,
		}).Error
	})
	if err != nil {
		return nil, "", err
	}

	painting, err := r.GetPaintingByID(id)
	return painting, oldIdentifier, err
}

// DeletePainting 删除画作及其分类行，返回被删除的记录供调用方清理文件
func (r *Repository) DeletePainting(id uint) (*models.Painting, error) {
	var painting models.Painting

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Categories").First(&painting, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("painting", id)
			}
			return err
		}

		if err := tx.Where("painting_id = ?", id).Delete(&models.PaintingCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&painting).Error
	})
	if err != nil {
		return nil, err
	}
	return &painting, nil
}

// ReorderPaintings 在单个事务内应用一批排序更新
// 任一标识符不存在返回 NotFoundError 且不做任何修改；
// 校验与写入之间记录消失（RowsAffected 为零）时回滚并返回 ConflictError
func (r *Repository) ReorderPaintings(items []ReorderItem) (int, error) {
	if len(items) == 0 {
		return 0, errs.NewValidation("order items must be a non-empty list")
	}

	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	updated := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if missing, err := missingIDs(tx.Model(&models.Painting{}), ids); err != nil {
			return err
		} else if len(missing) > 0 {
			return errs.NewNotFound("painting", missing...)
		}

		for _, item := range items {
			result := tx.Model(&models.Painting{}).
				Where("id = ?", item.ID).
				Update("display_order", item.Order)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errs.NewConflict("painting", item.ID)
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

// ListPaintings 获取过滤、排序、分页后的画作列表及总数
func (r *Repository) ListPaintings(params ListParams) ([]*models.Painting, int64, error) {
	db := r.db.Model(&models.Painting{})

	if params.Category != "" && params.Category != AllWorksCategory {
		db = db.Where("EXISTS (SELECT 1 FROM painting_categories pc WHERE pc.painting_id = paintings.id AND pc.name = ?)",
			params.Category)
	}
	if params.Year != "" {
		db = db.Where("year = ?", params.Year)
	}
	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(medium) LIKE ? OR LOWER(description) LIKE ?", term, term, term)
	}
	if params.PriceMin != nil {
		db = db.Where("price IS NOT NULL AND price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		db = db.Where("price IS NOT NULL AND price <= ?", *params.PriceMax)
	}
	if params.OnlyAvailable {
		db = db.Where("is_available = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("display_order DESC").Order(secondaryOrder(params.SortBy, params.SortOrder)).
		Preload("Categories")

	if !params.Unpaginated {
		page, perPage := NormalizePage(params.Page, params.PerPage)
		db = db.Offset((page - 1) * perPage).Limit(perPage)
	}

	var paintingList []*models.Painting
	err := db.Find(&paintingList).Error
	return paintingList, total, err
}

// CountFeatured 统计精选画作数量，excludeID 不为零时排除该记录
func (r *Repository) CountFeatured(excludeID uint) (int64, error) {
	var count int64
	db := r.db.Model(&models.Painting{}).Where("featured = ?", true)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count, err
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// checkFeaturedSlot 在当前事务内检查精选槽位
// 对现有精选行加锁，使并发置精选的事务相互排队（SQLite 写事务天然串行）
func checkFeaturedSlot(tx *gorm.DB, excludeID uint) error {
	var featuredIDs []uint
	db := tx.Model(&models.Painting{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("featured = ?", true)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Pluck("id", &featuredIDs).Error; err != nil {
		return err
	}

	if len(featuredIDs) >= models.FeaturedLimit {
		return errs.NewCapacity("featured paintings", models.FeaturedLimit)
	}
	return nil
}

// replaceCategories 以提交的分类集合整体替换现有分类行
func replaceCategories(tx *gorm.DB, paintingID uint, names []string) error {
	if err := tx.Where("painting_id = ?", paintingID).Delete(&models.PaintingCategory{}).Error; err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	rows := make([]models.PaintingCategory, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		rows = append(rows, models.PaintingCategory{PaintingID: paintingID, Name: name})
	}
	return tx.Create(&rows).Error
}

// missingIDs 返回 ids 中不存在于表内的标识符，保持提交顺序
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

// secondaryOrder 构造次排序子句，非法字段回退到 created_at desc
func secondaryOrder(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	direction := "desc"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "asc"
	}
	return column + " " + direction
}
