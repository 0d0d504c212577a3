package paintings

import (
	"fmt"
	"testing"

	"github.com/artfolio/gallery-backend/database/models"
	"github.com/artfolio/gallery-backend/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 创建测试数据库，每个测试使用独立的内存库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Painting{}, &models.PaintingCategory{}))
	return db
}

func floatPtr(v float64) *float64 {
	return &v
}

func seedPainting(t *testing.T, repo *Repository, title string, mutate func(*models.Painting)) *models.Painting {
	t.Helper()

	p := &models.Painting{
		Title:       title,
		Medium:      "Oil on canvas",
		Year:        "2023",
		IsAvailable: true,
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, repo.CreatePainting(p))
	return p
}

func TestCreatePaintingAssignsSequentialOrder(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	first := seedPainting(t, repo, "First", nil)
	second := seedPainting(t, repo, "Second", nil)
	third := seedPainting(t, repo, "Third", nil)

	assert.Equal(t, 1, first.DisplayOrder)
	assert.Equal(t, 2, second.DisplayOrder)
	assert.Equal(t, 3, third.DisplayOrder)
}

func TestCreatePaintingFeaturedLimit(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	for i := 0; i < models.FeaturedLimit; i++ {
		seedPainting(t, repo, fmt.Sprintf("Featured %d", i), func(p *models.Painting) {
			p.Featured = true
		})
	}

	overflow := &models.Painting{Title: "One too many", Featured: true}
	err := repo.CreatePainting(overflow)
	require.Error(t, err)
	assert.True(t, errs.IsCapacity(err))

	// 超限的创建不应留下任何行
	var count int64
	require.NoError(t, repo.db.Model(&models.Painting{}).Count(&count).Error)
	assert.EqualValues(t, models.FeaturedLimit, count)
}

func TestUpdatePaintingFeaturedSelfExclusion(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	var featured []*models.Painting
	for i := 0; i < models.FeaturedLimit; i++ {
		featured = append(featured, seedPainting(t, repo, fmt.Sprintf("Featured %d", i), func(p *models.Painting) {
			p.Featured = true
		}))
	}
	plain := seedPainting(t, repo, "Plain", nil)

	// 已精选的画作重复置精选不应触发容量错误
	_, err := repo.UpdatePainting(featured[0].ID, map[string]interface{}{"featured": true, "title": "Renamed"}, nil)
	require.NoError(t, err)

	// 新画作置精选则超限
	_, err = repo.UpdatePainting(plain.ID, map[string]interface{}{"featured": true}, nil)
	require.Error(t, err)
	assert.True(t, errs.IsCapacity(err))
}

func TestUpdatePaintingReplacesCategories(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	p := seedPainting(t, repo, "Categorized", func(p *models.Painting) {
		p.Categories = []models.PaintingCategory{{Name: "Landscape"}, {Name: "Abstract"}}
	})

	updated, err := repo.UpdatePainting(p.ID, nil, []string{"Portrait"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Portrait"}, updated.CategoryNames())

	// nil 表示不改动分类
	updated, err = repo.UpdatePainting(p.ID, map[string]interface{}{"title": "Renamed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Portrait"}, updated.CategoryNames())

	// 空集合清空分类
	updated, err = repo.UpdatePainting(p.ID, nil, []string{})
	require.NoError(t, err)
	assert.Empty(t, updated.CategoryNames())
}

func TestUpdatePaintingNotFound(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.UpdatePainting(999, map[string]interface{}{"title": "Ghost"}, nil)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeletePaintingRemovesCategories(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	p := seedPainting(t, repo, "Doomed", func(p *models.Painting) {
		p.Identifier = "doomed.jpg"
		p.Categories = []models.PaintingCategory{{Name: "Landscape"}}
	})

	deleted, err := repo.DeletePainting(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "doomed.jpg", deleted.Identifier)

	var categoryCount int64
	require.NoError(t, repo.db.Model(&models.PaintingCategory{}).Where("painting_id = ?", p.ID).Count(&categoryCount).Error)
	assert.Zero(t, categoryCount)

	_, err = repo.GetPaintingByID(p.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestReorderPaintingsAppliesAllItems(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	a := seedPainting(t, repo, "A", nil)
	b := seedPainting(t, repo, "B", nil)
	c := seedPainting(t, repo, "C", nil)

	updated, err := repo.ReorderPaintings([]ReorderItem{
		{ID: a.ID, Order: 30},
		{ID: b.ID, Order: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	reloadedA, err := repo.GetPaintingByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, reloadedA.DisplayOrder)

	reloadedB, err := repo.GetPaintingByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, reloadedB.DisplayOrder)

	// 未提交的画作排序保持不变
	reloadedC, err := repo.GetPaintingByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.DisplayOrder, reloadedC.DisplayOrder)
}

func TestReorderPaintingsUnknownIDRollsBack(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	a := seedPainting(t, repo, "A", nil)

	_, err := repo.ReorderPaintings([]ReorderItem{
		{ID: a.ID, Order: 99},
		{ID: 424242, Order: 1},
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	// 整批回滚，已存在的画作排序不变
	reloaded, err := repo.GetPaintingByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.DisplayOrder, reloaded.DisplayOrder)
}

func TestReorderPaintingsEmptyListRejected(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.ReorderPaintings(nil)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestReorderPaintingsIdempotent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	a := seedPainting(t, repo, "A", nil)
	items := []ReorderItem{{ID: a.ID, Order: 7}}

	_, err := repo.ReorderPaintings(items)
	require.NoError(t, err)
	_, err = repo.ReorderPaintings(items)
	require.NoError(t, err)

	reloaded, err := repo.GetPaintingByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.DisplayOrder)
}

func TestListPaintingsOrderedByDisplayOrderDesc(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	seedPainting(t, repo, "Oldest", nil)  // order 1
	seedPainting(t, repo, "Middle", nil)  // order 2
	seedPainting(t, repo, "Newest", nil)  // order 3

	result, total, err := repo.ListPaintings(ListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, result, 3)
	assert.Equal(t, "Newest", result[0].Title)
	assert.Equal(t, "Middle", result[1].Title)
	assert.Equal(t, "Oldest", result[2].Title)
}

func TestListPaintingsCategoryFilter(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	seedPainting(t, repo, "Sea", func(p *models.Painting) {
		p.Categories = []models.PaintingCategory{{Name: "Landscape"}}
	})
	seedPainting(t, repo, "Face", func(p *models.Painting) {
		p.Categories = []models.PaintingCategory{{Name: "Portrait"}}
	})

	result, total, err := repo.ListPaintings(ListParams{Category: "Landscape"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, result, 1)
	assert.Equal(t, "Sea", result[0].Title)

	// 哨兵分类不过滤
	_, total, err = repo.ListPaintings(ListParams{Category: AllWorksCategory})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestListPaintingsSearchCaseInsensitive(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	seedPainting(t, repo, "Sunset Over Water", nil)
	seedPainting(t, repo, "Morning", func(p *models.Painting) {
		p.Description = "a SUNSET study"
	})
	seedPainting(t, repo, "Unrelated", nil)

	_, total, err := repo.ListPaintings(ListParams{Search: "sunset"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestListPaintingsPriceBoundsExcludeUnpriced(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	seedPainting(t, repo, "Cheap", func(p *models.Painting) { p.Price = floatPtr(100) })
	seedPainting(t, repo, "Pricey", func(p *models.Painting) { p.Price = floatPtr(5000) })
	seedPainting(t, repo, "Unpriced", nil)

	result, total, err := repo.ListPaintings(ListParams{PriceMin: floatPtr(50), PriceMax: floatPtr(1000)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, result, 1)
	assert.Equal(t, "Cheap", result[0].Title)

	// 边界值包含
	_, total, err = repo.ListPaintings(ListParams{PriceMin: floatPtr(100), PriceMax: floatPtr(100)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestListPaintingsAvailabilityFilter(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	seedPainting(t, repo, "For sale", nil)
	seedPainting(t, repo, "Sold", func(p *models.Painting) { p.IsAvailable = false })

	result, total, err := repo.ListPaintings(ListParams{OnlyAvailable: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, result, 1)
	assert.Equal(t, "For sale", result[0].Title)
}

func TestListPaintingsPagination(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	for i := 0; i < 5; i++ {
		seedPainting(t, repo, fmt.Sprintf("Painting %d", i), nil)
	}

	result, total, err := repo.ListPaintings(ListParams{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, result, 2)

	// 越界页返回空集
	result, total, err = repo.ListPaintings(ListParams{Page: 10, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Empty(t, result)
}

func TestListPaintingsUnpaginatedReturnsAll(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	for i := 0; i < 5; i++ {
		seedPainting(t, repo, fmt.Sprintf("Painting %d", i), nil)
	}

	result, total, err := repo.ListPaintings(ListParams{Unpaginated: true})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, result, 5)
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, perPage         int
		wantPage, wantPerPage int
	}{
		{0, 0, 1, DefaultPerPage},
		{-1, -5, 1, DefaultPerPage},
		{2, 24, 2, 24},
		{1, 500, 1, MaxPerPage},
	}
	for _, tc := range cases {
		page, perPage := NormalizePage(tc.page, tc.perPage)
		assert.Equal(t, tc.wantPage, page)
		assert.Equal(t, tc.wantPerPage, perPage)
	}
}
