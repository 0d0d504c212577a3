package exhibitions

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

	require.NoError(t, db.AutoMigrate(&models.Exhibition{}, &models.ExhibitionPhoto{}))
	return db
}

func seedExhibition(t *testing.T, repo *Repository, title string) *models.Exhibition {
	t.Helper()

	e := &models.Exhibition{
		Title:    title,
		Date:     "2024",
		Location: "Main hall",
	}
	require.NoError(t, repo.CreateExhibition(e))
	return e
}

func seedPhotos(t *testing.T, repo *Repository, exhibitionID uint, count int) []*models.ExhibitionPhoto {
	t.Helper()

	photos := make([]*models.ExhibitionPhoto, count)
	for i := range photos {
		photos[i] = &models.ExhibitionPhoto{
			Identifier: fmt.Sprintf("%s-photo-%d.jpg", t.Name(), i),
			ImageURL:   fmt.Sprintf("/images/%s-photo-%d.jpg", t.Name(), i),
		}
	}
	require.NoError(t, repo.AddPhotos(exhibitionID, photos))
	return photos
}

func TestCreateExhibitionAssignsSequentialOrder(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	first := seedExhibition(t, repo, "First")
	second := seedExhibition(t, repo, "Second")

	assert.Equal(t, 1, first.DisplayOrder)
	assert.Equal(t, 2, second.DisplayOrder)
}

func TestListExhibitionsOrdered(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	seedExhibition(t, repo, "Older")
	seedExhibition(t, repo, "Newer")

	list, err := repo.ListExhibitions()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Newer", list[0].Title)
	assert.Equal(t, "Older", list[1].Title)
}

func TestAddPhotosAppendsAfterExistingOrder(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	e := seedExhibition(t, repo, "Show")

	first := seedPhotos(t, repo, e.ID, 2)
	assert.Equal(t, 1, first[0].DisplayOrder)
	assert.Equal(t, 2, first[1].DisplayOrder)

	more := []*models.ExhibitionPhoto{{
		Identifier: "late.jpg",
		ImageURL:   "/images/late.jpg",
	}}
	require.NoError(t, repo.AddPhotos(e.ID, more))
	assert.Equal(t, 3, more[0].DisplayOrder)
}

func TestAddPhotosUnknownExhibition(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	err := repo.AddPhotos(999, []*models.ExhibitionPhoto{{Identifier: "x.jpg", ImageURL: "/images/x.jpg"}})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteExhibitionRemovesPhotos(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	e := seedExhibition(t, repo, "Doomed")
	seedPhotos(t, repo, e.ID, 3)

	deleted, err := repo.DeleteExhibition(e.ID)
	require.NoError(t, err)
	assert.Len(t, deleted.Photos, 3)

	var photoCount int64
	require.NoError(t, repo.db.Model(&models.ExhibitionPhoto{}).Where("exhibition_id = ?", e.ID).Count(&photoCount).Error)
	assert.Zero(t, photoCount)

	_, err = repo.GetExhibitionByID(e.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeletePhotoScopedToExhibition(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	a := seedExhibition(t, repo, "A")
	b := seedExhibition(t, repo, "B")
	photosA := seedPhotos(t, repo, a.ID, 1)

	// 跨展览删除按不存在处理
	_, err := repo.DeletePhoto(b.ID, photosA[0].ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	deleted, err := repo.DeletePhoto(a.ID, photosA[0].ID)
	require.NoError(t, err)
	assert.Equal(t, photosA[0].Identifier, deleted.Identifier)
}

func TestReorderPhotosAppliesWithinExhibition(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	e := seedExhibition(t, repo, "Show")
	photos := seedPhotos(t, repo, e.ID, 3)

	updated, err := repo.ReorderPhotos(e.ID, []ReorderItem{
		{ID: photos[0].ID, Order: 30},
		{ID: photos[2].ID, Order: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	reloaded, err := repo.GetExhibitionByID(e.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Photos, 3)
	// display_order 降序排列
	assert.Equal(t, photos[0].ID, reloaded.Photos[0].ID)
}

func TestReorderPhotosRejectsForeignPhoto(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	a := seedExhibition(t, repo, "A")
	b := seedExhibition(t, repo, "B")
	photosA := seedPhotos(t, repo, a.ID, 1)
	photosB := seedPhotos(t, repo, b.ID, 1)

	_, err := repo.ReorderPhotos(a.ID, []ReorderItem{
		{ID: photosA[0].ID, Order: 5},
		{ID: photosB[0].ID, Order: 6},
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	// 整批回滚
	reloaded, err := repo.GetExhibitionByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, photosA[0].DisplayOrder, reloaded.Photos[0].DisplayOrder)
}

func TestReorderExhibitions(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	first := seedExhibition(t, repo, "First")
	second := seedExhibition(t, repo, "Second")

	updated, err := repo.ReorderExhibitions([]ReorderItem{
		{ID: first.ID, Order: 10},
		{ID: second.ID, Order: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	list, err := repo.ListExhibitions()
	require.NoError(t, err)
	assert.Equal(t, "First", list[0].Title)
}

func TestUpdateExhibitionNotFound(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.UpdateExhibition(999, map[string]interface{}{"title": "Ghost"})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
