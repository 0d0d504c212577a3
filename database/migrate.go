package database

import "github.com/artfolio/gallery-backend/database/models"

// AllModels 返回需要自动迁移的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Device{},
		&models.Painting{},
		&models.PaintingCategory{},
		&models.Exhibition{},
		&models.ExhibitionPhoto{},
	}
}

// Migrate 迁移全部表结构
func Migrate(p Provider) error {
	return p.AutoMigrate(AllModels()...)
}
