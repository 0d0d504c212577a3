package models

import "gorm.io/gorm"

type Exhibition struct {
	gorm.Model
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	Date        string `gorm:"type:varchar(64)"`
	Location    string `gorm:"type:varchar(200)"`

	// DisplayOrder 数值越大越靠前（降序展示）
	DisplayOrder int `gorm:"column:display_order;default:0;not null;index"`

	// 展览独占其照片集合，删除展览时级联删除
	Photos []ExhibitionPhoto `gorm:"constraint:OnDelete:CASCADE;"`
}

type ExhibitionPhoto struct {
	gorm.Model
	ExhibitionID uint `gorm:"not null;index"`

	// Identifier 是存储层中图片文件的键
	Identifier string `gorm:"type:varchar(100);uniqueIndex;not null"`
	ImageURL   string `gorm:"type:varchar(500);not null"`
	Title      string `gorm:"type:varchar(200)"`

	// DisplayOrder 展览内排序，数值越大越靠前
	DisplayOrder int `gorm:"column:display_order;default:0;not null;index"`
}
