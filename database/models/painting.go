package models

import "gorm.io/gorm"

// FeaturedLimit 同时处于精选状态的画作数量上限
const FeaturedLimit = 3

type Painting struct {
	gorm.Model
	Title       string `gorm:"type:varchar(200);not null;index"`
	Medium      string `gorm:"type:varchar(100)"`
	Year        string `gorm:"type:varchar(10);index"`
	Description string `gorm:"type:text"`

	// Identifier 是存储层中图片文件的键，未上传图片时为空
	Identifier string `gorm:"type:varchar(100);index"`
	ImageURL   string `gorm:"type:varchar(500)"`

	Price       *float64 `gorm:"check:price >= 0"`
	IsAvailable bool     `gorm:"default:true;not null"`
	Featured    bool     `gorm:"default:false;not null;index"`

	// DisplayOrder 数值越大越靠前（降序展示）
	DisplayOrder int `gorm:"column:display_order;default:0;not null;index"`

	Categories []PaintingCategory `gorm:"constraint:OnDelete:CASCADE;"`
}

// PaintingCategory 画作分类行，一幅画对应多行
type PaintingCategory struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	PaintingID uint   `gorm:"uniqueIndex:idx_painting_category,priority:1;not null"`
	Name       string `gorm:"uniqueIndex:idx_painting_category,priority:2;type:varchar(100);not null;index"`
}

// CategoryNames 返回分类名称列表
func (p *Painting) CategoryNames() []string {
	names := make([]string, len(p.Categories))
	for i, c := range p.Categories {
		names[i] = c.Name
	}
	return names
}
