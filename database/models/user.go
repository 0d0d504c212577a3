package models

import "gorm.io/gorm"

const RoleAdmin = "admin"

type User struct {
	gorm.Model
	Username string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Role     string `gorm:"type:varchar(32);default:admin;not null"`
}
