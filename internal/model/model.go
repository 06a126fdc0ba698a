package model

import (
	"gorm.io/gorm"
)

// AutoMigrate migrates all tables // 迁移全部数据表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Note{},
		&NoteHistory{},
	)
}
