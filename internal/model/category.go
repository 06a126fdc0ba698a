package model

import "github.com/notevault/note-vault-service/pkg/timex"

const TableNameCategory = "category"

// Category mapped from table <category>
type Category struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;index:idx_category_uid" json:"uid" form:"uid"`
	Name      string     `gorm:"column:name;not null" json:"name" form:"name"`
	Color     string     `gorm:"column:color;not null;default:''" json:"color" form:"color"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Category's table name
func (*Category) TableName() string {
	return TableNameCategory
}
