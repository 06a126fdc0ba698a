package model

import "github.com/notevault/note-vault-service/pkg/timex"

const TableNameNote = "note"

// Note mapped from table <note>
// Version 从 1 开始，每次内容变更递增，作为乐观并发控制的条件
type Note struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID        int64      `gorm:"column:uid;not null;index:idx_note_uid" json:"uid" form:"uid"`
	CategoryID int64      `gorm:"column:category_id;index:idx_note_category" json:"categoryId" form:"categoryId"`
	Title      string     `gorm:"column:title;not null" json:"title" form:"title"`
	Content    string     `gorm:"column:content;type:text" json:"content" form:"content"`
	Version    int64      `gorm:"column:version;not null;default:1" json:"version" form:"version"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
