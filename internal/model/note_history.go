package model

import "github.com/notevault/note-vault-service/pkg/timex"

const TableNameNoteHistory = "note_history"

// NoteHistory mapped from table <note_history>
// 保存笔记变更前的快照，Version 为快照对应的笔记版本号
type NoteHistory struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	NoteID     int64      `gorm:"column:note_id;not null;index:idx_history_note" json:"noteId" form:"noteId"`
	UID        int64      `gorm:"column:uid;not null;index:idx_history_uid" json:"uid" form:"uid"`
	CategoryID int64      `gorm:"column:category_id" json:"categoryId" form:"categoryId"`
	Title      string     `gorm:"column:title;not null" json:"title" form:"title"`
	Content    string     `gorm:"column:content;type:text" json:"content" form:"content"`
	Version    int64      `gorm:"column:version;not null" json:"version" form:"version"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName NoteHistory's table name
func (*NoteHistory) TableName() string {
	return TableNameNoteHistory
}
