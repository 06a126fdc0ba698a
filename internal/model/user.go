package model

import "github.com/notevault/note-vault-service/pkg/timex"

const TableNameUser = "user"

// User mapped from table <user>
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid" form:"uid"`
	Email     string     `gorm:"column:email;not null;uniqueIndex:idx_email" json:"email" form:"email"`
	Nickname  string     `gorm:"column:nickname;not null" json:"nickname" form:"nickname"`
	Document  string     `gorm:"column:document;uniqueIndex:idx_document" json:"document" form:"document"`
	Password  string     `gorm:"column:password;not null" json:"-" form:"-"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}
