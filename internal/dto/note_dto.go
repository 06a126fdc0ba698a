// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/notevault/note-vault-service/pkg/timex"

// NoteCreateRequest 创建笔记请求参数
type NoteCreateRequest struct {
	Title      string `json:"title" form:"title" binding:"required,max=255"`
	Content    string `json:"content" form:"content"`
	CategoryID int64  `json:"categoryId" form:"categoryId"`
}

// NoteUpdateRequest 更新笔记请求参数
// Version 是客户端最后看到的版本号，未携带或已过期的更新会被拒绝
type NoteUpdateRequest struct {
	Title      *string `json:"title" form:"title"`
	Content    *string `json:"content" form:"content"`
	CategoryID *int64  `json:"categoryId" form:"categoryId"`
	Version    int64   `json:"version" form:"version" binding:"required,min=1"`
}

// NoteListRequest 笔记列表请求参数
type NoteListRequest struct {
	CategoryID int64 `json:"categoryId" form:"categoryId"`
}

// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID         int64      `json:"id"`
	CategoryID int64      `json:"categoryId"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Version    int64      `json:"version"`
	UpdatedAt  timex.Time `json:"updatedAt"`
	CreatedAt  timex.Time `json:"createdAt"`
}

// NoteNoContentDTO 不包含内容的笔记 DTO，用于列表
type NoteNoContentDTO struct {
	ID         int64      `json:"id"`
	CategoryID int64      `json:"categoryId"`
	Title      string     `json:"title"`
	Version    int64      `json:"version"`
	UpdatedAt  timex.Time `json:"updatedAt"`
	CreatedAt  timex.Time `json:"createdAt"`
}
