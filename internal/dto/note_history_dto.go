// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/notevault/note-vault-service/pkg/timex"

// NoteHistoryDTO 笔记历史数据传输对象
type NoteHistoryDTO struct {
	ID         int64      `json:"id"`
	NoteID     int64      `json:"noteId"`
	CategoryID int64      `json:"categoryId"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Version    int64      `json:"version"`
	CreatedAt  timex.Time `json:"createdAt"`
}

// NoteHistoryNoContentDTO 不包含内容的笔记历史 DTO，用于列表
type NoteHistoryNoContentDTO struct {
	ID         int64      `json:"id"`
	NoteID     int64      `json:"noteId"`
	CategoryID int64      `json:"categoryId"`
	Title      string     `json:"title"`
	Version    int64      `json:"version"`
	CreatedAt  timex.Time `json:"createdAt"`
}
