// Package domain 定义领域模型和接口
package domain

import "time"

// NoteHistory 笔记历史领域模型
// 记录一次修改之前的完整快照，Version 是快照时笔记的版本号
type NoteHistory struct {
	ID         int64
	NoteID     int64
	UID        int64
	CategoryID int64
	Title      string
	Content    string
	Version    int64
	CreatedAt  time.Time
}
