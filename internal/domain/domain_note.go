// Package domain 定义领域模型和接口
package domain

import "time"

// Note 笔记领域模型
// Version 是乐观并发控制的版本号，从 1 开始单调递增
type Note struct {
	ID         int64
	UID        int64
	CategoryID int64
	Title      string
	Content    string
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NoteMutation 一次笔记修改请求
// ExpectedVersion 是调用方最后看到的版本号，与存储中的当前版本不一致时修改被拒绝
type NoteMutation struct {
	Title      *string
	Content    *string
	CategoryID *int64
	// ExpectedVersion 调用方观察到的版本号
	ExpectedVersion int64
}
