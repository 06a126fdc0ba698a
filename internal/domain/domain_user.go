// Package domain 定义领域模型和接口
package domain

import "time"

// User 用户领域模型
type User struct {
	UID       int64
	Email     string
	Nickname  string
	Document  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
