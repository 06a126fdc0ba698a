// Package domain 定义领域模型和接口
package domain

import "time"

// Category 分类领域模型
type Category struct {
	ID        int64
	UID       int64
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
