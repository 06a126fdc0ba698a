// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/notevault/note-vault-service/pkg/timex"

// CategoryCreateRequest 创建分类请求参数
type CategoryCreateRequest struct {
	Name  string `json:"name" form:"name" binding:"required,max=64"`
	Color string `json:"color" form:"color" binding:"omitempty,max=32"`
}

// CategoryUpdateRequest 更新分类请求参数
type CategoryUpdateRequest struct {
	Name  string `json:"name" form:"name" binding:"required,max=64"`
	Color string `json:"color" form:"color" binding:"omitempty,max=32"`
}

// CategoryDTO 分类数据传输对象
type CategoryDTO struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	UpdatedAt timex.Time `json:"updatedAt"`
	CreatedAt timex.Time `json:"createdAt"`
}
