// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/notevault/note-vault-service/pkg/timex"

// UserCreateRequest 用户注册请求参数
type UserCreateRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Nickname string `json:"nickname" form:"nickname" binding:"required"`
	Document string `json:"document" form:"document"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

// UserLoginRequest 用户登录请求参数
type UserLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserDTO 用户数据传输对象
type UserDTO struct {
	UID       int64      `json:"uid"`
	Email     string     `json:"email"`
	Nickname  string     `json:"nickname"`
	Document  string     `json:"document,omitempty"`
	Token     string     `json:"token,omitempty"`
	UpdatedAt timex.Time `json:"updatedAt"`
	CreatedAt timex.Time `json:"createdAt"`
}
