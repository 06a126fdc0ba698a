// Package app 提供应用容器，封装所有依赖和服务
package app

// 构建时通过 -ldflags 注入
var (
	// Name 应用名称
	Name = "note-vault-service"
	// Version 版本号
	Version = "dev"
	// GitTag Git 标签
	GitTag = ""
	// BuildTime 构建时间
	BuildTime = ""
)
