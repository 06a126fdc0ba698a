// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"errors"

	"github.com/notevault/note-vault-service/pkg/code"

	"gorm.io/gorm"
)

// AppServiceConfig 业务层配置
type AppServiceConfig struct {
	// RegisterEnabled 是否开放注册
	RegisterEnabled bool
	// HistoryRetentionDays 历史快照保留天数，0 表示永久保留
	HistoryRetentionDays int
}

// storeError 将存储层错误归类
// 唯一约束或外键冲突归为完整性冲突，其余归为一般持久化失败
func storeError(err error) *code.Code {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return code.ErrorDBIntegrity.WithDetails(err.Error())
	}
	return code.ErrorDBQuery.WithDetails(err.Error())
}
