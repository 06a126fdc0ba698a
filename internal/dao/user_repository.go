// Package dao 实现数据访问层
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/notevault/note-vault-service/internal/domain"
	"github.com/notevault/note-vault-service/internal/model"
	"github.com/notevault/note-vault-service/pkg/timex"

	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:       m.UID,
		Email:     m.Email,
		Nickname:  m.Nickname,
		Document:  m.Document,
		Password:  m.Password,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.dao.DB().WithContext(ctx).Where("uid = ?", uid).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.dao.DB().WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByDocument 根据证件号获取用户
func (r *userRepository) GetByDocument(ctx context.Context, document string) (*domain.User, error) {
	var m model.User
	err := r.dao.DB().WithContext(ctx).Where("document = ?", document).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := timex.Now()
	m := &model.User{
		Email:     user.Email,
		Nickname:  user.Nickname,
		Document:  user.Document,
		Password:  user.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}
