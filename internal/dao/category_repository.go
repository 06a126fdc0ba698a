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

// categoryRepository 实现 domain.CategoryRepository 接口
type categoryRepository struct {
	dao *Dao
}

// NewCategoryRepository 创建 CategoryRepository 实例
func NewCategoryRepository(dao *Dao) domain.CategoryRepository {
	return &categoryRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *categoryRepository) toDomain(m *model.Category) *domain.Category {
	if m == nil {
		return nil
	}
	return &domain.Category{
		ID:        m.ID,
		UID:       m.UID,
		Name:      m.Name,
		Color:     m.Color,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// GetByID 根据ID获取分类
func (r *categoryRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Category, error) {
	var m model.Category
	err := r.dao.DB().WithContext(ctx).Where("id = ? AND uid = ?", id, uid).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByName 根据名称获取分类
func (r *categoryRepository) GetByName(ctx context.Context, name string, uid int64) (*domain.Category, error) {
	var m model.Category
	err := r.dao.DB().WithContext(ctx).Where("name = ? AND uid = ?", name, uid).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建分类
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	now := timex.Now()
	m := &model.Category{
		UID:       category.UID,
		Name:      category.Name,
		Color:     category.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新分类
func (r *categoryRepository) Update(ctx context.Context, category *domain.Category, uid int64) error {
	return r.dao.DB().WithContext(ctx).Model(&model.Category{}).
		Where("id = ? AND uid = ?", category.ID, uid).
		Updates(map[string]interface{}{
			"name":       category.Name,
			"color":      category.Color,
			"updated_at": timex.Now(),
		}).Error
}

// List 获取分类列表
func (r *categoryRepository) List(ctx context.Context, uid int64) ([]*domain.Category, error) {
	var ms []*model.Category
	err := r.dao.DB().WithContext(ctx).Where("uid = ?", uid).Order("id ASC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Category, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// Delete 删除分类
func (r *categoryRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.DB().WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Category{}).Error
}
