// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"

	"github.com/notevault/note-vault-service/internal/domain"
	"github.com/notevault/note-vault-service/internal/dto"
	"github.com/notevault/note-vault-service/pkg/code"
	"github.com/notevault/note-vault-service/pkg/logger"
	"github.com/notevault/note-vault-service/pkg/timex"

	"go.uber.org/zap"
)

// CategoryService defines the category business service interface
// CategoryService 定义分类业务服务接口
type CategoryService interface {
	// Get retrieves category details for a specified ID
	// Get 获取指定 ID 的分类详情
	Get(ctx context.Context, uid int64, id int64) (*dto.CategoryDTO, error)

	// Create creates a new category
	// Create 创建分类
	Create(ctx context.Context, uid int64, params *dto.CategoryCreateRequest) (*dto.CategoryDTO, error)

	// Update renames a category
	// Update 重命名分类
	Update(ctx context.Context, uid int64, id int64, params *dto.CategoryUpdateRequest) (*dto.CategoryDTO, error)

	// List retrieves all categories of the user
	// List 获取用户的全部分类
	List(ctx context.Context, uid int64) ([]*dto.CategoryDTO, error)

	// Delete removes a category that is not referenced by any note
	// Delete 删除未被任何笔记引用的分类
	Delete(ctx context.Context, uid int64, id int64) error
}

// categoryService 实现 CategoryService 接口
type categoryService struct {
	categoryRepo domain.CategoryRepository
	noteRepo     domain.NoteRepository
	logger       *zap.Logger
}

// NewCategoryService creates CategoryService instance
// NewCategoryService 创建 CategoryService 实例
func NewCategoryService(categoryRepo domain.CategoryRepository, noteRepo domain.NoteRepository, l *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		noteRepo:     noteRepo,
		logger:       l,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *categoryService) domainToDTO(category *domain.Category) *dto.CategoryDTO {
	if category == nil {
		return nil
	}
	return &dto.CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		CreatedAt: timex.Time(category.CreatedAt),
		UpdatedAt: timex.Time(category.UpdatedAt),
	}
}

// Get 获取指定 ID 的分类详情
func (s *categoryService) Get(ctx context.Context, uid int64, id int64) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if category == nil {
		return nil, code.ErrorCategoryNotFound
	}
	return s.domainToDTO(category), nil
}

// Create 创建分类，同名分类不可重复
func (s *categoryService) Create(ctx context.Context, uid int64, params *dto.CategoryCreateRequest) (*dto.CategoryDTO, error) {
	exist, err := s.categoryRepo.GetByName(ctx, params.Name, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if exist != nil {
		return nil, code.ErrorCategoryExists
	}

	category, err := s.categoryRepo.Create(ctx, &domain.Category{
		UID:   uid,
		Name:  params.Name,
		Color: params.Color,
	})
	if err != nil {
		s.logger.Error("category create failed",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldMethod, "categoryService.Create"),
			zap.Error(err),
		)
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(category), nil
}

// Update 重命名分类
func (s *categoryService) Update(ctx context.Context, uid int64, id int64, params *dto.CategoryUpdateRequest) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if category == nil {
		return nil, code.ErrorCategoryNotFound
	}

	exist, err := s.categoryRepo.GetByName(ctx, params.Name, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if exist != nil && exist.ID != id {
		return nil, code.ErrorCategoryExists
	}

	category.Name = params.Name
	category.Color = params.Color
	if err := s.categoryRepo.Update(ctx, category, uid); err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	updated, err := s.categoryRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(updated), nil
}

// List 获取用户的全部分类
func (s *categoryService) List(ctx context.Context, uid int64) ([]*dto.CategoryDTO, error) {
	categories, err := s.categoryRepo.List(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	list := make([]*dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		list = append(list, s.domainToDTO(c))
	}
	return list, nil
}

// Delete 删除分类
// 分类下仍有笔记引用时拒绝删除，避免笔记悬挂在不存在的分类上
func (s *categoryService) Delete(ctx context.Context, uid int64, id int64) error {
	category, err := s.categoryRepo.GetByID(ctx, id, uid)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if category == nil {
		return code.ErrorCategoryNotFound
	}

	count, err := s.noteRepo.CountByCategoryID(ctx, id, uid)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if count > 0 {
		return code.ErrorCategoryInUse
	}

	if err := s.categoryRepo.Delete(ctx, id, uid); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}
