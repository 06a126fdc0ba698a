package service

import (
	"context"
	"testing"

	"github.com/notevault/note-vault-service/internal/domain"
	"github.com/notevault/note-vault-service/internal/dto"
	"github.com/notevault/note-vault-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCategoryRepoFull struct {
	domain.CategoryRepository
	categories map[int64]*domain.Category
	nextID     int64
	deletedIDs []int64
}

func (m *mockCategoryRepoFull) GetByID(ctx context.Context, id, uid int64) (*domain.Category, error) {
	c, ok := m.categories[id]
	if !ok || c.UID != uid {
		return nil, nil
	}
	return c, nil
}

func (m *mockCategoryRepoFull) GetByName(ctx context.Context, name string, uid int64) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.Name == name && c.UID == uid {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCategoryRepoFull) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	m.nextID++
	category.ID = m.nextID
	m.categories[category.ID] = category
	return category, nil
}

func (m *mockCategoryRepoFull) Delete(ctx context.Context, id, uid int64) error {
	m.deletedIDs = append(m.deletedIDs, id)
	delete(m.categories, id)
	return nil
}

func TestCategoryService_Create_Duplicate(t *testing.T) {
	categoryRepo := &mockCategoryRepoFull{
		categories: map[int64]*domain.Category{1: {ID: 1, UID: 1, Name: "work"}},
		nextID:     1,
	}
	svc := NewCategoryService(categoryRepo, &mockNoteRepo{notes: map[int64]*domain.Note{}}, zap.NewNop())

	_, err := svc.Create(context.Background(), 1, &dto.CategoryCreateRequest{Name: "work"})
	assert.ErrorIs(t, err, code.ErrorCategoryExists)

	// 不同用户可以使用相同名称
	result, err := svc.Create(context.Background(), 2, &dto.CategoryCreateRequest{Name: "work"})
	require.NoError(t, err)
	assert.Equal(t, "work", result.Name)
}

func TestCategoryService_Delete_InUse(t *testing.T) {
	categoryRepo := &mockCategoryRepoFull{
		categories: map[int64]*domain.Category{1: {ID: 1, UID: 1, Name: "work"}},
	}
	noteRepo := &mockNoteRepo{
		notes: map[int64]*domain.Note{10: {ID: 10, UID: 1, CategoryID: 1, Title: "n"}},
	}
	svc := NewCategoryService(categoryRepo, noteRepo, zap.NewNop())

	// 分类下仍有笔记引用时拒绝删除
	err := svc.Delete(context.Background(), 1, 1)
	assert.ErrorIs(t, err, code.ErrorCategoryInUse)
	assert.Empty(t, categoryRepo.deletedIDs)

	// 引用清空后允许删除
	delete(noteRepo.notes, 10)
	require.NoError(t, svc.Delete(context.Background(), 1, 1))
	assert.Equal(t, []int64{1}, categoryRepo.deletedIDs)
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	categoryRepo := &mockCategoryRepoFull{categories: map[int64]*domain.Category{}}
	svc := NewCategoryService(categoryRepo, &mockNoteRepo{notes: map[int64]*domain.Note{}}, zap.NewNop())

	err := svc.Delete(context.Background(), 1, 42)
	assert.ErrorIs(t, err, code.ErrorCategoryNotFound)
}
