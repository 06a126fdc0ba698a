package dao

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/notevault/note-vault-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNoteRepository_Create(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{
		UID:     1,
		Title:   "first note",
		Content: "hello",
	})

	require.NoError(t, err)
	// 新建笔记版本号从 1 开始
	assert.Equal(t, int64(1), note.Version)
	assert.Equal(t, "first note", note.Title)
	assert.Equal(t, "hello", note.Content)
	assert.NotZero(t, note.ID)
}

func TestNoteRepository_GetByID_OtherUser(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{UID: 1, Title: "mine", Content: "c"})
	require.NoError(t, err)

	// 其他用户不可见
	got, err := repo.GetByID(ctx, note.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByID(ctx, note.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, note.ID, got.ID)
}

func TestNoteRepository_UpdateWithVersion(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{UID: 1, Title: "v1 title", Content: "v1 content"})
	require.NoError(t, err)

	updated, err := repo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
		Title:           strPtr("v2 title"),
		ExpectedVersion: 1,
	}, 1)

	require.NoError(t, err)
	require.NotNil(t, updated)
	// 版本递增，未修改的字段保持不变
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, "v2 title", updated.Title)
	assert.Equal(t, "v1 content", updated.Content)

	// 历史中保存的是修改前的快照
	histories, err := historyRepo.ListByNoteID(ctx, note.ID, 1)
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, "v1 title", histories[0].Title)
	assert.Equal(t, "v1 content", histories[0].Content)
	assert.Equal(t, int64(1), histories[0].Version)
}

func TestNoteRepository_UpdateWithVersion_Conflict(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{UID: 1, Title: "title", Content: "content"})
	require.NoError(t, err)

	// 第一次更新成功，版本变为 2
	_, err = repo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
		Content:         strPtr("updated"),
		ExpectedVersion: 1,
	}, 1)
	require.NoError(t, err)

	// 携带过期版本号的更新被拒绝
	_, err = repo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
		Content:         strPtr("stale write"),
		ExpectedVersion: 1,
	}, 1)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	// 被拒绝的更新不产生任何持久化效果
	current, err := repo.GetByID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current.Version)
	assert.Equal(t, "updated", current.Content)

	count, err := historyRepo.CountByNoteID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNoteRepository_UpdateWithVersion_ConcurrentExclusive(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{UID: 1, Title: "race", Content: "base"})
	require.NoError(t, err)

	// 两个并发更新携带相同的期望版本号，恰好一个成功
	const writers = 2
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
				Content:         strPtr(fmt.Sprintf("writer-%d", i)),
				ExpectedVersion: 1,
			}, 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, e := range errs {
		if e == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, e, domain.ErrVersionConflict)
		}
	}
	assert.Equal(t, 1, succeeded)

	current, err := repo.GetByID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current.Version)
}

func TestNoteRepository_UpdateWithVersion_RollbackOnHistoryFailure(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{UID: 1, Title: "t", Content: "c"})
	require.NoError(t, err)

	// 历史表不可写时整个事务回滚，笔记保持原状
	require.NoError(t, d.DB().Exec("DROP TABLE note_history").Error)

	_, err = repo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
		Content:         strPtr("should not persist"),
		ExpectedVersion: 1,
	}, 1)
	require.Error(t, err)

	current, err := repo.GetByID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), current.Version)
	assert.Equal(t, "c", current.Content)
}

func TestNoteRepository_Delete_CascadesHistory(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{UID: 1, Title: "t", Content: "c"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		note, err = repo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
			Content:         strPtr(fmt.Sprintf("rev-%d", i)),
			ExpectedVersion: note.Version,
		}, 1)
		require.NoError(t, err)
	}

	require.NoError(t, repo.Delete(ctx, note.ID, 1))

	got, err := repo.GetByID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	count, err := historyRepo.CountByNoteID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNoteRepository_ListByCategory(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &domain.Note{UID: 1, CategoryID: 10, Title: fmt.Sprintf("n%d", i)})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.Note{UID: 1, CategoryID: 20, Title: "other"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Note{UID: 2, CategoryID: 10, Title: "foreign"})
	require.NoError(t, err)

	list, err := repo.List(ctx, 1, 10, 1, 100)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	count, err := repo.ListCount(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// categoryID 为 0 表示不过滤分类
	count, err = repo.ListCount(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	inUse, err := repo.CountByCategoryID(ctx, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), inUse)
}
