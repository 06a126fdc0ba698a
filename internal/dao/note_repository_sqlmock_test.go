package dao

import (
	"context"
	"testing"
	"time"

	"github.com/notevault/note-vault-service/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newMockDao 创建基于 sqlmock 的 Dao 实例，用于验证 SQL 层面的事务行为
func newMockDao(t *testing.T) (*Dao, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	return New(db, zap.NewNop()), mock
}

// 条件更新影响 0 行时必须回滚事务，历史快照的 INSERT 不允许提交
func TestNoteRepository_UpdateWithVersion_RollbackOnConflict(t *testing.T) {
	d, mock := newMockDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `note` WHERE id = (.+) AND uid = (.+)").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "uid", "category_id", "title", "content", "version", "created_at", "updated_at"}).
			AddRow(1, 1, 0, "title", "content", 2, now, now))
	mock.ExpectExec("INSERT INTO `note_history`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	// 期望版本 1 已过期，条件更新命中 0 行
	mock.ExpectExec("UPDATE `note` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.UpdateWithVersion(ctx, &domain.Note{ID: 1, UID: 1}, &domain.NoteMutation{
		Content:         strPtr("stale"),
		ExpectedVersion: 1,
	}, 1)

	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
