package task

import (
	"context"
	"time"

	"github.com/notevault/note-vault-service/internal/app"
	"github.com/notevault/note-vault-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// HistoryCleanupTask 周期清理超过保留期的历史快照
// HistoryRetentionDays 为 0 时不启用
type HistoryCleanupTask struct {
	app    *app.App
	logger *zap.Logger
	cron   *cron.Cron
}

// NewHistoryCleanupTask 创建历史快照清理任务
func NewHistoryCleanupTask(a *app.App) *HistoryCleanupTask {
	return &HistoryCleanupTask{
		app:    a,
		logger: a.Logger(),
	}
}

// Start 按配置的 Cron 表达式调度清理，挂接到关闭信号
func (t *HistoryCleanupTask) Start(sc *safe_close.SafeClose) error {
	cfg := t.app.Config()
	if cfg.App.HistoryRetentionDays <= 0 {
		t.logger.Info("history cleanup disabled, snapshots are kept forever")
		return nil
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cfg.App.HistoryCleanupCron)
	if err != nil {
		return err
	}

	t.cron = cron.New(cron.WithParser(parser))
	t.cron.Schedule(schedule, cron.FuncJob(t.run))
	t.cron.Start()

	t.logger.Info("history cleanup scheduled",
		zap.String("cron", cfg.App.HistoryCleanupCron),
		zap.Int("retentionDays", cfg.App.HistoryRetentionDays),
	)

	closeSignal, done := sc.Attach()
	go func() {
		defer done()
		<-closeSignal
		stopCtx := t.cron.Stop()
		<-stopCtx.Done()
		t.logger.Info("history cleanup stopped")
	}()

	return nil
}

func (t *HistoryCleanupTask) run() {
	cfg := t.app.Config()
	cutoff := time.Now().AddDate(0, 0, -cfg.App.HistoryRetentionDays).Unix()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := t.app.NoteHistoryService.CleanupByTime(ctx, cutoff); err != nil {
		t.logger.Error("history cleanup run failed", zap.Error(err))
	}
}
