package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
)

func setupTestPunchService() (PunchService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewPunchService(repo, time.UTC, zap.NewNop())
	return svc, repo
}

func TestToggle_OpensNewRecord(t *testing.T) {
	svc, repo := setupTestPunchService()
	addTestShift(repo, "user-1", "08:00", "17:00")

	resp, err := svc.Toggle(context.Background(), &dto.ToggleRequest{UserID: "user-1", Note: "portaria"})
	if err != nil {
		t.Fatalf("Toggle 应成功，但返回错误: %v", err)
	}
	if resp.Action != "open" {
		t.Fatalf("无未关闭记录时期望 open，实际: %s", resp.Action)
	}
	if resp.Record.ExitAt != nil {
		t.Error("新开记录不应携带下班时间")
	}
	if resp.Record.EntryNote != "portaria" {
		t.Errorf("入场备注应透传，实际: %q", resp.Record.EntryNote)
	}
	// 入场状态即时判定（是否准时取决于运行时刻，此处只要求已判定或降级）
	if resp.Record.EntryStatus == "" {
		t.Error("开启后入场状态不应为空")
	}

	// 首次打卡无行锁可依赖，必须先取该用户的咨询锁
	locks := repo.TimeRecord.(*mockTimeRecordRepo).punchLocks
	if len(locks) != 1 || locks[0] != "user-1" {
		t.Errorf("Toggle 应获取用户咨询锁，实际调用: %v", locks)
	}
}

func TestToggle_ClosesOpenRecord(t *testing.T) {
	svc, repo := setupTestPunchService()
	ctx := context.Background()

	// 预置 2 小时前开启的记录
	entry := time.Now().UTC().Add(-2 * time.Hour)
	open := &model.TimeRecord{
		UserID:        "user-1",
		ReferenceDate: time.Date(entry.Year(), entry.Month(), entry.Day(), 0, 0, 0, 0, time.UTC),
		EntryAt:       entry,
	}
	if err := repo.TimeRecord.Create(ctx, open); err != nil {
		t.Fatalf("预置记录失败: %v", err)
	}

	resp, err := svc.Toggle(ctx, &dto.ToggleRequest{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Toggle 应成功，但返回错误: %v", err)
	}
	if resp.Action != "close" {
		t.Fatalf("存在有效未关闭记录时期望 close，实际: %s", resp.Action)
	}
	if resp.Record.ExitAt == nil {
		t.Fatal("关闭后应写入下班时间")
	}

	stored, err := repo.TimeRecord.GetByID(ctx, open.RecordID)
	if err != nil {
		t.Fatalf("查询关闭后的记录失败: %v", err)
	}
	if stored.ExitAt == nil {
		t.Error("关闭结果应已持久化")
	}
}

func TestToggle_StaleOpenRecordStartsNew(t *testing.T) {
	svc, repo := setupTestPunchService()
	ctx := context.Background()

	// 17 小时前的未关闭记录视为遗忘打卡
	entry := time.Now().UTC().Add(-17 * time.Hour)
	stale := &model.TimeRecord{
		UserID:        "user-1",
		ReferenceDate: time.Date(entry.Year(), entry.Month(), entry.Day(), 0, 0, 0, 0, time.UTC),
		EntryAt:       entry,
	}
	if err := repo.TimeRecord.Create(ctx, stale); err != nil {
		t.Fatalf("预置记录失败: %v", err)
	}

	resp, err := svc.Toggle(ctx, &dto.ToggleRequest{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Toggle 应成功，但返回错误: %v", err)
	}
	if resp.Action != "open" {
		t.Fatalf("超时未关闭记录存在时期望开启新记录，实际: %s", resp.Action)
	}
	if resp.Record.ID == stale.RecordID {
		t.Error("应开启新记录而非复用超时记录")
	}

	// 旧记录保持原样，留待管理员修正
	old, err := repo.TimeRecord.GetByID(ctx, stale.RecordID)
	if err != nil {
		t.Fatalf("查询超时记录失败: %v", err)
	}
	if old.ExitAt != nil {
		t.Error("超时记录不应被自动关闭")
	}

	// 此时同一用户有两条未关闭记录，存储层必须接受这种状态
	mock := repo.TimeRecord.(*mockTimeRecordRepo)
	openCount := 0
	for _, r := range mock.records {
		if r.UserID == "user-1" && r.ExitAt == nil {
			openCount++
		}
	}
	if openCount != 2 {
		t.Errorf("期望旧记录与新记录同时未关闭（共 2 条），实际: %d", openCount)
	}
}

func TestToggle_CloseSubtractsPauses(t *testing.T) {
	svc, repo := setupTestPunchService()
	ctx := context.Background()

	now := time.Now().UTC()
	entry := now.Add(-4 * time.Hour)
	open := &model.TimeRecord{
		UserID:        "user-1",
		ReferenceDate: time.Date(entry.Year(), entry.Month(), entry.Day(), 0, 0, 0, 0, time.UTC),
		EntryAt:       entry,
	}
	if err := repo.TimeRecord.Create(ctx, open); err != nil {
		t.Fatalf("预置记录失败: %v", err)
	}

	// 已结束的 30 分钟暂离
	pauseStart := entry.Add(time.Hour)
	pauseEnd := pauseStart.Add(30 * time.Minute)
	if err := repo.Pause.Create(ctx, &model.Pause{
		RecordID: open.RecordID,
		StartAt:  pauseStart,
		EndAt:    &pauseEnd,
	}); err != nil {
		t.Fatalf("预置暂离失败: %v", err)
	}

	resp, err := svc.Toggle(ctx, &dto.ToggleRequest{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Toggle 应成功，但返回错误: %v", err)
	}
	if resp.Action != "close" {
		t.Fatalf("期望 close，实际: %s", resp.Action)
	}
	if resp.Record.CalcDetail.PauseMinutes != 30 {
		t.Errorf("判定明细应扣除 30 分钟暂离，实际: %d", resp.Record.CalcDetail.PauseMinutes)
	}
}
