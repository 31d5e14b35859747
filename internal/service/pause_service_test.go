package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
)

func setupTestPauseService() (PauseService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewPauseService(repo, time.UTC, zap.NewNop())
	return svc, repo
}

func addOpenRecord(t *testing.T, repo *repository.Repository, userID string, entry time.Time) *model.TimeRecord {
	t.Helper()
	record := &model.TimeRecord{
		UserID:        userID,
		ReferenceDate: time.Date(entry.Year(), entry.Month(), entry.Day(), 0, 0, 0, 0, time.UTC),
		EntryAt:       entry,
	}
	if err := repo.TimeRecord.Create(context.Background(), record); err != nil {
		t.Fatalf("预置考勤记录失败: %v", err)
	}
	return record
}

func TestPauseStart(t *testing.T) {
	svc, repo := setupTestPauseService()
	ctx := context.Background()
	record := addOpenRecord(t, repo, "user-1", time.Now().UTC().Add(-2*time.Hour))

	startAt := time.Now().UTC().Add(-30 * time.Minute)
	resp, err := svc.Start(ctx, &dto.StartPauseRequest{RecordID: record.RecordID, StartAt: &startAt})
	if err != nil {
		t.Fatalf("Start 应成功，但返回错误: %v", err)
	}
	if resp.RecordID != record.RecordID {
		t.Errorf("暂离应归属记录 %s，实际: %s", record.RecordID, resp.RecordID)
	}
	if resp.EndAt != nil {
		t.Error("新开暂离不应携带结束时间")
	}
}

func TestPauseStart_RecordNotFound(t *testing.T) {
	svc, _ := setupTestPauseService()

	_, err := svc.Start(context.Background(), &dto.StartPauseRequest{RecordID: "missing"})
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际: %v", err)
	}
}

func TestPauseStart_SecondOpenRejected(t *testing.T) {
	svc, repo := setupTestPauseService()
	ctx := context.Background()
	record := addOpenRecord(t, repo, "user-1", time.Now().UTC().Add(-2*time.Hour))

	if _, err := svc.Start(ctx, &dto.StartPauseRequest{RecordID: record.RecordID}); err != nil {
		t.Fatalf("首个暂离应成功，但返回错误: %v", err)
	}

	_, err := svc.Start(ctx, &dto.StartPauseRequest{RecordID: record.RecordID})
	if !errors.Is(err, ErrPauseAlreadyOpen) {
		t.Errorf("期望 ErrPauseAlreadyOpen，实际: %v", err)
	}
}

func TestPauseEnd_RecalculatesRecord(t *testing.T) {
	svc, repo := setupTestPauseService()
	ctx := context.Background()

	// 已关闭的记录配合班次，暂离结束后结余应被重算
	addTestShift(repo, "user-1", "08:00", "17:00")
	entry := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	exit := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	record := &model.TimeRecord{
		UserID:        "user-1",
		ReferenceDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EntryAt:       entry,
		ExitAt:        &exit,
	}
	if err := repo.TimeRecord.Create(ctx, record); err != nil {
		t.Fatalf("预置考勤记录失败: %v", err)
	}

	startAt := entry.Add(4 * time.Hour)
	pause, err := svc.Start(ctx, &dto.StartPauseRequest{RecordID: record.RecordID, StartAt: &startAt})
	if err != nil {
		t.Fatalf("Start 应成功，但返回错误: %v", err)
	}

	endAt := startAt.Add(45 * time.Minute)
	resp, err := svc.End(ctx, &dto.EndPauseRequest{PauseID: pause.ID, EndAt: &endAt})
	if err != nil {
		t.Fatalf("End 应成功，但返回错误: %v", err)
	}
	if resp.EndAt == nil {
		t.Fatal("结束后应写入结束时间")
	}

	stored, err := repo.TimeRecord.GetByID(ctx, record.RecordID)
	if err != nil {
		t.Fatalf("查询记录失败: %v", err)
	}
	// 实际 540 - 暂离 45 - 预期 540 = -45
	if stored.BalanceMinutes == nil || *stored.BalanceMinutes != -45 {
		t.Errorf("期望重算后结余 -45，实际: %v", stored.BalanceMinutes)
	}
	if stored.CalcDetail.PauseMinutes != 45 {
		t.Errorf("判定明细应记录暂离 45 分钟，实际: %d", stored.CalcDetail.PauseMinutes)
	}
}

func TestPauseEnd_AlreadyClosed(t *testing.T) {
	svc, repo := setupTestPauseService()
	ctx := context.Background()
	record := addOpenRecord(t, repo, "user-1", time.Now().UTC().Add(-2*time.Hour))

	pause, err := svc.Start(ctx, &dto.StartPauseRequest{RecordID: record.RecordID})
	if err != nil {
		t.Fatalf("Start 应成功，但返回错误: %v", err)
	}
	if _, err := svc.End(ctx, &dto.EndPauseRequest{PauseID: pause.ID}); err != nil {
		t.Fatalf("End 应成功，但返回错误: %v", err)
	}

	_, err = svc.End(ctx, &dto.EndPauseRequest{PauseID: pause.ID})
	if !errors.Is(err, ErrPauseAlreadyClosed) {
		t.Errorf("期望 ErrPauseAlreadyClosed，实际: %v", err)
	}
}

func TestPauseEnd_BeforeStartRejected(t *testing.T) {
	svc, repo := setupTestPauseService()
	ctx := context.Background()
	record := addOpenRecord(t, repo, "user-1", time.Now().UTC().Add(-2*time.Hour))

	startAt := time.Now().UTC()
	pause, err := svc.Start(ctx, &dto.StartPauseRequest{RecordID: record.RecordID, StartAt: &startAt})
	if err != nil {
		t.Fatalf("Start 应成功，但返回错误: %v", err)
	}

	endAt := startAt.Add(-time.Minute)
	_, err = svc.End(ctx, &dto.EndPauseRequest{PauseID: pause.ID, EndAt: &endAt})
	if !errors.Is(err, ErrPauseBeforeStart) {
		t.Errorf("期望 ErrPauseBeforeStart，实际: %v", err)
	}
}

func TestPauseEnd_NotFound(t *testing.T) {
	svc, _ := setupTestPauseService()

	_, err := svc.End(context.Background(), &dto.EndPauseRequest{PauseID: "missing"})
	if !errors.Is(err, ErrPauseNotFound) {
		t.Errorf("期望 ErrPauseNotFound，实际: %v", err)
	}
}

func TestPauseListByRecord(t *testing.T) {
	svc, repo := setupTestPauseService()
	ctx := context.Background()
	record := addOpenRecord(t, repo, "user-1", time.Now().UTC().Add(-3*time.Hour))

	pause, err := svc.Start(ctx, &dto.StartPauseRequest{RecordID: record.RecordID})
	if err != nil {
		t.Fatalf("Start 应成功，但返回错误: %v", err)
	}
	if _, err := svc.End(ctx, &dto.EndPauseRequest{PauseID: pause.ID}); err != nil {
		t.Fatalf("End 应成功，但返回错误: %v", err)
	}
	if _, err := svc.Start(ctx, &dto.StartPauseRequest{RecordID: record.RecordID}); err != nil {
		t.Fatalf("第二次 Start 应成功，但返回错误: %v", err)
	}

	pauses, err := svc.ListByRecord(ctx, record.RecordID)
	if err != nil {
		t.Fatalf("ListByRecord 应成功，但返回错误: %v", err)
	}
	if len(pauses) != 2 {
		t.Errorf("期望 2 条暂离，实际: %d", len(pauses))
	}
}
