package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/repository"
)

func setupTestClientLinkService() (ClientLinkService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewClientLinkService(repo, zap.NewNop())
	return svc, repo
}

func TestSyncLinks_ReplacesExisting(t *testing.T) {
	svc, _ := setupTestClientLinkService()
	ctx := context.Background()

	contract := "1500.00"
	first, err := svc.SyncLinks(ctx, "user-1", &dto.SyncClientLinksRequest{
		Links: []dto.ClientLinkInput{
			{ClientID: "client-1", StartTime: "08:00", EndTime: "17:00", ContractValue: &contract, MEI: true},
			{ClientID: "client-2", StartTime: "18:00", EndTime: "22:00"},
		},
	})
	if err != nil {
		t.Fatalf("SyncLinks 应成功，但返回错误: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("期望 2 条链接，实际: %d", len(first))
	}
	if first[0].ContractValue == nil || *first[0].ContractValue != contract {
		t.Errorf("合同金额应透传，实际: %v", first[0].ContractValue)
	}
	if !first[0].MEI {
		t.Error("MEI 标记应透传")
	}

	// 全删全插：再次同步后只剩新集合
	second, err := svc.SyncLinks(ctx, "user-1", &dto.SyncClientLinksRequest{
		Links: []dto.ClientLinkInput{
			{ClientID: "client-3", StartTime: "06:00", EndTime: "12:00"},
		},
	})
	if err != nil {
		t.Fatalf("第二次 SyncLinks 应成功，但返回错误: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("期望 1 条链接，实际: %d", len(second))
	}

	listed, err := svc.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser 应成功，但返回错误: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("重建后期望仅剩 1 条链接，实际: %d", len(listed))
	}
}

func TestSyncLinks_EmptyClearsAll(t *testing.T) {
	svc, _ := setupTestClientLinkService()
	ctx := context.Background()

	if _, err := svc.SyncLinks(ctx, "user-1", &dto.SyncClientLinksRequest{
		Links: []dto.ClientLinkInput{
			{ClientID: "client-1", StartTime: "08:00", EndTime: "17:00"},
		},
	}); err != nil {
		t.Fatalf("SyncLinks 应成功，但返回错误: %v", err)
	}

	if _, err := svc.SyncLinks(ctx, "user-1", &dto.SyncClientLinksRequest{}); err != nil {
		t.Fatalf("空集合同步应成功，但返回错误: %v", err)
	}

	listed, err := svc.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser 应成功，但返回错误: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("空集合同步后期望 0 条链接，实际: %d", len(listed))
	}
}

func TestSyncLinks_InvalidClock(t *testing.T) {
	svc, _ := setupTestClientLinkService()

	_, err := svc.SyncLinks(context.Background(), "user-1", &dto.SyncClientLinksRequest{
		Links: []dto.ClientLinkInput{
			{ClientID: "client-1", StartTime: "08h00", EndTime: "17:00"},
		},
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("非法时刻期望 ValidationError，实际: %v", err)
	}
}

func TestSyncLinks_TooShort(t *testing.T) {
	svc, _ := setupTestClientLinkService()

	_, err := svc.SyncLinks(context.Background(), "user-1", &dto.SyncClientLinksRequest{
		Links: []dto.ClientLinkInput{
			{ClientID: "client-1", StartTime: "08:00", EndTime: "08:45"},
		},
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("45 分钟班次期望 ValidationError，实际: %v", err)
	}
}

func TestListByClient(t *testing.T) {
	svc, _ := setupTestClientLinkService()
	ctx := context.Background()

	for _, userID := range []string{"user-1", "user-2"} {
		if _, err := svc.SyncLinks(ctx, userID, &dto.SyncClientLinksRequest{
			Links: []dto.ClientLinkInput{
				{ClientID: "client-1", StartTime: "08:00", EndTime: "17:00"},
			},
		}); err != nil {
			t.Fatalf("SyncLinks 应成功，但返回错误: %v", err)
		}
	}

	listed, err := svc.ListByClient(ctx, "client-1")
	if err != nil {
		t.Fatalf("ListByClient 应成功，但返回错误: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("期望 2 条链接，实际: %d", len(listed))
	}
}
