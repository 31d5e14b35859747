package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
)

// recordEvaluator 考勤判定编排器 — 拉取候选班次与容差，调用纯函数层，
// 将判定结果写回记录。考勤记录、打卡切换与暂离三个服务共用。
type recordEvaluator struct {
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location
}

// withRepo 返回绑定到事务级聚合的副本（Atomically 内使用）。
func (e *recordEvaluator) withRepo(txRepo *repository.Repository) *recordEvaluator {
	return &recordEvaluator{repo: txRepo, logger: e.logger, loc: e.loc}
}

// candidates 汇总某用户的候选班次：班次表与派驻链接两个来源
// 统一适配为 CandidateShift。单条数据非法时跳过并告警，不中断判定。
func (e *recordEvaluator) candidates(ctx context.Context, userID string) ([]CandidateShift, error) {
	shifts, err := e.repo.Shift.ListByUser(ctx, userID)
	if err != nil {
		e.logger.Error("查询用户班次失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	links, err := e.repo.ClientLink.ListByUser(ctx, userID)
	if err != nil {
		e.logger.Error("查询派驻链接失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]CandidateShift, 0, len(shifts)+len(links))
	for i := range shifts {
		cs, err := shiftFromModel(&shifts[i])
		if err != nil {
			e.logger.Warn("班次时刻非法，跳过", zap.String("shift_id", shifts[i].ShiftID), zap.Error(err))
			continue
		}
		result = append(result, cs)
	}
	for i := range links {
		cs, err := shiftFromLink(&links[i])
		if err != nil {
			e.logger.Warn("派驻链接时刻非法，跳过", zap.String("link_id", links[i].LinkID), zap.Error(err))
			continue
		}
		result = append(result, cs)
	}
	return result, nil
}

// apply 对记录执行匹配 → 分类 → 结算，并把结果写回 record。
// 请求未显式指定站点归属时，回落到匹配班次的客户。
func (e *recordEvaluator) apply(ctx context.Context, record *model.TimeRecord, pauseMinutes int) error {
	shifts, err := e.candidates(ctx, record.UserID)
	if err != nil {
		return err
	}

	tol := readTolerances(ctx, e.repo, e.logger)

	var matched *CandidateShift
	if shift, ok := matchShift(minuteOfDay(record.EntryAt, e.loc), shifts); ok {
		matched = &shift
	}

	ev := evaluateRecord(matched, record.EntryAt, record.ExitAt, pauseMinutes, tol, e.loc)
	record.EntryStatus = ev.EntryStatus
	record.ExitStatus = ev.ExitStatus
	record.BalanceMinutes = ev.BalanceMinutes
	record.CalcDetail = ev.Detail

	if record.ClientID == nil && matched != nil && matched.ClientID != nil {
		record.ClientID = matched.ClientID
	}
	return nil
}

// closedPauseMinutes 汇总某记录全部已结束暂离的分钟数。
func (e *recordEvaluator) closedPauseMinutes(ctx context.Context, recordID string) (int, error) {
	pauses, err := e.repo.Pause.ListClosedByRecord(ctx, recordID)
	if err != nil {
		e.logger.Error("查询已结束暂离失败", zap.String("record_id", recordID), zap.Error(err))
		return 0, err
	}
	total := 0
	for i := range pauses {
		if pauses[i].EndAt == nil {
			continue
		}
		total += roundMinutes(pauses[i].EndAt.Sub(pauses[i].StartAt))
	}
	return total, nil
}
