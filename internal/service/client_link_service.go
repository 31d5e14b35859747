package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
)

// ClientLinkService 派驻链接业务接口。
// 链接同时携带班次墙钟时段，是班次匹配的第二数据来源。
type ClientLinkService interface {
	// SyncLinks 以全删全插方式重建某用户的链接集合
	SyncLinks(ctx context.Context, userID string, req *dto.SyncClientLinksRequest) ([]dto.ClientLinkResponse, error)
	ListByUser(ctx context.Context, userID string) ([]dto.ClientLinkResponse, error)
	ListByClient(ctx context.Context, clientID string) ([]dto.ClientLinkResponse, error)
}

type clientLinkService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClientLinkService 创建 ClientLinkService 实例
func NewClientLinkService(repo *repository.Repository, logger *zap.Logger) ClientLinkService {
	return &clientLinkService{repo: repo, logger: logger}
}

func (s *clientLinkService) SyncLinks(ctx context.Context, userID string, req *dto.SyncClientLinksRequest) ([]dto.ClientLinkResponse, error) {
	links := make([]model.ClientLink, 0, len(req.Links))
	for i, in := range req.Links {
		start, err := parseClock(in.StartTime)
		if err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("第 %d 条链接开始时间格式无效", i+1)}
		}
		end, err := parseClock(in.EndTime)
		if err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("第 %d 条链接结束时间格式无效", i+1)}
		}
		if resolvedDuration(start, end) < minShiftMinutes {
			return nil, &ValidationError{
				Reason: fmt.Sprintf("第 %d 条链接班次时长不得少于 %d 分钟", i+1, minShiftMinutes),
			}
		}

		links = append(links, model.ClientLink{
			UserID:        userID,
			ClientID:      in.ClientID,
			CompanyID:     in.CompanyID,
			StartTime:     formatClock(start),
			EndTime:       formatClock(end),
			ContractValue: in.ContractValue,
			RentValue:     in.RentValue,
			BonusValue:    in.BonusValue,
			Allowance:     in.Allowance,
			MEI:           in.MEI,
		})
	}

	saved, err := s.repo.ClientLink.ReplaceForUser(ctx, userID, links)
	if err != nil {
		s.logger.Error("重建派驻链接失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClientLinkResponse, 0, len(saved))
	for i := range saved {
		result = append(result, *clientLinkToResponse(&saved[i]))
	}
	return result, nil
}

func (s *clientLinkService) ListByUser(ctx context.Context, userID string) ([]dto.ClientLinkResponse, error) {
	links, err := s.repo.ClientLink.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询派驻链接失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.ClientLinkResponse, 0, len(links))
	for i := range links {
		result = append(result, *clientLinkToResponse(&links[i]))
	}
	return result, nil
}

func (s *clientLinkService) ListByClient(ctx context.Context, clientID string) ([]dto.ClientLinkResponse, error) {
	links, err := s.repo.ClientLink.ListByClient(ctx, clientID)
	if err != nil {
		s.logger.Error("查询派驻链接失败", zap.String("client_id", clientID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.ClientLinkResponse, 0, len(links))
	for i := range links {
		result = append(result, *clientLinkToResponse(&links[i]))
	}
	return result, nil
}

func clientLinkToResponse(link *model.ClientLink) *dto.ClientLinkResponse {
	resp := &dto.ClientLinkResponse{
		ID:            link.LinkID,
		UserID:        link.UserID,
		StartTime:     link.StartTime,
		EndTime:       link.EndTime,
		ContractValue: link.ContractValue,
		RentValue:     link.RentValue,
		BonusValue:    link.BonusValue,
		Allowance:     link.Allowance,
		MEI:           link.MEI,
	}
	if link.User != nil {
		resp.User = &dto.UserBrief{ID: link.User.UserID, Name: link.User.Name, CPF: link.User.CPF}
	}
	if link.Client != nil {
		resp.Client = &dto.ClientBrief{ID: link.Client.ClientID, TradeName: link.Client.TradeName}
	}
	if link.Company != nil {
		resp.Company = &dto.CompanyBrief{ID: link.Company.CompanyID, TradeName: link.Company.TradeName}
	}
	return resp
}
