package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
)

var ErrClientNotFound = errors.New("客户不存在")

// ClientService 客户（派驻站点）业务接口
type ClientService interface {
	Create(ctx context.Context, req *dto.CreateClientRequest, callerID string) (*dto.ClientResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClientResponse, error)
	List(ctx context.Context, onlyActive bool) ([]dto.ClientResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateClientRequest, callerID string) (*dto.ClientResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type clientService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClientService 创建 ClientService 实例
func NewClientService(repo *repository.Repository, logger *zap.Logger) ClientService {
	return &clientService{repo: repo, logger: logger}
}

func (s *clientService) Create(ctx context.Context, req *dto.CreateClientRequest, callerID string) (*dto.ClientResponse, error) {
	client := &model.Client{
		TradeName: req.TradeName,
		LegalName: req.LegalName,
		CNPJ:      digitsOnly(req.CNPJ),
		CEP:       digitsOnly(req.CEP),
		Address:   req.Address,
		IsActive:  true,
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	client.CreatedBy = &callerID
	client.UpdatedBy = &callerID

	if err := s.repo.Client.Create(ctx, client); err != nil {
		s.logger.Error("创建客户失败", zap.Error(err))
		return nil, err
	}
	return clientToResponse(client), nil
}

func (s *clientService) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := s.getClient(ctx, id)
	if err != nil {
		return nil, err
	}
	return clientToResponse(client), nil
}

func (s *clientService) List(ctx context.Context, onlyActive bool) ([]dto.ClientResponse, error) {
	clients, err := s.repo.Client.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("查询客户列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		result = append(result, *clientToResponse(&clients[i]))
	}
	return result, nil
}

func (s *clientService) Update(ctx context.Context, id string, req *dto.UpdateClientRequest, callerID string) (*dto.ClientResponse, error) {
	client, err := s.getClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TradeName != nil {
		client.TradeName = *req.TradeName
	}
	if req.LegalName != nil {
		client.LegalName = *req.LegalName
	}
	if req.CNPJ != nil {
		client.CNPJ = digitsOnly(*req.CNPJ)
	}
	if req.CEP != nil {
		client.CEP = digitsOnly(*req.CEP)
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	client.UpdatedBy = &callerID

	if err := s.repo.Client.Update(ctx, client); err != nil {
		s.logger.Error("更新客户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return clientToResponse(client), nil
}

func (s *clientService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.getClient(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Client.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除客户失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *clientService) getClient(ctx context.Context, id string) (*model.Client, error) {
	client, err := s.repo.Client.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error("查询客户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return client, nil
}

func clientToResponse(client *model.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        client.ClientID,
		TradeName: client.TradeName,
		LegalName: client.LegalName,
		CNPJ:      client.CNPJ,
		CEP:       client.CEP,
		Address:   client.Address,
		IsActive:  client.IsActive,
		CreatedAt: client.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
