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

var ErrCompanyNotFound = errors.New("企业不存在")

// CompanyService 用工企业业务接口
type CompanyService interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest, callerID string) (*dto.CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error)
	List(ctx context.Context, onlyActive bool) ([]dto.CompanyResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest, callerID string) (*dto.CompanyResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService 创建 CompanyService 实例
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest, callerID string) (*dto.CompanyResponse, error) {
	company := &model.Company{
		TradeName: req.TradeName,
		LegalName: req.LegalName,
		CNPJ:      digitsOnly(req.CNPJ),
		CEP:       digitsOnly(req.CEP),
		Address:   req.Address,
		IsActive:  true,
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	company.CreatedBy = &callerID
	company.UpdatedBy = &callerID

	if err := s.repo.Company.Create(ctx, company); err != nil {
		s.logger.Error("创建企业失败", zap.Error(err))
		return nil, err
	}
	return companyToResponse(company), nil
}

func (s *companyService) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := s.getCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	return companyToResponse(company), nil
}

func (s *companyService) List(ctx context.Context, onlyActive bool) ([]dto.CompanyResponse, error) {
	companies, err := s.repo.Company.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("查询企业列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		result = append(result, *companyToResponse(&companies[i]))
	}
	return result, nil
}

func (s *companyService) Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest, callerID string) (*dto.CompanyResponse, error) {
	company, err := s.getCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TradeName != nil {
		company.TradeName = *req.TradeName
	}
	if req.LegalName != nil {
		company.LegalName = *req.LegalName
	}
	if req.CNPJ != nil {
		company.CNPJ = digitsOnly(*req.CNPJ)
	}
	if req.CEP != nil {
		company.CEP = digitsOnly(*req.CEP)
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	company.UpdatedBy = &callerID

	if err := s.repo.Company.Update(ctx, company); err != nil {
		s.logger.Error("更新企业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return companyToResponse(company), nil
}

func (s *companyService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.getCompany(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Company.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除企业失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *companyService) getCompany(ctx context.Context, id string) (*model.Company, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询企业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return company, nil
}

func companyToResponse(company *model.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        company.CompanyID,
		TradeName: company.TradeName,
		LegalName: company.LegalName,
		CNPJ:      company.CNPJ,
		CEP:       company.CEP,
		Address:   company.Address,
		IsActive:  company.IsActive,
		CreatedAt: company.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
