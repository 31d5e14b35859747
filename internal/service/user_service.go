package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrCPFExists        = errors.New("该 CPF 已注册")
	ErrInvalidCPF       = errors.New("CPF 必须为 11 位数字")
	ErrSelfDeletion     = errors.New("不能删除自己的账号")
	ErrSelfDeactivation = errors.New("不能停用自己的账号")
)

// UserService 用户管理业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error)
	// UpdateStatus 审核/停用账号；不允许对自己操作停用
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateUserStatusRequest, callerID string) (*dto.UserResponse, error)
	// Delete 软删除；不允许删除自己
	Delete(ctx context.Context, id string, callerID string) error
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error) {
	cpf := digitsOnly(req.CPF)
	if len(cpf) != 11 {
		return nil, ErrInvalidCPF
	}

	if _, err := s.repo.User.GetByCPF(ctx, cpf); err == nil {
		return nil, ErrCPFExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleColaborador
	}

	user := &model.User{
		Name:         req.Name,
		CPF:          cpf,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       model.UserStatusPending,
		CompanyID:    req.CompanyID,
	}
	user.CreatedBy = &callerID
	user.UpdatedBy = &callerID

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.CompanyID != nil {
		user.CompanyID = req.CompanyID
	}
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *userService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateUserStatusRequest, callerID string) (*dto.UserResponse, error) {
	if id == callerID && req.Status != model.UserStatusActive {
		return nil, ErrSelfDeactivation
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Status = req.Status
	user.UpdatedBy = &callerID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id string, callerID string) error {
	if id == callerID {
		return ErrSelfDeletion
	}
	if _, err := s.getUser(ctx, id); err != nil {
		return err
	}
	if err := s.repo.User.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除用户失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *userToResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) getUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func userToResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        user.UserID,
		Name:      user.Name,
		CPF:       user.CPF,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if user.Company != nil {
		resp.Company = &dto.CompanyBrief{
			ID:        user.Company.CompanyID,
			TradeName: user.Company.TradeName,
		}
	}
	return resp
}
