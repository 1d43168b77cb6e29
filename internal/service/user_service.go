package service

import (
	"github.com/market-next/internal/models"
	"github.com/market-next/internal/repository"
)

// UserService 用户目录服务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户目录服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List 公开用户目录
func (s *UserService) List() ([]models.PublicUser, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	result := make([]models.PublicUser, 0, len(users))
	for i := range users {
		result = append(result, users[i].ToPublic())
	}
	return result, nil
}

// Get 获取单个用户公开信息
func (s *UserService) Get(id uint) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	public := user.ToPublic()
	return &public, nil
}
