package service

import (
	"errors"
	"strings"
	"time"

	"github.com/market-next/internal/constants"
	"github.com/market-next/internal/models"
	"github.com/market-next/internal/repository"

	"gorm.io/gorm"
)

// ReviewService 评价服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// ListByProduct 商品评价列表（公开）
func (s *ReviewService) ListByProduct(productID uint) ([]models.Review, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.reviewRepo.ListByProduct(productID)
}

// ListByUser 当前用户的评价列表
func (s *ReviewService) ListByUser(userID uint) ([]models.Review, error) {
	return s.reviewRepo.ListByUser(userID)
}

// ReviewInput 评价内容入参
type ReviewInput struct {
	Rating  int
	Title   string
	Content string
}

// Create 创建评价
// 同一用户对同一商品仅允许一条，重复由唯一索引拦截。
func (s *ReviewService) Create(userID, productID uint, input ReviewInput) (*models.Review, error) {
	if err := validateReviewInput(&input); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	now := time.Now()
	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    input.Rating,
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReviewDuplicate
		}
		return nil, err
	}
	return review, nil
}

// Update 更新评价
// 先按存在性返回未找到，再按归属返回无权限。
func (s *ReviewService) Update(userID, reviewID uint, input ReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}
	if err := validateReviewInput(&input); err != nil {
		return nil, err
	}

	review.Rating = input.Rating
	review.Title = input.Title
	review.Content = input.Content
	review.UpdatedAt = time.Now()
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete 删除评价
func (s *ReviewService) Delete(userID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}
	return s.reviewRepo.Delete(reviewID)
}

func validateReviewInput(input *ReviewInput) error {
	if input.Rating < constants.ReviewRatingMin || input.Rating > constants.ReviewRatingMax {
		return ErrReviewRatingInvalid
	}
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" || len([]rune(input.Title)) > constants.ReviewTitleMaxLen {
		return ErrReviewTitleInvalid
	}
	input.Content = strings.TrimSpace(input.Content)
	if input.Content == "" || len([]rune(input.Content)) > constants.ReviewContentMaxLen {
		return ErrReviewContentInvalid
	}
	return nil
}
