package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/DevM0rales/NerdHub-Project/internal/models"
)

const defaultRating = 5

type ReviewService struct {
	DB *gorm.DB
}

// AddReview stores a review for the product. A missing rating defaults to 5;
// a rating outside [1,5] is rejected instead of clamped. There is no
// uniqueness rule, a user may review the same product any number of times.
func (s *ReviewService) AddReview(ctx context.Context, userID, productID uint, comment string, rating *int) (*models.Review, error) {
	nota := defaultRating
	if rating != nil {
		if *rating < 1 || *rating > 5 {
			return nil, fmt.Errorf("nota %d out of range 1-5: %w", *rating, ErrValidation)
		}
		nota = *rating
	}

	db := s.DB.WithContext(ctx)

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	review := models.Review{
		ProductID: productID,
		UserID:    userID,
		Comment:   comment,
		Rating:    nota,
	}
	if err := db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.DB.WithContext(ctx).
		Where("product_id = ?", productID).Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
