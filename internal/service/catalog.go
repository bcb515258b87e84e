package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/DevM0rales/NerdHub-Project/internal/models"
	"github.com/DevM0rales/NerdHub-Project/internal/transport"
)

type CatalogService struct {
	DB *gorm.DB
}

const relatedLimit = 4

type ProductDetail struct {
	Product models.Product   `json:"product"`
	Stock   *models.Stock    `json:"stock,omitempty"`
	Images  []models.ProductImage `json:"images"`
	Related []models.Product `json:"related"`
	Reviews []models.Review  `json:"reviews"`
}

func (s *CatalogService) ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := db.Model(&models.Product{}).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (s *CatalogService) GetProductDetail(ctx context.Context, id uint) (*ProductDetail, error) {
	db := s.DB.WithContext(ctx)

	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	detail := &ProductDetail{Product: product}

	var stock models.Stock
	err := db.Where("product_id = ?", id).First(&stock).Error
	switch {
	case err == nil:
		detail.Stock = &stock
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	if err := db.Where("product_id = ?", id).Find(&detail.Images).Error; err != nil {
		return nil, err
	}

	if product.BrandID != nil {
		if err := db.Where("brand_id = ? AND id <> ?", *product.BrandID, id).
			Limit(relatedLimit).Find(&detail.Related).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Where("product_id = ?", id).Order("created_at DESC").
		Find(&detail.Reviews).Error; err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// ProductsByBrand matches the brand name case-insensitively.
func (s *CatalogService) ProductsByBrand(ctx context.Context, name string) (*models.Brand, []models.Product, error) {
	db := s.DB.WithContext(ctx)

	var brand models.Brand
	if err := db.Where("LOWER(name) = LOWER(?)", name).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("brand %q: %w", name, ErrNotFound)
		}
		return nil, nil, err
	}

	var products []models.Product
	if err := db.Where("brand_id = ?", brand.ID).Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, nil, err
	}
	return &brand, products, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name required: %w", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must be >= 0: %w", ErrValidation)
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		BrandID:     req.BrandID,
		CategoryID:  req.CategoryID,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if req.Stock != nil {
			return tx.Create(&models.Stock{ProductID: product.ID, Quantity: *req.Stock}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("price must be >= 0: %w", ErrValidation)
	}

	var product models.Product

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d: %w", id, ErrNotFound)
			}
			return err
		}

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.Image != nil {
			product.Image = *req.Image
		}
		if req.BrandID != nil {
			product.BrandID = req.BrandID
		}
		if req.CategoryID != nil {
			product.CategoryID = req.CategoryID
		}

		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		if req.Stock != nil {
			var stock models.Stock
			if err := tx.Where(models.Stock{ProductID: product.ID}).FirstOrCreate(&stock).Error; err != nil {
				return err
			}
			return tx.Model(&stock).Update("quantity", *req.Stock).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes the product and everything hanging off it: stock,
// extra images, reviews and any cart lines still referencing it. Order items
// keep their snapshots and are left alone.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.Stock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error
	})
}
