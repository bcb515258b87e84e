package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DevM0rales/NerdHub-Project/internal/models"
)

const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
)

const suggestionLimit = 8

type CartService struct {
	DB *gorm.DB
}

type CartLine struct {
	Item     models.CartItem `json:"item"`
	Product  models.Product  `json:"product"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	CartID      uint             `json:"cart_id"`
	Lines       []CartLine       `json:"items"`
	Total       decimal.Decimal  `json:"total"`
	Suggestions []models.Product `json:"suggestions,omitempty"`
}

// getOrCreateCart relies on the unique index on carts.user_id, so a second
// concurrent call for the same user settles on the same row.
func getOrCreateCart(tx *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartService) GetOrCreateCart(ctx context.Context, userID uint) (*models.Cart, error) {
	return getOrCreateCart(s.DB.WithContext(ctx), userID)
}

// AddToCart adds one unit of the product to the user's cart. A tracked stock
// blocks the increment once available <= quantity already in the cart, and
// blocks the first add when nothing is available.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d: %w", productID, ErrNotFound)
			}
			return err
		}

		var stock models.Stock
		tracked := true
		if err := tx.Where("product_id = ?", productID).First(&stock).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			tracked = false
		}

		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
		switch {
		case err == nil:
			if tracked && stock.Quantity <= item.Quantity {
				return fmt.Errorf("product %q: %w", product.Name, ErrInsufficientStock)
			}
			item.Quantity++
			return tx.Save(&item).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			if tracked && stock.Quantity < 1 {
				return fmt.Errorf("product %q: %w", product.Name, ErrInsufficientStock)
			}
			item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: 1}
			return tx.Create(&item).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ChangeQuantity applies increase/decrease to a cart line owned by the user
// and returns the new quantity. Decrease never goes below 1.
func (s *CartService) ChangeQuantity(ctx context.Context, userID, itemID uint, action string) (uint, error) {
	var quantity uint

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := ownedItem(tx, userID, itemID)
		if err != nil {
			return err
		}

		switch action {
		case ActionIncrease:
			item.Quantity++
		case ActionDecrease:
			if item.Quantity <= 1 {
				return ErrMinimumReached
			}
			item.Quantity--
		default:
			return fmt.Errorf("action %q: %w", action, ErrValidation)
		}

		if err := tx.Save(item).Error; err != nil {
			return err
		}
		quantity = item.Quantity
		return nil
	})
	if err != nil {
		return 0, err
	}
	return quantity, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := ownedItem(tx, userID, itemID)
		if err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
}

// View computes per-line subtotals and the cart total, read-only, plus up to
// eight suggested products not already in the cart.
func (s *CartService) View(ctx context.Context, userID uint) (*CartView, error) {
	db := s.DB.WithContext(ctx)

	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := db.Where("cart_id = ?", cart.ID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	view := &CartView{CartID: cart.ID, Lines: make([]CartLine, 0, len(items)), Total: decimal.Zero}

	inCart := make([]uint, 0, len(items))
	for _, it := range items {
		var product models.Product
		if err := db.First(&product, it.ProductID).Error; err != nil {
			return nil, err
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		view.Total = view.Total.Add(subtotal)
		view.Lines = append(view.Lines, CartLine{Item: it, Product: product, Subtotal: subtotal})
		inCart = append(inCart, it.ProductID)
	}

	q := db.Model(&models.Product{}).Order("created_at DESC").Limit(suggestionLimit)
	if len(inCart) > 0 {
		q = q.Where("id NOT IN ?", inCart)
	}
	if err := q.Find(&view.Suggestions).Error; err != nil {
		return nil, err
	}

	return view, nil
}

func ownedItem(tx *gorm.DB, userID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := tx.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
		}
		return nil, err
	}

	var cart models.Cart
	if err := tx.First(&cart, item.CartID).Error; err != nil {
		return nil, err
	}
	if cart.UserID != userID {
		return nil, fmt.Errorf("cart item %d: %w", itemID, ErrPermissionDenied)
	}
	return &item, nil
}
