package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DevM0rales/NerdHub-Project/internal/models"
)

type OrderService struct {
	DB *gorm.DB
}

type Address struct {
	Recipient  string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	Zip        string
	Phone      string
}

// Finalize converts the user's cart into an immutable order: it snapshots the
// current unit prices and product names, decrements tracked stock, and clears
// the cart lines. The whole sequence runs in one transaction, so a failure
// leaves no partial order behind.
//
// A stock shortfall at decrement time does not block the order; the decrement
// is a single conditional UPDATE, so stock never goes negative even under
// concurrent finalizations.
func (s *OrderService) Finalize(ctx context.Context, userID uint, addr Address, payment models.PaymentMethod) (*models.Order, error) {
	if !payment.Valid() {
		return nil, fmt.Errorf("forma_pagamento %q: %w", payment, ErrValidation)
	}

	var order models.Order

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		products := make(map[uint]models.Product, len(items))
		total := decimal.Zero
		for _, it := range items {
			var p models.Product
			if err := tx.First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", it.ProductID, ErrNotFound)
				}
				return err
			}
			products[it.ProductID] = p
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}

		order = models.Order{
			Reference: uuid.NewString(),
			UserID:    userID,
			Finalized: true,

			AddressRecipient:  addr.Recipient,
			AddressStreet:     addr.Street,
			AddressNumber:     addr.Number,
			AddressComplement: addr.Complement,
			AddressDistrict:   addr.District,
			AddressCity:       addr.City,
			AddressState:      addr.State,
			AddressZip:        addr.Zip,
			AddressPhone:      addr.Phone,

			PaymentMethod: payment,
			Total:         total,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, it := range items {
			p := products[it.ProductID]

			res := tx.Model(&models.Stock{}).
				Where("product_id = ? AND quantity >= ?", it.ProductID, it.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", it.Quantity))
			if res.Error != nil {
				return res.Error
			}
			// res.RowsAffected == 0: untracked product or shortfall, the
			// order still proceeds with stock untouched.

			oi := models.OrderItem{
				OrderID:     order.ID,
				ProductID:   it.ProductID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				UnitPrice:   p.Price,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint, offset, limit int) (int64, []models.Order, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	db := s.DB.WithContext(ctx)

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrPermissionDenied)
	}

	if err := db.Where("order_id = ?", order.ID).Order("id ASC").Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
