package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DevM0rales/NerdHub-Project/internal/config"
	"github.com/DevM0rales/NerdHub-Project/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func createProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()

	p := models.Product{
		Name:        name,
		Description: "test product",
		Price:       decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func createStock(t *testing.T, db *gorm.DB, productID, quantity uint) models.Stock {
	t.Helper()

	s := models.Stock{ProductID: productID, Quantity: quantity}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func stockQuantity(t *testing.T, db *gorm.DB, productID uint) uint {
	t.Helper()

	var s models.Stock
	require.NoError(t, db.Where("product_id = ?", productID).First(&s).Error)
	return s.Quantity
}

func requireDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got),
		"expected %s, got %s", want, got.String())
}
