package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Brand struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null"     json:"name"`
	Logo string `json:"logo"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name        string          `gorm:"not null"                    json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `json:"image"`
	BrandID     *uint           `gorm:"index"                       json:"brand_id"`
	CategoryID  *uint           `gorm:"index"                       json:"category_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index;not null"           json:"product_id"`
	Image     string `gorm:"not null"                 json:"image"`
}

// Stock is optional per product: no row means the quantity is untracked
// and adds are never blocked.
type Stock struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint `gorm:"uniqueIndex;not null"     json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type Cart struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null"     json:"user_id"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"              json:"id"`
	CartID    uint `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  uint `gorm:"default:1;check:quantity>0"            json:"quantity"`
}

type PaymentMethod string

const (
	PaymentCredit   PaymentMethod = "credito"
	PaymentDebit    PaymentMethod = "debito"
	PaymentPix      PaymentMethod = "pix"
	PaymentBankSlip PaymentMethod = "boleto"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCredit, PaymentDebit, PaymentPix, PaymentBankSlip:
		return true
	}
	return false
}

type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference string    `gorm:"uniqueIndex;not null"     json:"reference"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Finalized bool      `gorm:"not null"                 json:"finalized"`

	AddressRecipient  string `json:"endereco_destinatario"`
	AddressStreet     string `json:"endereco_rua"`
	AddressNumber     string `json:"endereco_numero"`
	AddressComplement string `json:"endereco_complemento"`
	AddressDistrict   string `json:"endereco_bairro"`
	AddressCity       string `json:"endereco_cidade"`
	AddressState      string `json:"endereco_estado"`
	AddressZip        string `json:"endereco_cep"`
	AddressPhone      string `json:"endereco_telefone"`

	PaymentMethod PaymentMethod   `gorm:"not null"                    json:"forma_pagamento"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem copies quantity, unit price and product name at finalize time.
// ProductID is a plain back-reference for display and survives later price
// changes or deletion of the product.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID     uint            `gorm:"index;not null"              json:"order_id"`
	ProductID   uint            `gorm:"not null"                    json:"product_id"`
	ProductName string          `gorm:"not null"                    json:"product_name"`
	Quantity    uint            `gorm:"default:1;check:quantity>0"  json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"index;not null"           json:"product_id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	Comment   string    `gorm:"not null"                 json:"comment"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `gorm:"not null"        json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
