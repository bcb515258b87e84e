package transport

import (
	"github.com/shopspring/decimal"

	"github.com/DevM0rales/NerdHub-Project/internal/models"
)

type CreateProductRequest struct {
	Name        string          `json:"name"        form:"name"`
	Description string          `json:"description" form:"description"`
	Price       decimal.Decimal `json:"price"       form:"price"`
	Image       string          `json:"image"       form:"image"`
	BrandID     *uint           `json:"brand_id"    form:"brand_id"`
	CategoryID  *uint           `json:"category_id" form:"category_id"`
	Stock       *uint           `json:"stock"       form:"quantidade_estoque"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"        form:"name"`
	Description *string          `json:"description" form:"description"`
	Price       *decimal.Decimal `json:"price"       form:"price"`
	Image       *string          `json:"image"       form:"image"`
	BrandID     *uint            `json:"brand_id"    form:"brand_id"`
	CategoryID  *uint            `json:"category_id" form:"category_id"`
	Stock       *uint            `json:"stock"       form:"quantidade_estoque"`
}

type ChangeQuantityRequest struct {
	Action string `json:"action" form:"action"`
}

type ChangeQuantityResponse struct {
	Success     bool   `json:"success"`
	NewQuantity uint   `json:"new_quantity,omitempty"`
	Error       string `json:"error,omitempty"`
}

type AddReviewRequest struct {
	Comment string `json:"texto" form:"texto"`
	Rating  *int   `json:"nota"  form:"nota"`
}

type FinalizeOrderRequest struct {
	Recipient  string `json:"endereco_destinatario" form:"endereco_destinatario"`
	Street     string `json:"endereco_rua"          form:"endereco_rua"`
	Number     string `json:"endereco_numero"       form:"endereco_numero"`
	Complement string `json:"endereco_complemento"  form:"endereco_complemento"`
	District   string `json:"endereco_bairro"       form:"endereco_bairro"`
	City       string `json:"endereco_cidade"       form:"endereco_cidade"`
	State      string `json:"endereco_estado"       form:"endereco_estado"`
	Zip        string `json:"endereco_cep"          form:"endereco_cep"`
	Phone      string `json:"endereco_telefone"     form:"endereco_telefone"`

	PaymentMethod string `json:"forma_pagamento" form:"forma_pagamento"`
}

type OrderResponse struct {
	OrderID   uint               `json:"order_id"`
	Reference string             `json:"reference"`
	Total     decimal.Decimal    `json:"total"`
	Items     []models.OrderItem `json:"items"`
	Message   string             `json:"message"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func NewPageMeta(page, size, offset int, total int64) PageMeta {
	return PageMeta{
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: (total + int64(size) - 1) / int64(size),
		HasPrev:    page > 1,
		HasNext:    int64(offset+size) < total,
	}
}
