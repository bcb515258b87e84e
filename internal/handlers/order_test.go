package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevM0rales/NerdHub-Project/internal/models"
	"github.com/DevM0rales/NerdHub-Project/internal/service"
)

const finalizeBody = `{
	"endereco_destinatario": "Ana Souza",
	"endereco_rua": "Rua das Flores",
	"endereco_numero": "42",
	"endereco_bairro": "Centro",
	"endereco_cidade": "Sao Paulo",
	"endereco_estado": "SP",
	"endereco_cep": "01000-000",
	"endereco_telefone": "11 99999-0000",
	"forma_pagamento": "pix"
}`

func newOrderHandler(env *testEnv) *OrderHandler {
	return &OrderHandler{
		Svc:  &service.OrderService{DB: env.DB},
		Cart: &service.CartService{DB: env.DB},
	}
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	env := newTestEnv(t)
	h := newOrderHandler(env)

	c, rec := env.newContext(http.MethodGet, "/api/v1/checkout", "", nil)
	require.NoError(t, h.Checkout(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "cart is empty", body["error"])
}

func TestCheckoutHandler_Summary(t *testing.T) {
	env := newTestEnv(t)
	h := newOrderHandler(env)
	p := env.createProduct(t, "Widget", "49.90")

	_, err := h.Cart.AddToCart(t.Context(), 1, p.ID)
	require.NoError(t, err)

	c, rec := env.newContext(http.MethodGet, "/api/v1/checkout", "", nil)
	require.NoError(t, h.Checkout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "49.9", body["total"])
	assert.Len(t, body["items"], 1)
}

func TestFinalizeHandler(t *testing.T) {
	env := newTestEnv(t)
	h := newOrderHandler(env)
	p := env.createProduct(t, "Widget", "49.90")

	_, err := h.Cart.AddToCart(t.Context(), 1, p.ID)
	require.NoError(t, err)

	c, rec := env.newContext(http.MethodPost, "/api/v1/checkout", finalizeBody, nil)
	require.NoError(t, h.Finalize(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["reference"])
	assert.Equal(t, "49.9", body["total"])
	assert.Contains(t, body["message"], "finalized successfully")

	var order models.Order
	require.NoError(t, env.DB.First(&order).Error)
	assert.True(t, order.Finalized)
	assert.Equal(t, models.PaymentPix, order.PaymentMethod)
	assert.Equal(t, "Rua das Flores", order.AddressStreet)
}

func TestFinalizeHandler_EmptyCart(t *testing.T) {
	env := newTestEnv(t)
	h := newOrderHandler(env)

	c, rec := env.newContext(http.MethodPost, "/api/v1/checkout", finalizeBody, nil)
	require.NoError(t, h.Finalize(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFinalizeHandler_BadPaymentMethod(t *testing.T) {
	env := newTestEnv(t)
	h := newOrderHandler(env)
	p := env.createProduct(t, "Widget", "49.90")

	_, err := h.Cart.AddToCart(t.Context(), 1, p.ID)
	require.NoError(t, err)

	c, rec := env.newContext(http.MethodPost, "/api/v1/checkout", `{"forma_pagamento":"cheque"}`, nil)
	require.NoError(t, h.Finalize(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderHandler_ForeignOrderForbidden(t *testing.T) {
	env := newTestEnv(t)
	h := newOrderHandler(env)
	p := env.createProduct(t, "Widget", "49.90")

	// order placed by user 2
	_, err := h.Cart.AddToCart(t.Context(), 2, p.ID)
	require.NoError(t, err)
	order, err := h.Svc.Finalize(t.Context(), 2, service.Address{}, models.PaymentPix)
	require.NoError(t, err)

	c, rec := env.newContext(http.MethodGet, "/api/v1/orders/1", "", map[string]string{
		"id": fmt.Sprint(order.ID),
	})
	require.NoError(t, h.GetOrder(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListOrdersHandler_Paginated(t *testing.T) {
	env := newTestEnv(t)
	h := newOrderHandler(env)
	p := env.createProduct(t, "Widget", "10.00")

	for i := 0; i < 3; i++ {
		_, err := h.Cart.AddToCart(t.Context(), 1, p.ID)
		require.NoError(t, err)
		_, err = h.Svc.Finalize(t.Context(), 1, service.Address{}, models.PaymentPix)
		require.NoError(t, err)
	}

	c, rec := env.newContext(http.MethodGet, "/api/v1/orders?page=1&size=2", "", nil)
	require.NoError(t, h.ListOrders(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["data"], 2)

	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), meta["total"])
	assert.Equal(t, true, meta["has_next"])
}
