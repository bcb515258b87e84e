package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevM0rales/NerdHub-Project/internal/models"
	"github.com/DevM0rales/NerdHub-Project/internal/service"
)

func TestAddToCartHandler(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{Svc: &service.CartService{DB: env.DB}}
	p := env.createProduct(t, "Widget", "49.90")

	c, rec := env.newContext(http.MethodPost, "/api/v1/cart/1", "", map[string]string{
		"product_id": fmt.Sprint(p.ID),
	})
	require.NoError(t, h.AddToCart(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "product added to cart", body["message"])
}

func TestAddToCartHandler_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{Svc: &service.CartService{DB: env.DB}}

	c, rec := env.newContext(http.MethodPost, "/api/v1/cart/999", "", map[string]string{
		"product_id": "999",
	})
	require.NoError(t, h.AddToCart(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestAddToCartHandler_OutOfStock(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{Svc: &service.CartService{DB: env.DB}}
	p := env.createProduct(t, "Widget", "49.90")
	require.NoError(t, env.DB.Create(&models.Stock{ProductID: p.ID, Quantity: 0}).Error)

	c, rec := env.newContext(http.MethodPost, "/api/v1/cart/1", "", map[string]string{
		"product_id": fmt.Sprint(p.ID),
	})
	require.NoError(t, h.AddToCart(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestChangeQuantityHandler(t *testing.T) {
	env := newTestEnv(t)
	svc := &service.CartService{DB: env.DB}
	h := &CartHandler{Svc: svc}
	p := env.createProduct(t, "Widget", "49.90")

	item, err := svc.AddToCart(t.Context(), 1, p.ID)
	require.NoError(t, err)

	c, rec := env.newContext(http.MethodPost, "/api/v1/cart/items/1", `{"action":"increase"}`, map[string]string{
		"id": fmt.Sprint(item.ID),
	})
	require.NoError(t, h.ChangeQuantity(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["new_quantity"])
}

func TestChangeQuantityHandler_MinimumReached(t *testing.T) {
	env := newTestEnv(t)
	svc := &service.CartService{DB: env.DB}
	h := &CartHandler{Svc: svc}
	p := env.createProduct(t, "Widget", "49.90")

	item, err := svc.AddToCart(t.Context(), 1, p.ID)
	require.NoError(t, err)

	c, rec := env.newContext(http.MethodPost, "/api/v1/cart/items/1", `{"action":"decrease"}`, map[string]string{
		"id": fmt.Sprint(item.ID),
	})
	require.NoError(t, h.ChangeQuantity(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "minimum quantity reached", body["error"])
}

func TestChangeQuantityHandler_ForeignItemForbidden(t *testing.T) {
	env := newTestEnv(t)
	svc := &service.CartService{DB: env.DB}
	h := &CartHandler{Svc: svc}
	p := env.createProduct(t, "Widget", "49.90")

	// line belongs to user 2, the context user is 1
	item, err := svc.AddToCart(t.Context(), 2, p.ID)
	require.NoError(t, err)

	c, rec := env.newContext(http.MethodPost, "/api/v1/cart/items/1", `{"action":"increase"}`, map[string]string{
		"id": fmt.Sprint(item.ID),
	})
	require.NoError(t, h.ChangeQuantity(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRemoveItemHandler(t *testing.T) {
	env := newTestEnv(t)
	svc := &service.CartService{DB: env.DB}
	h := &CartHandler{Svc: svc}
	p := env.createProduct(t, "Widget", "49.90")

	item, err := svc.AddToCart(t.Context(), 1, p.ID)
	require.NoError(t, err)

	c, rec := env.newContext(http.MethodDelete, "/api/v1/cart/items/1", "", map[string]string{
		"id": fmt.Sprint(item.ID),
	})
	require.NoError(t, h.RemoveItem(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(item.ID), body["deleted_item"])
}

func TestGetCartHandler(t *testing.T) {
	env := newTestEnv(t)
	svc := &service.CartService{DB: env.DB}
	h := &CartHandler{Svc: svc}
	p := env.createProduct(t, "Widget", "49.90")

	_, err := svc.AddToCart(t.Context(), 1, p.ID)
	require.NoError(t, err)

	c, rec := env.newContext(http.MethodGet, "/api/v1/cart", "", nil)
	require.NoError(t, h.GetCart(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "49.9", body["total"])
}

func TestCartHandlers_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{Svc: &service.CartService{DB: env.DB}}

	// no userID in the context, the token middleware never ran
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)

	err := h.GetCart(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
