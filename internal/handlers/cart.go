package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DevM0rales/NerdHub-Project/internal/logging"
	"github.com/DevM0rales/NerdHub-Project/internal/mykafka"
	"github.com/DevM0rales/NerdHub-Project/internal/service"
	"github.com/DevM0rales/NerdHub-Project/internal/transport"
)

type CartHandler struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	view, err := h.Svc.View(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	productID, err := paramUint(c, "product_id")
	if err != nil {
		return err
	}

	item, err := h.Svc.AddToCart(ctx, userID, productID)
	if err != nil {
		l.Warn("add_to_cart_error", "status", statusFor(err), "product_id", productID, "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": productID,
		"quantity":  item.Quantity,
	})

	l.Info("item added to cart", "product_id", productID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"item":    item,
		"message": "product added to cart",
	})
}

func (h *CartHandler) ChangeQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.change_quantity")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	itemID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req transport.ChangeQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, transport.ChangeQuantityResponse{Success: false, Error: "invalid body"})
	}

	quantity, err := h.Svc.ChangeQuantity(ctx, userID, itemID, req.Action)
	if err != nil {
		l.Warn("change_quantity_error", "status", statusFor(err), "item_id", itemID, "error", err)
		if errors.Is(err, service.ErrMinimumReached) {
			return c.JSON(http.StatusBadRequest, transport.ChangeQuantityResponse{Success: false, Error: "minimum quantity reached"})
		}
		return c.JSON(statusFor(err), transport.ChangeQuantityResponse{Success: false, Error: err.Error()})
	}

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":         "cart_quantity_changed",
		"userID":       userID,
		"itemID":       itemID,
		"action":       req.Action,
		"new_quantity": quantity,
	})

	return c.JSON(http.StatusOK, transport.ChangeQuantityResponse{Success: true, NewQuantity: quantity})
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	itemID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveItem(ctx, userID, itemID); err != nil {
		l.Warn("remove_item_error", "status", statusFor(err), "item_id", itemID, "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "cart_events", map[string]any{
		"type":         "cart_item_removed",
		"userID":       userID,
		"deleted_item": itemID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"deleted_item": itemID,
		"message":      "item removed from cart",
	})
}
