package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DevM0rales/NerdHub-Project/internal/logging"
	"github.com/DevM0rales/NerdHub-Project/internal/models"
	"github.com/DevM0rales/NerdHub-Project/internal/mykafka"
	"github.com/DevM0rales/NerdHub-Project/internal/service"
	"github.com/DevM0rales/NerdHub-Project/internal/transport"
	"github.com/DevM0rales/NerdHub-Project/internal/util"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Cart     *service.CartService
	Producer *mykafka.Producer
}

// Checkout returns the summary the checkout page renders. An empty cart is a
// precondition failure, the UI sends the user back to the index.
func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	view, err := h.Cart.View(ctx, userID)
	if err != nil {
		l.Error("checkout_error", "status", 500, "error", err)
		return serviceError(c, err)
	}

	if len(view.Lines) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "cart is empty"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": view.Lines,
		"total": view.Total,
	})
}

func (h *OrderHandler) Finalize(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.finalize")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req transport.FinalizeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}

	addr := service.Address{
		Recipient:  req.Recipient,
		Street:     req.Street,
		Number:     req.Number,
		Complement: req.Complement,
		District:   req.District,
		City:       req.City,
		State:      req.State,
		Zip:        req.Zip,
		Phone:      req.Phone,
	}

	order, err := h.Svc.Finalize(ctx, userID, addr, models.PaymentMethod(req.PaymentMethod))
	if err != nil {
		l.Warn("finalize_error", "status", statusFor(err), "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "order_events", map[string]any{
		"type":      "order_created",
		"userID":    userID,
		"orderID":   order.ID,
		"reference": order.Reference,
		"total":     order.Total,
	})

	l.Info("order finalized", "order_id", order.ID, "total", order.Total)
	return c.JSON(http.StatusCreated, transport.OrderResponse{
		OrderID:   order.ID,
		Reference: order.Reference,
		Total:     order.Total,
		Items:     order.Items,
		Message:   fmt.Sprintf("order #%d finalized successfully", order.ID),
	})
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListOrders(ctx, userID, offset, limit)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": transport.NewPageMeta(page, limit, offset, total),
	})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	orderID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Svc.GetOrder(ctx, userID, orderID)
	if err != nil {
		l.Warn("get_order_error", "status", statusFor(err), "order_id", orderID, "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}
