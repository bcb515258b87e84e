package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DevM0rales/NerdHub-Project/internal/logging"
	"github.com/DevM0rales/NerdHub-Project/internal/service"
	"github.com/DevM0rales/NerdHub-Project/internal/transport"
)

type ReviewHandler struct {
	Svc *service.ReviewService
}

func (h *ReviewHandler) AddReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.add")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	productID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req transport.AddReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}

	review, err := h.Svc.AddReview(ctx, userID, productID, req.Comment, req.Rating)
	if err != nil {
		l.Warn("add_review_error", "status", statusFor(err), "product_id", productID, "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"review":  review,
		"message": "review added successfully",
	})
}

func (h *ReviewHandler) GetReviews(c echo.Context) error {
	productID, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.Svc.ListReviews(c.Request().Context(), productID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}
