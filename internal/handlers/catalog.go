package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/DevM0rales/NerdHub-Project/internal/logging"
	"github.com/DevM0rales/NerdHub-Project/internal/mykafka"
	"github.com/DevM0rales/NerdHub-Project/internal/service"
	"github.com/DevM0rales/NerdHub-Project/internal/transport"
	"github.com/DevM0rales/NerdHub-Project/internal/util"
)

type CatalogHandler struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *CatalogHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListProducts(ctx, offset, limit)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": transport.NewPageMeta(page, limit, offset, total),
	})
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get")

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.Svc.GetProductDetail(ctx, id)
	if err != nil {
		l.Warn("get_product_error", "status", statusFor(err), "product_id", id, "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, detail)
}

func (h *CatalogHandler) GetBrands(c echo.Context) error {
	brands, err := h.Svc.ListBrands(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *CatalogHandler) GetBrandProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.by_brand")

	name := c.Param("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	brand, products, err := h.Svc.ProductsByBrand(ctx, name)
	if err != nil {
		l.Warn("brand_products_error", "status", statusFor(err), "brand", name, "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"brand":    brand,
		"products": products,
	})
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		l.Warn("create_product_error", "status", statusFor(err), "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_created",
		"userID":    userID,
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("product created", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}

	product, err := h.Svc.PatchProduct(ctx, id, req)
	if err != nil {
		l.Warn("patch_product_error", "status", statusFor(err), "product_id", id, "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_updated",
		"userID":    userID,
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_error", "status", statusFor(err), "product_id", id, "error", err)
		return serviceError(c, err)
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_deleted",
		"userID":    userID,
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
