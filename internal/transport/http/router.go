package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/DevM0rales/NerdHub-Project/internal/handlers"
	"github.com/DevM0rales/NerdHub-Project/internal/service/token"
)

type Deps struct {
	DB             *gorm.DB
	AuthHandler    *handlers.AuthHandler
	CatalogHandler *handlers.CatalogHandler
	CartHandler    *handlers.CartHandler
	OrderHandler   *handlers.OrderHandler
	ReviewHandler  *handlers.ReviewHandler
	SearchHandler  *handlers.SearchHandler
	TokenService   *token.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.LogOut)

	v1.GET("/products", d.CatalogHandler.GetProducts)
	v1.GET("/products/:id", d.CatalogHandler.GetProduct)
	v1.GET("/products/:id/reviews", d.ReviewHandler.GetReviews)
	v1.GET("/brands", d.CatalogHandler.GetBrands)
	v1.GET("/brands/:name/products", d.CatalogHandler.GetBrandProducts)
	v1.GET("/search", d.SearchHandler.Search)

	authed := v1.Group("", d.TokenService.AutoRefreshMiddleware)

	authed.POST("/products/:id/reviews", d.ReviewHandler.AddReview)

	authed.GET("/cart", d.CartHandler.GetCart)
	authed.POST("/cart/:product_id", d.CartHandler.AddToCart)
	authed.POST("/cart/items/:id", d.CartHandler.ChangeQuantity)
	authed.DELETE("/cart/items/:id", d.CartHandler.RemoveItem)

	authed.GET("/checkout", d.OrderHandler.Checkout)
	authed.POST("/checkout", d.OrderHandler.Finalize)
	authed.GET("/orders", d.OrderHandler.ListOrders)
	authed.GET("/orders/:id", d.OrderHandler.GetOrder)

	admin := v1.Group("/admin", d.TokenService.AutoRefreshMiddlewareAdmin)

	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PATCH("/products/:id", d.CatalogHandler.PatchProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)
}
