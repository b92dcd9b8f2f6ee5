package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/avoronin/shop_api/pkg/middleware/auth"
)

type Deps struct {
	CartHandler     *CartHTTP
	ProductHandler  *ProductHTTP
	CategoryHandler *CategoryHTTP
	AuthHandler     *AuthHTTP
	SearchHandler   *SearchHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewMiddleware(d.JWTSecret)

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)
	v1.POST("/refresh", d.AuthHandler.Refresh)

	categories := v1.Group("/categories")
	categories.GET("", d.CategoryHandler.GetCategories)
	categories.GET("/:id", d.CategoryHandler.GetCategory)
	categories.GET("/:id/products", d.CategoryHandler.GetCategoryProducts)
	categories.POST("", d.CategoryHandler.CreateCategory, authMW.RequireAdmin)
	categories.PUT("/:id", d.CategoryHandler.UpdateCategory, authMW.RequireAdmin)
	categories.DELETE("/:id", d.CategoryHandler.DeleteCategory, authMW.RequireAdmin)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, authMW.RequireAdmin)
	products.PATCH("/:id", d.ProductHandler.PatchProduct, authMW.RequireAdmin)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, authMW.RequireAdmin)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	cart := v1.Group("/cart", authMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/products/:productId", d.CartHandler.AddToCart)
	cart.PUT("/products/:productId", d.CartHandler.UpdateQuantity)
	cart.DELETE("", d.CartHandler.EmptyCart)
}
