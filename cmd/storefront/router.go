package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/fashion-fuel/storefront-api/docs"
	"github.com/fashion-fuel/storefront-api/internal/auth"
	"github.com/fashion-fuel/storefront-api/internal/cart"
	"github.com/fashion-fuel/storefront-api/internal/catalog"
	"github.com/fashion-fuel/storefront-api/internal/config"
	"github.com/fashion-fuel/storefront-api/internal/httpx"
	"github.com/fashion-fuel/storefront-api/internal/notification"
	"github.com/fashion-fuel/storefront-api/internal/order"
	"github.com/fashion-fuel/storefront-api/internal/payments"
	"github.com/fashion-fuel/storefront-api/internal/user"
	"github.com/fashion-fuel/storefront-api/internal/wishlist"
)

type app struct {
	cfg           config.Config
	tokens        *auth.Tokens
	users         user.Repository
	catalog       catalog.Repository
	cart          cart.Repository
	wishlist      wishlist.Repository
	orders        order.Repository
	notifications notification.Repository
	payments      *payments.Client
	dedup         payments.Deduper
}

func buildRouter(a app) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), auth.Session(a.tokens))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	ar := api.Group("/auth")
	{
		ar.POST("/register", registerHandler(a.users, a.tokens))
		ar.POST("/login", loginHandler(a.users, a.tokens))
		ar.POST("/logout", logoutHandler())
		ar.GET("/me", auth.RequireUser(), meHandler(a.users))
		ar.PUT("/me", auth.RequireUser(), updateProfileHandler(a.users))
	}

	api.GET("/products", listProductsHandler(a.catalog))
	api.GET("/products/:id", getProductHandler(a.catalog))
	api.GET("/categories", listCategoriesHandler(a.catalog))

	cr := api.Group("/cart", auth.RequireUser())
	{
		cr.GET("", getCartHandler(a.cart))
		cr.POST("", addCartItemHandler(a.cart, a.catalog))
		cr.PUT("/:productID", updateCartItemHandler(a.cart))
		cr.DELETE("/:productID", removeCartItemHandler(a.cart))
		cr.DELETE("", clearCartHandler(a.cart))
	}

	wr := api.Group("/wishlist", auth.RequireUser())
	{
		wr.GET("", listWishlistHandler(a.wishlist))
		wr.POST("", addWishlistItemHandler(a.wishlist, a.catalog))
		wr.DELETE("/:productID", removeWishlistItemHandler(a.wishlist))
		wr.POST("/:productID/move-to-cart", moveWishlistToCartHandler(a.wishlist, a.cart))
	}

	or := api.Group("/orders", auth.RequireUser())
	{
		or.POST("", createOrderHandler(a.orders, a.payments, a.cfg))
		or.GET("", listMyOrdersHandler(a.orders))
		or.GET("/:id", getMyOrderHandler(a.orders))
	}

	nr := api.Group("/notifications", auth.RequireUser())
	{
		nr.GET("", listNotificationsHandler(a.notifications))
		nr.GET("/unread-count", unreadCountHandler(a.notifications))
		nr.PUT("/:id/read", markNotificationReadHandler(a.notifications))
		nr.PUT("/read-all", markAllNotificationsReadHandler(a.notifications))
	}

	api.POST("/webhooks/payment", paymentWebhookHandler(a.orders, a.notifications, a.dedup, a.cfg.PaymentWebhookSecret))

	adm := api.Group("/admin", auth.RequireAdmin())
	{
		adm.POST("/products", adminCreateProductHandler(a.catalog))
		adm.GET("/products", adminListProductsHandler(a.catalog))
		adm.PUT("/products/:id", adminUpdateProductHandler(a.catalog))
		adm.DELETE("/products/:id", adminDisableProductHandler(a.catalog))

		adm.POST("/categories", adminCreateCategoryHandler(a.catalog))
		adm.PUT("/categories/:id", adminUpdateCategoryHandler(a.catalog))
		adm.DELETE("/categories/:id", adminDeleteCategoryHandler(a.catalog))

		adm.GET("/orders", adminListOrdersHandler(a.orders))
		adm.GET("/orders/:id", adminGetOrderHandler(a.orders))
		adm.PUT("/orders/:id/status", adminUpdateOrderStatusHandler(a.orders, a.notifications))

		adm.GET("/customers", adminListCustomersHandler(a.users))
		adm.GET("/customers/:id", adminGetCustomerHandler(a.users))
		adm.DELETE("/customers/:id", adminDeleteCustomerHandler(a.users))

		adm.GET("/dashboard", adminDashboardHandler(a.orders))
	}

	return r
}
