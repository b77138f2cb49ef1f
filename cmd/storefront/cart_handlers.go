package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fashion-fuel/storefront-api/internal/cart"
	"github.com/fashion-fuel/storefront-api/internal/catalog"
	"github.com/fashion-fuel/storefront-api/internal/httpx"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// @Summary  Current user's cart with decimal total
// @Tags     cart
// @Router   /cart [get]
func getCartHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := repo.List(c.Request.Context(), c.GetString("uid"))
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not load cart")
			return
		}
		if lines == nil {
			lines = []cart.Line{}
		}
		total, err := cart.Total(lines)
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not total cart")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"items": lines, "total": total})
	}
}

// @Summary  Add a product to the cart (upserts quantity)
// @Tags     cart
// @Router   /cart [post]
func addCartItemHandler(repo cart.Repository, products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if req.ProductID == "" || req.Quantity <= 0 {
			httpx.Fail(c, http.StatusBadRequest, "product_id and positive quantity are required")
			return
		}
		p, err := products.GetByID(c.Request.Context(), req.ProductID)
		if err != nil || p.Status != catalog.StatusActive {
			httpx.Fail(c, http.StatusNotFound, "product not found")
			return
		}
		if err := repo.Add(c.Request.Context(), uuid.NewString(), c.GetString("uid"), req.ProductID, req.Quantity); err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not add to cart")
			return
		}
		httpx.OK(c, http.StatusCreated, gin.H{"product_id": req.ProductID, "quantity": req.Quantity})
	}
}

// Last write wins on concurrent updates (no optimistic locking).
func updateCartItemHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if req.Quantity <= 0 {
			httpx.Fail(c, http.StatusBadRequest, "quantity must be positive")
			return
		}
		err := repo.SetQuantity(c.Request.Context(), c.GetString("uid"), c.Param("productID"), req.Quantity)
		if err != nil {
			if err == cart.ErrNotFound {
				httpx.Fail(c, http.StatusNotFound, "cart line not found")
				return
			}
			httpx.Fail(c, http.StatusInternalServerError, "could not update cart")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"product_id": c.Param("productID"), "quantity": req.Quantity})
	}
}

func removeCartItemHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Remove(c.Request.Context(), c.GetString("uid"), c.Param("productID"))
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not remove from cart")
			return
		}
		if !ok {
			httpx.Fail(c, http.StatusNotFound, "cart line not found")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"removed": true})
	}
}

func clearCartHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Clear(c.Request.Context(), c.GetString("uid")); err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not clear cart")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"cleared": true})
	}
}
