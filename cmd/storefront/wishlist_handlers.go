package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fashion-fuel/storefront-api/internal/cart"
	"github.com/fashion-fuel/storefront-api/internal/catalog"
	"github.com/fashion-fuel/storefront-api/internal/httpx"
	"github.com/fashion-fuel/storefront-api/internal/wishlist"
)

func listWishlistHandler(repo wishlist.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := repo.List(c.Request.Context(), c.GetString("uid"))
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not load wishlist")
			return
		}
		if lines == nil {
			lines = []wishlist.Line{}
		}
		httpx.OK(c, http.StatusOK, gin.H{"items": lines})
	}
}

func addWishlistItemHandler(repo wishlist.Repository, products catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ProductID string `json:"product_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
			httpx.Fail(c, http.StatusBadRequest, "product_id is required")
			return
		}
		p, err := products.GetByID(c.Request.Context(), req.ProductID)
		if err != nil || p.Status != catalog.StatusActive {
			httpx.Fail(c, http.StatusNotFound, "product not found")
			return
		}
		if err := repo.Add(c.Request.Context(), uuid.NewString(), c.GetString("uid"), req.ProductID); err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not add to wishlist")
			return
		}
		httpx.OK(c, http.StatusCreated, gin.H{"product_id": req.ProductID})
	}
}

func removeWishlistItemHandler(repo wishlist.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Remove(c.Request.Context(), c.GetString("uid"), c.Param("productID"))
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not remove from wishlist")
			return
		}
		if !ok {
			httpx.Fail(c, http.StatusNotFound, "wishlist line not found")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"removed": true})
	}
}

// moveWishlistToCartHandler removes the wishlist line and adds one unit to the
// cart. Two independent writes; a failure in between leaves the product in
// neither list.
func moveWishlistToCartHandler(repo wishlist.Repository, carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("uid")
		pid := c.Param("productID")
		ok, err := repo.Remove(c.Request.Context(), uid, pid)
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not move to cart")
			return
		}
		if !ok {
			httpx.Fail(c, http.StatusNotFound, "wishlist line not found")
			return
		}
		if err := carts.Add(c.Request.Context(), uuid.NewString(), uid, pid, 1); err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not move to cart")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"product_id": pid, "moved": true})
	}
}
