package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fashion-fuel/storefront-api/internal/catalog"
	"github.com/fashion-fuel/storefront-api/internal/httpx"
)

func intQuery(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// @Summary  List active products with filter/sort/pagination
// @Tags     catalog
// @Router   /products [get]
func listProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := catalog.Query{
			Q:          c.Query("q"),
			CategoryID: c.Query("category"),
			Sort:       c.Query("sort"),
			Limit:      intQuery(c, "limit", 20),
			Offset:     intQuery(c, "offset", 0),
		}
		items, err := repo.List(c.Request.Context(), q)
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not list products")
			return
		}
		if items == nil {
			items = []catalog.Product{}
		}
		httpx.OK(c, http.StatusOK, catalog.ListResponse{
			Q: q.Q, CategoryID: q.CategoryID, Sort: q.Sort,
			Limit: q.Limit, Offset: q.Offset, Items: items,
		})
	}
}

// @Summary  Product detail
// @Tags     catalog
// @Router   /products/{id} [get]
func getProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil || p.Status != catalog.StatusActive {
			// disabled products are invisible to the storefront
			httpx.Fail(c, http.StatusNotFound, "product not found")
			return
		}
		httpx.OK(c, http.StatusOK, p)
	}
}

func listCategoriesHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := repo.ListCategories(c.Request.Context())
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not list categories")
			return
		}
		if cats == nil {
			cats = []catalog.Category{}
		}
		httpx.OK(c, http.StatusOK, cats)
	}
}
