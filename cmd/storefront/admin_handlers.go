package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fashion-fuel/storefront-api/internal/catalog"
	"github.com/fashion-fuel/storefront-api/internal/httpx"
	"github.com/fashion-fuel/storefront-api/internal/notification"
	"github.com/fashion-fuel/storefront-api/internal/order"
	"github.com/fashion-fuel/storefront-api/internal/user"
)

func validPrice(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && d.IsPositive()
}

// @Summary  Create a product
// @Tags     admin
// @Router   /admin/products [post]
func adminCreateProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if req.Name == "" || req.Price == "" || req.CategoryID == "" {
			httpx.Fail(c, http.StatusBadRequest, "name, price and category_id are required")
			return
		}
		if !validPrice(req.Price) {
			httpx.Fail(c, http.StatusBadRequest, "price must be a positive decimal")
			return
		}
		if _, err := repo.GetCategory(c.Request.Context(), req.CategoryID); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "category not found")
			return
		}
		p := &catalog.Product{
			ID:          uuid.NewString(),
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			ImageURL:    req.ImageURL,
			Status:      catalog.StatusActive,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not create product")
			return
		}
		httpx.OK(c, http.StatusCreated, p)
	}
}

func adminListProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := catalog.Query{
			Q:               c.Query("q"),
			CategoryID:      c.Query("category"),
			Sort:            c.Query("sort"),
			Limit:           intQuery(c, "limit", 20),
			Offset:          intQuery(c, "offset", 0),
			IncludeDisabled: true,
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

func adminUpdateProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		updatePrice := req.Price != ""
		if updatePrice && !validPrice(req.Price) {
			httpx.Fail(c, http.StatusBadRequest, "price must be a positive decimal")
			return
		}
		if req.Status != "" && req.Status != catalog.StatusActive && req.Status != catalog.StatusDisabled {
			httpx.Fail(c, http.StatusBadRequest, "status must be active or disabled")
			return
		}
		id := c.Param("id")
		if _, err := repo.GetByID(c.Request.Context(), id); err != nil {
			httpx.Fail(c, http.StatusNotFound, "product not found")
			return
		}
		p := &catalog.Product{
			ID:          id,
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			ImageURL:    req.ImageURL,
			Status:      req.Status,
		}
		if err := repo.Update(c.Request.Context(), p, updatePrice); err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not update product")
			return
		}
		out, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not reload product")
			return
		}
		httpx.OK(c, http.StatusOK, out)
	}
}

func adminDisableProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Disable(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not disable product")
			return
		}
		if !ok {
			httpx.Fail(c, http.StatusNotFound, "product not found")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"disabled": true})
	}
}

func adminCreateCategoryHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name        string `json:"name"`
			Slug        string `json:"slug"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Slug == "" {
			httpx.Fail(c, http.StatusBadRequest, "name and slug are required")
			return
		}
		cat := &catalog.Category{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
		}
		if err := repo.CreateCategory(c.Request.Context(), cat); err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not create category")
			return
		}
		httpx.OK(c, http.StatusCreated, cat)
	}
}

func adminUpdateCategoryHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name        string `json:"name"`
			Slug        string `json:"slug"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		cat := &catalog.Category{
			ID:          c.Param("id"),
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
		}
		if err := repo.UpdateCategory(c.Request.Context(), cat); err != nil {
			if err == catalog.ErrCategoryNotFound {
				httpx.Fail(c, http.StatusNotFound, "category not found")
				return
			}
			httpx.Fail(c, http.StatusInternalServerError, "could not update category")
			return
		}
		out, err := repo.GetCategory(c.Request.Context(), cat.ID)
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not reload category")
			return
		}
		httpx.OK(c, http.StatusOK, out)
	}
}

func adminDeleteCategoryHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.DeleteCategory(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not delete category")
			return
		}
		if !ok {
			httpx.Fail(c, http.StatusNotFound, "category not found")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"deleted": true})
	}
}

func adminListOrdersHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")
		if status != "" && !order.ValidStatus(status) {
			httpx.Fail(c, http.StatusBadRequest, "unknown status")
			return
		}
		out, err := orders.List(c.Request.Context(), status,
			intQuery(c, "limit", 20), intQuery(c, "offset", 0))
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not list orders")
			return
		}
		if out == nil {
			out = []order.Order{}
		}
		httpx.OK(c, http.StatusOK, gin.H{"items": out})
	}
}

func adminGetOrderHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, items, err := orders.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "order not found")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"order": o, "items": items})
	}
}

// @Summary  Admin status override, checked against the transition table
// @Tags     admin
// @Router   /admin/orders/{id}/status [put]
func adminUpdateOrderStatusHandler(orders order.Repository, notes notification.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if !order.ValidStatus(req.Status) {
			httpx.Fail(c, http.StatusBadRequest, "unknown status")
			return
		}
		o, err := orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			switch err {
			case order.ErrNotFound:
				httpx.Fail(c, http.StatusNotFound, "order not found")
			case order.ErrIllegalTransition:
				httpx.Fail(c, http.StatusConflict, "illegal status transition")
			default:
				httpx.Fail(c, http.StatusInternalServerError, "could not update status")
			}
			return
		}
		notifyStatusChange(c.Request.Context(), notes, o)
		httpx.OK(c, http.StatusOK, o)
	}
}

func adminListCustomersHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := users.ListCustomers(c.Request.Context(),
			intQuery(c, "limit", 20), intQuery(c, "offset", 0))
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not list customers")
			return
		}
		if out == nil {
			out = []user.Account{}
		}
		httpx.OK(c, http.StatusOK, gin.H{"items": out})
	}
}

func adminGetCustomerHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		u, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "customer not found")
			return
		}
		cust, err := users.GetCustomer(c.Request.Context(), id)
		if err != nil {
			cust = nil
		}
		httpx.OK(c, http.StatusOK, user.Account{User: *u, Customer: cust})
	}
}

func adminDeleteCustomerHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := users.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not delete customer")
			return
		}
		if !ok {
			httpx.Fail(c, http.StatusNotFound, "customer not found")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"deleted": true})
	}
}

func adminDashboardHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := orders.CountByStatus(c.Request.Context())
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not load dashboard")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"orders_by_status": counts})
	}
}
