package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fashion-fuel/storefront-api/internal/config"
	"github.com/fashion-fuel/storefront-api/internal/httpx"
	"github.com/fashion-fuel/storefront-api/internal/order"
	"github.com/fashion-fuel/storefront-api/internal/payments"
)

func shippingComplete(s order.Shipping) bool {
	return s.FullName != "" && s.Address != "" && s.City != "" && s.PostalCode != "" && s.Country != ""
}

// @Summary  Place an order from the submitted items and open a checkout session
// @Tags     orders
// @Router   /orders [post]
func createOrderHandler(orders order.Repository, pay *payments.Client, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if len(req.Items) == 0 || !shippingComplete(req.Shipping) {
			httpx.Fail(c, http.StatusBadRequest, "missing fields")
			return
		}
		items := make([]order.NewItem, 0, len(req.Items))
		for _, it := range req.Items {
			if it.ProductID == "" || it.Quantity <= 0 {
				httpx.Fail(c, http.StatusBadRequest, "missing fields")
				return
			}
			items = append(items, order.NewItem{ProductID: it.ProductID, Quantity: it.Quantity})
		}

		o, lines, err := orders.Create(c.Request.Context(), c.GetString("uid"), req.Shipping, req.PaymentMethod, items)
		if err != nil {
			switch err {
			case order.ErrNoItems:
				httpx.Fail(c, http.StatusBadRequest, "missing fields")
			case order.ErrProductUnavailable:
				httpx.Fail(c, http.StatusBadRequest, "product unavailable")
			default:
				httpx.Fail(c, http.StatusInternalServerError, "could not create order")
			}
			return
		}

		// The session call is outside the creation transaction: on failure the
		// order stays pending and the client can retry checkout.
		sessionItems := make([]payments.SessionLineItem, 0, len(lines))
		for _, l := range lines {
			sessionItems = append(sessionItems, payments.SessionLineItem{
				Name:      l.ProductName,
				UnitPrice: l.UnitPrice,
				Quantity:  l.Quantity,
			})
		}
		session, err := pay.CreateSession(c.Request.Context(), payments.CreateSessionRequest{
			Reference:  o.Number,
			Currency:   "usd",
			LineItems:  sessionItems,
			SuccessURL: cfg.CheckoutSuccessURL,
			CancelURL:  cfg.CheckoutCancelURL,
		})
		if err != nil {
			log.Printf("[checkout] order=%s session creation failed: %v", o.Number, err)
			httpx.Fail(c, http.StatusInternalServerError, "order created but payment session failed")
			return
		}
		if err := orders.SetCheckoutSession(c.Request.Context(), o.ID, session.ID); err != nil {
			log.Printf("[checkout] order=%s could not persist session %s: %v", o.Number, session.ID, err)
			httpx.Fail(c, http.StatusInternalServerError, "order created but payment session failed")
			return
		}
		o.CheckoutSessionID = session.ID
		httpx.OK(c, http.StatusCreated, gin.H{
			"order":        o,
			"items":        lines,
			"checkout_url": session.URL,
		})
	}
}

func listMyOrdersHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := orders.ListByUser(c.Request.Context(), c.GetString("uid"),
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

func getMyOrderHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, items, err := orders.GetByID(c.Request.Context(), c.Param("id"))
		// other users' orders answer 404, not 403
		if err != nil || o.UserID != c.GetString("uid") {
			httpx.Fail(c, http.StatusNotFound, "order not found")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"order": o, "items": items})
	}
}
