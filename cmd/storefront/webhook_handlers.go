package main

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fashion-fuel/storefront-api/internal/httpx"
	"github.com/fashion-fuel/storefront-api/internal/notification"
	"github.com/fashion-fuel/storefront-api/internal/order"
	"github.com/fashion-fuel/storefront-api/internal/payments"
)

// eventStatus maps provider event types to target order statuses.
var eventStatus = map[string]string{
	payments.EventSessionCompleted: order.StatusProcessing,
	payments.EventPaymentFailed:    order.StatusPaymentFailed,
	payments.EventChargeRefunded:   order.StatusRefunded,
}

// paymentWebhookHandler applies provider events to orders. Bad signatures get
// 400 and the event is dropped; everything else is acked with 200 so the
// provider stops retrying, including duplicates, unknown event types,
// unmatched sessions and illegal transitions.
func paymentWebhookHandler(orders order.Repository, notes notification.Repository, dedup payments.Deduper, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, "unreadable body")
			return
		}
		if !payments.VerifySignature(secret, body, c.GetHeader(payments.SignatureHeader)) {
			httpx.Fail(c, http.StatusBadRequest, "invalid signature")
			return
		}
		ev, err := payments.ParseEvent(body)
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid event")
			return
		}

		claimed := false
		seen, err := dedup.Seen(c.Request.Context(), ev.ID)
		if err != nil {
			// dedup store down: process anyway, the transition table keeps a
			// replay from corrupting state
			log.Printf("[webhook] dedup unavailable for %s: %v", ev.ID, err)
		} else if seen {
			log.Printf("[webhook] duplicate event %s ignored", ev.ID)
			httpx.OK(c, http.StatusOK, gin.H{"received": true, "duplicate": true})
			return
		} else {
			claimed = true
		}

		target, ok := eventStatus[ev.Type]
		if !ok {
			log.Printf("[webhook] unhandled event type %s", ev.Type)
			httpx.OK(c, http.StatusOK, gin.H{"received": true})
			return
		}

		o, err := orders.UpdateStatusBySession(c.Request.Context(), ev.SessionID, target)
		switch err {
		case nil:
			notifyStatusChange(c.Request.Context(), notes, o)
		case order.ErrNotFound:
			log.Printf("[webhook] event %s: no order for session %s", ev.ID, ev.SessionID)
		case order.ErrIllegalTransition:
			log.Printf("[webhook] event %s: illegal transition to %s for session %s", ev.ID, target, ev.SessionID)
		default:
			log.Printf("[webhook] event %s: %v", ev.ID, err)
			// release the claim so the provider's retry gets applied instead
			// of being swallowed as a duplicate
			if claimed {
				if ferr := dedup.Forget(c.Request.Context(), ev.ID); ferr != nil {
					log.Printf("[webhook] could not release claim on %s: %v", ev.ID, ferr)
				}
			}
			httpx.Fail(c, http.StatusInternalServerError, "could not apply event")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"received": true})
	}
}
