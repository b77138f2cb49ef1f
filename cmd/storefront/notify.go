package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/fashion-fuel/storefront-api/internal/notification"
	"github.com/fashion-fuel/storefront-api/internal/order"
)

func orderStatusMessage(number, status string) string {
	switch status {
	case order.StatusProcessing:
		return fmt.Sprintf("Payment received. Your order %s is being processed.", number)
	case order.StatusShipped:
		return fmt.Sprintf("Your order %s has shipped.", number)
	case order.StatusDelivered:
		return fmt.Sprintf("Your order %s was delivered.", number)
	case order.StatusPaymentFailed:
		return fmt.Sprintf("Payment for order %s failed. Please try again.", number)
	case order.StatusRefunded:
		return fmt.Sprintf("Your order %s was refunded.", number)
	case order.StatusCancelled:
		return fmt.Sprintf("Your order %s was cancelled.", number)
	}
	return fmt.Sprintf("Your order %s is now %s.", number, status)
}

// notifyStatusChange is best-effort: a failed insert never fails the request
// that caused the transition.
func notifyStatusChange(ctx context.Context, repo notification.Repository, o *order.Order) {
	n := &notification.Notification{
		ID:      uuid.NewString(),
		UserID:  o.UserID,
		Message: orderStatusMessage(o.Number, o.Status),
	}
	if err := repo.Create(ctx, n); err != nil {
		log.Printf("[notify] order=%s user=%s: %v", o.Number, o.UserID, err)
	}
}
