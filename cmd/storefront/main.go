// Fashion Fuel storefront API.
//
// @title        Fashion Fuel API
// @version      1.0
// @description  Storefront and admin back office for the Fashion Fuel shop.
// @BasePath     /api
package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fashion-fuel/storefront-api/internal/auth"
	"github.com/fashion-fuel/storefront-api/internal/cart"
	"github.com/fashion-fuel/storefront-api/internal/catalog"
	"github.com/fashion-fuel/storefront-api/internal/config"
	"github.com/fashion-fuel/storefront-api/internal/notification"
	"github.com/fashion-fuel/storefront-api/internal/order"
	"github.com/fashion-fuel/storefront-api/internal/payments"
	"github.com/fashion-fuel/storefront-api/internal/user"
	"github.com/fashion-fuel/storefront-api/internal/wishlist"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[main] postgres: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("[main] postgres ping: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	a := app{
		cfg:           cfg,
		tokens:        auth.NewTokens(cfg.SessionSecret, cfg.SessionTTL),
		users:         user.NewPGRepo(pool),
		catalog:       catalog.NewPGRepo(pool),
		cart:          cart.NewPGRepo(pool),
		wishlist:      wishlist.NewPGRepo(pool),
		orders:        order.NewPGRepo(pool),
		notifications: notification.NewPGRepo(pool),
		payments:      payments.NewClient(cfg.PaymentAPIBaseURL, cfg.PaymentAPIKey),
		dedup:         payments.NewRedisDeduper(rdb, 24*time.Hour),
	}

	r := buildRouter(a)
	log.Printf("[main] storefront listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("[main] server: %v", err)
	}
}
