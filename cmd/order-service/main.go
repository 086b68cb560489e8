// @title        EV Storefront Order Service
// @version      1.0
// @description  Shopping carts and purchase orders for the EV storefront.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/evstore/storefront/internal/cart"
	"github.com/evstore/storefront/internal/config"
	"github.com/evstore/storefront/internal/db"
	_ "github.com/evstore/storefront/internal/docs"
	"github.com/evstore/storefront/internal/httpx"
	"github.com/evstore/storefront/internal/logx"
	"github.com/evstore/storefront/internal/order"
	"github.com/evstore/storefront/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logx.New("order-service", cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	if cfg.RunMigrations {
		if err := db.Migrate(cfg.PostgresDSN); err != nil {
			log.Fatal("migrate", zap.Error(err))
		}
	}
	pool, err := db.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres", zap.Error(err))
	}
	defer pool.Close()

	var cache cart.Cache = cart.NopCache{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, cart cache disabled", zap.Error(err))
		} else {
			cache = cart.NewRedisCache(rdb)
		}
	}

	rate, _ := cfg.Tax() // validated by config.Load
	carts := cart.NewService(cart.NewPGRepo(pool), cache, log)
	orders := order.NewService(
		order.NewPGRepo(pool),
		order.NewCatalogClient(cfg.CatalogSvcBaseURL, cfg.RequestTimeout),
		order.FlatRate{Rate: rate},
		log,
	).WithCarts(carts)

	if cfg.UserSvcAddr != "" {
		conn, err := user.Dial(cfg.UserSvcAddr)
		if err != nil {
			log.Fatal("user service", zap.Error(err))
		}
		defer conn.Close()
		orders.WithUsers(user.NewClient(conn, cfg.RequestTimeout))
	}

	r := httpx.NewRouter(log)
	registerRoutes(r, carts, orders)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{Addr: cfg.OrderSvcAddr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("listening", zap.String("addr", cfg.OrderSvcAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
