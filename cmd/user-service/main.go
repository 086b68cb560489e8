package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/evstore/storefront/internal/config"
	"github.com/evstore/storefront/internal/db"
	"github.com/evstore/storefront/internal/logx"
	"github.com/evstore/storefront/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logx.New("user-service", cfg.LogLevel)
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

	lis, err := net.Listen("tcp", cfg.UserSvcListen)
	if err != nil {
		log.Fatal("listen", zap.Error(err))
	}

	srv := grpc.NewServer(grpc.UnaryInterceptor(user.UnaryLogger(log)))
	user.RegisterUserServiceServer(srv, user.NewGRPCServer(user.NewService(user.NewPGRepo(pool), log)))
	reflection.Register(srv)

	go func() {
		log.Info("listening", zap.String("addr", cfg.UserSvcListen))
		if err := srv.Serve(lis); err != nil {
			log.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	srv.GracefulStop()
}
