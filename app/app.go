package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/ebook-service/config"
	"github.com/Astemirdum/ebook-service/internal/handler"
	"github.com/Astemirdum/ebook-service/internal/media"
	"github.com/Astemirdum/ebook-service/internal/repository"
	"github.com/Astemirdum/ebook-service/internal/server"
	"github.com/Astemirdum/ebook-service/internal/service"
	"github.com/Astemirdum/ebook-service/migrations"
	"github.com/Astemirdum/ebook-service/pkg/kafka"
	"github.com/Astemirdum/ebook-service/pkg/logger"
	"github.com/Astemirdum/ebook-service/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "ebook")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	catalogRepo, err := repository.NewCatalogRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}
	borrowRepo, err := repository.NewBorrowRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}
	userRepo, err := repository.NewUserRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}
	statsRepo, err := repository.NewStatsRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	store, err := media.NewStore(cfg.Media.Root, log)
	if err != nil {
		log.Fatal("media store", zap.Error(err))
	}

	consumeCtx, consumeCancel := context.WithCancel(context.Background())
	defer consumeCancel()

	statsSvc := service.NewStatsService(statsRepo, log)

	var enqueuer service.Enqueuer
	if len(cfg.Kafka.Addrs) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		enqueuer = service.NewEnqueuer(producer)

		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.StatsConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		go func() {
			if err := kafka.Consume(consumeCtx, consumer,
				handler.NewConsumer(statsSvc.RecordEvent, log), kafka.BorrowEventsTopic); err != nil && consumeCtx.Err() == nil {
				log.Error("kafka.Consume", zap.Error(err))
			}
		}()
	} else {
		log.Warn("kafka is not configured, borrow events are not published")
	}

	catalogSvc := service.NewCatalogService(catalogRepo, store, log)
	borrowSvc := service.NewBorrowService(borrowRepo, enqueuer, log)
	authSvc := service.NewAuthService(userRepo, log)

	h := handler.New(catalogSvc, borrowSvc, authSvc, statsSvc, store, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	consumeCancel()
	db.Close()
	log.Info("Graceful shutdown finished")
}
