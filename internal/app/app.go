package app

import (
	"database/sql"
	"errors"

	"hr-service/internal/funcionario"
	"hr-service/internal/messaging/kafka/producer"
	"hr-service/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectRetries = 5

type infrastructure struct {
	db        *sql.DB
	repo      funcionario.Repository
	redis     *redis.Client
	publisher funcionario.EventPublisher
	closers   []func() error
}

// BuildApp connects the configured backends and mounts every module on
// router. The returned close func releases connections in reverse order.
func BuildApp(router *gin.Engine, cfg Config, logger *zap.Logger) (func(), error) {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("app")

	infra := &infrastructure{}
	closeAll := func() {
		for i := len(infra.closers) - 1; i >= 0; i-- {
			if err := infra.closers[i](); err != nil {
				log.Warn("close resource failed", zap.Error(err))
			}
		}
	}

	if err := infra.connectStore(cfg, logger); err != nil {
		closeAll()
		return nil, err
	}
	if err := infra.connectRedis(cfg, logger); err != nil {
		closeAll()
		return nil, err
	}
	if err := infra.connectPublisher(cfg, logger); err != nil {
		closeAll()
		return nil, err
	}

	if err := registerModules(router, cfg, infra, logger); err != nil {
		closeAll()
		return nil, err
	}

	log.Info("modules registered",
		zap.String("store", cfg.StoreDriver),
		zap.String("publisher", cfg.EventPublisher),
		zap.Bool("idempotency", infra.redis != nil),
	)
	return closeAll, nil
}

func (i *infrastructure) connectStore(cfg Config, logger *zap.Logger) error {
	switch cfg.StoreDriver {
	case StoreDriverMemory:
		i.repo = funcionario.NewMemoryRepository()
		logger.Warn("using in-memory funcionario store; data is lost on restart")
		return nil
	case StoreDriverPostgres:
		gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, connectRetries, logger)
		if err != nil {
			return err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		i.db = sqlDB
		i.repo = funcionario.NewRepository(gormDB)
		i.closers = append(i.closers, sqlDB.Close)
		return nil
	default:
		return errors.New("unsupported store driver: " + cfg.StoreDriver)
	}
}

func (i *infrastructure) connectRedis(cfg Config, logger *zap.Logger) error {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries, logger)
	if err != nil {
		return err
	}
	i.redis = rdb
	i.closers = append(i.closers, rdb.Close)
	return nil
}

func (i *infrastructure) connectPublisher(cfg Config, logger *zap.Logger) error {
	switch cfg.EventPublisher {
	case PublisherNone:
		i.publisher = funcionario.NewNoopEventPublisher()
		logger.Warn("event publishing disabled")
	case PublisherKafkaGo:
		writer := connection.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaAsync, logger)
		p := producer.NewKafkaPublisher(writer, cfg.EventsTopic, logger)
		i.publisher = p
		i.closers = append(i.closers, p.Close)
	case PublisherSarama:
		sp, err := connection.NewSaramaSyncProducerWithRetry(cfg.KafkaBrokers, connectRetries, logger)
		if err != nil {
			return err
		}
		p := producer.NewSaramaPublisher(sp, cfg.EventsTopic, logger)
		i.publisher = p
		i.closers = append(i.closers, p.Close)
	default:
		return errors.New("unsupported event publisher: " + cfg.EventPublisher)
	}
	return nil
}
