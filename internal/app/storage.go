package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/psy_practice_bot/internal/config"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository/memory"
	"github.com/Freeeeeet/psy_practice_bot/internal/scratch"
	"github.com/Freeeeeet/psy_practice_bot/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Storage набор хранилищ, выбранный по конфигурации
type Storage struct {
	Appointments service.AppointmentStore
	Patients     service.PatientStore
	Scratch      scratch.Store

	pool   *pgxpool.Pool
	redis  *redis.Client
	logger *zap.Logger
}

// OpenStorage подключает PostgreSQL и Redis, если они заданы, иначе берёт хранилища в памяти.
// Ошибка PostgreSQL фатальна, без Redis черновики хранятся в памяти.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	s := &Storage{logger: logger}

	if cfg.UsePostgres() {
		if err := s.openPostgres(ctx, cfg); err != nil {
			s.Close()
			return nil, err
		}
	} else {
		logger.Info("💾 DB_DSN is not set, using in-memory storage")
		s.Appointments = memory.NewAppointmentRepository()
		s.Patients = memory.NewPatientRepository()
	}

	if cfg.UseRedis() {
		client, err := scratch.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// Черновики не критичны: работаем без Redis
			logger.Warn("⚠️  Redis unavailable, scratch falls back to memory",
				zap.String("addr", cfg.RedisAddr),
				zap.Error(err))
		} else {
			s.redis = client
			s.Scratch = scratch.NewRedisStore(client, scratch.DefaultTTL)
			logger.Info("✅ Connected to Redis", zap.String("addr", cfg.RedisAddr))
		}
	}
	if s.Scratch == nil {
		s.Scratch = scratch.NewMemoryStore()
	}

	return s, nil
}

func (s *Storage) openPostgres(ctx context.Context, cfg *config.Config) error {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	s.pool = pool

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	s.logger.Info("✅ Connected to PostgreSQL")

	migrator, err := NewMigrator(pool, cfg.MigrationsPath, s.logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		return err
	}

	s.Appointments = repository.NewAppointmentRepository(pool)
	s.Patients = repository.NewPatientRepository(pool)
	return nil
}

// Health проверяет внешние зависимости
func (s *Storage) Health(ctx context.Context) error {
	if s.pool != nil {
		if err := s.pool.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func (s *Storage) Close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
