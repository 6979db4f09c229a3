// internal/infrastructure/cache/redis/redis_service.go
package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"entry-zone-bot/internal/infrastructure/config"
	"entry-zone-bot/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// RedisService сервис для работы с Redis
type RedisService struct {
	mu     sync.RWMutex
	config config.RedisConfig
	client *redis.Client
	state  ServiceState
}

// ServiceState состояние сервиса
type ServiceState string

const (
	StateStopped  ServiceState = "stopped"
	StateStarting ServiceState = "starting"
	StateRunning  ServiceState = "running"
	StateStopping ServiceState = "stopping"
	StateError    ServiceState = "error"
)

// NewRedisService создает новый Redis сервис
func NewRedisService(cfg config.RedisConfig) *RedisService {
	return &RedisService{
		config: cfg,
		state:  StateStopped,
	}
}

// Start подключается к Redis и проверяет соединение
func (rs *RedisService) Start(ctx context.Context) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.state == StateRunning {
		return fmt.Errorf("Redis service already running")
	}

	logger.Info("🔄 Starting Redis service...")
	rs.state = StateStarting

	options := &redis.Options{
		Addr:        fmt.Sprintf("%s:%d", rs.config.Host, rs.config.Port),
		Password:    rs.config.Password,
		DB:          rs.config.DB,
		PoolSize:    rs.config.PoolSize,
		DialTimeout: rs.config.DialTimeout,
	}
	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	logger.Info("📡 Connecting to Redis: %s (DB: %d)", options.Addr, rs.config.DB)
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		rs.state = StateError
		logger.Error("❌ Failed to connect to Redis: %v (address: %s)", err, options.Addr)
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	rs.client = client
	rs.state = StateRunning
	logger.Info("✅ Successfully connected to Redis")
	return nil
}

// Stop закрывает клиент
func (rs *RedisService) Stop() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.state != StateRunning {
		return fmt.Errorf("Redis service is not running")
	}

	logger.Info("🛑 Stopping Redis service...")
	rs.state = StateStopping

	if err := rs.client.Close(); err != nil {
		rs.state = StateError
		logger.Error("❌ Failed to close Redis client: %v", err)
		return fmt.Errorf("failed to close Redis client: %w", err)
	}

	rs.client = nil
	rs.state = StateStopped
	logger.Info("✅ Redis service stopped")
	return nil
}

// GetClient возвращает клиент Redis (nil до Start)
func (rs *RedisService) GetClient() *redis.Client {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.client
}

// State возвращает состояние сервиса
func (rs *RedisService) State() ServiceState {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.state
}

// HealthCheck проверяет здоровье Redis
func (rs *RedisService) HealthCheck(ctx context.Context) bool {
	client := rs.GetClient()
	if client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("⚠️ Redis health check failed: %v", err)
		return false
	}
	return true
}

// StateStore хранилище флага активности поверх клиента сервиса
func (rs *RedisService) StateStore() *StateStore {
	client := rs.GetClient()
	if client == nil {
		return nil
	}
	return NewStateStore(client, rs.config.KeyPrefix)
}

// Name возвращает имя сервиса
func (rs *RedisService) Name() string {
	return "RedisService"
}
