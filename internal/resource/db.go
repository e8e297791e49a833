package resource

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blog-service/pkg/assert"
)

var (
	mainDB *gorm.DB
	once   sync.Once

	redisMu  sync.RWMutex
	redisCli *redis.Client
)

// SetMainDB sets the global main DB instance for this service.
// It should be called once during startup in app.Run.
func SetMainDB(db *gorm.DB) {
	assert.NotNil(db, "main db")
	once.Do(func() {
		mainDB = db
	})
}

// MainDB returns the main DB instance. It panics if not initialised.
func MainDB() *gorm.DB {
	if mainDB == nil {
		panic("MainDB not initialized; call resource.SetMainDB in app.Run first")
	}
	return mainDB
}

// SetRedis registers the optional redis client.
func SetRedis(cli *redis.Client) {
	redisMu.Lock()
	defer redisMu.Unlock()
	redisCli = cli
}

// Redis returns the redis client, or nil when redis is not configured.
func Redis() *redis.Client {
	redisMu.RLock()
	defer redisMu.RUnlock()
	return redisCli
}

// PingMainDB checks that the main DB answers within ctx.
func PingMainDB(ctx context.Context) error {
	if mainDB == nil {
		return errors.New("main db not initialized")
	}
	sqlDB, err := mainDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
