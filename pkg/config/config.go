package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	GRPC     GRPCConfig     `mapstructure:"grpc"`
	Blog     BlogConfig     `mapstructure:"blog"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	Charset         string        `mapstructure:"charset"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	LogLevel        string        `mapstructure:"log_level"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

type GRPCConfig struct {
	Port           int    `mapstructure:"port"`
	Network        string `mapstructure:"network"`
	MaxRecvMsgSize int    `mapstructure:"max_recv_msg_size"`
	MaxSendMsgSize int    `mapstructure:"max_send_msg_size"`
}

// BlogConfig 发布流程相关的业务参数。
type BlogConfig struct {
	ViewDedupWindow   time.Duration `mapstructure:"view_dedup_window"`
	TrendingWindow    time.Duration `mapstructure:"trending_window"`
	TrendingCacheTTL  time.Duration `mapstructure:"trending_cache_ttl"`
	NotifyConcurrency int           `mapstructure:"notify_concurrency"`
	AnalyticsDays     int           `mapstructure:"analytics_days"`
	DefaultListLimit  int           `mapstructure:"default_list_limit"`
	MaxListLimit      int           `mapstructure:"max_list_limit"`
}

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// Load 加载配置文件。当前目录存在 .env 时先加载，便于本地覆盖。
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	// 设置环境变量前缀
	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	Normalize(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("grpc.network", "tcp")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("blog.view_dedup_window", time.Hour)
	v.SetDefault("blog.trending_window", 7*24*time.Hour)
	v.SetDefault("blog.trending_cache_ttl", time.Minute)
	v.SetDefault("blog.notify_concurrency", 8)
	v.SetDefault("blog.analytics_days", 30)
	v.SetDefault("blog.default_list_limit", 20)
	v.SetDefault("blog.max_list_limit", 100)
}

// Normalize 补全默认值。
func Normalize(c *Config) {
	b := &c.Blog
	if b.ViewDedupWindow <= 0 {
		b.ViewDedupWindow = time.Hour
	}
	if b.TrendingWindow <= 0 {
		b.TrendingWindow = 7 * 24 * time.Hour
	}
	if b.TrendingCacheTTL < 0 {
		b.TrendingCacheTTL = 0
	}
	if b.NotifyConcurrency <= 0 {
		b.NotifyConcurrency = 8
	}
	if b.AnalyticsDays <= 0 {
		b.AnalyticsDays = 30
	}
	if b.MaxListLimit <= 0 {
		b.MaxListLimit = 100
	}
	if b.DefaultListLimit <= 0 || b.DefaultListLimit > b.MaxListLimit {
		b.DefaultListLimit = 20
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.GRPC.Network == "" {
		c.GRPC.Network = "tcp"
	}
}

// Default 返回仅包含默认值的配置，主要供测试使用。
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}

// SetGlobalConfig 设置全局配置。
func SetGlobalConfig(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// GetGlobalConfig 返回全局配置，未设置时返回默认配置。
func GetGlobalConfig() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalCfg == nil {
		return Default()
	}
	return globalCfg
}

// GetDSN 构建数据库 DSN，按驱动区分格式。
func (c *DatabaseConfig) GetDSN() string {
	switch strings.ToLower(c.Driver) {
	case "postgres", "postgresql":
		sslmode := c.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host, c.Port, c.Username, c.Password, c.Database, sslmode)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
}

// GetRedisAddr 获取 Redis 地址。
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Normalized 返回补全默认值后的副本。
func (b BlogConfig) Normalized() BlogConfig {
	c := Config{Blog: b}
	Normalize(&c)
	return c.Blog
}
