package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	AI       AIConfig       `mapstructure:"ai"`
	Story    StoryConfig    `mapstructure:"story"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Lock     LockConfig     `mapstructure:"lock"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig AI 服务配置
type AIConfig struct {
	Provider string          `mapstructure:"provider"` // openai / azure / ark
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig AI 模型参数
// 说明：temperature 由故事的创造度（1-9）线性映射到 [TemperatureMin, TemperatureMax]
type AIOptionsConfig struct {
	MaxTokens      int     `mapstructure:"max_tokens"`
	TopP           float64 `mapstructure:"top_p"`
	TemperatureMin float64 `mapstructure:"temperature_min"`
	TemperatureMax float64 `mapstructure:"temperature_max"`
}

// StoryConfig 故事生成配置
type StoryConfig struct {
	Language string `mapstructure:"language"` // 章节正文使用的语言
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// StorageConfig 存储后端配置
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory / mongo / postgres
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// PostgresConfig PostgreSQL 配置
type PostgresConfig struct {
	DSN            string `mapstructure:"dsn"`
	MaxConns       int32  `mapstructure:"max_conns"`
	MigrateOnStart bool   `mapstructure:"migrate_on_start"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LockConfig 续写锁配置
type LockConfig struct {
	Driver string        `mapstructure:"driver"` // memory / redis
	TTL    time.Duration `mapstructure:"ttl"`    // redis 锁的过期时间
}

// 存储驱动
const (
	StorageMemory   = "memory"
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

// 锁驱动
const (
	LockMemory = "memory"
	LockRedis  = "redis"
)

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("mongo storage requires mongo.uri and mongo.database")
		}
	case StoragePostgres:
		if c.Postgres.DSN == "" {
			return errors.New("postgres storage requires postgres.dsn")
		}
	default:
		return fmt.Errorf("invalid storage driver %q, must be memory/mongo/postgres", c.Storage.Driver)
	}

	switch c.Lock.Driver {
	case LockMemory:
	case LockRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis lock requires redis.addr")
		}
	default:
		return fmt.Errorf("invalid lock driver %q, must be memory/redis", c.Lock.Driver)
	}

	if c.AI.Options.TemperatureMin > c.AI.Options.TemperatureMax {
		return errors.New("ai.options.temperature_min must not exceed temperature_max")
	}

	return nil
}
