package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"taleweaver/internal/config"
	"taleweaver/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "taleweaver",
	Short: "Taleweaver - branching interactive story service",
	Long: `Taleweaver generates branching interactive stories with an LLM.
Each chapter offers continuation options; readers pick one or write their own
directive, and every choice grows a new branch of the story tree.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

// loadConfig 按 默认值 < 配置文件 < .env/环境变量 < 命令行参数 的优先级加载配置并初始化日志
func loadConfig() (*config.Config, error) {
	// 本地开发时从 .env 加载环境变量（文件不存在时忽略）
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.taleweaver")
	}

	// 环境变量设置
	viper.SetEnvPrefix("TALEWEAVER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	configFileFound := true
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		configFileFound = false
	}

	loaded := &config.Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := logger.Init(&loaded.Log); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if configFileFound {
		log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
	} else {
		log.Info().Msg("no config file found, using defaults and environment variables")
	}
	return loaded, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "120s")

	// AI
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.model", "gpt-4o-mini")
	viper.SetDefault("ai.api_key", "")
	viper.SetDefault("ai.base_url", "")
	viper.SetDefault("ai.options.max_tokens", 4096)
	viper.SetDefault("ai.options.top_p", 1.0)
	viper.SetDefault("ai.options.temperature_min", 0.8)
	viper.SetDefault("ai.options.temperature_max", 1.2)

	// Story
	viper.SetDefault("story.language", "German")

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")

	// Storage
	viper.SetDefault("storage.driver", config.StorageMemory)

	// MongoDB
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "taleweaver")
	viper.SetDefault("mongo.max_pool_size", 100)
	viper.SetDefault("mongo.min_pool_size", 10)

	// PostgreSQL
	viper.SetDefault("postgres.dsn", "")
	viper.SetDefault("postgres.max_conns", 10)
	viper.SetDefault("postgres.migrate_on_start", true)

	// Redis
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Lock
	viper.SetDefault("lock.driver", config.LockMemory)
	viper.SetDefault("lock.ttl", "2m")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
