package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Logger    LoggerConfig
	Assistant AssistantConfig
	Share     ShareConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Path          string `yaml:"path"`
	MigrationsDir string `yaml:"migrations_dir"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	SecretKey       string        `yaml:"secret_key"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

// AssistantConfig configures the optional LLM assistant. An empty APIKey
// disables the assistant and static fallback content is served instead.
type AssistantConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// ShareConfig controls caching of shared-quiz lookups.
type ShareConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Path:          viper.GetString("db.path"),
			MigrationsDir: viper.GetString("db.migrations_dir"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey:       viper.GetString("jwt.secret_key"),
			AccessTokenTTL:  viper.GetDuration("jwt.access_token_ttl") * time.Minute,
			RefreshTokenTTL: viper.GetDuration("jwt.refresh_token_ttl") * time.Minute,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Assistant: AssistantConfig{
			APIKey: viper.GetString("assistant.api_key"),
			Model:  viper.GetString("assistant.model"),
		},
		Share: ShareConfig{
			CacheTTL: viper.GetDuration("share.cache_ttl") * time.Minute,
		},
	}

	// Override with environment variables if set
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.DB.Path = dbPath
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		config.JWT.SecretKey = jwtSecret
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.Assistant.APIKey = apiKey
	}

	if config.JWT.AccessTokenTTL == 0 {
		config.JWT.AccessTokenTTL = 24 * time.Hour
	}
	if config.JWT.RefreshTokenTTL == 0 {
		config.JWT.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if config.Share.CacheTTL == 0 {
		config.Share.CacheTTL = 10 * time.Minute
	}

	return config, nil
}

// GetDSN returns the sqlite DSN. Foreign keys are enforced per connection.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("file:%s?_foreign_keys=on", c.DB.Path)
}
