package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	USDA        USDAConfig      `mapstructure:"usda"`
	Groq        GroqConfig      `mapstructure:"groq"`
	Nutrition   NutritionConfig `mapstructure:"nutrition"`
	Storage     StorageConfig   `mapstructure:"storage"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// USDAConfig USDA FoodData Central 配置
type USDAConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	DataType string        `mapstructure:"data_type"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// GroqConfig Groq（OpenAI 相容）配置
type GroqConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// NutritionConfig 營養解析配置
// CacheTTL 為正向快取存活時間，NegativeCacheTTL 為查無結果的負向快取存活時間
type NutritionConfig struct {
	Source           string        `mapstructure:"source"`        // usda 或 catalog
	CacheBackend     string        `mapstructure:"cache_backend"` // memory 或 redis
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
	NegativeCacheTTL time.Duration `mapstructure:"negative_cache_ttl"`
	RedisAddr        string        `mapstructure:"redis_addr"`
}

// StorageConfig 儲存配置
type StorageConfig struct {
	SQLitePath string `mapstructure:"sqlite_path"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（允許不存在）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("usda.api_key", "USDA_API_KEY")
	viper.BindEnv("groq.api_key", "GROQ_API_KEY")
	viper.BindEnv("groq.model", "GROQ_MODEL")
	viper.BindEnv("nutrition.source", "NUTRITION_SOURCE")
	viper.BindEnv("nutrition.cache_backend", "NUTRITION_CACHE_BACKEND")
	viper.BindEnv("nutrition.cache_ttl", "NUTRITION_CACHE_TTL")
	viper.BindEnv("nutrition.negative_cache_ttl", "NUTRITION_NEGATIVE_CACHE_TTL")
	viper.BindEnv("nutrition.redis_addr", "NUTRITION_REDIS_ADDR")
	viper.BindEnv("storage.sqlite_path", "SQLITE_PATH")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration",
		"usda_api_key:", maskAPIKey(viper.GetString("usda.api_key")),
		"groq_model:", viper.GetString("groq.model"))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-nutrition")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// USDA 設定
	viper.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc/v1")
	viper.SetDefault("usda.data_type", "Foundation")
	viper.SetDefault("usda.timeout", "15s")

	// Groq 設定
	viper.SetDefault("groq.model", "llama-3.1-8b-instant")
	viper.SetDefault("groq.max_tokens", 800)
	viper.SetDefault("groq.timeout", "60s")

	// 營養解析設定
	viper.SetDefault("nutrition.source", "usda")
	viper.SetDefault("nutrition.cache_backend", "memory")
	viper.SetDefault("nutrition.cache_ttl", "24h")
	viper.SetDefault("nutrition.negative_cache_ttl", "10m")
	viper.SetDefault("nutrition.redis_addr", "localhost:6379")

	// 儲存設定
	viper.SetDefault("storage.sqlite_path", "recipe-nutrition.db")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 去重窗口預設
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證營養解析設定
	switch config.Nutrition.Source {
	case "usda", "catalog":
	default:
		return fmt.Errorf("invalid nutrition source: %s", config.Nutrition.Source)
	}
	switch config.Nutrition.CacheBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid nutrition cache backend: %s", config.Nutrition.CacheBackend)
	}
	if config.Nutrition.CacheTTL <= 0 {
		return fmt.Errorf("invalid nutrition cache ttl")
	}
	if config.Nutrition.NegativeCacheTTL <= 0 {
		return fmt.Errorf("invalid nutrition negative cache ttl")
	}

	// 驗證儲存設定
	if config.Storage.SQLitePath == "" {
		return fmt.Errorf("sqlite path is required")
	}

	return nil
}
