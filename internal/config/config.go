package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	Insight   InsightConfig   `mapstructure:"insight"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// InsightConfig 收敛洞察管线的所有可调阈值。
// 这些数值是启发式的初始值，允许运营在不改代码的情况下调整。
type InsightConfig struct {
	// 证据门控
	GlobalMinActivities int `mapstructure:"global_min_activities"`
	NarrativeMin        int `mapstructure:"narrative_min_activities"`
	MinActivityTypes    int `mapstructure:"min_activity_types"`
	MinSkillBranches    int `mapstructure:"min_skill_branches"`

	// 信号置信度分级倍数
	StrongMultiplier   float64 `mapstructure:"strong_multiplier"`
	ModerateMultiplier float64 `mapstructure:"moderate_multiplier"`

	// 技能分级断点
	AdvancedMin   float64 `mapstructure:"advanced_min"`
	ProficientMin float64 `mapstructure:"proficient_min"`
	DevelopingMin float64 `mapstructure:"developing_min"`

	// 趋势判定：最近两次得分差超过该值才视为变化
	TrendDelta float64 `mapstructure:"trend_delta"`

	// 推荐排序
	DefaultSkillScore    float64 `mapstructure:"default_skill_score"`
	WeakSignalWeight     float64 `mapstructure:"weak_signal_weight"`
	WeakSignalWindowDays int     `mapstructure:"weak_signal_window_days"`
	FocusBoostCap        float64 `mapstructure:"focus_boost_cap"`
	IntentBoost          float64 `mapstructure:"intent_boost"`

	// 派生信号视图缓存时长（分钟）
	SignalCacheMinutes int `mapstructure:"signal_cache_minutes"`
}

func setInsightDefaults() {
	viper.SetDefault("insight.global_min_activities", 10)
	viper.SetDefault("insight.narrative_min_activities", 20)
	viper.SetDefault("insight.min_activity_types", 3)
	viper.SetDefault("insight.min_skill_branches", 2)
	viper.SetDefault("insight.strong_multiplier", 1.5)
	viper.SetDefault("insight.moderate_multiplier", 1.2)
	viper.SetDefault("insight.advanced_min", 80)
	viper.SetDefault("insight.proficient_min", 60)
	viper.SetDefault("insight.developing_min", 40)
	viper.SetDefault("insight.trend_delta", 5)
	viper.SetDefault("insight.default_skill_score", 50)
	viper.SetDefault("insight.weak_signal_weight", 0.3)
	viper.SetDefault("insight.weak_signal_window_days", 14)
	viper.SetDefault("insight.focus_boost_cap", 0.20)
	viper.SetDefault("insight.intent_boost", 1.2)
	viper.SetDefault("insight.signal_cache_minutes", 15)
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("TALENT_INSIGHT")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Storage / MinIO
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	setInsightDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if err := validateInsight(&cfg.Insight); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func validateInsight(ic *InsightConfig) error {
	if ic.GlobalMinActivities < 1 {
		return fmt.Errorf("insight.global_min_activities must be >= 1, got %d", ic.GlobalMinActivities)
	}
	if ic.NarrativeMin < ic.GlobalMinActivities {
		return fmt.Errorf("insight.narrative_min_activities (%d) must not be below global_min_activities (%d)",
			ic.NarrativeMin, ic.GlobalMinActivities)
	}
	if ic.FocusBoostCap < 0 || ic.FocusBoostCap > 1 {
		return fmt.Errorf("insight.focus_boost_cap must be in [0,1], got %f", ic.FocusBoostCap)
	}
	if !(ic.DevelopingMin < ic.ProficientMin && ic.ProficientMin < ic.AdvancedMin) {
		return fmt.Errorf("insight level breakpoints must be strictly increasing")
	}
	return nil
}
