// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Storage   StorageConfig
	Drive     DriveConfig
	Ingest    IngestConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled           bool
	RedisURL          string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	ReorderTTLSeconds int
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type DriveConfig struct {
	CredentialsJSON string
	FolderPath      string
	PollSeconds     int
	DownloadDir     string
}

type IngestConfig struct {
	ChunkSize int
}

type AnalyticsConfig struct {
	LeadTimeDays  int
	ServiceLevelZ float64
	UrgentGapDays float64
	ReviewGapDays float64
	ZeroFillDays  bool
	StockLowQty   float64
	StockHighQty  float64
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "joogo")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_REORDER_TTL_SECONDS", 60)
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "joogo-uploads")
		viper.SetDefault("STORAGE_REGION", "us-east-1")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("GOOGLE_DRIVE_CREDENTIALS_JSON", "")
		viper.SetDefault("GOOGLE_DRIVE_FOLDER_PATH", "")
		viper.SetDefault("GOOGLE_DRIVE_POLL_SECONDS", 300)
		viper.SetDefault("GOOGLE_DRIVE_DOWNLOAD_DIR", "./data/downloads")
		viper.SetDefault("INGEST_CHUNK_SIZE", 2000)
		viper.SetDefault("ANALYTICS_LEAD_TIME_DAYS", 7)
		viper.SetDefault("ANALYTICS_SERVICE_LEVEL_Z", 1.65)
		viper.SetDefault("ANALYTICS_URGENT_GAP_DAYS", 3.0)
		viper.SetDefault("ANALYTICS_REVIEW_GAP_DAYS", 7.0)
		viper.SetDefault("ANALYTICS_ZERO_FILL_DAYS", false)
		viper.SetDefault("ANALYTICS_STOCK_LOW_QTY", 10.0)
		viper.SetDefault("ANALYTICS_STOCK_HIGH_QTY", 100.0)

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:           viper.GetBool("CACHE_ENABLED"),
				RedisURL:          viper.GetString("REDIS_URL"),
				RedisHost:         viper.GetString("REDIS_HOST"),
				RedisPort:         viper.GetString("REDIS_PORT"),
				RedisPassword:     viper.GetString("REDIS_PASSWORD"),
				RedisDB:           viper.GetInt("REDIS_DB"),
				ReorderTTLSeconds: viper.GetInt("CACHE_REORDER_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
			Drive: DriveConfig{
				CredentialsJSON: viper.GetString("GOOGLE_DRIVE_CREDENTIALS_JSON"),
				FolderPath:      viper.GetString("GOOGLE_DRIVE_FOLDER_PATH"),
				PollSeconds:     viper.GetInt("GOOGLE_DRIVE_POLL_SECONDS"),
				DownloadDir:     viper.GetString("GOOGLE_DRIVE_DOWNLOAD_DIR"),
			},
			Ingest: IngestConfig{
				ChunkSize: viper.GetInt("INGEST_CHUNK_SIZE"),
			},
			Analytics: AnalyticsConfig{
				LeadTimeDays:  viper.GetInt("ANALYTICS_LEAD_TIME_DAYS"),
				ServiceLevelZ: viper.GetFloat64("ANALYTICS_SERVICE_LEVEL_Z"),
				UrgentGapDays: viper.GetFloat64("ANALYTICS_URGENT_GAP_DAYS"),
				ReviewGapDays: viper.GetFloat64("ANALYTICS_REVIEW_GAP_DAYS"),
				ZeroFillDays:  viper.GetBool("ANALYTICS_ZERO_FILL_DAYS"),
				StockLowQty:   viper.GetFloat64("ANALYTICS_STOCK_LOW_QTY"),
				StockHighQty:  viper.GetFloat64("ANALYTICS_STOCK_HIGH_QTY"),
			},
		}
	})

	return instance
}
