package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Supabase       Supabase       `mapstructure:",squash"`
	Pipeline       Pipeline       `mapstructure:",squash"`
	Cache          Cache          `mapstructure:",squash"`
	Webhook        Webhook        `mapstructure:",squash"`
	OutboxDispatch OutboxDispatch `mapstructure:",squash"`
	Realtime       Realtime       `mapstructure:",squash"`
	Archive        Archive        `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

// Supabase guarda o segredo usado para validar os access tokens emitidos pelo Supabase Auth
type Supabase struct {
	URL       string `mapstructure:"supabase_url"`
	JWTSecret string `mapstructure:"supabase_jwt_secret"`
}

type Pipeline struct {
	PointsPerMove int `mapstructure:"pipeline_points_per_move"`
}

type Cache struct {
	TTL            time.Duration `mapstructure:"cache_ttl"`
	LocalStorePath string        `mapstructure:"local_store_path"`
}

type Webhook struct {
	URL     string        `mapstructure:"automation_webhook_url"`
	Timeout time.Duration `mapstructure:"automation_webhook_timeout"`
}

type OutboxDispatch struct {
	CronSchedule      string        `mapstructure:"outbox_dispatch_cron"`
	BatchSize         int           `mapstructure:"outbox_dispatch_batch_size"`
	MaxAttempts       int           `mapstructure:"outbox_dispatch_max_attempts"`
	BaseBackoff       time.Duration `mapstructure:"outbox_dispatch_base_backoff"`
	MaxConcurrentJobs int           `mapstructure:"outbox_dispatch_max_concurrent_jobs"`
	Enabled           bool          `mapstructure:"outbox_dispatch_enabled"`
}

type Realtime struct {
	Enabled bool   `mapstructure:"realtime_enabled"`
	Channel string `mapstructure:"realtime_channel"`
}

// Archive configura o bucket S3 compatível onde as exportações são arquivadas
type Archive struct {
	Bucket          string `mapstructure:"archive_bucket"`
	Endpoint        string `mapstructure:"archive_endpoint"`
	Region          string `mapstructure:"archive_region"`
	AccessKeyID     string `mapstructure:"archive_access_key_id"`
	SecretAccessKey string `mapstructure:"archive_secret_access_key"`
	Prefix          string `mapstructure:"archive_prefix"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/postgres")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "postgres")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("SUPABASE_URL", "http://localhost:54321")
	viper.SetDefault("SUPABASE_JWT_SECRET", "super-secret-jwt-token-with-at-least-32-characters-long") // ONLY LOCAL

	viper.SetDefault("PIPELINE_POINTS_PER_MOVE", 10)

	viper.SetDefault("CACHE_TTL", "5m")                // 0 desabilita a expiração
	viper.SetDefault("LOCAL_STORE_PATH", "alsham.db") // Arquivo SQLite do armazenamento local

	viper.SetDefault("AUTOMATION_WEBHOOK_URL", "")
	viper.SetDefault("AUTOMATION_WEBHOOK_TIMEOUT", "10s")

	viper.SetDefault("OUTBOX_DISPATCH_CRON", "* * * * *") // A cada minuto
	viper.SetDefault("OUTBOX_DISPATCH_BATCH_SIZE", 50)
	viper.SetDefault("OUTBOX_DISPATCH_MAX_ATTEMPTS", 8)
	viper.SetDefault("OUTBOX_DISPATCH_BASE_BACKOFF", "30s")
	viper.SetDefault("OUTBOX_DISPATCH_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("OUTBOX_DISPATCH_ENABLED", true)

	viper.SetDefault("REALTIME_ENABLED", true)
	viper.SetDefault("REALTIME_CHANNEL", "alsham_pipeline_changes")

	viper.SetDefault("ARCHIVE_BUCKET", "")
	viper.SetDefault("ARCHIVE_ENDPOINT", "")
	viper.SetDefault("ARCHIVE_REGION", "auto")
	viper.SetDefault("ARCHIVE_ACCESS_KEY_ID", "")
	viper.SetDefault("ARCHIVE_SECRET_ACCESS_KEY", "")
	viper.SetDefault("ARCHIVE_PREFIX", "alsham/pipeline")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// BuildDSN monta a connection string do Postgres a partir das partes configuradas
func BuildDSN(db Database) string {
	dsn := fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)

	if db.SSLMode != "" {
		dsn = fmt.Sprintf("%s?sslmode=%s", dsn, db.SSLMode)
	}

	return dsn
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
