package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath       = ".env"
	DefaultSecret = "SecRetKey"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	FilesLocal = "local"
	FilesS3    = "s3"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Auth   Auth
	Files  Files
}

type DB struct {
	Driver      string `env:"STORAGE_DRIVER"`
	DatabaseURI string `env:"DATABASE_URI"`
	SQLitePath  string `env:"SQLITE_PATH"`
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	PublicURL       string        `env:"PUBLIC_URL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type Auth struct {
	Secret   string        `env:"JWT_SECRET"`
	TokenTTL time.Duration `env:"TOKEN_TTL"`
	Header   string        `env:"AUTH_HEADER"`
}

type Files struct {
	Driver         string `env:"FILES_DRIVER"`
	Root           string `env:"UPLOAD_ROOT"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES"`
	S3             S3
}

type S3 struct {
	Bucket       string        `env:"S3_BUCKET"`
	Region       string        `env:"S3_REGION"`
	Endpoint     string        `env:"S3_ENDPOINT"`
	AccessKey    string        `env:"S3_ACCESS_KEY"`
	SecretKey    string        `env:"S3_SECRET_KEY"`
	UsePathStyle bool          `env:"S3_PATH_STYLE"`
	PresignTTL   time.Duration `env:"S3_PRESIGN_TTL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8000")
	v.SetDefault("public_url", "http://localhost:8000")
	v.SetDefault("shutdown_timeout", "10s")

	v.SetDefault("storage_driver", DriverPostgres)
	v.SetDefault("sqlite_path", "nodex.db")

	v.SetDefault("jwt_secret", DefaultSecret)
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("auth_header", "auth")

	v.SetDefault("files_driver", FilesLocal)
	v.SetDefault("upload_root", ".")
	v.SetDefault("max_upload_bytes", 10<<20)
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_presign_ttl", "15m")
}

// Load собирает конфигурацию из .env, переменных окружения и, если указан, файла конфигурации.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envPath, err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: DB{
			Driver:      v.GetString("storage_driver"),
			DatabaseURI: v.GetString("database_uri"),
			SQLitePath:  v.GetString("sqlite_path"),
		},
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			PublicURL:       v.GetString("public_url"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Auth: Auth{
			Secret:   v.GetString("jwt_secret"),
			TokenTTL: v.GetDuration("token_ttl"),
			Header:   v.GetString("auth_header"),
		},
		Files: Files{
			Driver:         v.GetString("files_driver"),
			Root:           v.GetString("upload_root"),
			MaxUploadBytes: v.GetInt64("max_upload_bytes"),
			S3: S3{
				Bucket:       v.GetString("s3_bucket"),
				Region:       v.GetString("s3_region"),
				Endpoint:     v.GetString("s3_endpoint"),
				AccessKey:    v.GetString("s3_access_key"),
				SecretKey:    v.GetString("s3_secret_key"),
				UsePathStyle: v.GetBool("s3_path_style"),
				PresignTTL:   v.GetDuration("s3_presign_ttl"),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad как Load, но паникует при ошибке. Используется в main.
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown APP_ENV %q", c.Env)
	}

	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.DatabaseURI == "" {
			return errors.New("DATABASE_URI is required for the postgres driver")
		}
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.DB.Driver)
	}

	switch c.Files.Driver {
	case FilesLocal:
	case FilesS3:
		if c.Files.S3.Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 files driver")
		}
	default:
		return fmt.Errorf("unknown FILES_DRIVER %q", c.Files.Driver)
	}

	if c.Auth.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Env == EnvProd && c.Auth.Secret == DefaultSecret {
		return errors.New("JWT_SECRET must be set in prod")
	}
	if c.Auth.TokenTTL < 0 {
		return errors.New("TOKEN_TTL must not be negative")
	}

	return nil
}
