package config

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type DatabaseConfig struct {
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	EnsureSchema bool   `yaml:"ensure_schema"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Client    *s3.Client
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Local     bool   `yaml:"local"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	KeyPrefix string `yaml:"key_prefix"`
}

type JWTConfig struct {
	SecretKey string `yaml:"secret_key"`
	Issuer    string `yaml:"issuer"`
}

// ShareConfig : публичные ссылки, max_ttl не больше 365 дней
type ShareConfig struct {
	BaseURL    string        `yaml:"base_url"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
	MaxTTL     time.Duration `yaml:"max_ttl"`
	TokenSize  int           `yaml:"token_size"`
}

type EngineConfig struct {
	CollaboratorTimeout time.Duration `yaml:"collaborator_timeout"`
	AppendRetries       int           `yaml:"append_retries"`
	DiffMaxBytes        int           `yaml:"diff_max_bytes"`
	DiffContext         int           `yaml:"diff_context"`
	MaxUploadBytes      int64         `yaml:"max_upload_bytes"`
}

type TTL struct {
	Cache        time.Duration `yaml:"cache"`
	PresignedGet time.Duration `yaml:"presigned_get"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

const maxShareTTL = 365 * 24 * time.Hour

func (c *AppConfig) applyDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if c.Share.DefaultTTL == 0 {
		c.Share.DefaultTTL = 7 * 24 * time.Hour
	}
	if c.Share.MaxTTL == 0 {
		c.Share.MaxTTL = maxShareTTL
	}
	if c.Share.TokenSize == 0 {
		c.Share.TokenSize = 32
	}
	if c.Engine.CollaboratorTimeout == 0 {
		c.Engine.CollaboratorTimeout = 10 * time.Second
	}
	if c.Engine.AppendRetries == 0 {
		c.Engine.AppendRetries = 3
	}
	if c.Engine.DiffMaxBytes == 0 {
		c.Engine.DiffMaxBytes = 4 << 20
	}
	if c.Engine.DiffContext == 0 {
		c.Engine.DiffContext = 3
	}
	if c.Engine.MaxUploadBytes == 0 {
		c.Engine.MaxUploadBytes = 64 << 20
	}
	if c.TTL.Cache == 0 {
		c.TTL.Cache = 5 * time.Minute
	}
	if c.TTL.PresignedGet == 0 {
		c.TTL.PresignedGet = 15 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "document-versioning-server"
	}
}

// Validate : проверка обязательных полей
func (c *AppConfig) Validate() error {
	switch {
	case c.DatabaseConfig.DSN == "":
		return fmt.Errorf("не задан databaseConfig.dsn")
	case c.S3Config.Bucket == "":
		return fmt.Errorf("не задан s3Config.bucket")
	case c.JWT.SecretKey == "":
		return fmt.Errorf("не задан jwt.secret_key")
	case c.Share.MaxTTL <= 0 || c.Share.MaxTTL > maxShareTTL:
		return fmt.Errorf("share.max_ttl должен быть в пределах (0, %s]", maxShareTTL)
	case c.Share.DefaultTTL <= 0 || c.Share.DefaultTTL > c.Share.MaxTTL:
		return fmt.Errorf("share.default_ttl должен быть в пределах (0, share.max_ttl]")
	case c.Engine.AppendRetries < 1:
		return fmt.Errorf("engine.append_retries должен быть не меньше 1")
	}
	return nil
}
