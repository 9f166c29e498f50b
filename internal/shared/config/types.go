package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Timezone       string   `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the gorm dialector. Driver "sqlite" reads Database as a
// file path (":memory:" allowed); "mysql" builds a TCP DSN.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Database
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// PayOSConfig holds the merchant credentials for the hosted checkout.
// Gateway "mock" swaps in the in-process gateway for local runs.
type PayOSConfig struct {
	Gateway     string        `mapstructure:"gateway"`
	ClientID    string        `mapstructure:"client_id"`
	APIKey      string        `mapstructure:"api_key"`
	ChecksumKey string        `mapstructure:"checksum_key"`
	BaseURL     string        `mapstructure:"base_url"`
	ReturnURL   string        `mapstructure:"return_url"`
	CancelURL   string        `mapstructure:"cancel_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type SubscriptionConfig struct {
	GracePeriodDays     int           `mapstructure:"grace_period_days"`
	ExpiryCheckInterval time.Duration `mapstructure:"expiry_check_interval"`
	ExpiryBatchSize     int           `mapstructure:"expiry_batch_size"`
	AccessCacheTTL      time.Duration `mapstructure:"access_cache_ttl"`
	BootstrapRoutes     []string      `mapstructure:"bootstrap_routes"`
	PlansFile           string        `mapstructure:"plans_file"`
}

// GracePeriod converts the configured day count into a duration.
func (s *SubscriptionConfig) GracePeriod() time.Duration {
	return time.Duration(s.GracePeriodDays) * 24 * time.Hour
}
