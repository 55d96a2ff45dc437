package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
	Engine   EngineConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	EnableHTTP2  bool // h2c when no TLS material is configured
	TLSCertFile  string
	TLSKeyFile   string
}

// DatabaseConfig selects and configures the storage backend
type DatabaseConfig struct {
	Type     string // "memory", "postgres", "mongodb"
	Postgres PostgresConfig
	MongoDB  MongoDBConfig
}

// PostgresConfig holds PostgreSQL configuration
type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	AutoMigrate     bool
}

// MongoDBConfig holds MongoDB configuration
type MongoDBConfig struct {
	URI             string
	Database        string
	MaxPoolSize     int
	MinPoolSize     int
	MaxConnIdleTime time.Duration
	ServerTimeout   time.Duration
	SocketTimeout   time.Duration
	ReadPreference  string
	WriteConcern    string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string // "debug", "info", "warn", "error"
	Format     string // "json", "text"
	OutputPath string // "stdout", "stderr", or file path
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// EngineConfig tunes the compatibility engine and its seed data
type EngineConfig struct {
	HeavyLensThresholdKg float64
	AdapterFile          string // optional YAML list of extra adapters
	CatalogSeedFile      string // optional YAML catalog loaded into the memory backend
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/kitcheck")
	}

	// Read environment variables
	v.SetEnvPrefix("KITCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; using defaults and environment variables
	}

	// Unmarshal config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch ports.DatabaseType(c.Database.Type) {
	case ports.DatabaseTypeMemory, ports.DatabaseTypePostgreSQL, ports.DatabaseTypeMongoDB:
	default:
		return fmt.Errorf("unsupported database type: %q", c.Database.Type)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if c.Engine.HeavyLensThresholdKg < 0 {
		return fmt.Errorf("engine heavyLensThresholdKg cannot be negative")
	}
	if (c.Server.TLSCertFile == "") != (c.Server.TLSKeyFile == "") {
		return fmt.Errorf("server tlsCertFile and tlsKeyFile must be set together")
	}
	return nil
}

// DatabaseAdapterConfig converts the loaded settings into the adapter factory's config
func (c *Config) DatabaseAdapterConfig() *ports.DatabaseConfig {
	dc := &ports.DatabaseConfig{Type: ports.DatabaseType(c.Database.Type)}
	switch dc.Type {
	case ports.DatabaseTypePostgreSQL:
		p := c.Database.Postgres
		dc.PostgresConfig = &ports.PostgresConfig{
			Host:            p.Host,
			Port:            p.Port,
			User:            p.User,
			Password:        p.Password,
			Database:        p.Database,
			SSLMode:         p.SSLMode,
			MaxOpenConns:    p.MaxOpenConns,
			MaxIdleConns:    p.MaxIdleConns,
			ConnMaxLifetime: int(p.ConnMaxLifetime.Seconds()),
			ConnMaxIdleTime: int(p.ConnMaxIdleTime.Seconds()),
		}
	case ports.DatabaseTypeMongoDB:
		m := c.Database.MongoDB
		dc.MongoDBConfig = &ports.MongoDBConfig{
			URI:             m.URI,
			Database:        m.Database,
			MaxPoolSize:     m.MaxPoolSize,
			MinPoolSize:     m.MinPoolSize,
			MaxConnIdleTime: int(m.MaxConnIdleTime.Seconds()),
			ServerTimeout:   int(m.ServerTimeout.Seconds()),
			SocketTimeout:   int(m.SocketTimeout.Seconds()),
			ReadPreference:  m.ReadPreference,
			WriteConcern:    m.WriteConcern,
		}
	}
	return dc
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "30s")
	v.SetDefault("server.writeTimeout", "30s")
	v.SetDefault("server.idleTimeout", "120s")
	v.SetDefault("server.enableHTTP2", false)

	// Database defaults
	v.SetDefault("database.type", "memory")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "kitcheck")
	v.SetDefault("database.postgres.password", "kitcheck")
	v.SetDefault("database.postgres.database", "kitcheck")
	v.SetDefault("database.postgres.sslMode", "disable")
	v.SetDefault("database.postgres.maxOpenConns", 25)
	v.SetDefault("database.postgres.maxIdleConns", 5)
	v.SetDefault("database.postgres.connMaxLifetime", "5m")
	v.SetDefault("database.postgres.connMaxIdleTime", "10m")
	v.SetDefault("database.postgres.autoMigrate", true)
	v.SetDefault("database.mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("database.mongodb.database", "kitcheck")
	v.SetDefault("database.mongodb.maxPoolSize", 100)
	v.SetDefault("database.mongodb.minPoolSize", 10)
	v.SetDefault("database.mongodb.maxConnIdleTime", "10m")
	v.SetDefault("database.mongodb.serverTimeout", "30s")
	v.SetDefault("database.mongodb.socketTimeout", "30s")
	v.SetDefault("database.mongodb.readPreference", "primary")
	v.SetDefault("database.mongodb.writeConcern", "majority")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputPath", "stdout")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Engine defaults
	v.SetDefault("engine.heavyLensThresholdKg", 2.0)
	v.SetDefault("engine.adapterFile", "")
	v.SetDefault("engine.catalogSeedFile", "")
}
