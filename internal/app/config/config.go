package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/magiconair/properties"

	"clinica-core/internal/domain"
	"clinica-core/internal/infrastructure/database/postgres"
)

// PropertiesFile es el nombre fijo del archivo de conexión. Se busca en
// $CLINICA_CONFIG_DIR y luego en el directorio de trabajo.
const PropertiesFile = "db.properties"

// Config es un objeto de valor de sólo lectura, cargado una única vez
// por proceso.
type Config struct {
	Environment string
	Database    DatabaseConfig
	Logging     LoggingConfig
}

// DatabaseConfig combina las claves de db.properties con los ajustes de
// pool tomados del entorno.
type DatabaseConfig struct {
	URL      string
	User     string
	Password string

	MaxConnections int32
	MinConnections int32
	ConnectionTTL  time.Duration
	ConnectionIdle time.Duration
	ConnectTimeout time.Duration
}

// LoggingConfig configuración de logging
type LoggingConfig struct {
	Level string
}

// NewConfig carga .env (opcional), el entorno y db.properties. La
// ausencia o ilegibilidad de db.properties es un ConfigurationError
// fatal; el resto de claves tiene valores por defecto.
func NewConfig() (*Config, error) {
	// Archivo .env opcional, sólo para desarrollo.
	_ = godotenv.Load(".env")

	config := &Config{}

	config.Environment = getEnv("APP_ENV", "development")

	props, err := loadProperties()
	if err != nil {
		return nil, err
	}

	url, ok := props.Get("db.url")
	if !ok || url == "" {
		return nil, domain.NewConfigurationError("db.properties no define db.url", nil)
	}

	config.Database = DatabaseConfig{
		URL:      url,
		User:     props.GetString("db.user", ""),
		Password: props.GetString("db.password", ""),

		MaxConnections: int32(getEnvInt("DB_MAX_CONNECTIONS", 10)),
		MinConnections: int32(getEnvInt("DB_MIN_CONNECTIONS", 1)),
		ConnectionTTL:  getEnvDuration("DB_CONNECTION_TTL", 300) * time.Second,
		ConnectionIdle: getEnvDuration("DB_CONNECTION_IDLE", 30) * time.Second,
		ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 10) * time.Second,
	}

	config.Logging = LoggingConfig{
		Level: getEnv("LOG_LEVEL", "info"),
	}

	return config, nil
}

// NewPostgresConfig adapta la configuración cargada al proveedor de
// conexiones.
func NewPostgresConfig(cfg *Config) *postgres.DatabaseConfig {
	return &postgres.DatabaseConfig{
		URL:      cfg.Database.URL,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,

		MaxConns:        cfg.Database.MaxConnections,
		MinConns:        cfg.Database.MinConnections,
		MaxConnLifetime: cfg.Database.ConnectionTTL,
		MaxConnIdleTime: cfg.Database.ConnectionIdle,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	}
}

func loadProperties() (*properties.Properties, error) {
	var candidates []string
	if dir := os.Getenv("CLINICA_CONFIG_DIR"); dir != "" {
		candidates = append(candidates, filepath.Join(dir, PropertiesFile))
	}
	candidates = append(candidates, PropertiesFile)

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		props, err := properties.LoadFile(path, properties.UTF8)
		if err != nil {
			return nil, domain.NewConfigurationError("no se pudo leer "+path, err)
		}
		return props, nil
	}

	return nil, domain.NewConfigurationError("no se encontró el archivo "+PropertiesFile, nil)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds))
}
