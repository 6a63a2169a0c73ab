package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Modos de almacenamiento de contraseñas.
const (
	PasswordPlain  = "plain"
	PasswordBcrypt = "bcrypt"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Log     LogConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Auth    AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel de log: trace, debug, info, warn, error.
type LogConfig struct {
	Level string
}

// StorageConfig selecciona el adaptador de persistencia.
type StorageConfig struct {
	Driver     string // memory | sqlite | postgres
	SQLitePath string
}

// AuthConfig controla cómo se guardan las contraseñas.
// "plain" reproduce el modo demo local (texto plano); "bcrypt" guarda hashes.
type AuthConfig struct {
	PasswordMode string
}

// DBConfig configuración de PostgreSQL (solo con STORAGE_DRIVER=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración del token de sesión.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env / config.env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "hisaab-kitaab"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "hisaab_kitaab"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "hisaab-kitaab"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getString(v, "STORAGE_DRIVER", StorageSQLite)),
			SQLitePath: getString(v, "SQLITE_PATH", "hisaab.db"),
		},
		Auth: AuthConfig{
			PasswordMode: strings.ToLower(getString(v, "AUTH_PASSWORD_MODE", PasswordPlain)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa los valores que no tienen un default razonable.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageSQLite, StoragePostgres:
	default:
		return fmt.Errorf("config: STORAGE_DRIVER desconocido %q", c.Storage.Driver)
	}
	switch c.Auth.PasswordMode {
	case PasswordPlain, PasswordBcrypt:
	default:
		return fmt.Errorf("config: AUTH_PASSWORD_MODE desconocido %q", c.Auth.PasswordMode)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
