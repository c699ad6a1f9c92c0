package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Backend BackendConfig
	DB      DBConfig
	JWT     JWTConfig
	Session SessionConfig
	HTTP    HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// Drivers de backend soportados.
const (
	BackendREST     = "rest"     // PostgREST/Supabase por HTTP
	BackendPostgres = "postgres" // conexión directa con pgx
)

// BackendConfig backend remoto de datos.
type BackendConfig struct {
	Driver  string
	URL     string // SUPABASE_URL, ej. https://xyz.supabase.co
	AnonKey string // SUPABASE_ANON_KEY
	Timeout time.Duration
}

// DBConfig configuración de PostgreSQL (solo con Driver=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
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

// JWTConfig verifica los tokens reales (secreto JWT del proyecto Supabase) y firma los simulados.
type JWTConfig struct {
	Secret       string
	Issuer       string
	DemoTTLHours int
}

// DemoTTL vigencia de la sesión simulada.
func (c JWTConfig) DemoTTL() time.Duration {
	return time.Duration(c.DemoTTLHours) * time.Hour
}

// Stores de banderas de sesión.
const (
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

// SessionConfig persistencia de las banderas de sesión (modo demo e identidad simulada).
type SessionConfig struct {
	Store         string
	FilePath      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CookieName    string
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

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, SUPABASE_URL, SUPABASE_ANON_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v), nil
}

// FromViper construye la configuración desde una instancia de viper ya cargada.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gasable-portal"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Backend: BackendConfig{
			Driver:  strings.ToLower(getString(v, "BACKEND_DRIVER", BackendREST)),
			URL:     strings.TrimRight(getString(v, "SUPABASE_URL", ""), "/"),
			AnonKey: getString(v, "SUPABASE_ANON_KEY", ""),
			Timeout: time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "postgres"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:       getString(v, "JWT_SECRET", ""),
			Issuer:       getString(v, "JWT_ISSUER", "gasable-portal"),
			DemoTTLHours: getInt(v, "DEMO_SESSION_TTL_HOURS", 24),
		},
		Session: SessionConfig{
			Store:         strings.ToLower(getString(v, "SESSION_STORE", SessionStoreFile)),
			FilePath:      getString(v, "SESSION_FILE_PATH", "./data/session-flags.json"),
			RedisAddr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
			CookieName:    getString(v, "SESSION_COOKIE_NAME", "gasable_session"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}
}

// Validate devuelve los problemas de configuración. No son fatales: el proceso arranca y la
// primera llamada remota falla con un error visible.
func (c *Config) Validate() []string {
	var problems []string
	switch c.Backend.Driver {
	case BackendREST:
		if c.Backend.URL == "" {
			problems = append(problems, "SUPABASE_URL no configurado")
		}
		if c.Backend.AnonKey == "" {
			problems = append(problems, "SUPABASE_ANON_KEY no configurado")
		}
	case BackendPostgres:
		if c.DB.DatabaseURL == "" && c.DB.Password == "" {
			problems = append(problems, "DATABASE_URL o DB_PASSWORD no configurado")
		}
	default:
		problems = append(problems, fmt.Sprintf("BACKEND_DRIVER desconocido: %q", c.Backend.Driver))
	}
	if c.JWT.Secret == "" {
		problems = append(problems, "JWT_SECRET no configurado: no se aceptan tokens reales")
	}
	switch c.Session.Store {
	case SessionStoreFile, SessionStoreRedis, SessionStoreMemory:
	default:
		problems = append(problems, fmt.Sprintf("SESSION_STORE desconocido: %q", c.Session.Store))
	}
	return problems
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
