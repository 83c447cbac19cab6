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
	App       AppConfig
	HTTP      HTTPConfig
	Backend   BackendConfig
	JWT       JWTConfig
	Guard     GuardConfig
	Cookie    CookieConfig
	Storage   StorageConfig
	DB        DBConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	// DocsFile swagger.json servido en /docs; vacío desactiva la UI.
	DocsFile string
}

// HTTPConfig configuración del servidor HTTP del edge.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig API REST remota (autoridad de login y de identidad).
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// JWTConfig verificación local opcional del token de admin. Secret vacío = no se verifica en el edge.
type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration int // minutos, solo para tokens de desarrollo
}

// GuardConfig perímetro del edge: prefijo protegido y rutas públicas dentro de él.
type GuardConfig struct {
	Prefix      string
	SignInPath  string
	PublicPaths []string
}

// CookieConfig espejo de la credencial en cookie (solo web).
type CookieConfig struct {
	Name   string
	MaxAge int // segundos
	Secure bool
}

// StorageConfig almacenamiento durable de los slots de sesión.
type StorageConfig struct {
	Driver    string // file, memory, redis, postgres
	FilePath  string
	Namespace string // aísla los slots de este cliente en backends compartidos
}

// DBConfig configuración de PostgreSQL.
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

// RedisConfig conexión a Redis (REDIS_URL tiene prioridad sobre REDIS_ADDR).
type RedisConfig struct {
	URL  string
	Addr string
}

// CacheConfig caché de identidades resueltas en el edge.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// RateLimitConfig límite de intentos de login por IP.
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_URL, GUARD_PREFIX, etc.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom permite reutilizar una instancia de viper ya configurada (flags de la CLI).
func LoadFrom(v *viper.Viper) (*Config, error) {
	// Opcional: archivo de configuración (.env o config.env)
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
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "zamgas-admin-edge"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			DocsFile: getString(v, "DOCS_FILE", "./docs/swagger.json"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getString(v, "BACKEND_URL", "http://localhost:8080"), "/"),
			Timeout: time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Issuer:     getString(v, "JWT_ISSUER", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24*7),
		},
		Guard: GuardConfig{
			Prefix:      getString(v, "GUARD_PREFIX", "/admin"),
			SignInPath:  getString(v, "GUARD_SIGNIN_PATH", "/admin/signin"),
			PublicPaths: getList(v, "GUARD_PUBLIC_PATHS", []string{"/admin/signin", "/admin/login"}),
		},
		Cookie: CookieConfig{
			Name:   getString(v, "SESSION_COOKIE_NAME", "authToken"),
			MaxAge: getInt(v, "SESSION_COOKIE_MAX_AGE", 604800),
			Secure: getBool(v, "SESSION_COOKIE_SECURE", false),
		},
		Storage: StorageConfig{
			Driver:    getString(v, "STORAGE_DRIVER", "file"),
			FilePath:  getString(v, "STORAGE_FILE_PATH", ""),
			Namespace: getString(v, "STORAGE_NAMESPACE", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "zamgas"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:  getString(v, "REDIS_URL", ""),
			Addr: getString(v, "REDIS_ADDR", "localhost:6379"),
		},
		Cache: CacheConfig{
			Size: getInt(v, "IDENTITY_CACHE_SIZE", 1024),
			TTL:  time.Duration(getInt(v, "IDENTITY_CACHE_TTL_SECONDS", 30)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			PerMinute: getInt(v, "SIGNIN_RATE_PER_MINUTE", 10),
			Burst:     getInt(v, "SIGNIN_BURST", 5),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.Guard.Prefix, "/") {
		return fmt.Errorf("config: GUARD_PREFIX debe empezar con '/': %q", c.Guard.Prefix)
	}
	if !strings.HasPrefix(c.Guard.SignInPath, "/") {
		return fmt.Errorf("config: GUARD_SIGNIN_PATH debe empezar con '/': %q", c.Guard.SignInPath)
	}
	if c.Cookie.Name == "" {
		return fmt.Errorf("config: SESSION_COOKIE_NAME vacío")
	}
	switch c.Storage.Driver {
	case "file", "memory", "redis", "postgres":
	default:
		return fmt.Errorf("config: STORAGE_DRIVER desconocido %q", c.Storage.Driver)
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getList lee una lista separada por comas.
func getList(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, p := range strings.Split(v.GetString(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
