package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Storage   StorageConfig
	Backup    BackupConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env          string // development, production
	Name         string
	LogLevel     string
	Organization string // encabezado de los PDF
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	BodyLimitMB  int
	SwaggerFile  string
	AllowOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig rutas de archivos en disco.
type StorageConfig struct {
	UploadsDir string // contiene responsivas/ y bajas/
	FormatsDir string // formatos en blanco descargables
	BackupsDir string // respaldos automáticos
}

// BackupConfig parámetros del respaldo de datos.
type BackupConfig struct {
	PgDumpPath string
	Timezone   string
}

// AdminConfig credenciales del administrador inicial.
type AdminConfig struct {
	Username string
	Password string
}

// RateLimitConfig límite de intentos de login por IP.
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
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

	cfg := &Config{
		App: AppConfig{
			Env:          getString(v, "APP_ENV", "development"),
			Name:         getString(v, "APP_NAME", "inventarios-api"),
			LogLevel:     getString(v, "LOG_LEVEL", "info"),
			Organization: getString(v, "APP_ORGANIZATION", "Departamento de Sistemas"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventarios"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 240),
			Issuer:     getString(v, "JWT_ISSUER", "inventarios-api"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 3000),
			BodyLimitMB:  getInt(v, "HTTP_BODY_LIMIT_MB", 50),
			SwaggerFile:  getString(v, "HTTP_SWAGGER_FILE", "./docs/swagger.json"),
			AllowOrigins: getString(v, "HTTP_ALLOW_ORIGINS", "*"),
		},
		Storage: StorageConfig{
			UploadsDir: getString(v, "STORAGE_UPLOADS_DIR", "./uploads"),
			FormatsDir: getString(v, "STORAGE_FORMATS_DIR", "./formats"),
			BackupsDir: getString(v, "STORAGE_BACKUPS_DIR", "./backups"),
		},
		Backup: BackupConfig{
			PgDumpPath: getString(v, "BACKUP_PG_DUMP_PATH", "pg_dump"),
			Timezone:   getString(v, "BACKUP_TIMEZONE", "America/Mexico_City"),
		},
		Admin: AdminConfig{
			Username: getString(v, "ADMIN_USERNAME", ""),
			Password: getString(v, "ADMIN_PASSWORD", ""),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getInt(v, "RATE_LIMIT_LOGIN_PER_MINUTE", 10),
			LoginBurst:     getInt(v, "RATE_LIMIT_LOGIN_BURST", 5),
		},
	}

	if cfg.JWT.Secret == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en production")
	}
	return cfg, nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
