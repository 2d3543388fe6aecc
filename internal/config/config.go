package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config agrupa toda la configuración del servicio.
// Se carga desde YAML y luego se aplican overrides por variables de entorno
// (prefijo COMANDA_). El .env se carga antes vía godotenv en main.
type Config struct {
	App struct {
		// dev | staging | prod
		Env     string `yaml:"env"`
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Addr            string   `yaml:"addr"`
		MetricsAddr     string   `yaml:"metrics_addr"`
		ShutdownTimeout string   `yaml:"shutdown_timeout"`
		CORSOrigins     []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Storage struct {
		// postgres | memory
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	JWT struct {
		Issuer     string `yaml:"issuer"`
		Secret     string `yaml:"secret"`
		SessionTTL string `yaml:"session_ttl"`
	} `yaml:"jwt"`

	// Media configura el manejo de imágenes adjuntas a recursos.
	Media struct {
		Root         string   `yaml:"root"`      // directorio de archivos subidos
		BaseURL      string   `yaml:"base_url"`  // URL pública para servir imágenes
		MaxBytes     int64    `yaml:"max_bytes"` // tamaño máximo por archivo
		AllowedMIMEs []string `yaml:"allowed_mimes"`
	} `yaml:"media"`

	Rate struct {
		Enabled bool `yaml:"enabled"`
		Login   struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"login"`
	} `yaml:"rate"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"smtp"`
}

// Load lee el YAML (si existe), aplica defaults y overrides de entorno.
func Load(path string) (*Config, error) {
	c := &Config{}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: leyendo %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("config: parseando %s: %w", path, err)
		}
	}

	c.applyDefaults()
	c.applyEnv()

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.Name == "" {
		c.App.Name = "comanda"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "5m"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "comanda"
	}
	if c.JWT.SessionTTL == "" {
		c.JWT.SessionTTL = "12h"
	}
	if c.Media.Root == "" {
		c.Media.Root = "./media"
	}
	if c.Media.BaseURL == "" {
		c.Media.BaseURL = "/media"
	}
	if c.Media.MaxBytes <= 0 {
		c.Media.MaxBytes = 5 << 20 // 5 MiB
	}
	if len(c.Media.AllowedMIMEs) == 0 {
		c.Media.AllowedMIMEs = []string{"image/jpeg", "image/png", "image/webp"}
	}
	if c.Rate.Login.Limit <= 0 {
		c.Rate.Login.Limit = 10
	}
	if c.Rate.Login.Window == "" {
		c.Rate.Login.Window = "1m"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
}

func (c *Config) applyEnv() {
	c.App.Env = getenv("COMANDA_ENV", c.App.Env)
	c.Server.Addr = getenv("COMANDA_ADDR", c.Server.Addr)
	c.Server.MetricsAddr = getenv("COMANDA_METRICS_ADDR", c.Server.MetricsAddr)
	c.Log.Level = getenv("COMANDA_LOG_LEVEL", c.Log.Level)
	c.Storage.Driver = getenv("COMANDA_STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.DSN = getenv("COMANDA_DSN", c.Storage.DSN)
	c.Cache.Kind = getenv("COMANDA_CACHE", c.Cache.Kind)
	c.Cache.Redis.Addr = getenv("COMANDA_REDIS_ADDR", c.Cache.Redis.Addr)
	c.JWT.Secret = getenv("COMANDA_JWT_SECRET", c.JWT.Secret)
	c.JWT.Issuer = getenv("COMANDA_JWT_ISSUER", c.JWT.Issuer)
	c.Media.Root = getenv("COMANDA_MEDIA_ROOT", c.Media.Root)
	c.Media.BaseURL = getenv("COMANDA_MEDIA_BASE_URL", c.Media.BaseURL)
	c.SMTP.Host = getenv("COMANDA_SMTP_HOST", c.SMTP.Host)
	c.SMTP.User = getenv("COMANDA_SMTP_USER", c.SMTP.User)
	c.SMTP.Password = getenv("COMANDA_SMTP_PASSWORD", c.SMTP.Password)
	c.SMTP.From = getenv("COMANDA_SMTP_FROM", c.SMTP.From)

	if v := getenv("COMANDA_MEDIA_MAX_BYTES", ""); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.Media.MaxBytes = n
		}
	}
	if csv := getenv("COMANDA_CORS_ORIGINS", ""); csv != "" {
		c.Server.CORSOrigins = splitCSV(csv)
	}
	if v := getenv("COMANDA_RATE_ENABLED", ""); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Rate.Enabled = b
		}
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("config: storage.driver=postgres requiere DSN (COMANDA_DSN)")
		}
	case "memory":
		// sin requisitos
	default:
		return fmt.Errorf("config: storage.driver desconocido %q", c.Storage.Driver)
	}
	if c.App.Env == "prod" && c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret es obligatorio en prod (COMANDA_JWT_SECRET)")
	}
	return nil
}

// =================================================================================
// HELPERS DE DURACIÓN
// =================================================================================

// SessionTTL parsea jwt.session_ttl con fallback de 12h.
func (c *Config) SessionTTL() time.Duration {
	return parseDur(c.JWT.SessionTTL, 12*time.Hour)
}

// ShutdownTimeout parsea server.shutdown_timeout con fallback de 10s.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDur(c.Server.ShutdownTimeout, 10*time.Second)
}

// CacheDefaultTTL parsea cache.memory.default_ttl con fallback de 5m.
func (c *Config) CacheDefaultTTL() time.Duration {
	return parseDur(c.Cache.Memory.DefaultTTL, 5*time.Minute)
}

// LoginRateWindow parsea rate.login.window con fallback de 1m.
func (c *Config) LoginRateWindow() time.Duration {
	return parseDur(c.Rate.Login.Window, time.Minute)
}

func parseDur(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
