package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Store    Store    `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
	Portal   Portal   `mapstructure:",squash"`
	Recorder Recorder `mapstructure:",squash"`
	Rotation Rotation `mapstructure:",squash"`
	Rate     Rate     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Store struct {
	Driver string `mapstructure:"store_driver"`
}

type Database struct {
	DSN           string `mapstructure:"-"`
	Driver        string `mapstructure:"database_driver"`
	Password      string `mapstructure:"database_password"`
	URL           string `mapstructure:"database_url"`
	User          string `mapstructure:"database_user"`
	RunMigrations bool   `mapstructure:"database_run_migrations"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type Auth struct {
	Secret            string        `mapstructure:"auth_secret"`
	AdminEmail        string        `mapstructure:"admin_email"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	TokenTTL          time.Duration `mapstructure:"auth_token_ttl"`
}

type Portal struct {
	LoginDelay time.Duration `mapstructure:"login_delay"`
}

type Recorder struct {
	AtomicCounters bool `mapstructure:"recorder_atomic_counters"`
}

// Profile describes how one screen rotates its ads.
type Profile struct {
	Step     int
	Window   int
	Interval time.Duration
}

type Rotation struct {
	LoginStep         int           `mapstructure:"rotation_login_step"`
	LoginWindow       int           `mapstructure:"rotation_login_window"`
	LoginInterval     time.Duration `mapstructure:"rotation_login_interval"`
	DashboardStep     int           `mapstructure:"rotation_dashboard_step"`
	DashboardWindow   int           `mapstructure:"rotation_dashboard_window"`
	DashboardInterval time.Duration `mapstructure:"rotation_dashboard_interval"`
	PopupDelay        time.Duration `mapstructure:"rotation_popup_delay"`
	IdleTTL           time.Duration `mapstructure:"rotation_idle_ttl"`
	ReaperInterval    time.Duration `mapstructure:"rotation_reaper_interval"`
}

func (r Rotation) Login() Profile {
	return Profile{Step: r.LoginStep, Window: r.LoginWindow, Interval: r.LoginInterval}
}

func (r Rotation) Dashboard() Profile {
	return Profile{Step: r.DashboardStep, Window: r.DashboardWindow, Interval: r.DashboardInterval}
}

type Rate struct {
	SourceURL      string        `mapstructure:"rate_source_url"`
	Freshness      time.Duration `mapstructure:"rate_freshness"`
	Timeout        time.Duration `mapstructure:"rate_timeout"`
	Fallback       float64       `mapstructure:"rate_fallback"`
	Retries        int           `mapstructure:"rate_fetch_retries"`
	RetryBackoff   time.Duration `mapstructure:"rate_fetch_backoff"`
	RefreshCron    string        `mapstructure:"rate_refresh_cron"`
	RefreshEnabled bool          `mapstructure:"rate_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("STORE_DRIVER", StoreDriverMemory)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/captive?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_RUN_MIGRATIONS", true)
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("AUTH_SECRET", "change_me")
	viper.SetDefault("ADMIN_EMAIL", "admin@portal.local")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "") // bcrypt hash, admin login disabled while empty
	viper.SetDefault("AUTH_TOKEN_TTL", "12h")

	viper.SetDefault("LOGIN_DELAY", "1500ms")

	viper.SetDefault("RECORDER_ATOMIC_COUNTERS", false)

	viper.SetDefault("ROTATION_LOGIN_STEP", 2)
	viper.SetDefault("ROTATION_LOGIN_WINDOW", 2)
	viper.SetDefault("ROTATION_LOGIN_INTERVAL", "8s")
	viper.SetDefault("ROTATION_DASHBOARD_STEP", 3)
	viper.SetDefault("ROTATION_DASHBOARD_WINDOW", 3)
	viper.SetDefault("ROTATION_DASHBOARD_INTERVAL", "10s")
	viper.SetDefault("ROTATION_POPUP_DELAY", "3s")
	viper.SetDefault("ROTATION_IDLE_TTL", "2m")
	viper.SetDefault("ROTATION_REAPER_INTERVAL", "30s")

	viper.SetDefault("RATE_SOURCE_URL", "https://ve.dolarapi.com/v1/dolares/oficial")
	viper.SetDefault("RATE_FRESHNESS", "5m")
	viper.SetDefault("RATE_TIMEOUT", "5s")
	viper.SetDefault("RATE_FALLBACK", 227.5567)
	viper.SetDefault("RATE_FETCH_RETRIES", 0)
	viper.SetDefault("RATE_FETCH_BACKOFF", "500ms")
	viper.SetDefault("RATE_REFRESH_CRON", "*/5 * * * *")
	viper.SetDefault("RATE_REFRESH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Using environment loaded by godotenv (viper could not read .env): ", err)
	} else {
		logrus.Info(".env read by viper")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings that would make a component misbehave at runtime.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverPostgres:
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}

	for name, p := range map[string]Profile{"login": c.Rotation.Login(), "dashboard": c.Rotation.Dashboard()} {
		if p.Step < 1 || p.Window < 1 || p.Interval <= 0 {
			return fmt.Errorf("config: invalid %s rotation profile (step=%d window=%d interval=%s)", name, p.Step, p.Window, p.Interval)
		}
	}

	if c.Rate.Freshness <= 0 {
		return fmt.Errorf("config: rate freshness must be positive")
	}

	return nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env loaded from: ", location)
			return
		}
	}

	logrus.Debug("No .env file found, relying on process environment")
}
