package app

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/cardmap"
	"github.com/agentstation/cardmap/internal/config"
	"github.com/agentstation/cardmap/pkg/constants"
	"github.com/agentstation/cardmap/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables, .env files and flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string `validate:"omitempty,oneof=table json yaml"`

	// Config file
	ConfigFile string

	// Catalog configuration
	DatabasePath        string        `validate:"required"`
	APIKey              string        `validate:"-"`
	BaseURL             string        `validate:"required,url"`
	PageSize            int           `validate:"min=1,max=250"`
	HTTPTimeout         time.Duration `validate:"gt=0"`
	RefreshMode         string        `validate:"oneof=single-flight racing"`
	SyncMode            string        `validate:"oneof=additive mirror"`
	AutoRefreshInterval time.Duration `validate:"gte=0"`
	ServerAddr          string        `validate:"required"`

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	logLevelFromFlag bool
}

// Flags are the persistent flag values that override loaded configuration.
type Flags struct {
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string
	Database string
	APIKey   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (CARDMAP_*, plus POKEMONTCG_API_KEY)
// 3. .env files
// 4. Config file (configFile, or ~/.cardmap.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	viper.Reset()
	loadEnvFiles()

	viper.SetEnvPrefix("cardmap")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	if err := config.BindAPIKeys(); err != nil {
		return nil, errors.NewConfigError("env", "binding API key variables", err)
	}
	setDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cardmap")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.NewConfigError("file", "reading config file", err)
		}
	}

	cfg := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no_color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		DatabasePath:        expandHome(viper.GetString("database")),
		APIKey:              config.APIKey(),
		BaseURL:             viper.GetString("base_url"),
		PageSize:            viper.GetInt("page_size"),
		HTTPTimeout:         viper.GetDuration("http_timeout"),
		RefreshMode:         viper.GetString("refresh_mode"),
		SyncMode:            viper.GetString("sync_mode"),
		AutoRefreshInterval: viper.GetDuration("auto_refresh"),
		ServerAddr:          viper.GetString("addr"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", viper.GetString("log_level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("database", filepath.Join(constants.DefaultDataPath, constants.DefaultDatabaseName))
	viper.SetDefault("base_url", constants.DefaultBaseURL)
	viper.SetDefault("page_size", constants.DefaultPageSize)
	viper.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	viper.SetDefault("refresh_mode", string(cardmap.RefreshSingleFlight))
	viper.SetDefault("sync_mode", string(cardmap.SyncAdditive))
	viper.SetDefault("addr", constants.DefaultServerAddr)
}

// Validate checks the configuration with struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			return errors.NewConfigError(verrs[0].Field(), "failed "+verrs[0].Tag()+" validation", err)
		}
		return errors.NewConfigError("config", "invalid configuration", err)
	}
	return nil
}

// UpdateFromFlags applies parsed flag values. Flags win over config file and
// environment, but empty string flags leave the loaded value alone.
func (c *Config) UpdateFromFlags(f Flags) {
	c.Verbose = f.Verbose
	c.Quiet = f.Quiet
	c.NoColor = f.NoColor
	if f.Format != "" {
		c.Format = f.Format
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
		c.logLevelFromFlag = true
	}
	if f.Database != "" {
		c.DatabasePath = expandHome(f.Database)
	}
	if f.APIKey != "" {
		c.APIKey = f.APIKey
	}
}

// loadEnvFiles loads .env then .env.local. Variables already set win.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
