package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// EnvironmentTesting selects the in-memory store regardless of the storage driver
const EnvironmentTesting = "testing"

// Config holds all configuration options for the Infoco application
type Config struct {
	Storage     StorageConfig
	AI          AIConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Server      ServerConfig
	Application ApplicationConfig
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	Driver         string        `env:"INFOCO_STORAGE"`
	Dir            string        `env:"INFOCO_DB_DIR"`
	Filename       string        `env:"INFOCO_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"INFOCO_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"INFOCO_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"INFOCO_DB_DIR_PERMISSIONS"`
}

// AIConfig holds the AI analysis client configuration
type AIConfig struct {
	APIKey      string        `env:"INFOCO_AI_API_KEY"`
	Model       string        `env:"INFOCO_AI_MODEL"`
	Timeout     time.Duration `env:"INFOCO_AI_TIMEOUT"`
	MaxAttempts int           `env:"INFOCO_AI_MAX_ATTEMPTS"`
	RetryDelay  time.Duration `env:"INFOCO_AI_RETRY_DELAY"`
}

// ValidationConfig holds form validation limits
type ValidationConfig struct {
	NameMaxLength     int     `env:"INFOCO_VALIDATION_NAME_MAX"`
	TitleMaxLength    int     `env:"INFOCO_VALIDATION_TITLE_MAX"`
	MaxTaskHours      float64 `env:"INFOCO_VALIDATION_MAX_TASK_HOURS"`
	QuestionMaxLength int     `env:"INFOCO_VALIDATION_QUESTION_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat       string `env:"INFOCO_DISPLAY_DATE_FORMAT"`
	RecentTasksLimit int    `env:"INFOCO_DISPLAY_RECENT_TASKS"`
	MarkdownWidth    int    `env:"INFOCO_DISPLAY_MARKDOWN_WIDTH"`
	EmptyMessage     string `env:"INFOCO_DISPLAY_EMPTY_MESSAGE"`
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Addr            string        `env:"INFOCO_SERVER_ADDR"`
	AllowOrigins    []string      `env:"INFOCO_SERVER_ALLOW_ORIGINS"`
	ShutdownTimeout time.Duration `env:"INFOCO_SERVER_SHUTDOWN_TIMEOUT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout     time.Duration `env:"INFOCO_APP_TIMEOUT"`
	Verbose     bool          `env:"INFOCO_APP_VERBOSE"`
	LogLevel    string        `env:"INFOCO_LOG_LEVEL"`
	Environment string        `env:"INFOCO_ENV"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".infoco")

	return &Config{
		Storage: StorageConfig{
			Driver:         StorageSQLite,
			Dir:            defaultDBDir,
			Filename:       "infoco.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		AI: AIConfig{
			Model:       "gemini-2.5-flash",
			Timeout:     60 * time.Second,
			MaxAttempts: 1,
		},
		Validation: ValidationConfig{
			NameMaxLength:     120,
			TitleMaxLength:    255,
			MaxTaskHours:      24,
			QuestionMaxLength: 2000,
		},
		Display: DisplayConfig{
			DateFormat:       "02/01/2006",
			RecentTasksLimit: 5,
			MarkdownWidth:    80,
			EmptyMessage:     "No records found.",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			AllowOrigins:    []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Application: ApplicationConfig{
			Timeout:     90 * time.Second,
			LogLevel:    "info",
			Environment: "production",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Storage.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Storage.WriteTimeout
}

// UsesMemoryStorage reports whether records live only for the process lifetime
func (c *Config) UsesMemoryStorage() bool {
	return c.Storage.Driver == StorageMemory || c.Application.Environment == EnvironmentTesting
}

// envBindings maps configuration keys to the environment variables read for them.
// Earlier names win when several are set.
var envBindings = map[string][]string{
	"storage.driver":          {"INFOCO_STORAGE"},
	"storage.dir":             {"INFOCO_DB_DIR"},
	"storage.filename":        {"INFOCO_DB_FILENAME"},
	"storage.query_timeout":   {"INFOCO_DB_QUERY_TIMEOUT"},
	"storage.write_timeout":   {"INFOCO_DB_WRITE_TIMEOUT"},
	"storage.dir_permissions": {"INFOCO_DB_DIR_PERMISSIONS"},

	"ai.api_key":      {"INFOCO_AI_API_KEY", "GEMINI_API_KEY", "API_KEY"},
	"ai.model":        {"INFOCO_AI_MODEL"},
	"ai.timeout":      {"INFOCO_AI_TIMEOUT"},
	"ai.max_attempts": {"INFOCO_AI_MAX_ATTEMPTS"},
	"ai.retry_delay":  {"INFOCO_AI_RETRY_DELAY"},

	"validation.name_max":       {"INFOCO_VALIDATION_NAME_MAX"},
	"validation.title_max":      {"INFOCO_VALIDATION_TITLE_MAX"},
	"validation.max_task_hours": {"INFOCO_VALIDATION_MAX_TASK_HOURS"},
	"validation.question_max":   {"INFOCO_VALIDATION_QUESTION_MAX"},

	"display.date_format":    {"INFOCO_DISPLAY_DATE_FORMAT"},
	"display.recent_tasks":   {"INFOCO_DISPLAY_RECENT_TASKS"},
	"display.markdown_width": {"INFOCO_DISPLAY_MARKDOWN_WIDTH"},
	"display.empty_message":  {"INFOCO_DISPLAY_EMPTY_MESSAGE"},

	"server.addr":             {"INFOCO_SERVER_ADDR"},
	"server.allow_origins":    {"INFOCO_SERVER_ALLOW_ORIGINS"},
	"server.shutdown_timeout": {"INFOCO_SERVER_SHUTDOWN_TIMEOUT"},

	"application.timeout":     {"INFOCO_APP_TIMEOUT"},
	"application.verbose":     {"INFOCO_APP_VERBOSE"},
	"application.log_level":   {"INFOCO_LOG_LEVEL"},
	"application.environment": {"INFOCO_ENV"},
}

func newEnvReader() *viper.Viper {
	v := viper.New()
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	return v
}

// LoadFromEnvironment loads configuration from environment variables.
// Malformed values are reported as a *ConfigError naming the key.
func (c *Config) LoadFromEnvironment() error {
	env := envSource{v: newEnvReader()}

	// Storage configuration
	env.str("storage.driver", &c.Storage.Driver)
	env.str("storage.dir", &c.Storage.Dir)
	env.str("storage.filename", &c.Storage.Filename)
	env.duration("storage.query_timeout", &c.Storage.QueryTimeout)
	env.duration("storage.write_timeout", &c.Storage.WriteTimeout)
	env.octal("storage.dir_permissions", &c.Storage.DirPermissions)

	// AI configuration
	env.str("ai.api_key", &c.AI.APIKey)
	env.str("ai.model", &c.AI.Model)
	env.duration("ai.timeout", &c.AI.Timeout)
	env.integer("ai.max_attempts", &c.AI.MaxAttempts)
	env.duration("ai.retry_delay", &c.AI.RetryDelay)

	// Validation configuration
	env.integer("validation.name_max", &c.Validation.NameMaxLength)
	env.integer("validation.title_max", &c.Validation.TitleMaxLength)
	env.float("validation.max_task_hours", &c.Validation.MaxTaskHours)
	env.integer("validation.question_max", &c.Validation.QuestionMaxLength)

	// Display configuration
	env.str("display.date_format", &c.Display.DateFormat)
	env.integer("display.recent_tasks", &c.Display.RecentTasksLimit)
	env.integer("display.markdown_width", &c.Display.MarkdownWidth)
	env.str("display.empty_message", &c.Display.EmptyMessage)

	// Server configuration
	env.str("server.addr", &c.Server.Addr)
	env.list("server.allow_origins", &c.Server.AllowOrigins)
	env.duration("server.shutdown_timeout", &c.Server.ShutdownTimeout)

	// Application configuration
	env.duration("application.timeout", &c.Application.Timeout)
	env.boolean("application.verbose", &c.Application.Verbose)
	env.str("application.log_level", &c.Application.LogLevel)
	env.str("application.environment", &c.Application.Environment)

	return env.err
}

// envSource reads typed values from viper and keeps the first parse failure
type envSource struct {
	v   *viper.Viper
	err error
}

func (e *envSource) raw(key string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	s := strings.TrimSpace(e.v.GetString(key))
	return s, s != ""
}

func (e *envSource) fail(key, value, kind string) {
	e.err = &ConfigError{Field: key, Message: "invalid " + kind + " " + strconv.Quote(value)}
}

func (e *envSource) str(key string, dst *string) {
	if s, ok := e.raw(key); ok {
		*dst = s
	}
}

func (e *envSource) list(key string, dst *[]string) {
	s, ok := e.raw(key)
	if !ok {
		return
	}
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*dst = items
}

func (e *envSource) duration(key string, dst *time.Duration) {
	if s, ok := e.raw(key); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			e.fail(key, s, "duration")
			return
		}
		*dst = d
	}
}

func (e *envSource) integer(key string, dst *int) {
	if s, ok := e.raw(key); ok {
		n, err := strconv.Atoi(s)
		if err != nil {
			e.fail(key, s, "integer")
			return
		}
		*dst = n
	}
}

func (e *envSource) float(key string, dst *float64) {
	if s, ok := e.raw(key); ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			e.fail(key, s, "number")
			return
		}
		*dst = f
	}
}

func (e *envSource) octal(key string, dst *uint32) {
	if s, ok := e.raw(key); ok {
		p, err := strconv.ParseUint(s, 8, 32)
		if err != nil {
			e.fail(key, s, "permission mode")
			return
		}
		*dst = uint32(p)
	}
}

func (e *envSource) boolean(key string, dst *bool) {
	if s, ok := e.raw(key); ok {
		b, err := strconv.ParseBool(s)
		if err != nil {
			e.fail(key, s, "boolean")
			return
		}
		*dst = b
	}
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	switch c.Storage.Driver {
	case StorageSQLite:
		if c.Storage.Dir == "" {
			return &ConfigError{Field: "storage.dir", Message: "database directory cannot be empty"}
		}
		if c.Storage.Filename == "" {
			return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
		}
	case StorageMemory:
	default:
		return &ConfigError{Field: "storage.driver", Message: "storage driver must be sqlite or memory"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate AI configuration
	if c.AI.Model == "" {
		return &ConfigError{Field: "ai.model", Message: "model cannot be empty"}
	}
	if c.AI.Timeout <= 0 {
		return &ConfigError{Field: "ai.timeout", Message: "AI timeout must be positive"}
	}
	if c.AI.MaxAttempts < 1 {
		return &ConfigError{Field: "ai.max_attempts", Message: "max attempts must be at least 1"}
	}
	if c.AI.RetryDelay < 0 {
		return &ConfigError{Field: "ai.retry_delay", Message: "retry delay cannot be negative"}
	}

	// Validate validation configuration
	if c.Validation.NameMaxLength < 1 {
		return &ConfigError{Field: "validation.name_max", Message: "name maximum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.MaxTaskHours <= 0 {
		return &ConfigError{Field: "validation.max_task_hours", Message: "max task hours must be positive"}
	}
	if c.Validation.QuestionMaxLength < 1 {
		return &ConfigError{Field: "validation.question_max", Message: "question maximum length must be at least 1"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.RecentTasksLimit < 1 {
		return &ConfigError{Field: "display.recent_tasks", Message: "recent tasks limit must be at least 1"}
	}
	if c.Display.MarkdownWidth < 20 {
		return &ConfigError{Field: "display.markdown_width", Message: "markdown width must be at least 20"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	switch strings.ToLower(c.Application.LogLevel) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "application.log_level", Message: "log level must be one of trace, debug, info, warn, error"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
