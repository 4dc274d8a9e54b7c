// Package config provides configuration related utilities.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Default values for config.
const (
	defaultHost                   = "0.0.0.0"
	defaultPort                   = "8080"
	defaultBaseURL                = "http://localhost:8080"
	defaultFileStoragePath        = "urls.json"
	defaultBufferStoragePath      = "reserve_data.json"
	defaultStaticDir              = "static"
	defaultLatestLinks            = 5
	defaultClickQueueLen          = 256
	defaultLogPath                = "logs/app.log"
	defaultLogLevel               = "info"
	defaultMaxLogSizeMB           = 5
	defaultMaxLogBackups          = 10
	defaultMaxLogFileLifetimeDays = 14
	defaultDBHost                 = "localhost"
	defaultDBName                 = "url_shortener"
	defaultDBUser                 = "postgres"
	defaultDBPort                 = 5432
	defaultDBSSLMode              = "disable"
	defaultDBConnectTimeout       = 3 * time.Second
	defaultDBConnectAttempts      = 3
	defaultDBQueryTimeout         = 3 * time.Second
)

// DefaultAddress is the default address to start the server on.
var DefaultAddress = fmt.Sprintf("%s:%s", defaultHost, defaultPort)

// Config represents an application configuration.
type (
	Config struct {
		// Subconfigs.
		Server   Server   `yaml:"http_server"`
		Database Database `yaml:"database"`
		Storage  Storage  `yaml:"storage"`
		Logger   Logger   `yaml:"logger"`
		// Directory with index.html and the static assets.
		StaticDir string `yaml:"static_dir" env:"STATIC_DIR"`
	}
	// Config for server.
	Server struct {
		// Address to run the server.
		RunAddress *NetAddress `yaml:"server_address" env:"SERVER_ADDRESS"`
		// Prefix of the returned short links.
		BaseURL string `yaml:"base_url" env:"BASE_URL"`
		// Read header timeout.
		Timeout time.Duration `yaml:"timeout" env:"SERVER_TIMEOUT"`
		// Idle timeout.
		IdleTimeout time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
		// Shutdown timeout.
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
		// TLSEnable determines whether the server will be started in the TLS mode.
		TLSEnabled Enabled `yaml:"enable_https" env:"ENABLE_HTTPS"`
	}
	// Config for the relational store.
	Database struct {
		// Full data source name. Takes precedence over the parts below.
		DSN      string `yaml:"dsn" env:"DATABASE_DSN"`
		Host     string `yaml:"host" env:"DB_HOST"`
		Name     string `yaml:"name" env:"DB_NAME"`
		User     string `yaml:"user" env:"DB_USER"`
		Password string `yaml:"password" env:"DB_PASSWORD"`
		Port     int    `yaml:"port" env:"DB_PORT"`
		SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
		// Bound of a single connection attempt.
		ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT"`
		// Number of connection attempts at startup.
		ConnectAttempts int `yaml:"connect_attempts" env:"DB_CONNECT_ATTEMPTS"`
		// Bound of every query.
		QueryTimeout time.Duration `yaml:"query_timeout" env:"DB_QUERY_TIMEOUT"`
	}
	// Config for the file backed fallback.
	Storage struct {
		// General code to URL file.
		FilePath string `yaml:"file_storage_path" env:"FILE_STORAGE_PATH"`
		// Write buffer replayed into the database on the next start.
		BufferPath string `yaml:"buffer_storage_path" env:"BUFFER_STORAGE_PATH"`
		// Number of entries reported by the stats endpoint.
		LatestLinks int `yaml:"latest_links" env:"STATS_LATEST_LINKS"`
		// Length of the click increment queue.
		ClickQueueLen int `yaml:"click_queue_length" env:"CLICK_QUEUE_LENGTH"`
	}
	// Config for application's logger.
	Logger struct {
		// Path to store log files. Empty disables the file output.
		Path string `yaml:"log_path" env:"LOG_PATH"`
		// Application logging level.
		Level string `yaml:"level" env:"LOG_LEVEL"`
		// Log files details.
		MaxSizeMB  int `yaml:"max_size_mb"`
		MaxBackups int `yaml:"max_backups"`
		MaxAgeDays int `yaml:"max_age_days"`
	}
)

// Interface implementation guards.
var (
	_ flag.Value      = (*NetAddress)(nil)
	_ cleanenv.Setter = (*NetAddress)(nil)
	_ flag.Value      = (*Enabled)(nil)
	_ cleanenv.Setter = (*Enabled)(nil)
)

// NetAddress represents a network address with a host and a port.
type NetAddress string

// NewNetAddress returns a pointer to a new NetAddress with default Host and Port.
func NewNetAddress() *NetAddress {
	a := NetAddress(DefaultAddress)
	return &a
}

// String returns a string representation of the NetAddress in the form "host:port".
func (a *NetAddress) String() string {
	return string(*a)
}

// Set sets the host and port of the NetAddress from a string
// in the form "host:port".
func (a *NetAddress) Set(s string) error {
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")

	host, port, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form host:port")
	}

	if _, err = strconv.Atoi(port); err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}

	if host == "" {
		host = defaultHost
	}

	*a = NetAddress(net.JoinHostPort(host, port))
	return nil
}

// SetValue implements cleanenv value setter.
func (a *NetAddress) SetValue(s string) error {
	return a.Set(s)
}

// Enabled implements general setter for boolean values.
// Implements cleanenv value setter.
type Enabled bool

// Set sets Enabled value from string.
func (e *Enabled) Set(s string) error {
	trueValues := []string{
		"true", "1", "t", "T", "TRUE", "True",
	}
	falseValues := []string{
		"false", "0", "f", "F", "FALSE", "False",
	}
	switch {
	case slices.Contains(trueValues, s):
		*e = true
	case slices.Contains(falseValues, s):
		*e = false
	default:
		return fmt.Errorf(
			"invalid value: %q; need boolean value in form: true: %q false: %q",
			s,
			strings.Join(trueValues, "\", \""),
			strings.Join(falseValues, "\", \""),
		)
	}
	return nil
}

// SetValue implements cleanenv value setter.
func (e *Enabled) SetValue(s string) error {
	return e.Set(s)
}

// String returns a string representation of the Enabled value.
func (e *Enabled) String() string {
	return fmt.Sprintf("%v", *e)
}

// IsBoolFlag lets the flag be passed without a value.
func (e *Enabled) IsBoolFlag() bool {
	return true
}

// DataSourceName returns the DSN for the pgx driver.
func (d Database) DataSourceName() string {
	if d.DSN != "" {
		return d.DSN
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}

	q := u.Query()
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	if d.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(d.ConnectTimeout.Round(time.Second).Seconds())))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// Order of loading configuration:
// 1. .env file (never overrides the real environment)
// 2. Config file (YAML, JSON supported)
// 3. Flags
// 4. Environment variables

// Load returns an application configuration which is populated
// from the given configuration file, flags and environment variables.
func Load(args []string) (*Config, error) {
	cfg := defaults()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	// Configuration file path.
	if configPath, set := os.LookupEnv("CONFIG"); set {
		if err := readFile(configPath, cfg); err != nil {
			return nil, err
		}
	}

	// Read given flags. If not provided use file values.
	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)
	fs.Var(cfg.Server.RunAddress, "a", "server start address in form host:port")
	fs.StringVar(&cfg.Server.BaseURL, "b", cfg.Server.BaseURL, "base URL of the returned short links")
	fs.Var(&cfg.Server.TLSEnabled, "s", "run the server in TLS mode")
	fs.StringVar(&cfg.Storage.FilePath, "f", cfg.Storage.FilePath, "general file storage path")
	fs.StringVar(&cfg.Storage.BufferPath, "buffer", cfg.Storage.BufferPath, "write buffer file path")
	fs.StringVar(&cfg.Database.DSN, "d", cfg.Database.DSN, "database data source name")
	fs.StringVar(&cfg.Logger.Level, "l", cfg.Logger.Level, "logging level")
	fs.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "static files directory")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Read environment variables.
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment variables: %w", err)
	}

	cfg.Server.BaseURL = strings.TrimSuffix(cfg.Server.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad is like Load but stops the process on error.
func MustLoad() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// Validate checks the values that have no sane fallback.
func (cfg *Config) Validate() error {
	if cfg.Storage.FilePath == "" {
		return errors.New("file storage path is empty")
	}
	if cfg.Storage.BufferPath == "" {
		return errors.New("buffer storage path is empty")
	}
	if filepath.Clean(cfg.Storage.FilePath) == filepath.Clean(cfg.Storage.BufferPath) {
		return errors.New("file storage and buffer must be different files")
	}
	if cfg.Storage.LatestLinks < 0 {
		return errors.New("latest links must not be negative")
	}
	if cfg.Storage.ClickQueueLen <= 0 {
		return errors.New("click queue length should be >= 1")
	}
	if cfg.Database.ConnectAttempts <= 0 {
		return errors.New("connect attempts should be >= 1")
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	// Support different file extensions.
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		err = cleanenv.ParseYAML(file, cfg)
	case ".json":
		err = cleanenv.ParseJSON(file, cfg)
	default:
		return fmt.Errorf("unsupported configuration file extension: %q", ext)
	}
	if err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	return nil
}

func defaults() *Config {
	return &Config{
		Server: Server{
			RunAddress:      NewNetAddress(),
			BaseURL:         defaultBaseURL,
			Timeout:         5 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: Database{
			Host:            defaultDBHost,
			Name:            defaultDBName,
			User:            defaultDBUser,
			Port:            defaultDBPort,
			SSLMode:         defaultDBSSLMode,
			ConnectTimeout:  defaultDBConnectTimeout,
			ConnectAttempts: defaultDBConnectAttempts,
			QueryTimeout:    defaultDBQueryTimeout,
		},
		Storage: Storage{
			FilePath:      defaultFileStoragePath,
			BufferPath:    defaultBufferStoragePath,
			LatestLinks:   defaultLatestLinks,
			ClickQueueLen: defaultClickQueueLen,
		},
		Logger: Logger{
			Path:       defaultLogPath,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultMaxLogSizeMB,
			MaxBackups: defaultMaxLogBackups,
			MaxAgeDays: defaultMaxLogFileLifetimeDays,
		},
		StaticDir: defaultStaticDir,
	}
}

// NewForTest returns application configuration for testing.
func NewForTest() *Config {
	cfg := defaults()
	cfg.Logger.Path = ""
	cfg.Database.ConnectAttempts = 1
	cfg.Database.ConnectTimeout = time.Second
	cfg.Database.QueryTimeout = time.Second
	return cfg
}
