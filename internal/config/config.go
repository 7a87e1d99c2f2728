package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// BrowserConfig selects and launches the headless browser.
type BrowserConfig struct {
	Driver   string
	Bin      string
	CacheDir string
	Headless bool
	ProxyURL string
}

// ScrapeConfig tunes navigation, retries and the structured-data fallback.
type ScrapeConfig struct {
	NavigationTimeout time.Duration
	RequestTimeout    time.Duration
	SettleDelay       time.Duration
	MaxAttempts       int
	RetryDelayMin     time.Duration
	RetryDelayMax     time.Duration
	ContentCheck      bool
	Stealth           bool
	APIFallback       bool
	APIFallbackRPS    float64
	APIBaseURL        string
	ListingHosts      []string
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port          string
	MaxConcurrent int
	CORSOrigins   []string
}

type LogConfig struct {
	Level string
	JSON  bool
}

type FluentBitConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string
}

// AppConfig is the whole application configuration. It is read once at
// start-up and never mutated afterwards.
type AppConfig struct {
	AppName   string
	DeployEnv string
	Server    ServerConfig
	Browser   BrowserConfig
	Scrape    ScrapeConfig
	Log       LogConfig
	FluentBit FluentBitConfig
}

// Load reads configuration from the environment, loading envPath (or ./.env)
// first. A missing .env file is not an error.
func Load(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &AppConfig{}
	cfg.AppName = getEnvAsString("APP_NAME", "stayscraper")
	cfg.DeployEnv = strings.ToLower(getEnvAsString("DEPLOY_ENV", "local"))

	cfg.Server.Port = getEnvAsString("PORT", "10000")
	cfg.Server.MaxConcurrent = getEnvAsInt("MAX_CONCURRENT_SCRAPES", 0)
	cfg.Server.CORSOrigins = getEnvAsList("CORS_ORIGINS", []string{"*"})

	cfg.Browser.Driver = strings.ToLower(getEnvAsString("BROWSER_DRIVER", ""))
	cfg.Browser.Bin = getEnvAsString("BROWSER_BIN", "")
	cfg.Browser.CacheDir = getEnvAsString("BROWSER_CACHE_DIR", "")
	cfg.Browser.Headless = getEnvAsBool("HEADLESS", true)
	cfg.Browser.ProxyURL = getEnvAsString("PROXY_URL", "")

	s := &cfg.Scrape
	s.NavigationTimeout = getEnvAsDuration("NAVIGATION_TIMEOUT", 100*time.Second)
	s.RequestTimeout = getEnvAsDuration("REQUEST_TIMEOUT", 110*time.Second)
	s.SettleDelay = getEnvAsDuration("SETTLE_DELAY", 8*time.Second)
	s.MaxAttempts = getEnvAsInt("MAX_ATTEMPTS", 3)
	s.RetryDelayMin = getEnvAsDuration("RETRY_DELAY_MIN", time.Second)
	s.RetryDelayMax = getEnvAsDuration("RETRY_DELAY_MAX", 3*time.Second)
	s.ContentCheck = getEnvAsBool("CONTENT_CHECK", true)
	s.Stealth = getEnvAsBool("STEALTH", true)
	s.APIFallback = getEnvAsBool("API_FALLBACK", true)
	s.APIFallbackRPS = getEnvAsFloat("API_FALLBACK_RPS", 1)
	s.APIBaseURL = getEnvAsString("API_BASE_URL", "https://www.airbnb.com.br")
	s.ListingHosts = getEnvAsList("LISTING_HOSTS", []string{"airbnb."})

	if s.MaxAttempts < 1 {
		log.Printf("Warning: MAX_ATTEMPTS must be at least 1, got %d. Using 1\n", s.MaxAttempts)
		s.MaxAttempts = 1
	}
	if s.RequestTimeout <= s.NavigationTimeout {
		log.Printf("Warning: REQUEST_TIMEOUT (%s) must exceed NAVIGATION_TIMEOUT (%s). Using %s\n",
			s.RequestTimeout, s.NavigationTimeout, s.NavigationTimeout+10*time.Second)
		s.RequestTimeout = s.NavigationTimeout + 10*time.Second
	}
	if s.RetryDelayMax < s.RetryDelayMin {
		s.RetryDelayMax = s.RetryDelayMin
	}

	cfg.Log.Level = getEnvAsString("LOG_LEVEL", "info")
	cfg.Log.JSON = getEnvAsBool("LOG_JSON", false)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt logs and falls back to defaultValue when the variable is not an int.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as float: %v. Using default value: %g\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(strings.TrimSpace(valStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valStr = strings.TrimSpace(valStr)
	if secs, err := strconv.Atoi(valStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma separated variable, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
