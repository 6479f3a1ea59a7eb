package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
		AllowOrigins []string      `yaml:"allow_origins"`
	} `yaml:"server"`

	Adzuna struct {
		AppID          string        `yaml:"app_id"`
		AppKey         string        `yaml:"app_key"`
		BaseURL        string        `yaml:"base_url" default:"https://api.adzuna.com/v1/api/jobs"`
		CountryCode    string        `yaml:"country_code" default:"sg"`
		DefaultKeyword string        `yaml:"default_keyword" default:"Developer"`
		MaxDays        int           `yaml:"max_days" default:"14"`
		RequestTimeout time.Duration `yaml:"request_timeout" default:"15s"`
	} `yaml:"adzuna"`

	LLM struct {
		Provider    string        `yaml:"provider" default:"claude"`
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model" default:"claude-3-haiku-20240307"`
		MaxTokens   int           `yaml:"max_tokens" default:"1024"`
		Temperature float32       `yaml:"temperature" default:"0"`
		Timeout     time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"llm"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Database struct {
		URL            string        `yaml:"url"`
		MaxConns       int           `yaml:"max_conns" default:"10"`
		ConnectTimeout time.Duration `yaml:"connect_timeout" default:"10s"`
	} `yaml:"database"`

	Alerts struct {
		Enabled       bool          `yaml:"enabled" default:"true"`
		CronSpec      string        `yaml:"cron_spec" default:"@every 1h"`
		Secret        string        `yaml:"secret"`
		MaxJobsPerRun int           `yaml:"max_jobs_per_run" default:"10"`
		FetchTimeout  time.Duration `yaml:"fetch_timeout" default:"60s"`
	} `yaml:"alerts"`

	RateLimit struct {
		AnalyzeRequests int           `yaml:"analyze_requests" default:"5"`
		AnalyzeWindow   time.Duration `yaml:"analyze_window" default:"60s"`
	} `yaml:"rate_limit"`

	BackgroundTasks struct {
		MaxConcurrentTasks int           `yaml:"max_concurrent_tasks" default:"50"`
		TaskTimeout        time.Duration `yaml:"task_timeout" default:"30s"`
	} `yaml:"background_tasks"`

	Notify struct {
		Enabled    bool          `yaml:"enabled" default:"true"`
		BaseURL    string        `yaml:"base_url" default:"https://api.resend.com"`
		APIKey     string        `yaml:"api_key"`
		From       string        `yaml:"from" default:"alerts@jobpulse.app"`
		Timeout    time.Duration `yaml:"timeout" default:"15s"`
		MaxRetries int           `yaml:"max_retries" default:"3"`
	} `yaml:"notify"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second
	config.Server.AllowOrigins = []string{"*"}

	config.Adzuna.BaseURL = "https://api.adzuna.com/v1/api/jobs"
	config.Adzuna.CountryCode = "sg"
	config.Adzuna.DefaultKeyword = "Developer"
	config.Adzuna.MaxDays = 14
	config.Adzuna.RequestTimeout = 15 * time.Second

	config.LLM.Provider = "claude"
	config.LLM.MaxTokens = 1024
	config.LLM.Temperature = 0
	config.LLM.Timeout = 30 * time.Second

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Database.MaxConns = 10
	config.Database.ConnectTimeout = 10 * time.Second

	config.Alerts.Enabled = true
	config.Alerts.CronSpec = "@every 1h"
	config.Alerts.MaxJobsPerRun = 10
	config.Alerts.FetchTimeout = 60 * time.Second

	config.RateLimit.AnalyzeRequests = 5
	config.RateLimit.AnalyzeWindow = 60 * time.Second

	config.BackgroundTasks.MaxConcurrentTasks = 50
	config.BackgroundTasks.TaskTimeout = 30 * time.Second

	config.Notify.Enabled = true
	config.Notify.BaseURL = "https://api.resend.com"
	config.Notify.From = "alerts@jobpulse.app"
	config.Notify.Timeout = 15 * time.Second
	config.Notify.MaxRetries = 3

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		c.Server.AllowOrigins = parts
	}

	if appID := os.Getenv("ADZUNA_APP_ID"); appID != "" {
		c.Adzuna.AppID = appID
	}

	if appKey := os.Getenv("ADZUNA_APP_KEY"); appKey != "" {
		c.Adzuna.AppKey = appKey
	}

	if country := os.Getenv("ADZUNA_COUNTRY"); country != "" {
		c.Adzuna.CountryCode = country
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		c.Database.URL = dbURL
	}

	if cronSecret := os.Getenv("CRON_SECRET"); cronSecret != "" {
		c.Alerts.Secret = cronSecret
	}

	if cronSpec := os.Getenv("ALERTS_CRON_SPEC"); cronSpec != "" {
		c.Alerts.CronSpec = cronSpec
	}

	if enabled := os.Getenv("ALERTS_ENABLED"); enabled != "" {
		c.Alerts.Enabled = enabled == "true" || enabled == "1"
	}

	if maxJobs := os.Getenv("ALERTS_MAX_JOBS_PER_RUN"); maxJobs != "" {
		if n, err := strconv.Atoi(maxJobs); err == nil && n > 0 {
			c.Alerts.MaxJobsPerRun = n
		}
	}

	if notifyKey := os.Getenv("NOTIFY_API_KEY"); notifyKey != "" {
		c.Notify.APIKey = notifyKey
	}

	if notifyFrom := os.Getenv("NOTIFY_FROM"); notifyFrom != "" {
		c.Notify.From = notifyFrom
	}

	if notifyEnabled := os.Getenv("NOTIFY_ENABLED"); notifyEnabled != "" {
		c.Notify.Enabled = notifyEnabled == "true" || notifyEnabled == "1"
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}

// HasAdzunaCredentials reports whether the job source can be queried at all.
// Missing credentials short-circuit before any HTTP call is made.
func (c *Config) HasAdzunaCredentials() bool {
	return c.Adzuna.AppID != "" && c.Adzuna.AppKey != ""
}
