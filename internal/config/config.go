package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"docsense/internal/policy"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port           int           `yaml:"port"`
		Host           string        `yaml:"host"`
		ReadTimeout    time.Duration `yaml:"read_timeout"`
		WriteTimeout   time.Duration `yaml:"write_timeout"`
		IdleTimeout    time.Duration `yaml:"idle_timeout"`
		MaxBodyBytes   int64         `yaml:"max_body_bytes"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"server"`

	LLM struct {
		Provider    string        `yaml:"provider"`
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model"`
		MaxTokens   int           `yaml:"max_tokens"`
		Temperature float32       `yaml:"temperature"`
		Timeout     time.Duration `yaml:"timeout"`
		RateLimit   int           `yaml:"rate_limit"` // requests per minute
		Burst       int           `yaml:"burst"`
	} `yaml:"llm"`

	OCR struct {
		ServiceURL      string        `yaml:"service_url"`
		APIKey          string        `yaml:"api_key"`
		Timeout         time.Duration `yaml:"timeout"`
		MaxFileSize     int64         `yaml:"max_file_size"`
		PreferTextLayer bool          `yaml:"prefer_text_layer"`
	} `yaml:"ocr"`

	Flows struct {
		SessionTTL      time.Duration `yaml:"session_ttl"`
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
	} `yaml:"flows"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`

		Adapters []LogAdapter `yaml:"adapters"`
	} `yaml:"logging"`

	Redis struct {
		Enabled   bool          `yaml:"enabled"`
		URL       string        `yaml:"url"`
		Password  string        `yaml:"password"`
		DB        int           `yaml:"db"`
		Timeout   time.Duration `yaml:"timeout"`
		KeyPrefix string        `yaml:"key_prefix"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
	} `yaml:"redis"`

	// Storage archives generated reports on DigitalOcean Spaces or any
	// S3-compatible endpoint
	Storage struct {
		BucketURL       string `yaml:"bucket_url"`
		CDNEndpoint     string `yaml:"cdn_endpoint"`
		AccessKeyID     string `yaml:"access_key_id"`
		AccessKeySecret string `yaml:"access_key_secret"`
		Region          string `yaml:"region"`
		BucketName      string `yaml:"bucket_name"`
		Endpoint        string `yaml:"endpoint"`
		PathStyle       bool   `yaml:"path_style"`
	} `yaml:"storage"`

	// Policy overrides; zero values keep the defaults
	Policy policy.Policy `yaml:"policy"`
}

// LogAdapter configures one logging output
type LogAdapter struct {
	Name    string                 `yaml:"name"`
	Type    string                 `yaml:"type"`
	Enabled bool                   `yaml:"enabled"`
	Options map[string]interface{} `yaml:"options"`
}

var (
	bracedVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands ${VAR} and $VAR, leaving unknown variables untouched
func expandEnvVars(s string) string {
	s = bracedVar.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})

	return bareVar.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[1:]); val != "" {
			return val
		}
		return match
	})
}

// Defaults returns a config with every default applied and nothing loaded
func Defaults() *Config {
	config := &Config{}

	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 150 * time.Second
	config.Server.IdleTimeout = 60 * time.Second
	config.Server.MaxBodyBytes = 12 << 20
	config.Server.AllowedOrigins = []string{"*"}

	config.LLM.Provider = "claude"
	config.LLM.Model = "claude-3-7-sonnet-latest"
	config.LLM.MaxTokens = 4096
	config.LLM.Temperature = 0.1
	config.LLM.Timeout = 60 * time.Second
	config.LLM.RateLimit = 60
	config.LLM.Burst = 5

	config.OCR.Timeout = 60 * time.Second
	config.OCR.MaxFileSize = 10 << 20
	config.OCR.PreferTextLayer = true

	config.Storage.Region = "blr1"
	config.Storage.BucketName = "docsense-reports"

	config.Flows.SessionTTL = 2 * time.Hour
	config.Flows.CleanupInterval = 10 * time.Minute

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.Timeout = 5 * time.Second
	config.Redis.KeyPrefix = "docsense"
	config.Redis.CacheTTL = 24 * time.Hour

	config.Policy = policy.Default()

	return config
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := Defaults()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := config.parseYAML(data); err != nil {
				return nil, err
			}
		}
	}

	config.loadFromEnv()

	if err := config.Policy.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// parseYAML decodes the file over the defaults. The policy block is decoded
// separately and merged so a partial block does not zero the rest.
func (c *Config) parseYAML(data []byte) error {
	content := []byte(expandEnvVars(string(data)))

	defaults := c.Policy
	if err := yaml.Unmarshal(content, c); err != nil {
		return err
	}

	var overrides struct {
		Policy policy.Policy `yaml:"policy"`
	}
	if err := yaml.Unmarshal(content, &overrides); err != nil {
		return err
	}
	c.Policy = defaults.Merge(overrides.Policy)

	return nil
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

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if timeout := os.Getenv("LLM_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.LLM.Timeout = d
		}
	}

	if rateLimit := os.Getenv("LLM_RATE_LIMIT"); rateLimit != "" {
		if n, err := strconv.Atoi(rateLimit); err == nil {
			c.LLM.RateLimit = n
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if ocrURL := os.Getenv("OCR_SERVICE_URL"); ocrURL != "" {
		c.OCR.ServiceURL = ocrURL
	}

	if ocrKey := os.Getenv("OCR_API_KEY"); ocrKey != "" {
		c.OCR.APIKey = ocrKey
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
		c.Redis.Enabled = true
	}

	if redisEnabled := os.Getenv("REDIS_ENABLED"); redisEnabled != "" {
		c.Redis.Enabled = redisEnabled == "true" || redisEnabled == "1"
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if bucketURL := os.Getenv("BUCKET_URL"); bucketURL != "" {
		c.Storage.BucketURL = bucketURL
	}

	if cdnEndpoint := os.Getenv("BUCKET_CDN_ENDPOINT"); cdnEndpoint != "" {
		c.Storage.CDNEndpoint = cdnEndpoint
	}

	if accessKeyID := os.Getenv("BUCKET_ACCESS_KEY_ID"); accessKeyID != "" {
		c.Storage.AccessKeyID = accessKeyID
	}

	if accessKeySecret := os.Getenv("BUCKET_ACCESS_KEY_SECRET"); accessKeySecret != "" {
		c.Storage.AccessKeySecret = accessKeySecret
	}

	if region := os.Getenv("BUCKET_REGION"); region != "" {
		c.Storage.Region = region
	}

	if bucketName := os.Getenv("BUCKET_NAME"); bucketName != "" {
		c.Storage.BucketName = bucketName
	}

	if ttl := os.Getenv("FLOW_SESSION_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Flows.SessionTTL = d
		}
	}

	if gap := os.Getenv("POLICY_GAP_DAYS"); gap != "" {
		if n, err := strconv.Atoi(gap); err == nil && n > 0 {
			c.Policy.GapDays = n
		}
	}

	c.loadLoggingAdapterEnvVars()
}

// loadLoggingAdapterEnvVars loads environment variables for logging adapters
func (c *Config) loadLoggingAdapterEnvVars() {
	for i := range c.Logging.Adapters {
		adapter := &c.Logging.Adapters[i]

		switch adapter.Type {
		case "file":
			if path := os.Getenv("LOG_FILE_PATH"); path != "" {
				if adapter.Options == nil {
					adapter.Options = make(map[string]interface{})
				}
				adapter.Options["file_path"] = path
			}
		}
	}
}
