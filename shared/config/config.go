package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/itchan-dev/postadmin/shared/utils"
	"gopkg.in/yaml.v2"
)

const (
	defaultPort            = "8081"
	defaultRequestTimeout  = 10 * time.Second
	defaultInitialLoadWait = 2 * time.Second
	defaultSessionTTL      = 12 * time.Hour
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Port              string        `yaml:"port"`
	APIBaseURL        string        `yaml:"api_base_url" validate:"required,url"`
	RequestTimeout    time.Duration `yaml:"request_timeout" validate:"gte=0"`
	InitialLoadWait   time.Duration `yaml:"initial_load_wait" validate:"gte=0"`
	RefreshInterval   time.Duration `yaml:"refresh_interval" validate:"gte=0"` // 0 disables background refresh
	SessionTTL        time.Duration `yaml:"session_ttl" validate:"omitempty,gte=1s"`
	SecureCookies     bool          `yaml:"secure_cookies"`
	LogLevel          string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogJSON           bool          `yaml:"log_json"`
	TemplatesDir      string        `yaml:"templates_dir"` // read templates from disk instead of the embedded set
	DescriptionMaxLen int           `yaml:"description_max_len" validate:"gte=0"`
}

type Private struct {
	APIToken string `yaml:"api_token"`
}

func (c *Config) APIToken() string {
	return c.private.APIToken
}

func (p *Public) applyDefaults() {
	if p.Port == "" {
		p.Port = defaultPort
	}
	if p.RequestTimeout == 0 {
		p.RequestTimeout = defaultRequestTimeout
	}
	if p.InitialLoadWait == 0 {
		p.InitialLoadWait = defaultInitialLoadWait
	}
	if p.SessionTTL == 0 {
		p.SessionTTL = defaultSessionTTL
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.UnmarshalStrict(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder.
// The PORT environment variable overrides the configured port.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	if port := os.Getenv("PORT"); port != "" {
		public.Port = port
	}
	public.applyDefaults()

	if err := utils.Validator().Struct(public); err != nil {
		panic("invalid public config: " + err.Error())
	}

	return &Config{public, private}
}
