package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultTokenTTL           = 2 * time.Hour
	defaultPasswordScheme     = "bcrypt"
	defaultAIEndpoint         = "https://models.inference.ai.azure.com/chat/completions"
	defaultAIModel            = "gpt-4o-mini"
	defaultAIDomain           = "BCIT Assistant"
	defaultAITemperature      = 0.7
	defaultAIMaxTokens        = 1000
	defaultAITimeout          = 30 * time.Second
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// JWT holds the token signing key. An empty key is fatal at startup.
	JWT JWTConfig `json:"jwt" yaml:"jwt"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Seed configures the optional out-of-box user.
	Seed *SeedConfig `json:"seed" yaml:"seed"`

	// AI configures the chat-completion provider behind /api/ai.
	AI *AIConfig `json:"ai" yaml:"ai"`
}

// JWTConfig defines bearer token signing.
type JWTConfig struct {
	Key string        `json:"key" yaml:"key"`
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	// PasswordScheme is the scheme new digests are written with: bcrypt, argon2id or sha256.
	PasswordScheme string `json:"passwordScheme" yaml:"passwordScheme"`
	BcryptCost     int    `json:"bcryptCost" yaml:"bcryptCost"`
}

// SeedConfig defines the well-known user created once at startup.
type SeedConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Email     string `json:"email" yaml:"email"`
	Password  string `json:"password" yaml:"password"`
}

// AIConfig defines the hosted chat-completion provider.
type AIConfig struct {
	Endpoint     string        `json:"endpoint" yaml:"endpoint"`
	Model        string        `json:"model" yaml:"model"`
	Token        string        `json:"token" yaml:"token"`
	SystemPrompt string        `json:"systemPrompt" yaml:"systemPrompt"`
	Domain       string        `json:"domain" yaml:"domain"`
	Temperature  float64       `json:"temperature" yaml:"temperature"`
	MaxTokens    int           `json:"maxTokens" yaml:"maxTokens"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// IsDevelopment reports whether the process runs in a local/development environment.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Env.Env)) {
	case "local", "development", "dev":
		return true
	default:
		return false
	}
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			if filepath.IsAbs(path) {
				searchPaths = append(searchPaths, path)

				continue
			}
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// JWT_KEY -> jwt.key, AI_SYSTEMPROMPT -> ai.systemPrompt
			key := canonicalizeEnvKey(k, existingConfigMap)
			if _, isSection := existingConfigMap[key].(map[string]any); isSection {
				// A bare ENV or HTTP variable must not replace a whole section.
				return "", nil
			}

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.JWT.TTL <= 0 {
		c.JWT.TTL = defaultTokenTTL
	}

	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if strings.TrimSpace(c.Auth.PasswordScheme) == "" {
		c.Auth.PasswordScheme = defaultPasswordScheme
	}

	if c.AI == nil {
		c.AI = &AIConfig{}
	}
	if c.AI.Endpoint == "" {
		c.AI.Endpoint = defaultAIEndpoint
	}
	if c.AI.Model == "" {
		c.AI.Model = defaultAIModel
	}
	if c.AI.Domain == "" {
		c.AI.Domain = defaultAIDomain
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = defaultAITemperature
	}
	if c.AI.MaxTokens <= 0 {
		c.AI.MaxTokens = defaultAIMaxTokens
	}
	if c.AI.Timeout <= 0 {
		c.AI.Timeout = defaultAITimeout
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
