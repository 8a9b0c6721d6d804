package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Chunk       ChunkConfig       `yaml:"chunk"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Search      SearchConfig      `yaml:"search"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
	Redis       RedisConfig       `yaml:"redis"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	Provider   string `yaml:"provider"` // openai 或 anthropic
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	Timeout    int    `yaml:"timeout"` // 单次调用超时，秒
	MaxRetries int    `yaml:"max_retries"`
}

// ChunkConfig 文本分块配置
type ChunkConfig struct {
	MaxLength int `yaml:"max_length"`
}

// FetchConfig 正文抓取配置
type FetchConfig struct {
	Timeout int `yaml:"timeout"` // 秒
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS     int `yaml:"qps"`
	RPM     int `yaml:"rpm"`
	Workers int `yaml:"workers"` // 单篇文档分块分析的并发数
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Driver   string `yaml:"driver"` // postgres 或 sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Path     string `yaml:"path"` // sqlite 文件路径
}

// DSN 返回 database/sql 使用的连接串
func (c DBConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// RedisConfig 结果缓存配置，Host 为空时不启用
type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	TTL  int    `yaml:"ttl"` // 秒
}

// Addr 返回 redis 地址
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

const (
	defaultProvider   = "openai"
	defaultModel      = "gpt-4o-mini"
	defaultLLMTimeout = 60
	defaultMaxRetries = 3
	defaultMaxLength  = 3000
	defaultFetch      = 30
	defaultWorkers    = 3
	defaultQPS        = 3
	defaultRPM        = 60
	defaultSQLitePath = "competitor_radar.db"
	defaultRedisPort  = 6379
	defaultRedisTTL   = 24 * 60 * 60
)

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// .env 不存在时忽略
	_ = godotenv.Load()
	ApplyEnv(&cfg)
	ApplyDefaults(&cfg)

	return &cfg, nil
}

// ApplyEnv 用环境变量补全未配置的密钥
func ApplyEnv(cfg *Config) {
	if cfg.LLM.APIKey == "" {
		switch strings.ToLower(cfg.LLM.Provider) {
		case "anthropic":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	if cfg.Search.Tavily.APIKey == "" {
		cfg.Search.Tavily.APIKey = os.Getenv("TAVILY_API_KEY")
	}
}

// ApplyDefaults 填充默认值
func ApplyDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = defaultProvider
	}
	if cfg.LLM.Model == "" && cfg.LLM.Provider == defaultProvider {
		cfg.LLM.Model = defaultModel
	}
	if cfg.LLM.Timeout <= 0 {
		cfg.LLM.Timeout = defaultLLMTimeout
	}
	if cfg.LLM.MaxRetries <= 0 {
		cfg.LLM.MaxRetries = defaultMaxRetries
	}
	if cfg.Chunk.MaxLength <= 0 {
		cfg.Chunk.MaxLength = defaultMaxLength
	}
	if cfg.Fetch.Timeout <= 0 {
		cfg.Fetch.Timeout = defaultFetch
	}
	if cfg.Concurrency.Workers <= 0 {
		cfg.Concurrency.Workers = defaultWorkers
	}
	if cfg.Concurrency.QPS <= 0 {
		cfg.Concurrency.QPS = defaultQPS
	}
	if cfg.Concurrency.RPM <= 0 {
		cfg.Concurrency.RPM = defaultRPM
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = "sqlite"
	}
	if cfg.DB.Driver == "sqlite" && cfg.DB.Path == "" {
		cfg.DB.Path = defaultSQLitePath
	}
	if cfg.Redis.Host != "" && cfg.Redis.Port == 0 {
		cfg.Redis.Port = defaultRedisPort
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = defaultRedisTTL
	}
}
