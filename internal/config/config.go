package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 客户端配置
type Config struct {
	Player    PlayerConfig  `yaml:"player"`
	Transport string        `yaml:"transport"` // redis | ws
	Redis     RedisConfig   `yaml:"redis"`
	Relay     RelayConfig   `yaml:"relay"`
	Catchup   CatchupConfig `yaml:"catchup"`
}

// PlayerConfig 玩家配置
type PlayerConfig struct {
	Name string `yaml:"name"`
}

// RedisConfig Redis 信道配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// RelayConfig WebSocket 中继配置
type RelayConfig struct {
	URL string `yaml:"url"`
}

// CatchupConfig 入桌追赶策略：每轮等待 wait 秒（线性回退），
// 最多 attempts 轮
type CatchupConfig struct {
	Attempts int `yaml:"attempts"`
	Wait     int `yaml:"wait"` // 秒
}

// WaitDuration 返回单轮等待时长
func (c *CatchupConfig) WaitDuration() time.Duration {
	return time.Duration(c.Wait) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Transport == "" {
		cfg.Transport = "redis"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Relay.URL == "" {
		cfg.Relay.URL = "ws://localhost:1780"
	}
	if cfg.Catchup.Attempts == 0 {
		cfg.Catchup.Attempts = 5
	}
	if cfg.Catchup.Wait == 0 {
		cfg.Catchup.Wait = 2
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Transport: "redis",
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Relay: RelayConfig{
			URL: "ws://localhost:1780",
		},
		Catchup: CatchupConfig{
			Attempts: 5,
			Wait:     2,
		},
	}
}
