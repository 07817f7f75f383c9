package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	WS     WSConfig     `yaml:"ws"`
	Log    LogConfig    `yaml:"log"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig TCP 服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr 返回监听地址
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WSConfig WebSocket 网关配置
type WSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"`
}

// GameConfig 游戏配置
type GameConfig struct {
	MinPlayers int `yaml:"min_players"` // 开局所需最少人数
}

// ValidatePort 校验端口号落在非特权范围内
func ValidatePort(port int) error {
	if port < 1024 || port > 65535 {
		return fmt.Errorf("port %d out of range [1024, 65535]", port)
	}
	return nil
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
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 12345
	}
	if err := ValidatePort(cfg.Server.Port); err != nil {
		return nil, err
	}
	if cfg.WS.Addr == "" {
		cfg.WS.Addr = "127.0.0.1:12346"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Game.MinPlayers == 0 {
		cfg.Game.MinPlayers = 2
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 12345,
		},
		WS: WSConfig{
			Enabled: false,
			Addr:    "127.0.0.1:12346",
		},
		Log: LogConfig{
			Level: "info",
		},
		Game: GameConfig{
			MinPlayers: 2,
		},
	}
}
