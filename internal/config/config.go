package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	WS     WSConfig     `yaml:"ws"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type DataConfig struct {
	// Dir is the data root holding defaults.yaml and tenant/<name>/items.yaml.
	Dir string `yaml:"dir"`
}

type WSConfig struct {
	// SendBuffer is the per-session outbound queue length. A session whose
	// queue fills up is treated as gone and pruned on the next broadcast.
	SendBuffer int `yaml:"send_buffer"`
	// AllowedOrigins restricts WebSocket upgrades. Empty means same-host
	// plus localhost.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Data: DataConfig{
			Dir: "data",
		},
		WS: WSConfig{
			SendBuffer: 64,
		},
	}
}

// Load reads the config file, applying defaults for unspecified fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
