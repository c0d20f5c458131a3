package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TransportConfig holds the NATS connection details shared by the monitor
// and the event producers.
type TransportConfig struct {
	NATSURL       string `yaml:"nats_url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// MonitorConfig holds the configuration for the reconciliation engine and
// its HTTP/WebSocket surface.
type MonitorConfig struct {
	ListenAddr   string `yaml:"listen_addr"`
	PacketWindow int    `yaml:"packet_window"`
	AlertWindow  int    `yaml:"alert_window"`
	LogWindow    int    `yaml:"log_window"`
}

// DigestConfig holds the configuration for the periodic alert digest.
type DigestConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Interval    string `yaml:"interval"`
	MinSeverity string `yaml:"min_severity"`
}

// SMTPConfig holds the email notifier settings.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	Digest    DigestConfig    `yaml:"digest"`
	SMTP      SMTPConfig      `yaml:"smtp"`
}

// LoadConfig reads the configuration from a YAML file and returns a Config
// struct with defaults applied for anything left unset.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Transport.NATSURL == "" {
		c.Transport.NATSURL = "nats://127.0.0.1:4222"
	}
	if c.Transport.SubjectPrefix == "" {
		c.Transport.SubjectPrefix = "gnw.events"
	}
	if c.Monitor.ListenAddr == "" {
		c.Monitor.ListenAddr = ":8080"
	}
	if c.Monitor.PacketWindow <= 0 {
		c.Monitor.PacketWindow = 100
	}
	if c.Monitor.AlertWindow <= 0 {
		c.Monitor.AlertWindow = 50
	}
	if c.Monitor.LogWindow <= 0 {
		c.Monitor.LogWindow = 50
	}
	if c.Digest.Interval == "" {
		c.Digest.Interval = "1m"
	}
	if c.Digest.MinSeverity == "" {
		c.Digest.MinSeverity = "high"
	}
}
