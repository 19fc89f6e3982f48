package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Contact  ContactConfig  `mapstructure:"contact"`
	Reveal   RevealConfig   `mapstructure:"reveal"`
	Content  ContentConfig  `mapstructure:"content"`
	Privacy  PrivacyConfig  `mapstructure:"privacy"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release or test
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string { return ":" + s.Port }

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// UsingDefaults reports whether the development credentials are still in place.
func (a AdminConfig) UsingDefaults() bool {
	return a.Username == defaultAdminUsername || a.Password == defaultAdminPassword
}

type ContactConfig struct {
	Delay time.Duration `mapstructure:"delay"` // simulated submission latency
}

// RevealConfig is the timing of the counter and skill-bar animations.
type RevealConfig struct {
	Steps           int           `mapstructure:"steps"`
	AboutDuration   time.Duration `mapstructure:"about_duration"`
	AboutThreshold  float64       `mapstructure:"about_threshold"`
	SkillsDuration  time.Duration `mapstructure:"skills_duration"`
	SkillsThreshold float64       `mapstructure:"skills_threshold"`
}

type ContentConfig struct {
	File string `mapstructure:"file"` // empty means the embedded dictionary
}

type PrivacyConfig struct {
	Retention time.Duration `mapstructure:"retention"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", Mode: "debug"},
		Database: DatabaseConfig{Path: "codebrain.db"},
		Admin:    AdminConfig{Username: defaultAdminUsername, Password: defaultAdminPassword},
		Contact:  ContactConfig{Delay: 2 * time.Second},
		Reveal: RevealConfig{
			Steps:           60,
			AboutDuration:   2000 * time.Millisecond,
			AboutThreshold:  0.3,
			SkillsDuration:  1500 * time.Millisecond,
			SkillsThreshold: 0.2,
		},
		Privacy: PrivacyConfig{Retention: 365 * 24 * time.Hour},
		Logging: LoggingConfig{Level: "INFO", Format: "text"},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing priority. With an empty path it looks for
// config.yaml in the working directory and tolerates its absence; an
// explicit path must exist. Variables use the CODEBRAIN_ prefix
// (CODEBRAIN_REVEAL_STEPS); PORT, ADMIN_USERNAME and ADMIN_PASSWORD are
// honoured as well.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CODEBRAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "CODEBRAIN_SERVER_PORT", "PORT")
	_ = v.BindEnv("admin.username", "CODEBRAIN_ADMIN_USERNAME", "ADMIN_USERNAME")
	_ = v.BindEnv("admin.password", "CODEBRAIN_ADMIN_PASSWORD", "ADMIN_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("admin.username", d.Admin.Username)
	v.SetDefault("admin.password", d.Admin.Password)
	v.SetDefault("contact.delay", d.Contact.Delay)
	v.SetDefault("reveal.steps", d.Reveal.Steps)
	v.SetDefault("reveal.about_duration", d.Reveal.AboutDuration)
	v.SetDefault("reveal.about_threshold", d.Reveal.AboutThreshold)
	v.SetDefault("reveal.skills_duration", d.Reveal.SkillsDuration)
	v.SetDefault("reveal.skills_threshold", d.Reveal.SkillsThreshold)
	v.SetDefault("content.file", d.Content.File)
	v.SetDefault("privacy.retention", d.Privacy.Retention)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Validate rejects settings the server cannot start with. Reveal timing is
// checked again by the reveal package when groups are built.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("config: server.port is required")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if c.Database.Path == "" {
		return errors.New("config: database.path is required")
	}
	if c.Contact.Delay < 0 {
		return fmt.Errorf("config: contact.delay %s must not be negative", c.Contact.Delay)
	}
	if c.Reveal.Steps <= 0 {
		return fmt.Errorf("config: reveal.steps %d must be > 0", c.Reveal.Steps)
	}
	if c.Reveal.AboutDuration <= 0 || c.Reveal.SkillsDuration <= 0 {
		return errors.New("config: reveal durations must be > 0")
	}
	for name, d := range map[string]time.Duration{
		"about_duration":  c.Reveal.AboutDuration,
		"skills_duration": c.Reveal.SkillsDuration,
	} {
		if d/time.Duration(c.Reveal.Steps) <= 0 {
			return fmt.Errorf("config: reveal.%s %s is shorter than %d steps", name, d, c.Reveal.Steps)
		}
	}
	for name, th := range map[string]float64{
		"about_threshold":  c.Reveal.AboutThreshold,
		"skills_threshold": c.Reveal.SkillsThreshold,
	} {
		if !(th > 0 && th <= 1) {
			return fmt.Errorf("config: reveal.%s %v must be in (0, 1]", name, th)
		}
	}
	if c.Privacy.Retention <= 0 {
		return fmt.Errorf("config: privacy.retention %s must be > 0", c.Privacy.Retention)
	}
	return nil
}
