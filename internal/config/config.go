package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const dirName = ".dalign"

// Global configuration structure.
type Global struct {
	SimilarityThreshold float64  `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	OutlierDeviation    float64  `mapstructure:"outlier_deviation" yaml:"outlier_deviation"`
	MADThreshold        float64  `mapstructure:"mad_threshold" yaml:"mad_threshold"`
	Delimiter           string   `mapstructure:"delimiter" yaml:"delimiter"`
	JSONOrient          string   `mapstructure:"json_orient" yaml:"json_orient"`
	ExtraStopwords      []string `mapstructure:"extra_stopwords" yaml:"extra_stopwords"`
	ProjectsDir         string   `mapstructure:"projects_dir" yaml:"projects_dir"`
}

// DefaultPath returns ~/.dalign/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dalign/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DALIGN")
	v.AutomaticEnv()

	v.SetDefault("similarity_threshold", 0.4)
	v.SetDefault("outlier_deviation", 2.0)
	v.SetDefault("mad_threshold", 3.5)
	v.SetDefault("delimiter", "")
	v.SetDefault("json_orient", "records")
	v.SetDefault("extra_stopwords", []string{})
	v.SetDefault("projects_dir", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine; a malformed one is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ProjectsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.ProjectsDir = filepath.Join(home, dirName, "projects")
	}
	return &c, nil
}
