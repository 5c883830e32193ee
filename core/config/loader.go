package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name looked up in the working
// directory and in the XDG config directory.
const DefaultConfigFile = AppName + ".yaml"

// EnvPrefix prefixes environment overrides, e.g. TITLECRAWL_MAX_PAGES.
const EnvPrefix = "TITLECRAWL"

// ErrConfigExists is returned by WriteDefault when the target exists and
// overwriting was not requested.
var ErrConfigExists = errors.New("configuration file already exists")

// FindConfigFile returns the config file to read:
//  1. configPath, if given (ErrConfigNotFound when it does not exist)
//  2. ./titlecrawl.yaml
//  3. $XDG_CONFIG_HOME/titlecrawl/titlecrawl.yaml
//
// An empty path with a nil error means no file was found.
func FindConfigFile(configPath string) (string, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
			}
			return "", err
		}
		return configPath, nil
	}

	candidates := []string{
		DefaultConfigFile,
		filepath.Join(xdg.ConfigHome, AppName, DefaultConfigFile),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", nil
}

// NewViper returns a viper instance that reads configFile (if non-empty)
// and TITLECRAWL_* environment variables, with the defaults registered.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}
	return v, nil
}

// Load decodes v over the defaults and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	cfg := NewConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see them during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	d := NewConfig()
	v.SetDefault("seed", d.Seed)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("headers", map[string]string{})
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("delay", d.Delay)
	v.SetDefault("max_pages", d.MaxPages)
	v.SetDefault("max_body_size", d.MaxBodySize)
	v.SetDefault("rate_limit.requests", d.RateLimit.Requests)
	v.SetDefault("rate_limit.window", d.RateLimit.Window)
	v.SetDefault("skip_static", d.SkipStaticAssets)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("output", d.OutputFile)
	v.SetDefault("format", d.Format)
	v.SetDefault("db", d.DBPath)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("log_json", d.LogJSON)
}

const defaultHeader = `# titlecrawl configuration.
# Every key can be overridden with a TITLECRAWL_ environment variable
# (e.g. TITLECRAWL_MAX_PAGES=50) or the matching crawl flag.
`

// WriteDefault writes the default configuration as YAML to path.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use -f to overwrite)", ErrConfigExists, path)
		}
	}

	body, err := yaml.Marshal(NewConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data := append([]byte(defaultHeader), body...)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
