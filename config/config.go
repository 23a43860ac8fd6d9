package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/PlakarLabs/hoard/compression"
	"github.com/PlakarLabs/hoard/hashing"
	"gopkg.in/yaml.v2"
)

var ErrUnknownParameter = errors.New("parameter not found")

type Configuration struct {
	Pile        string            `yaml:"pile"`
	Manifest    string            `yaml:"manifest"`
	Hashing     string            `yaml:"hashing"`
	CacheSize   int               `yaml:"cache_size"`
	Compression string            `yaml:"compression"`
	Trace       string            `yaml:"trace,omitempty"`
	Exports     map[string]string `yaml:"exports,omitempty"`
}

func Default() Configuration {
	return Configuration{
		Pile:        "pile",
		Manifest:    "manifest",
		Hashing:     hashing.DefaultAlgorithm(),
		CacheSize:   1024,
		Compression: "lz4",
		Exports:     make(map[string]string),
	}
}

func (c *Configuration) Validate() error {
	if c.Pile == "" {
		return errors.New("pile location is empty")
	}
	if hashing.GetHasher(c.Hashing) == nil {
		return fmt.Errorf("unsupported hashing algorithm %q", c.Hashing)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("negative cache size %d", c.CacheSize)
	}
	for _, method := range compression.Methods() {
		if method == c.Compression {
			return nil
		}
	}
	return fmt.Errorf("unsupported compression method %q", c.Compression)
}

type ConfigAPI struct {
	configFilePath string
	config         Configuration
}

func NewConfigAPI(filePath string) *ConfigAPI {
	return &ConfigAPI{
		configFilePath: filePath,
		config:         Default(),
	}
}

// Load reads the configuration file. A missing file yields the defaults.
func (c *ConfigAPI) Load() (Configuration, error) {
	if err := c.loadConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Configuration{}, err
	}
	if err := c.config.Validate(); err != nil {
		return Configuration{}, fmt.Errorf("%s: %w", c.configFilePath, err)
	}
	return c.config, nil
}

func (c *ConfigAPI) loadConfig() error {
	data, err := os.ReadFile(c.configFilePath)
	if err != nil {
		return err
	}
	c.config = Default()
	if err := yaml.Unmarshal(data, &c.config); err != nil {
		return err
	}
	if c.config.Exports == nil {
		c.config.Exports = make(map[string]string)
	}
	return nil
}

func (c *ConfigAPI) saveConfig() error {
	data, err := yaml.Marshal(c.config)
	if err != nil {
		return err
	}
	return os.WriteFile(c.configFilePath, data, 0600)
}

func (c *ConfigAPI) ListParameters() ([]string, error) {
	cfg, err := c.Load()
	if err != nil {
		return nil, err
	}
	ret := []string{
		"pile: " + cfg.Pile,
		"manifest: " + cfg.Manifest,
		"hashing: " + cfg.Hashing,
		"cache_size: " + strconv.Itoa(cfg.CacheSize),
		"compression: " + cfg.Compression,
		"trace: " + cfg.Trace,
	}
	exports := make([]string, 0, len(cfg.Exports))
	for name, location := range cfg.Exports {
		exports = append(exports, "exports."+name+": "+location)
	}
	sort.Strings(exports)
	return append(ret, exports...), nil
}

func (c *ConfigAPI) GetParameter(key string) (string, error) {
	if _, err := c.Load(); err != nil {
		return "", err
	}
	switch key {
	case "pile":
		return c.config.Pile, nil
	case "manifest":
		return c.config.Manifest, nil
	case "hashing":
		return c.config.Hashing, nil
	case "cache_size":
		return strconv.Itoa(c.config.CacheSize), nil
	case "compression":
		return c.config.Compression, nil
	case "trace":
		return c.config.Trace, nil
	}
	return "", fmt.Errorf("%s: %w", key, ErrUnknownParameter)
}

func (c *ConfigAPI) SetParameter(key string, value string) error {
	if err := c.loadConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	switch key {
	case "pile":
		c.config.Pile = value
	case "manifest":
		c.config.Manifest = value
	case "hashing":
		c.config.Hashing = value
	case "cache_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache_size: %w", err)
		}
		c.config.CacheSize = n
	case "compression":
		c.config.Compression = value
	case "trace":
		c.config.Trace = value
	default:
		return fmt.Errorf("%s: %w", key, ErrUnknownParameter)
	}
	if err := c.config.Validate(); err != nil {
		return err
	}
	return c.saveConfig()
}

func (c *ConfigAPI) GetExport(name string) (string, error) {
	if _, err := c.Load(); err != nil {
		return "", err
	}
	location, exists := c.config.Exports[name]
	if !exists {
		return "", fmt.Errorf("export %s: %w", name, ErrUnknownParameter)
	}
	return location, nil
}

func (c *ConfigAPI) SetExport(name string, location string) error {
	if err := c.loadConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	c.config.Exports[name] = location
	return c.saveConfig()
}
