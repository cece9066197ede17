package dirmerklehash

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the dmhash configuration
type Config struct {
	configPath string
	ini        *ini.File
}

// OutputConfig represents output format configuration
type OutputConfig struct {
	Format string // Default output format: human
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // Default verbose level (0=quiet, 1=basic, 2=detailed, 3=trace)
	Debug string // Default debug flags (comma-separated)
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	HashWorkers   int    // Number of concurrent hash workers (default: 0 = logical CPU count)
	MmapThreshold string // File size at which hashing switches to mmap (default: "1M")
}

// LoadConfig loads configuration from the given file path. A missing file
// yields in-memory defaults; the file is never created automatically, since
// writing a config file into the tree being hashed would change its digest.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{
		configPath: configPath,
	}

	if configPath == "" {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		return cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		return cfg, nil
	}

	iniFile, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.ini = iniFile

	return cfg, nil
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	outputSection, err := c.ini.NewSection("output")
	if err != nil {
		return fmt.Errorf("failed to create output section: %w", err)
	}
	if _, err = outputSection.NewKey("format", "human"); err != nil {
		return fmt.Errorf("failed to set default output format: %w", err)
	}

	verboseSection, err := c.ini.NewSection("verbose")
	if err != nil {
		return fmt.Errorf("failed to create verbose section: %w", err)
	}
	if _, err = verboseSection.NewKey("level", "0"); err != nil {
		return fmt.Errorf("failed to set default verbose level: %w", err)
	}
	if _, err = verboseSection.NewKey("debug", ""); err != nil {
		return fmt.Errorf("failed to set default debug flags: %w", err)
	}

	performanceSection, err := c.ini.NewSection("performance")
	if err != nil {
		return fmt.Errorf("failed to create performance section: %w", err)
	}
	if _, err = performanceSection.NewKey("hash_workers", "0"); err != nil {
		return fmt.Errorf("failed to set default hash workers: %w", err)
	}
	if _, err = performanceSection.NewKey("mmap_threshold", "1M"); err != nil {
		return fmt.Errorf("failed to set default mmap threshold: %w", err)
	}

	return nil
}

// Save writes the configuration to its file path
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("no config file path set")
	}
	return c.ini.SaveTo(c.configPath)
}

// GetOutputConfig returns the output configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	outputConfig := &OutputConfig{
		Format: "human", // fallback default
	}

	if c.ini.HasSection("output") {
		section := c.ini.Section("output")
		if section.HasKey("format") {
			outputConfig.Format = section.Key("format").String()
		}
	}

	return outputConfig
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{
		Level: 0,  // fallback default
		Debug: "", // fallback default
	}

	if c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
		if section.HasKey("debug") {
			verboseConfig.Debug = section.Key("debug").String()
		}
	}

	return verboseConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		HashWorkers:   0,    // fallback default - logical CPU count
		MmapThreshold: "1M", // fallback default - matches LargeFileThreshold
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if section.HasKey("hash_workers") {
			if workers, err := section.Key("hash_workers").Int(); err == nil {
				performanceConfig.HashWorkers = workers
			}
		}
		if section.HasKey("mmap_threshold") {
			performanceConfig.MmapThreshold = section.Key("mmap_threshold").String()
		}
	}

	return performanceConfig
}

// ApplyOverrides applies key:value override strings from the command line.
// Keys are routed to their section by name: "level" and "debug" to
// [verbose], "format" to [output], "hash_workers" and "mmap_threshold" to
// [performance].
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format (expected key:value): %s", override)
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		var sectionName string
		switch key {
		case "level", "debug":
			sectionName = "verbose"
		case "format":
			sectionName = "output"
		case "hash_workers", "mmap_threshold":
			sectionName = "performance"
		default:
			return fmt.Errorf("unknown config override key: %s", key)
		}

		section, err := c.ini.NewSection(sectionName)
		if err != nil {
			return fmt.Errorf("failed to access %s section: %w", sectionName, err)
		}
		if _, err := section.NewKey(key, value); err != nil {
			return fmt.Errorf("failed to set override %s: %w", override, err)
		}
	}

	return nil
}
