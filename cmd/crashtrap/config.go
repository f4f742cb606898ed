package main

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/crashtrap/crashtrap/sigtrap"
)

const (
	configDirName  = ".crashtrap"
	configFileName = "config.yaml"
	reportDirName  = "reports"
)

// Config is the CLI-side configuration. The engine itself takes no
// files; everything here feeds options or the report sink.
type Config struct {
	Signals    []string `yaml:"signals,omitempty"`
	MaxFrames  int      `yaml:"max_frames,omitempty"`
	BufferSize int      `yaml:"buffer_size,omitempty"`
	ReportDir  string   `yaml:"report_dir,omitempty"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		MaxFrames:  sigtrap.DefaultMaxFrames,
		BufferSize: sigtrap.DefaultBufferSize,
	}
	for _, sig := range sigtrap.DefaultSignals {
		cfg.Signals = append(cfg.Signals, sigtrap.Describe(sig).Name)
	}
	if home, err := homedir.Dir(); err == nil {
		cfg.ReportDir = filepath.Join(home, configDirName, reportDirName)
	}
	return cfg
}

// LoadConfig reads baseDir/config.yaml over the defaults. A missing
// file is not an error; a malformed one is.
func LoadConfig(baseDir string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(baseDir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SignalSet resolves the configured signal names. Unknown names are an
// error here, at the edge, rather than silently dropped.
func (c *Config) SignalSet() ([]syscall.Signal, error) {
	set := make([]syscall.Signal, 0, len(c.Signals))
	for _, name := range c.Signals {
		sig, ok := sigtrap.SignalByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown signal name %q", name)
		}
		set = append(set, sig)
	}
	return set, nil
}

func configDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}
