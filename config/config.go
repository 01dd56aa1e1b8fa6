// Package config loads quench.yaml, the optional per-project settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quench-lang/quench/compiler"
)

// FileName is the settings file looked up by Find.
const FileName = "quench.yaml"

// NodeEnv overrides Run.Node when set.
const NodeEnv = "QUENCH_NODE"

type Config struct {
	Compiler CompilerConfig `yaml:"compiler"`
	Run      RunConfig      `yaml:"run"`
	Log      LogConfig      `yaml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

type CompilerConfig struct {
	Prefix  string `yaml:"prefix"`
	Runtime string `yaml:"runtime"`
	Entry   string `yaml:"entry"`
}

type RunConfig struct {
	Node string `yaml:"node"`
}

type LogConfig struct {
	Verbosity int    `yaml:"verbosity"`
	File      string `yaml:"file,omitempty"`
}

func Default() *Config {
	return &Config{
		Compiler: CompilerConfig{
			Prefix:  compiler.DefaultPrefix,
			Runtime: compiler.DefaultRuntime,
			Entry:   compiler.DefaultEntry,
		},
		Run: RunConfig{Node: "node"},
	}
}

// FromYAML parses data on top of the defaults, so omitted keys keep their
// default values.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads the file at path. An empty path searches upwards from the
// working directory with Find and falls back to the defaults when no file
// exists. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("working directory: %w", err)
		}
		path, err = Find(wd)
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			cfg.applyEnv()
			return cfg, nil
		}
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	cfg.applyEnv()
	return cfg, nil
}

// Find returns the nearest quench.yaml in dir or one of its parents.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("find %s: %w", FileName, fs.ErrNotExist)
		}
		dir = parent
	}
}

func (c *Config) applyEnv() {
	if node := os.Getenv(NodeEnv); node != "" {
		c.Run.Node = node
	}
}

// CompilerOptions converts the compiler section into compiler options.
func (c *Config) CompilerOptions() []compiler.Option {
	return []compiler.Option{
		compiler.WithPrefix(c.Compiler.Prefix),
		compiler.WithRuntime(c.Compiler.Runtime),
		compiler.WithEntry(c.Compiler.Entry),
	}
}
