package litterbox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/keshon/litterbox/internal/fsio"
)

// DefaultConfigFile is the config file the CLI looks for when -c is not given.
const DefaultConfigFile = ".litterbox.yml"

// Config controls what a Detector protects and what it is allowed to overlook.
type Config struct {
	// Root is the directory tree to protect. Defaults to the process
	// working directory at validation time.
	Root string `yaml:"root"`

	// Ignore lists entries exempt from detection: bare names match any
	// path segment, everything else is a git-style glob pattern.
	Ignore []string `yaml:"ignore"`

	// Trace enables fsnotify-based recording of transient paths, i.e.
	// files created and removed within a single test.
	Trace bool `yaml:"trace"`
}

var (
	errRootMissing = errors.New("root directory does not exist")
	errRootNotDir  = errors.New("root path is not a directory")
)

// DefaultConfig returns a config protecting the working directory.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads and validates a yaml config file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the given config file, or DefaultConfigFile if
// path is empty and one exists in the working directory, or a default
// config otherwise. The result is not yet validated; flag overrides may
// still be applied before Validate runs.
func LoadConfigOrDefault(path string) (*Config, error) {
	if path == "" {
		if !fsio.Exists(DefaultConfigFile) {
			return DefaultConfig(), nil
		}
		path = DefaultConfigFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return decode(f)
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

// Validate fills in defaults and checks that the root exists and is a
// directory. Nothing can be protected otherwise, so this is fatal to the
// whole session.
func (c *Config) Validate() error {
	if c.Root == "" {
		wd, err := fsio.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		c.Root = wd
	}
	c.Root = filepath.Clean(c.Root)

	fi, err := fsio.Stat(c.Root)
	if err != nil {
		if fsio.IsNotExist(err) {
			return fmt.Errorf("%w: %s", errRootMissing, c.Root)
		}
		return fmt.Errorf("stat root: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", errRootNotDir, c.Root)
	}

	return nil
}
