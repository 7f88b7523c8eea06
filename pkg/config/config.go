// Package config loads dotkit's TOML configuration: the repository
// level dotkit.toml and per-package .dotkit.toml files.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Packages holds package discovery settings
type Packages struct {
	// Ignore lists directory names under the dotfiles root that are
	// never treated as packages.
	Ignore []string `toml:"ignore"`
}

// Symlink holds symlink-specific configuration
type Symlink struct {
	// ProtectedPaths defines home-relative paths that should never be
	// replaced by a link, not even with --force.
	ProtectedPaths []string `toml:"protected_paths"`
}

// Secrets holds secret resolution configuration
type Secrets struct {
	// Command is the vault CLI invocation used to resolve one
	// variable; the {name} placeholder is replaced with the variable
	// name. Example: ["op", "read", "op://Personal/{name}/password"]
	Command []string `toml:"command"`

	// Attempts is how often a failed vault invocation is retried
	// before the lookup is reported as failed.
	Attempts int `toml:"attempts"`
}

// Doctor holds validation configuration
type Doctor struct {
	// Tools lists executables whose presence the doctor verifies
	Tools []string `toml:"tools"`

	// Interval throttles scheduled doctor runs (Go duration string)
	Interval string `toml:"interval"`
}

// Config is the repository-level configuration from dotkit.toml
type Config struct {
	Packages Packages `toml:"packages"`
	Symlink  Symlink  `toml:"symlink"`
	Secrets  Secrets  `toml:"secrets"`
	Doctor   Doctor   `toml:"doctor"`
}

// PackageConfig is the per-package configuration from .dotkit.toml
type PackageConfig struct {
	// Root selects the target root: "home", "xdg" or "" (auto)
	Root string `toml:"root"`

	// Ignore lists package-relative patterns excluded from deployment
	Ignore []string `toml:"ignore"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Packages: Packages{
			Ignore: []string{".git", "docs"},
		},
		Symlink: Symlink{
			ProtectedPaths: []string{
				".ssh/authorized_keys",
				".ssh/id_rsa",
				".ssh/id_ed25519",
				".gnupg",
				".password-store",
				".aws/credentials",
				".kube/config",
			},
		},
		Secrets: Secrets{
			Attempts: 3,
		},
		Doctor: Doctor{
			Interval: "24h",
		},
	}
}

// Load reads the repository configuration file at path, layered over
// the defaults. A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
	}

	if cfg.Secrets.Attempts <= 0 {
		cfg.Secrets.Attempts = Default().Secrets.Attempts
	}

	return cfg, nil
}

// LoadPackageConfig reads a package's .dotkit.toml. A missing file
// yields the zero config.
func LoadPackageConfig(path string) (*PackageConfig, error) {
	cfg := &PackageConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read package config %s", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse package config %s", path)
	}

	switch cfg.Root {
	case "", "home", "xdg":
	default:
		return nil, errors.Newf(errors.ErrConfigParse,
			"invalid root %q in %s (want home, xdg or empty)", cfg.Root, path)
	}

	return cfg, nil
}

// CheckInterval parses the doctor throttle interval
func (c *Config) CheckInterval() time.Duration {
	d, err := time.ParseDuration(c.Doctor.Interval)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// IsProtectedPath checks if a home-relative path is protected from linking
func (c *Config) IsProtectedPath(relPath string) bool {
	for _, protected := range c.Symlink.ProtectedPaths {
		if relPath == protected || strings.HasPrefix(relPath, protected+"/") {
			return true
		}
	}
	return false
}
