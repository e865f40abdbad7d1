package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	// DefaultProfile is the profile used when none is requested.
	DefaultProfile = "DEFAULT"

	defaultPath = "~/.oci/config"
)

var (
	// ErrConfigNotFound is returned when the OCI config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidConfig is returned when the OCI config file cannot be used.
	ErrInvalidConfig = errors.New("invalid config")
)

var fingerprintPattern = regexp.MustCompile(`^([0-9a-f]{2}:){15}[0-9a-f]{2}$`)

// Config holds the credentials of one OCI config file profile.
type Config struct {
	Profile        string
	UserID         string
	TenancyID      string
	KeyFingerprint string
	PrivateKeyPath string
	Region         string
}

// Location returns the config file path and profile to use. Explicit values
// win over OCI_CONFIG_FILE and OCI_CONFIG_PROFILE, which win over the defaults.
func Location(path, profile string, env *Env) (string, string) {
	if path == "" {
		path = env.Get("OCI_CONFIG_FILE")
	}
	if path == "" {
		path = defaultPath
	}
	if profile == "" {
		profile = env.Get("OCI_CONFIG_PROFILE")
	}
	if profile == "" {
		profile = DefaultProfile
	}
	return path, profile
}

// Load reads and validates a profile from the OCI config file at path.
// Keys missing from the profile fall back to the DEFAULT section.
func Load(path, profile string) (*Config, error) {
	path, err := ExpandHomePath(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading %s: %v", ErrInvalidConfig, path, err)
	}

	section, err := file.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: profile %s not found in %s", ErrInvalidConfig, profile, path)
	}
	fallback := file.Section(DefaultProfile)

	value := func(key string) string {
		if section.HasKey(key) {
			return strings.TrimSpace(section.Key(key).String())
		}
		return strings.TrimSpace(fallback.Key(key).String())
	}

	cfg := &Config{
		Profile:        profile,
		UserID:         value("user"),
		TenancyID:      value("tenancy"),
		KeyFingerprint: value("fingerprint"),
		PrivateKeyPath: value("key_file"),
		Region:         value("region"),
	}

	if cfg.PrivateKeyPath != "" {
		cfg.PrivateKeyPath, err = ExpandHomePath(cfg.PrivateKeyPath)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every key the signer and client need is present and well formed.
func (c *Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"user", c.UserID},
		{"fingerprint", c.KeyFingerprint},
		{"key_file", c.PrivateKeyPath},
		{"tenancy", c.TenancyID},
		{"region", c.Region},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is not set in profile %s", ErrInvalidConfig, r.key, c.Profile)
		}
	}

	if !strings.HasPrefix(c.UserID, "ocid1.") {
		return fmt.Errorf("%w: user %q is not an OCID", ErrInvalidConfig, c.UserID)
	}
	if !strings.HasPrefix(c.TenancyID, "ocid1.") {
		return fmt.Errorf("%w: tenancy %q is not an OCID", ErrInvalidConfig, c.TenancyID)
	}
	if !fingerprintPattern.MatchString(c.KeyFingerprint) {
		return fmt.Errorf("%w: malformed fingerprint %q", ErrInvalidConfig, c.KeyFingerprint)
	}
	return nil
}

// ExpandHomePath expands a leading ~/ to the user's home directory.
func ExpandHomePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
