// Package config loads the site configuration consumed by the serving and
// export binaries.
//
// The configuration is a YAML file fixed at deploy time. Once loaded it is
// immutable; components receive the values they need explicitly instead of
// reading ambient globals.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/pollenlabs/wayfind/pkg/locale"
)

var (
	ErrNoLocales  = errors.New("config: at least one locale is required")
	ErrBadLocale  = errors.New("config: invalid locale code")
	ErrNoVariants = errors.New("config: variant list cannot contain empty identifiers")
)

// Publish configures the S3-compatible target the exported site is
// uploaded to.
type Publish struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	PathStyle bool   `yaml:"path_style"`
	Prefix    string `yaml:"prefix"`
}

// Site is the full site configuration. Locales are ordered with the
// default first, matching the locale.Set contract.
type Site struct {
	SiteName    string        `yaml:"site_name"`
	Description string        `yaml:"description"`
	BaseURL     string        `yaml:"base_url"`
	Locales     []string      `yaml:"locales"`
	Variants    []string      `yaml:"variants"`
	ShareAPI    string        `yaml:"share_api"`
	ImageBase   string        `yaml:"image_base"`
	RedisAddr   string        `yaml:"redis_addr"`
	DatabaseURL string        `yaml:"database_url"`
	SentryDSN   string        `yaml:"sentry_dsn"`
	Environment string        `yaml:"environment"`
	Delay       time.Duration `yaml:"redirect_delay"`
	ContentDir  string        `yaml:"content_dir"`
	OutputDir   string        `yaml:"output_dir"`
	Publish     Publish       `yaml:"publish"`
}

// Load reads and validates the site configuration at path.
func Load(path string) (Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates raw YAML configuration bytes.
func Parse(data []byte) (Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return Site{}, fmt.Errorf("config: parse: %w", err)
	}

	if len(site.Locales) == 0 {
		return Site{}, ErrNoLocales
	}
	for i, code := range site.Locales {
		code = strings.ToLower(strings.TrimSpace(code))
		if _, err := language.Parse(code); err != nil {
			return Site{}, fmt.Errorf("%w: %q: %w", ErrBadLocale, code, err)
		}
		site.Locales[i] = code
	}
	for _, v := range site.Variants {
		if strings.TrimSpace(v) == "" {
			return Site{}, ErrNoVariants
		}
	}

	if site.Environment == "" {
		site.Environment = "production"
	}
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")
	site.ImageBase = strings.TrimRight(site.ImageBase, "/")

	return site, nil
}

// LocaleSet builds the supported locale set, default first.
// Duplicate codes in the configuration surface here as an error.
func (s Site) LocaleSet() (locale.Set, error) {
	return locale.NewSet(s.Locales[0], s.Locales[1:]...)
}
