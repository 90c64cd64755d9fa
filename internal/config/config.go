// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/csheth/polyglot/internal/lang"
)

// DefaultBackendURL is the origin of the translation service when nothing
// else is configured.
const DefaultBackendURL = "http://127.0.0.1:5000"

// Config holds every knob the client exposes. Flags in cmd/polyglot override
// whatever the environment provides.
type Config struct {
	BackendURL     string        `env:"POLYGLOT_BACKEND_URL"`
	SourceLang     string        `env:"POLYGLOT_SOURCE_LANG"     envDefault:"en"`
	TargetLang     string        `env:"POLYGLOT_TARGET_LANG"     envDefault:"fr"`
	DarkMode       bool          `env:"POLYGLOT_DARK_MODE"`
	LogFile        string        `env:"POLYGLOT_LOG_FILE"        envDefault:"polyglot.log"`
	PDFDir         string        `env:"POLYGLOT_PDF_DIR"         envDefault:"."`
	RequestTimeout time.Duration `env:"POLYGLOT_REQUEST_TIMEOUT" envDefault:"0s"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given key/value pairs instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	return cfg, nil
}

// Validate checks the values that would otherwise only fail at request time.
func (c Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.BackendURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("backend url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("backend url %q: scheme must be http or https", c.BackendURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("backend url %q: missing host", c.BackendURL))
	}
	if _, err := lang.Parse(c.SourceLang); err != nil {
		errs = append(errs, fmt.Errorf("source language: %w", err))
	}
	if _, err := lang.Parse(c.TargetLang); err != nil {
		errs = append(errs, fmt.Errorf("target language: %w", err))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// Languages returns the parsed source and target codes. Call Validate first.
func (c Config) Languages() (lang.Code, lang.Code) {
	src, err := lang.Parse(c.SourceLang)
	if err != nil {
		src = lang.English
	}
	tgt, err := lang.Parse(c.TargetLang)
	if err != nil {
		tgt = lang.French
	}
	return src, tgt
}
