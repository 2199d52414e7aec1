// Package config loads sniff.toml / .sniff.yaml and resolves them into
// engine options.
package config

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"sniff/internal/diag"
	"sniff/internal/engine"
)

const (
	TOMLName = "sniff.toml"
	YAMLName = ".sniff.yaml"
)

// Config mirrors the on-disk configuration file.
type Config struct {
	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-" yaml:"-"`

	Ruleset       Ruleset           `toml:"ruleset" yaml:"ruleset"`
	Severity      map[string]string `toml:"severity" yaml:"severity"`
	Fix           Fix               `toml:"fix" yaml:"fix"`
	Files         Files             `toml:"files" yaml:"files"`
	Jobs          int               `toml:"jobs" yaml:"jobs"`
	MaxViolations int               `toml:"max_violations" yaml:"max_violations"`
}

// Ruleset selects checks. An empty Enable list means every check.
type Ruleset struct {
	Enable  []string `toml:"enable" yaml:"enable"`
	Disable []string `toml:"disable" yaml:"disable"`
}

type Fix struct {
	Enabled   bool `toml:"enabled" yaml:"enabled"`
	MaxPasses int  `toml:"max_passes" yaml:"max_passes"`
}

type Files struct {
	Extensions []string `toml:"extensions" yaml:"extensions"`
	Exclude    []string `toml:"exclude" yaml:"exclude"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Fix:   Fix{Enabled: true, MaxPasses: engine.DefaultMaxPasses},
		Files: Files{Extensions: []string{".php"}},
	}
}

// Validate checks field ranges, severity names and that every referenced
// check ID is known.
func (c *Config) Validate(known func(id string) bool) error {
	where := c.Path
	if where == "" {
		where = "config"
	}
	if c.Fix.MaxPasses < 0 {
		return fmt.Errorf("%s: [fix].max_passes must be >= 0, got %d", where, c.Fix.MaxPasses)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%s: jobs must be >= 0, got %d", where, c.Jobs)
	}
	if c.MaxViolations < 0 {
		return fmt.Errorf("%s: max_violations must be >= 0, got %d", where, c.MaxViolations)
	}
	check := func(section, id string) error {
		if known != nil && !known(id) {
			return fmt.Errorf("%s: [%s] references unknown check %q", where, section, id)
		}
		return nil
	}
	for _, id := range c.Ruleset.Enable {
		if err := check("ruleset.enable", id); err != nil {
			return err
		}
	}
	for _, id := range c.Ruleset.Disable {
		if err := check("ruleset.disable", id); err != nil {
			return err
		}
	}
	for id, sev := range c.Severity {
		if err := check("severity", id); err != nil {
			return err
		}
		if _, err := diag.ParseSeverity(sev); err != nil {
			return fmt.Errorf("%s: [severity] %q: %w", where, id, err)
		}
	}
	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%s: [files].extensions entry %q must start with '.'", where, ext)
		}
	}
	return nil
}

// Enabled reports whether check id runs under this config.
func (c *Config) Enabled(id string) bool {
	if slices.Contains(c.Ruleset.Disable, id) {
		return false
	}
	return len(c.Ruleset.Enable) == 0 || slices.Contains(c.Ruleset.Enable, id)
}

// EngineOptions resolves the config into the engine's options.
// Tracing and timing are left to the caller.
func (c *Config) EngineOptions() (engine.Options, error) {
	opts := engine.Options{
		Enabled:       c.Enabled,
		MaxPasses:     c.Fix.MaxPasses,
		MaxViolations: c.MaxViolations,
	}
	if len(c.Severity) > 0 {
		opts.Severity = make(map[string]diag.Severity, len(c.Severity))
		for id, name := range c.Severity {
			sev, err := diag.ParseSeverity(name)
			if err != nil {
				return engine.Options{}, fmt.Errorf("severity for %s: %w", id, err)
			}
			opts.Severity[id] = sev
		}
	}
	return opts, nil
}

// Matches reports whether path should be analyzed.
func (c *Config) Matches(path string) bool {
	base := filepath.Base(path)
	for _, pat := range c.Files.Exclude {
		if ok, _ := filepath.Match(pat, base); ok {
			return false
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range c.Files.Extensions {
		if strings.ToLower(want) == ext {
			return true
		}
	}
	return false
}

// Hash fingerprints every setting that affects analysis results.
// Path is not part of it.
func (c *Config) Hash() ([32]byte, error) {
	canon := *c
	canon.Path = ""
	canon.Jobs = 0
	canon.Ruleset.Enable = sortedCopy(c.Ruleset.Enable)
	canon.Ruleset.Disable = sortedCopy(c.Ruleset.Disable)
	canon.Files.Extensions = sortedCopy(c.Files.Extensions)
	canon.Files.Exclude = sortedCopy(c.Files.Exclude)

	var buf bytes.Buffer
	// toml sorts map keys, so the encoding is canonical
	if err := toml.NewEncoder(&buf).Encode(canon); err != nil {
		return [32]byte{}, fmt.Errorf("encode config: %w", err)
	}
	return sha256.Sum256(buf.Bytes()), nil
}

func sortedCopy(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}
