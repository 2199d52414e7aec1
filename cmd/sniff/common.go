package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sniff/internal/config"
	"sniff/internal/diagfmt"
	"sniff/internal/driver"
	"sniff/internal/observ"
	"sniff/internal/rules"
)

type globalOptions struct {
	color         string
	quiet         bool
	timings       bool
	configPath    string
	maxViolations int
}

func readGlobals(cmd *cobra.Command) (globalOptions, error) {
	pf := cmd.Root().PersistentFlags()
	var g globalOptions
	var err error
	if g.color, err = pf.GetString("color"); err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch g.color {
	case "auto", "on", "off":
	default:
		return g, fmt.Errorf("invalid --color value %q (expected auto|on|off)", g.color)
	}
	if g.quiet, err = pf.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = pf.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.configPath, err = pf.GetString("config"); err != nil {
		return g, fmt.Errorf("failed to get config flag: %w", err)
	}
	if g.maxViolations, err = pf.GetInt("max-violations"); err != nil {
		return g, fmt.Errorf("failed to get max-violations flag: %w", err)
	}
	return g, nil
}

func (g globalOptions) useColor(f *os.File) bool {
	return g.color == "on" || (g.color == "auto" && isTerminal(f))
}

func (g globalOptions) timer() *observ.Timer {
	if !g.timings {
		return nil
	}
	return observ.NewTimer()
}

// loadConfig reads --config or the nearest config above target, then
// applies flag overrides and checks rule IDs against the catalog.
func loadConfig(g globalOptions, target string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.Load(g.configPath)
	} else {
		start := target
		if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
			start = filepath.Dir(target)
		}
		cfg, err = config.Discover(start)
	}
	if err != nil {
		return nil, err
	}
	if g.maxViolations > 0 {
		cfg.MaxViolations = g.maxViolations
	}
	known := func(id string) bool {
		_, ok := rules.Lookup(id)
		return ok
	}
	if err := cfg.Validate(known); err != nil {
		return nil, err
	}
	return cfg, nil
}

func targetArg(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "."
	}
	return args[0]
}

func fileReports(res *driver.Result) []diagfmt.FileReport {
	out := make([]diagfmt.FileReport, 0, len(res.Files))
	for _, f := range res.Files {
		out = append(out, diagfmt.FileReport{Path: f.Path, File: f.File, Report: f.Report, Err: f.Err})
	}
	return out
}

func sarifRules() []diagfmt.SarifRule {
	defs := rules.Catalog()
	out := make([]diagfmt.SarifRule, 0, len(defs))
	for _, d := range defs {
		out = append(out, diagfmt.SarifRule{ID: d.ID, Description: d.Description, Severity: d.Severity, Fixable: d.Fixable})
	}
	return out
}
