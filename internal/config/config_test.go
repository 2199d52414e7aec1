package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sniff/internal/config"
	"sniff/internal/diag"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func known(id string) bool {
	return id == "A.One" || id == "B.Two" || id == "C.Three"
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.TOMLName)
	write(t, path, `
jobs = 3

[ruleset]
disable = ["B.Two"]

[severity]
"A.One" = "warning"

[fix]
max_passes = 7
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(known); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Jobs != 3 || cfg.Fix.MaxPasses != 7 || !cfg.Fix.Enabled {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Files.Extensions) != 1 || cfg.Files.Extensions[0] != ".php" {
		t.Fatalf("default extensions lost: %v", cfg.Files.Extensions)
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if !opts.Enabled("A.One") || opts.Enabled("B.Two") || !opts.Enabled("C.Three") {
		t.Fatalf("enabled filter wrong")
	}
	if opts.Severity["A.One"] != diag.SevWarning || opts.MaxPasses != 7 {
		t.Fatalf("options not resolved: %+v", opts)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.YAMLName)
	write(t, path, `
ruleset:
  enable: [A.One, C.Three]
files:
  extensions: [".php", ".inc"]
  exclude: ["*.tpl.php"]
fix:
  enabled: false
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Fix.Enabled {
		t.Fatalf("fix should be disabled")
	}
	if cfg.Fix.MaxPasses != 50 {
		t.Fatalf("max passes default lost: %d", cfg.Fix.MaxPasses)
	}
	if !cfg.Enabled("C.Three") || cfg.Enabled("B.Two") {
		t.Fatalf("enable list ignored")
	}
	if !cfg.Matches("src/a.inc") || cfg.Matches("src/a.js") || cfg.Matches("views/page.tpl.php") {
		t.Fatalf("file matching wrong")
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "a", config.TOMLName)
	write(t, tomlPath, "[ruleset]\nenabel = [\"A.One\"]\n")
	if _, err := config.Load(tomlPath); err == nil || !strings.Contains(err.Error(), "enabel") {
		t.Fatalf("want unknown key error, got %v", err)
	}
	yamlPath := filepath.Join(dir, "b", config.YAMLName)
	write(t, yamlPath, "jobz: 2\n")
	if _, err := config.Load(yamlPath); err == nil {
		t.Fatalf("want unknown field error")
	}
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Severity = map[string]string{"A.One": "loud"}
	if err := cfg.Validate(known); err == nil {
		t.Fatalf("bad severity accepted")
	}
	cfg = config.Default()
	cfg.Ruleset.Disable = []string{"Z.Unknown"}
	if err := cfg.Validate(known); err == nil || !strings.Contains(err.Error(), "Z.Unknown") {
		t.Fatalf("unknown check accepted: %v", err)
	}
	cfg = config.Default()
	cfg.Fix.MaxPasses = -1
	if err := cfg.Validate(known); err == nil {
		t.Fatalf("negative max_passes accepted")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, config.TOMLName), "jobs = 2\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Discover(nested)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if cfg.Jobs != 2 || cfg.Path != filepath.Join(root, config.TOMLName) {
		t.Fatalf("wrong config found: %+v", cfg)
	}
}

func TestHashIgnoresOrderAndPath(t *testing.T) {
	a := config.Default()
	a.Ruleset.Disable = []string{"A.One", "B.Two"}
	b := config.Default()
	b.Ruleset.Disable = []string{"B.Two", "A.One"}
	b.Path = "/somewhere/sniff.toml"
	b.Jobs = 8
	ha, err := a.Hash()
	if err != nil {
		t.Fatal(err)
	}
	hb, err := b.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Fatalf("hash depends on order or path")
	}
	b.Fix.MaxPasses = 3
	if hc, _ := b.Hash(); hc == ha {
		t.Fatalf("hash ignores max_passes")
	}
}
