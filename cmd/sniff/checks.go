package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"sniff/internal/config"
	"sniff/internal/diag"
	"sniff/internal/rules"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the available checks",
	Long:  `Checks lists every check in the catalog with its default severity and whether the current config enables it`,
	Args:  cobra.NoArgs,
	RunE:  runChecks,
}

func init() {
	checksCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type checkEntry struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Fixable     bool   `json:"fixable"`
	Enabled     bool   `json:"enabled"`
}

func runChecks(cmd *cobra.Command, _ []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	cfg, err := loadConfig(g, ".")
	if err != nil {
		return err
	}

	entries := catalogEntries(cfg)
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "pretty":
		return renderChecksTable(out, entries, g.useColor(os.Stdout))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func catalogEntries(cfg *config.Config) []checkEntry {
	defs := rules.Catalog()
	entries := make([]checkEntry, 0, len(defs))
	for _, d := range defs {
		sev := d.Severity
		if parsed, err := diag.ParseSeverity(cfg.Severity[d.ID]); err == nil {
			sev = parsed
		}
		entries = append(entries, checkEntry{
			ID:          d.ID,
			Description: d.Description,
			Severity:    sev.Label(),
			Fixable:     d.Fixable,
			Enabled:     cfg.Enabled(d.ID),
		})
	}
	return entries
}

func renderChecksTable(w io.Writer, entries []checkEntry, colored bool) error {
	header := lipgloss.NewStyle().Bold(true)
	off := lipgloss.NewStyle().Faint(true)
	if !colored {
		header = lipgloss.NewStyle()
		off = lipgloss.NewStyle()
	}
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("CHECK", "SEVERITY", "FIX", "ON", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			// строка 0 это заголовок
			if row == 0 {
				return header
			}
			if row > 0 && row <= len(entries) && !entries[row-1].Enabled {
				return off
			}
			return lipgloss.NewStyle()
		})
	for _, e := range entries {
		t.Row(e.ID, e.Severity, yesNo(e.Fixable), yesNo(e.Enabled), e.Description)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
