package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sniff/internal/diagfmt"
	"sniff/internal/driver"
	"sniff/internal/trace"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file.php|directory]",
	Short: "Rewrite files until no fixable violation is left",
	Long: `Fix runs the checks repeatedly, applying the proposed changes after each
pass, and writes the result back. Line endings and a byte order mark are kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "print a unified diff instead of writing files")
	fixCmd.Flags().Int("max-passes", 0, "maximum fixer passes per file (0 = config value)")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers (0 = config or GOMAXPROCS)")
	fixCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	fixCmd.Flags().Int("diff-context", diagfmt.DefaultDiffContext, "unchanged lines around each diff hunk")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := targetArg(args)
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	maxPasses, err := cmd.Flags().GetInt("max-passes")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	diffContext, err := cmd.Flags().GetInt("diff-context")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(g, target)
	if err != nil {
		return err
	}
	if maxPasses < 0 {
		return fmt.Errorf("--max-passes must not be negative")
	}
	if maxPasses > 0 {
		cfg.Fix.MaxPasses = maxPasses
	}

	ctx := cmd.Context()
	timer := g.timer()
	opts := driver.Options{
		Config: cfg,
		Jobs:   jobs,
		DryRun: dryRun,
		Tracer: trace.FromContext(ctx),
		Timer:  timer,
	}

	var res *driver.Result
	if !dryRun && shouldUseTUI(mode) {
		files, listErr := driver.ListFiles(target, cfg)
		if listErr != nil {
			return listErr
		}
		res, err = runWithUI("fix", files, func(sink driver.ProgressSink) (*driver.Result, error) {
			opts.Progress = sink
			return driver.FixPath(ctx, target, opts)
		})
	} else {
		res, err = driver.FixPath(ctx, target, opts)
	}
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	failed, err := reportFixes(cmd.OutOrStdout(), os.Stderr, res, g, dryRun, diffContext)
	if err != nil {
		return err
	}
	if g.timings {
		printTimings(os.Stderr, timer)
	}
	if failed {
		return &exitError{code: 1}
	}
	return nil
}

// reportFixes prints diffs or written files to out and problems plus the
// violations left after fixing to errOut. It reports whether any file
// failed or did not converge.
func reportFixes(out, errOut io.Writer, res *driver.Result, g globalOptions, dryRun bool, diffContext int) (bool, error) {
	failed := false
	fixed := 0
	for _, f := range res.Files {
		switch {
		case f.Err != nil:
			failed = true
			fmt.Fprintf(errOut, "%s: error %v\n", f.Path, f.Err)
			continue
		case !f.Converged:
			failed = true
			if f.Passes > 0 {
				fmt.Fprintf(errOut, "%s: fixes did not converge after %d passes\n", f.Path, f.Passes)
			}
		}
		if !f.Changed() {
			continue
		}
		fixed++
		if dryRun {
			d, err := diagfmt.Diff(filepath.ToSlash(f.Path), f.Original, f.Fixed, diffContext)
			if err != nil {
				return failed, fmt.Errorf("diff %s: %w", f.Path, err)
			}
			if _, err := io.WriteString(out, d); err != nil {
				return failed, err
			}
			continue
		}
		if f.Written && !g.quiet {
			fmt.Fprintf(out, "fixed %s (%d changes, %d passes)\n", f.Path, f.Applied, f.Passes)
		}
	}

	if g.quiet {
		return failed, nil
	}
	reports := fileReports(res)
	for i := range reports {
		// ошибки загрузки уже напечатаны выше
		reports[i].Err = nil
	}
	popts := diagfmt.PrettyOpts{Color: g.useColor(os.Stderr), PathMode: diagfmt.PathModeAuto}
	if err := diagfmt.Pretty(errOut, reports, popts); err != nil {
		return failed, err
	}
	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	fmt.Fprintf(errOut, "%s %d of %d files; remaining: ", verb, fixed, len(res.Files))
	return failed, diagfmt.Summary(errOut, reports, popts)
}
