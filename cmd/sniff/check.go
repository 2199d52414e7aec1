package main

import (
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"sniff/internal/diag"
	"sniff/internal/diagfmt"
	"sniff/internal/driver"
	"sniff/internal/trace"
	"sniff/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.php|directory]",
	Short: "Report coding standard violations",
	Long:  `Check analyzes a PHP file or every matching file below a directory and reports violations without modifying anything`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0 = config or GOMAXPROCS)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	checkCmd.Flags().String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("source", true, "show the offending source line")
	checkCmd.Flags().Int("context", 0, "source lines shown before the offending one")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := targetArg(args)
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "sarif", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return err
	}
	showSource, err := cmd.Flags().GetBool("source")
	if err != nil {
		return fmt.Errorf("failed to get source flag: %w", err)
	}
	contextLines, err := cmd.Flags().GetInt("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	ctxLines, err := safecast.Conv[uint8](contextLines)
	if err != nil {
		return fmt.Errorf("invalid --context: %w", err)
	}

	cfg, err := loadConfig(g, target)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !noCache {
		cache, err = driver.OpenDiskCache("sniff")
		if err != nil {
			if !g.quiet {
				fmt.Fprintf(os.Stderr, "cache disabled: %v\n", err)
			}
			cache = nil
		}
	}

	ctx := cmd.Context()
	timer := g.timer()
	opts := driver.Options{
		Config: cfg,
		Jobs:   jobs,
		Cache:  cache,
		Tracer: trace.FromContext(ctx),
		Timer:  timer,
	}

	var res *driver.Result
	if format == "pretty" && shouldUseTUI(mode) {
		files, listErr := driver.ListFiles(target, cfg)
		if listErr != nil {
			return listErr
		}
		res, err = runWithUI("check", files, func(sink driver.ProgressSink) (*driver.Result, error) {
			opts.Progress = sink
			return driver.CheckPath(ctx, target, opts)
		})
	} else {
		res, err = driver.CheckPath(ctx, target, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	reports := fileReports(res)
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		popts := diagfmt.PrettyOpts{
			Color:      g.useColor(os.Stdout),
			Context:    ctxLines,
			PathMode:   pathMode,
			ShowSource: showSource,
		}
		if err := diagfmt.Pretty(out, reports, popts); err != nil {
			return err
		}
		if !g.quiet {
			if err := diagfmt.Summary(out, reports, popts); err != nil {
				return err
			}
		}
	case "json":
		if err := diagfmt.JSON(out, reports, diagfmt.JSONOpts{PathMode: pathMode}); err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "sniff",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
			Rules:          sarifRules(),
		}
		if err := diagfmt.Sarif(out, reports, meta); err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
	case "short":
		for _, f := range res.Files {
			if f.Err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", f.Path, f.Err)
				continue
			}
			if s := diag.FormatGolden(f.Report); s != "" {
				fmt.Fprintln(out, s)
			}
		}
	}

	if g.timings {
		printTimings(os.Stderr, timer)
	}
	if res.Failed() {
		return &exitError{code: 1}
	}
	return nil
}
