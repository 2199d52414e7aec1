package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sniff/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sniff",
	Short: "Coding standard checker and fixer for PHP sources",
	Long: `sniff tokenizes PHP files, runs the Symfony3 coding standard checks over
the token stream and can rewrite files until no fixable violation is left`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareRun,
}

// exitError ends the process with code without printing anything more.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// main регистрирует команды и флаги, затем выполняет root command.
// Любая ошибка даёт код выхода 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(checksCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("config", "", "config file (default: nearest sniff.toml or .sniff.yaml)")
	pf.Int("max-violations", 0, "maximum number of violations per file (0 = config value)")
	pf.String("trace", "", "trace output path (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := runRoot(ctx)
	stop()
	if err == nil {
		return
	}
	var ee *exitError
	if !errors.As(err, &ee) {
		fmt.Fprintf(os.Stderr, "sniff: %v\n", err)
		dumpTrace(os.Stderr)
		os.Exit(1)
	}
	os.Exit(ee.code)
}

func runRoot(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			dumpTrace(os.Stderr)
			runCleanup()
			panic(r)
		}
	}()
	err = rootCmd.ExecuteContext(ctx)
	runCleanup()
	return err
}

// cleanups are registered by prepareRun and run once after the command.
var cleanups []func()

func runCleanup() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

func prepareRun(cmd *cobra.Command, _ []string) error {
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopTrace)

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProf)
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
