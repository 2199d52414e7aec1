package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sniff/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the result cache used by check",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached check result",
	Args:  cobra.NoArgs,
	RunE:  runCacheClean,
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}

func runCacheClean(cmd *cobra.Command, _ []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	cache, err := driver.OpenDiskCache("sniff")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clean cache: %w", err)
	}
	if !g.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
	}
	return nil
}
