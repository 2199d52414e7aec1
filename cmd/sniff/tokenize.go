package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sniff/internal/diagfmt"
	"sniff/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.php",
	Short: "Tokenize a PHP source file",
	Long:  `Tokenize prints the token stream the checks operate on`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Tokenize(filePath)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Ошибки лексера в stderr, токены всё равно печатаем
	if result.Err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filePath, result.Err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Err != nil {
		return &exitError{code: 1}
	}
	return nil
}
