package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var version = "dev"

// options are shared by every subcommand
type options struct {
	input  string
	format string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "analyzer",
		Short: "Offline product scoring",
		Long: `Analyzer runs the ProductLens scoring engine on JSON input without
starting the HTTP server.

Input is read from --input or stdin; results are written as JSON or YAML.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "json" && opts.format != "yaml" {
				return fmt.Errorf("unsupported format %q: must be json or yaml", opts.format)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.input, "input", "i", "-", "Input file, - for stdin")
	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "json", "Output format: json or yaml")

	cmd.AddCommand(newSentimentCommand(opts))
	cmd.AddCommand(newPerformanceCommand(opts))
	cmd.AddCommand(newHazardCommand(opts))
	cmd.AddCommand(newCompareCommand(opts))
	cmd.AddCommand(newHazardCompareCommand(opts))
	cmd.AddCommand(newChecklistCommand(opts))

	return cmd
}

// readInput decodes the JSON request from the input file or stdin
func readInput(cmd *cobra.Command, opts *options, dst any) error {
	var r io.Reader = cmd.InOrStdin()
	if opts.input != "-" && opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}
	return nil
}

// writeOutput prints v in the selected format. YAML output keeps the JSON
// field names.
func writeOutput(cmd *cobra.Command, opts *options, v any) error {
	out := cmd.OutOrStdout()

	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return enc.Close()
}
