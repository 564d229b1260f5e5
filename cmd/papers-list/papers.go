// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Read papers from the collection through the cache",
	Long: `Papers reads the configured Zotero collection the same way the HTTP API
does: cached values are used while they are younger than cache.ttl, and
fresh upstream results are written back to the store.`,
}

var papersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the papers in the collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newStack(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		list, err := rt.service(cfg).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing papers: %w", err)
		}
		format, _ := cmd.Flags().GetString("format")
		return writeOutput(os.Stdout, format, list)
	},
}

var papersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one paper with its notes and tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newStack(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		detail, err := rt.service(cfg).Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetching paper %s: %w", args[0], err)
		}
		if detail == nil {
			return fmt.Errorf("paper %s not found", args[0])
		}
		format, _ := cmd.Flags().GetString("format")
		return writeOutput(os.Stdout, format, detail)
	},
}

// writeOutput encodes v to w as "json" (indented) or "yaml".
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q: use json or yaml", format)
	}
}

func init() {
	papersCmd.PersistentFlags().String("format", "json", "output format: json or yaml")
	papersCmd.AddCommand(papersListCmd, papersGetCmd)
	rootCmd.AddCommand(papersCmd)
}
