package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/datacentricdesign/dcd-auth/internal/app"
	"github.com/datacentricdesign/dcd-auth/internal/scopes"
)

func newScopesCmd(cfgPath *string) *cobra.Command {
	scopesCmd := &cobra.Command{Use: "scopes", Short: "Catálogo de scopes"}

	var file, out string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los scopes conocidos (archivo --file, SCOPES_FILE o embebido)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := file
			if path == "" && *cfgPath != "" {
				cfg, err := loadConfig(*cfgPath)
				if err != nil {
					return err
				}
				path = cfg.Consent.ScopesFile
			}
			if path == "" {
				path = envOr("SCOPES_FILE", "")
			}
			cat, err := app.LoadScopes(path)
			if err != nil {
				return err
			}
			return printScopes(cmd.OutOrStdout(), cat, out)
		},
	}
	listCmd.Flags().StringVar(&file, "file", "", "Catálogo YAML/JSON a listar")
	listCmd.Flags().StringVar(&out, "out", "text", "Formato de salida: json|text")

	scopesCmd.AddCommand(listCmd)
	return scopesCmd
}

func printScopes(w io.Writer, cat *scopes.Catalog, format string) error {
	ds := cat.DescribeAll(cat.IDs())
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ds)
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
		for _, d := range ds {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name, d.Description)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("--out inválido %q (json|text)", format)
	}
}
