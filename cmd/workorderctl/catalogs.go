package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	domain "github.com/maintenance/backend/internal/domain/workorder"
	"github.com/spf13/cobra"
)

func newCatalogsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "catalogs [name]",
		Short: "Print the allow-lists work order fields are checked against",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogs := domain.AllCatalogs()
			if len(args) == 1 {
				c, ok := domain.CatalogByName(args[0])
				if !ok {
					return fmt.Errorf("unknown catalog %q", args[0])
				}
				catalogs = []domain.Catalog{c}
			}

			if asJSON {
				out := make(map[string][]domain.Option, len(catalogs))
				for _, c := range catalogs {
					out[c.Name()] = c.Options()
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range catalogs {
				fmt.Fprintf(tw, "%s\n", c.Name())
				for _, o := range c.Options() {
					fmt.Fprintf(tw, "  %s\t%s\n", o.Value, o.Label)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
