// cmd/codectl/resolve.go
package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/pressart/storefront-api/internal/domain/preview"
	"github.com/spf13/cobra"
)

func resolveCmd() *cobra.Command {
	var (
		prefix string
		asJSON bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [code...]",
		Short: "Resolve item codes to preview image paths",
		Long: `Resolve item codes such as COLLAGE-004 to the image the storefront shows.

Examples:
  codectl resolve COLLAGE-004 PAINTINGS-012
  codectl resolve SPACE-1 --prefix https://cdn.example.com/Images --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := preview.NewResolver(prefix)
			images, missing := resolver.ResolveAll(args)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if missing == nil {
					missing = []string{}
				}
				if err := enc.Encode(map[string]interface{}{"images": images, "missing": missing}); err != nil {
					return err
				}
			} else {
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, image := range images {
					fmt.Fprintf(w, "%s\t%s\n", image.SourceCode, image.Path)
				}
				for _, code := range missing {
					fmt.Fprintf(w, "%s\t(no image)\n", code)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if strict && len(missing) > 0 {
				return fmt.Errorf("%d code(s) could not be resolved", len(missing))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "image URL prefix (default /Images)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any code cannot be resolved")

	return cmd
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the known item code categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tDIRECTORY\tEXAMPLE")
			for _, info := range preview.NewResolver("").Categories() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Key, info.Directory, info.Example)
			}
			return w.Flush()
		},
	}
}
