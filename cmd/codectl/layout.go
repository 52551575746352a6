// cmd/codectl/layout.go
package main

import (
	"encoding/json"

	"github.com/pressart/storefront-api/internal/domain/widget"
	"github.com/spf13/cobra"
)

func layoutCmd() *cobra.Command {
	var (
		req      widget.LayoutRequest
		x, y     float64
		hasPoint bool
	)
	opts := widget.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the floating widget geometry for a viewport",
		Long: `Compute where the floating cart trigger sits and where its panel opens.

Examples:
  codectl layout --width 1280 --height 800
  codectl layout --width 1000 --height 800 --x 700 --y 5 --released`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hasPoint = cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
			if hasPoint {
				req.Trigger = &widget.Point{X: x, Y: y}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(opts.Compute(req))
		},
	}

	cmd.Flags().Float64Var(&req.Viewport.Width, "width", 1280, "viewport width")
	cmd.Flags().Float64Var(&req.Viewport.Height, "height", 800, "viewport height")
	cmd.Flags().Float64Var(&x, "x", 0, "trigger left edge (default initial position)")
	cmd.Flags().Float64Var(&y, "y", 0, "trigger top edge (default initial position)")
	cmd.Flags().BoolVar(&req.Released, "released", false, "snap the trigger as if a drag just ended")
	cmd.Flags().Float64Var(&req.Panel.Width, "panel-width", 0, "measured panel width")
	cmd.Flags().Float64Var(&req.Panel.Height, "panel-height", 0, "measured panel height")
	cmd.Flags().Float64Var(&opts.ControlSize, "control-size", opts.ControlSize, "trigger size")
	cmd.Flags().Float64Var(&opts.SnapMargin, "snap-margin", opts.SnapMargin, "edge margin after a drag")
	cmd.Flags().Float64Var(&opts.PanelMargin, "panel-margin", opts.PanelMargin, "gap between trigger, panel and viewport")

	return cmd
}
