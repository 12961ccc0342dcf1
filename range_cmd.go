package main

import (
	"fmt"

	"github.com/pstuifzand/tui-vlist/internal/virtual"
	"github.com/spf13/cobra"
)

var rangeFlags struct {
	count      int
	itemHeight float64
	overscan   int
	scroll     float64
	viewport   float64
	rows       bool
}

// rangeCmd computes a visible range without a terminal
var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Print the visible range for a list geometry",
	Long: `Compute which items a virtualized list renders for the given item count,
item height, overscan, scroll offset and viewport height.

Example:
  vlist range --count 1000 --item-height 60 --overscan 5 --scroll 6000 --viewport 500`,
	Args: cobra.NoArgs,
	RunE: runRange,
}

func init() {
	flags := rangeCmd.Flags()
	flags.IntVar(&rangeFlags.count, "count", 0, "Number of items")
	flags.Float64Var(&rangeFlags.itemHeight, "item-height", 1, "Height of every item")
	flags.IntVar(&rangeFlags.overscan, "overscan", virtual.DefaultOverscan, "Items beyond each visible edge")
	flags.Float64Var(&rangeFlags.scroll, "scroll", 0, "Scroll offset")
	flags.Float64Var(&rangeFlags.viewport, "viewport", 0, "Viewport height")
	flags.BoolVar(&rangeFlags.rows, "rows", false, "Also print every row descriptor")
}

func runRange(cmd *cobra.Command, args []string) error {
	r, err := virtual.ComputeVisibleRange(rangeFlags.count, rangeFlags.itemHeight, rangeFlags.overscan,
		rangeFlags.scroll, rangeFlags.viewport)
	if err != nil {
		return err
	}
	m := virtual.ComputeLayoutMetrics(rangeFlags.count, rangeFlags.itemHeight, rangeFlags.overscan, r)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "range:        %d-%d (%d items)\n", r.StartIndex, r.EndIndex, r.Len())
	fmt.Fprintf(out, "total height: %g\n", m.TotalHeight)
	fmt.Fprintf(out, "top offset:   %g\n", m.TopOffset)
	if rangeFlags.rows {
		for _, row := range virtual.Rows(r, m) {
			fmt.Fprintf(out, "%d\t%g\n", row.Index, row.Top)
		}
	}
	return nil
}
