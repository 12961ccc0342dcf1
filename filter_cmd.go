package main

import (
	"github.com/pstuifzand/tui-vlist/internal/export"
	"github.com/pstuifzand/tui-vlist/internal/model"
	"github.com/pstuifzand/tui-vlist/internal/search"
	"github.com/pstuifzand/tui-vlist/internal/storage"
	"github.com/spf13/cobra"
)

var filterFlags struct {
	format    string
	fields    string
	substring bool
	rank      bool
}

// filterCmd runs a query over a file without opening the viewer
var filterCmd = &cobra.Command{
	Use:   "filter file [query]",
	Short: "Print the items of a file that match a query",
	Long: `Load a file the way the viewer does, apply a query and print the matching
items. Queries use the same syntax as "/" in the viewer.

Formats: lines, markdown, fields (tab separated), json, jsonl.
Fields: index, source_index, id, text, detail.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFilter,
}

func init() {
	flags := filterCmd.Flags()
	flags.StringVar(&filterFlags.format, "format", "lines", "Output format")
	flags.StringVar(&filterFlags.fields, "fields", "", "Comma separated fields for fields, json and jsonl")
	flags.BoolVar(&filterFlags.substring, "substring", false, "Match words as substrings instead of fuzzy")
	flags.BoolVar(&filterFlags.rank, "rank", false, "Order fuzzy matches by distance")
}

func runFilter(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(filterFlags.format)
	if err != nil {
		return err
	}

	collection, err := storage.Load(args[0])
	if err != nil {
		return err
	}

	var query string
	if len(args) > 1 {
		query = args[1]
	}

	var indices []int
	if filterFlags.rank && query != "" {
		indices = search.Rank(collection, query)
	} else {
		mode := search.ModeFuzzy
		if filterFlags.substring {
			mode = search.ModeSubstring
		}
		if indices, err = search.Run(collection, query, mode); err != nil {
			return err
		}
	}

	wr := export.Writer{Format: format, Fields: export.ParseFields(filterFlags.fields)}
	return wr.Write(cmd.OutOrStdout(), model.NewView(collection, indices))
}
