package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableColumn describes one column. Colour, when set, returns the ANSI
// colour for a cell value, or "" to leave it plain.
type tableColumn struct {
	Title  string
	Align  columnAlignment
	Colour func(value string) string
}

// dayColumns lay out per-date outcomes for run reports and history.
var dayColumns = []tableColumn{
	{Title: "Date"},
	{Title: "Outcome", Colour: outcomeColour},
	{Title: "Commits", Align: alignRight},
	{Title: "Detail"},
}

// renderTable draws rows under columns. Header titles keep their case; rows
// shorter than the column list are padded with empty cells.
func renderTable(columns []tableColumn, rows [][]string, colorize bool) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.Title
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		}
		if col.Align == alignRight {
			configs[i].Align = text.AlignRight
		}
		if colorize && col.Colour != nil {
			configs[i].Transformer = colourTransformer(col.Colour)
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

func colourTransformer(pick func(string) string) text.Transformer {
	return func(val any) string {
		s, _ := val.(string)
		if colour := pick(s); colour != "" {
			return colour + s + ansiReset
		}
		return s
	}
}
