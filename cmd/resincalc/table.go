package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

type tableData struct {
	headers []string
	rows    [][]string
	footer  []string
	aligns  []columnAlignment
}

func renderTable(data tableData, style table.Style) string {
	columns := len(data.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(style)

	tw.AppendHeader(toRow(data.headers, columns))
	for _, row := range data.rows {
		tw.AppendRow(toRow(row, columns))
	}
	if len(data.footer) > 0 {
		tw.AppendFooter(toRow(data.footer, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(data.aligns) && data.aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func toRow(values []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(values) {
			r[i] = values[i]
		} else {
			r[i] = ""
		}
	}
	return r
}

// tableStyle maps display.style onto a go-pretty style. Headers keep their
// case; bold is only applied when out is a terminal.
func tableStyle(name string, out io.Writer) table.Style {
	var style table.Style
	switch name {
	case "light":
		style = table.StyleLight
	case "ascii":
		style = table.StyleDefault
	default:
		style = table.StyleRounded
	}
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	if isTerminal(out) {
		style.Color.Header = text.Colors{text.Bold}
		style.Color.Footer = text.Colors{text.Bold}
	}
	return style
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
