package console

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Alignment is the horizontal alignment of a table column
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes a table column
type Column struct {
	Header string
	Align  Alignment
	Color  text.Color
}

// RenderTable renders rows under the given columns with an optional title
func (p *Printer) RenderTable(title string, columns []Column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Title.Format = text.FormatDefault
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		align := text.AlignLeft
		if col.Align == AlignRight {
			align = text.AlignRight
		}
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		}
		if p.color && col.Color != 0 {
			cfg.Colors = text.Colors{col.Color}
		}
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// PrintTable renders and prints a table
func (p *Printer) PrintTable(title string, columns []Column, rows [][]string) {
	if rendered := p.RenderTable(title, columns, rows); rendered != "" {
		p.Println(rendered)
	}
}
