package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
	alignCenter
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) {
			switch aligns[i] {
			case alignRight:
				align = text.AlignRight
			case alignCenter:
				align = text.AlignCenter
			}
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// painter colours status cells when writing to a terminal.
type painter struct {
	enabled bool
}

func (p painter) paint(value string, colors text.Colors) string {
	if !p.enabled || value == "" {
		return value
	}
	return colors.Sprint(value)
}

func (p painter) keep(value string) string {
	return p.paint(value, text.Colors{text.FgGreen, text.Bold})
}

func (p painter) remove(value string) string {
	return p.paint(value, text.Colors{text.FgRed, text.Bold})
}

func (p painter) heading(value string) string {
	return p.paint(value, text.Colors{text.FgCyan, text.Bold})
}

func (p painter) warn(value string) string {
	return p.paint(value, text.Colors{text.FgYellow})
}
