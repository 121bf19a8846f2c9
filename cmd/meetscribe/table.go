package main

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"meetscribe/internal/outputs"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func tableStyle() table.Style {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return table.StyleRounded
	}
	return table.StyleLight
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(tableStyle())

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
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

func reportTable(report *outputs.Report) string {
	rows := make([][]string, 0, report.Total)
	for _, success := range report.Successful {
		rows = append(rows, []string{success.Format, "success", success.Artifact})
	}
	for _, failure := range report.Failed {
		rows = append(rows, []string{failure.Format, "failed", failure.Err.Error()})
	}
	for _, skip := range report.Skipped {
		rows = append(rows, []string{skip.Format, "skipped", skip.Reason})
	}
	return renderTable(
		[]string{"Format", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
}
