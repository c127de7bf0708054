package formatter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/younsl/awsinspector/internal/models"
)

const maxValueWidth = 100

// PrintDetails prints the described fields of one resource as a table
func PrintDetails(w io.Writer, fields []models.ResourceField) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"FIELD", "VALUE"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: text.Colors{text.Bold}},
		{Number: 2, WidthMax: maxValueWidth},
	})

	for _, f := range fields {
		t.AppendRow(table.Row{f.Field, formatValue(f)})
	}
	t.Render()
}

func formatValue(f models.ResourceField) string {
	switch f.Type {
	case models.FieldNumber:
		if n, err := strconv.ParseInt(f.Value, 10, 64); err == nil {
			return humanize.Comma(n)
		}
	case models.FieldARN:
		return truncateString(f.Value, maxValueWidth)
	case models.FieldLogGroup:
		if f.Value != "" && f.Value != "N/A" {
			return fmt.Sprintf("%s (log group)", f.Value)
		}
	}
	return f.Value
}
