package conf_manager

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"rds-mecr/decision_tree/conf/mine"
)

// ParamsTablePrint 以表格形式输出本次挖掘的参数
func ParamsTablePrint(w io.Writer, taskId string, params mine.Params) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetColumnConfigs([]table.ColumnConfig{{Name: "Parameter", Align: text.AlignCenter, AlignHeader: text.AlignCenter, WidthMin: 20},
		{Name: "Value", AlignHeader: text.AlignCenter, WidthMax: 70, WidthMin: 30}})
	t.SetTitle("MECR PARAMETER TABLE " + taskId)
	t.AppendHeader(table.Row{"Parameter", "Value"})
	t.AppendRows([]table.Row{
		{"min support", params.MinSupport},
		{"min confidence", params.MinConfidence},
		{"worker num", params.WorkerNum},
		{"suppress negations", params.SuppressNegations},
		{"allow partial", params.AllowPartial},
	})
	t.AppendSeparator()
	filter := params.Filter
	if filter == "" {
		filter = "/"
	}
	t.AppendRow(table.Row{"filter", filter})
	t.AppendRow(table.Row{"order", params.Order})
	t.AppendRow(table.Row{"graph", params.Graph})
	t.Render()
}
