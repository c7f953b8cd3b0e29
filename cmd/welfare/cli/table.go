package cli

import (
	"fmt"
	"io"

	"github.com/SanteonNL/welfare/cmd/welfare/session"
	"github.com/SanteonNL/welfare/models/welfare"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// renderCodeTable prints the name and query parameter line, then the codes.
func renderCodeTable(out io.Writer, codes welfare.CodeTable) {
	fmt.Fprintf(out, "%s (%s)\n", codes.Name, codes.Param)
	t := newTable(out)
	t.AppendHeader(table.Row{"코드", "이름"})
	for _, c := range codes.Entries {
		value := c.Value
		if value == "" {
			value = "-"
		}
		t.AppendRow(table.Row{value, c.Label})
	}
	t.Render()
}

// renderState prints the records of the current page followed by the page notice.
func renderState(out io.Writer, s session.State) {
	notice := session.NoticeFor(s)
	if len(s.Records) > 0 {
		t := newTable(out)
		header := table.Row{}
		for _, c := range welfare.Columns() {
			header = append(header, c)
		}
		t.AppendHeader(header)
		for _, r := range s.Records {
			row := table.Row{}
			for _, v := range r.Values() {
				row = append(row, v)
			}
			t.AppendRow(row)
		}
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 3, WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		})
		t.SetCaption("%s · %s", notice.Text, navigationHint(s))
		t.Render()
		return
	}

	fmt.Fprintln(out, notice.Text)
	if notice.Detail != "" {
		fmt.Fprintln(out, notice.Detail)
	}
}

func navigationHint(s session.State) string {
	hint := fmt.Sprintf("%d페이지", s.Page())
	if s.CanPrev() {
		hint += " [p]이전"
	}
	if s.CanNext() {
		hint += " [n]다음"
	}
	if s.Variant != "" {
		hint += " via " + s.Variant
	}
	return hint
}
