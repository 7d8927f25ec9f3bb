package matrix

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Fprint writes m under the given label, one table row per matrix row.
func Fprint(w io.Writer, m *Matrix, name string) {
	fmt.Fprintf(w, "%s:\n", name)
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetAutoWrapText(false)
	table.SetColumnSeparator(",")
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i := 0; i < m.n; i++ {
		row := m.Row(i)
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strconv.FormatInt(int64(v), 10)
		}
		table.Append(cells)
	}
	table.Render()
}
