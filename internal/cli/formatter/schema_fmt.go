package formatter

import (
	"fmt"
	"strings"

	"github.com/djouu94/workout-tracker-v2/internal/repository"
)

// FormatSchema renders each table with its row count and columns.
func FormatSchema(tables []repository.TableInfo) string {
	var b strings.Builder
	for i, t := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", Header(fmt.Sprintf("%s (%d lignes)", t.Name, t.Rows)))
		rows := make([][]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			var flags []string
			if c.PrimaryKey {
				flags = append(flags, "PK")
			}
			if c.NotNull {
				flags = append(flags, "NOT NULL")
			}
			rows = append(rows, []string{c.Name, c.Type, Dim(strings.Join(flags, " "))})
		}
		b.WriteString(RenderTable([]string{"Colonne", "Type", ""}, rows))
	}
	return b.String()
}

// FormatDump renders raw table rows.
func FormatDump(d *repository.TableDump) string {
	if d == nil {
		return ""
	}
	if len(d.Rows) == 0 {
		return Header(d.Table) + "\n" + Dim("(vide)") + "\n"
	}
	return Header(d.Table) + "\n" + RenderTable(d.Columns, d.Rows)
}
