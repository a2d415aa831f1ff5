package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
)

// FormatCatalog lists every program with its exercise and set totals.
func FormatCatalog(programs []catalog.Program) string {
	rows := make([][]string, 0, len(programs))
	for _, p := range programs {
		sets := 0
		for _, e := range p.Exercises {
			sets += e.Sets
		}
		rows = append(rows, []string{
			TypeBadge(p.Type),
			string(p.Kind),
			strconv.Itoa(len(p.Exercises)),
			strconv.Itoa(sets),
		})
	}
	return Header("Programmes") + "\n" +
		RenderTable([]string{"Type", "Genre", "Exercices", "Séries"}, rows)
}

// FormatProgram renders one program the way a session sheet reads: warm-ups,
// exercises with their set counts, then the finisher.
func FormatProgram(p catalog.Program) string {
	var b strings.Builder
	if len(p.Warmups) > 0 {
		b.WriteString(StyleHeader.Render("Échauffement"))
		b.WriteString("\n")
		for _, w := range p.Warmups {
			fmt.Fprintf(&b, "  • %s\n", w.Label)
		}
	}
	if len(p.Exercises) > 0 {
		b.WriteString(StyleHeader.Render("Exercices"))
		b.WriteString("\n")
		for _, e := range p.Exercises {
			fmt.Fprintf(&b, "  • %s %s\n", e.Name, Dim(fmt.Sprintf("- %d séries", e.Sets)))
		}
	} else if p.Kind == catalog.KindCrossFit {
		b.WriteString(Dim("Séance libre: " + strings.Join(catalog.WODFormats, ", ")))
		b.WriteString("\n")
	}
	if p.Finisher.Name != "" {
		b.WriteString(StyleHeader.Render("Finisher"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  • %s\n", p.Finisher.Label)
	}
	return RenderBox(p.Type, strings.TrimRight(b.String(), "\n"))
}
