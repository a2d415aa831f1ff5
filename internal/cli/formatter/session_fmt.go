package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/domain"
)

// FormatSessionList renders the history as one block per session, newest
// first, followed by any read warnings.
func FormatSessionList(views []domain.SessionView, warnings []string, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Historique"))
	b.WriteString("\n\n")

	if len(views) == 0 {
		b.WriteString(Dim("Aucune séance sur la période."))
		b.WriteString("\n")
	}
	for i, v := range views {
		if i > 0 {
			b.WriteString("\n")
		}
		writeSessionBlock(&b, v, now)
	}
	for _, w := range warnings {
		b.WriteString("\n")
		b.WriteString(Warning(w))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSessionDetail renders a single session with its id.
func FormatSessionDetail(v domain.SessionView, now time.Time) string {
	var b strings.Builder
	writeSessionBlock(&b, v, now)
	b.WriteString(Dim("id " + v.ID))
	b.WriteString("\n")
	return RenderBox(v.Type, b.String())
}

func writeSessionBlock(b *strings.Builder, v domain.SessionView, now time.Time) {
	fmt.Fprintf(b, "%s  %s  %s\n",
		TypeBadge(v.Type),
		Bold(HumanTimestamp(v.PerformedAt)),
		Dim("("+RelativeDateFrom(v.PerformedAt, now)+")"))
	writeSection(b, "Échauffement", v.DisplayWarmups)
	writeSection(b, "Exercices", v.DisplaySets)
	writeSection(b, "Finisher", v.DisplayFinishers)
	if v.Notes != "" {
		fmt.Fprintf(b, "  %s %s\n", Dim("Notes:"), v.Notes)
	}
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s\n", StyleHeader.Render(title))
	for _, l := range lines {
		fmt.Fprintf(b, "    • %s\n", l)
	}
}
