package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/domain"
)

// FormatOverview renders the home screen: totals, then the most recent sets.
func FormatOverview(stats domain.Stats, recent []domain.RecentSet, warnings []string, now time.Time) string {
	var totals strings.Builder
	fmt.Fprintf(&totals, "%s  %s\n", Dim("Séances"), Bold(strconv.Itoa(stats.TotalSessions)))
	fmt.Fprintf(&totals, "%s  %s\n", Dim("Séries "), Bold(strconv.Itoa(stats.TotalExerciseSets)))
	fmt.Fprintf(&totals, "%s  %s", Dim("Max    "), Bold(domain.FormatWeight(stats.MaxWeightOverall)+" kg"))

	var b strings.Builder
	b.WriteString(RenderBox("Statistiques", totals.String()))
	b.WriteString("\n\n")
	b.WriteString(Header("Dernières séries"))
	b.WriteString("\n")

	if len(recent) == 0 {
		b.WriteString(Dim("Aucune série enregistrée."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(recent))
		for _, r := range recent {
			rows = append(rows, []string{
				r.Exercise,
				domain.FormatWeight(r.Weight) + " kg",
				strconv.Itoa(r.Reps),
				Dim(RelativeDateFrom(r.SessionDate, now)),
			})
		}
		b.WriteString(RenderTable([]string{"Exercice", "Poids", "Reps", "Quand"}, rows))
	}
	for _, w := range warnings {
		b.WriteString(Warning(w))
		b.WriteString("\n")
	}
	return b.String()
}
