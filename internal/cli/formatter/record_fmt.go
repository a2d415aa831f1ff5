package formatter

import (
	"fmt"

	"github.com/djouu94/workout-tracker-v2/internal/domain"
)

// FormatRecord renders the personal record for one exercise, or a notice
// when nothing was logged for it.
func FormatRecord(exercise string, pr *domain.PersonalRecord) string {
	if pr == nil {
		return fmt.Sprintf("%s  %s\n", Bold(exercise), Dim("aucun record"))
	}
	return fmt.Sprintf("%s  %s\n", Bold(exercise), StyleGreen.Render(pr.Label()))
}

// FormatRecords renders records for exercises in the given order. Exercises
// without a record show a dash.
func FormatRecords(exercises []string, records map[string]domain.PersonalRecord) string {
	rows := make([][]string, 0, len(exercises))
	for _, name := range exercises {
		pr, ok := records[name]
		if !ok {
			rows = append(rows, []string{name, Dim("-"), Dim("-")})
			continue
		}
		rows = append(rows, []string{
			name,
			StyleGreen.Render(domain.FormatWeight(pr.MaxWeight) + " kg"),
			fmt.Sprintf("%d", pr.MaxReps),
		})
	}
	return Header("Records") + "\n" +
		RenderTable([]string{"Exercice", "Max", "Reps"}, rows)
}
