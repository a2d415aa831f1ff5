package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/djouu94/workout-tracker-v2/internal/cli/formatter"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/entry"
)

// ── key map ──────────────────────────────────────────────────────────────────

type entryKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Next        key.Binding
	Capture     key.Binding
	AddSet      key.Binding
	RemoveSet   key.Binding
	AddExercise key.Binding
	Details     key.Binding
	Save        key.Binding
	Quit        key.Binding
}

func defaultEntryKeys() entryKeyMap {
	return entryKeyMap{
		Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "série préc.")),
		Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "série suiv.")),
		Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "poids/reps")),
		Capture:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "valider")),
		AddSet:      key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "+1 série")),
		RemoveSet:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "-1 série")),
		AddExercise: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "exercice")),
		Details:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "durées/notes")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "enregistrer")),
		Quit:        key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "abandonner")),
	}
}

func (k entryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Capture, k.Next, k.AddSet, k.RemoveSet, k.Details, k.Save, k.Quit}
}

func (k entryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Capture},
		{k.AddSet, k.RemoveSet, k.AddExercise, k.Details},
		{k.Save, k.Quit},
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

type recordsLoadedMsg struct {
	records map[string]domain.PersonalRecord
	err     error
}

type sessionSavedMsg struct {
	attempt entry.Attempt
	id      string
	err     error
}

// ── model ────────────────────────────────────────────────────────────────────

type entryPhase int

const (
	phaseSets entryPhase = iota
	phaseAddExercise
	phaseDetails
	phaseConfirmSave
	phaseDone
)

// slotRef addresses one set row on screen.
type slotRef struct {
	exercise string
	index    int
}

// entryModel is the full-screen set entry for one attempt. It owns the
// attempt value and replaces it only when an operation succeeds.
type entryModel struct {
	app     *App
	attempt entry.Attempt
	records map[string]domain.PersonalRecord

	rows   []slotRef
	cursor int

	weight textinput.Model
	reps   textinput.Model
	name   textinput.Model
	focus  int // 0 weight, 1 reps

	form    *huh.Form
	details *detailsFields

	phase   entryPhase
	status  string
	saving  bool
	savedID string

	keys  entryKeyMap
	help  help.Model
	width int
}

func newEntryModel(app *App, a entry.Attempt) *entryModel {
	weight := textinput.New()
	weight.Placeholder = "kg"
	weight.CharLimit = 6
	weight.Width = 6
	weight.Prompt = ""

	reps := textinput.New()
	reps.Placeholder = "reps"
	reps.CharLimit = 3
	reps.Width = 4
	reps.Prompt = ""

	name := textinput.New()
	name.Placeholder = "Burpees"
	name.CharLimit = 60
	name.Prompt = ""

	m := &entryModel{
		app:     app,
		attempt: a,
		records: map[string]domain.PersonalRecord{},
		weight:  weight,
		reps:    reps,
		name:    name,
		keys:    defaultEntryKeys(),
		help:    help.New(),
	}
	m.rebuildRows()
	m.weight.Focus()
	return m
}

func (m *entryModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadRecords())
}

func (m *entryModel) loadRecords() tea.Cmd {
	if m.app.Records == nil || len(m.attempt.Exercises) == 0 {
		return nil
	}
	names := make([]string, len(m.attempt.Exercises))
	for i, ex := range m.attempt.Exercises {
		names[i] = ex.Name
	}
	records := m.app.Records
	return func() tea.Msg {
		got, err := records.RecordsFor(context.Background(), names)
		return recordsLoadedMsg{records: got, err: err}
	}
}

func (m *entryModel) saveCmd() tea.Cmd {
	rec := m.app.Recorder
	a := m.attempt
	return func() tea.Msg {
		next, id, err := entry.Save(context.Background(), rec, a)
		return sessionSavedMsg{attempt: next, id: id, err: err}
	}
}

func (m *entryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case recordsLoadedMsg:
		if msg.err != nil {
			m.app.logger().Warn("records unavailable", "error", msg.err)
			return m, nil
		}
		for name, pr := range msg.records {
			m.records[name] = pr
		}
		return m, nil

	case sessionSavedMsg:
		m.saving = false
		m.attempt = msg.attempt
		if msg.err != nil {
			m.phase = phaseSets
			m.status = formatter.StyleRed.Render("Échec de l'enregistrement: " + msg.err.Error())
			return m, nil
		}
		m.savedID = msg.id
		m.phase = phaseDone
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.phase {
		case phaseDetails:
			return m.updateDetails(msg)
		case phaseConfirmSave:
			return m.updateConfirm(msg)
		case phaseAddExercise:
			return m.updateAddExercise(msg)
		case phaseSets:
			return m.updateSets(msg)
		}
	}
	if m.phase == phaseDetails {
		return m.updateDetails(msg)
	}
	return m, nil
}

func (m *entryModel) updateSets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus(1 - m.focus)
	case key.Matches(msg, m.keys.Capture):
		return m, m.capture()
	case key.Matches(msg, m.keys.AddSet):
		m.changeSets(m.attempt.AddSet)
		return m, nil
	case key.Matches(msg, m.keys.RemoveSet):
		m.changeSets(m.attempt.RemoveSet)
		return m, nil
	case key.Matches(msg, m.keys.AddExercise):
		m.phase = phaseAddExercise
		m.name.SetValue("")
		m.weight.Blur()
		m.reps.Blur()
		return m, m.name.Focus()
	case key.Matches(msg, m.keys.Details):
		m.details = newDetailsFields(m.attempt)
		m.form = newDetailsForm(m.attempt, m.details)
		if m.width > 0 {
			m.form = m.form.WithWidth(m.width)
		}
		m.phase = phaseDetails
		m.weight.Blur()
		m.reps.Blur()
		m.status = ""
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Save):
		if len(m.attempt.ValidatedSets()) == 0 {
			m.status = formatter.StyleRed.Render("Aucune série validée: rien à enregistrer")
			return m, nil
		}
		m.phase = phaseConfirmSave
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.weight, cmd = m.weight.Update(msg)
	} else {
		m.reps, cmd = m.reps.Update(msg)
	}
	return m, cmd
}

func (m *entryModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch strings.ToLower(msg.String()) {
	case "o", "y", "enter":
		m.saving = true
		m.status = formatter.Dim("Enregistrement…")
		return m, m.saveCmd()
	case "n", "esc":
		m.phase = phaseSets
		m.status = ""
	}
	return m, nil
}

func (m *entryModel) updateAddExercise(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.phase = phaseSets
		m.name.Blur()
		return m, m.setFocus(0)
	case tea.KeyEnter:
		name := strings.TrimSpace(m.name.Value())
		next, err := m.attempt.AddExercise(name)
		if err != nil {
			m.status = formatter.StyleRed.Render(err.Error())
			return m, nil
		}
		m.attempt = next
		m.rebuildRows()
		m.phase = phaseSets
		m.name.Blur()
		m.cursor = m.firstRowOf(name)
		m.status = ""
		return m, m.setFocus(0)
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// updateDetails feeds the durations and notes form. Esc drops the edits.
func (m *entryModel) updateDetails(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.closeDetails()
		return m, m.setFocus(0)
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m, tea.Batch(cmd, m.finishDetails())
	case huh.StateAborted:
		m.closeDetails()
		return m, m.setFocus(0)
	}
	return m, cmd
}

// finishDetails applies the completed form to the attempt.
func (m *entryModel) finishDetails() tea.Cmd {
	next, err := applyDetails(m.attempt, m.details)
	if err != nil {
		m.status = formatter.StyleRed.Render(err.Error())
	} else {
		m.attempt = next
		m.status = formatter.StyleGreen.Render("✓ Durées et notes mises à jour")
	}
	m.closeDetails()
	return m.setFocus(0)
}

func (m *entryModel) closeDetails() {
	m.phase = phaseSets
	m.form = nil
	m.details = nil
}

// capture validates the set under the cursor from the two inputs.
func (m *entryModel) capture() tea.Cmd {
	if len(m.rows) == 0 {
		m.status = formatter.Dim("Ajoute un exercice avec ctrl+e")
		return nil
	}
	ref := m.rows[m.cursor]
	weight, err := parseWeight(m.weight.Value())
	if err != nil {
		m.status = formatter.StyleRed.Render("Poids invalide: " + m.weight.Value())
		return nil
	}
	reps, err := parseReps(m.reps.Value())
	if err != nil {
		m.status = formatter.StyleRed.Render("Répétitions invalides: " + m.reps.Value())
		return nil
	}

	next, captured, err := m.attempt.CaptureSet(ref.exercise, ref.index, weight, reps)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			m.status = formatter.StyleRed.Render(ve.Message)
		} else {
			m.status = formatter.StyleRed.Render(err.Error())
		}
		return nil
	}
	if !captured {
		m.status = formatter.StyleYellow.Render("Poids et répétitions requis (> 0)")
		return nil
	}
	m.attempt = next

	set := domain.ExerciseSet{Name: ref.exercise, Weight: weight, Reps: reps}
	m.status = formatter.StyleGreen.Render("✓ " + set.Label())
	if pr, ok := m.records[ref.exercise]; ok && weight > pr.MaxWeight {
		m.status += "  " + formatter.StyleYellow.Render("Nouveau record !")
	}

	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
	m.loadSlot(true)
	return m.setFocus(1)
}

// changeSets applies AddSet or RemoveSet to the exercise under the cursor.
func (m *entryModel) changeSets(op func(string) (entry.Attempt, error)) {
	if len(m.rows) == 0 {
		return
	}
	name := m.rows[m.cursor].exercise
	next, err := op(name)
	if err != nil {
		m.status = formatter.StyleRed.Render(err.Error())
		return
	}
	m.attempt = next
	m.rebuildRows()
	m.cursor = min(m.cursor, len(m.rows)-1)
	m.status = ""
}

func (m *entryModel) rebuildRows() {
	m.rows = m.rows[:0]
	for _, ex := range m.attempt.Exercises {
		for i := 0; i < ex.TargetSets; i++ {
			m.rows = append(m.rows, slotRef{exercise: ex.Name, index: i})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m *entryModel) firstRowOf(exercise string) int {
	for i, r := range m.rows {
		if r.exercise == exercise {
			return i
		}
	}
	return m.cursor
}

func (m *entryModel) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	m.loadSlot(false)
}

// loadSlot fills the inputs from the slot under the cursor. When keepWeight
// is set and the slot is empty, the previous weight stays for the next set.
func (m *entryModel) loadSlot(keepWeight bool) {
	if s, ok := m.slot(m.rows[m.cursor]); ok && s.Captured {
		m.weight.SetValue(domain.FormatWeight(s.Weight))
		m.reps.SetValue(strconv.Itoa(s.Reps))
		return
	}
	if !keepWeight {
		m.weight.SetValue("")
	}
	m.reps.SetValue("")
}

func (m *entryModel) slot(ref slotRef) (entry.Slot, bool) {
	for _, ex := range m.attempt.Exercises {
		if ex.Name == ref.exercise && ref.index < len(ex.Slots) {
			return ex.Slots[ref.index], true
		}
	}
	return entry.Slot{}, false
}

func (m *entryModel) setFocus(i int) tea.Cmd {
	m.focus = i
	if i == 0 {
		m.reps.Blur()
		return m.weight.Focus()
	}
	m.weight.Blur()
	return m.reps.Focus()
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m *entryModel) View() string {
	if m.phase == phaseDone {
		return ""
	}
	var b strings.Builder

	captured, target := m.attempt.Progress()
	fmt.Fprintf(&b, "%s\n%s\n\n", formatter.Header(m.attempt.Type), formatter.RenderSetProgress(captured, target, 20))

	if len(m.attempt.Warmups) > 0 {
		b.WriteString(formatter.StyleHeader.Render("Échauffement"))
		b.WriteString("\n")
		for _, w := range m.attempt.Warmups {
			fmt.Fprintf(&b, "  • %s %s%s\n", w.Name, formatter.Dim(fmt.Sprintf("%d min", w.Minutes)), noteSuffix(w.Notes))
		}
		b.WriteString("\n")
	}

	row := 0
	for _, ex := range m.attempt.Exercises {
		line := formatter.Bold(ex.Name)
		if pr, ok := m.records[ex.Name]; ok {
			line += "  " + formatter.Dim("PR "+pr.Label())
		}
		b.WriteString(line)
		b.WriteString("\n")
		for i := 0; i < ex.TargetSets; i++ {
			marker := "  "
			if row == m.cursor && m.phase == phaseSets {
				marker = formatter.StyleHeader.Render("› ")
			}
			value := formatter.Dim("—")
			if i < len(ex.Slots) && ex.Slots[i].Captured {
				s := ex.Slots[i]
				value = formatter.StyleGreen.Render(fmt.Sprintf("%s kg × %d", domain.FormatWeight(s.Weight), s.Reps))
			}
			fmt.Fprintf(&b, "%sSérie %d  %s\n", marker, i+1, value)
			row++
		}
	}
	if len(m.attempt.Exercises) == 0 {
		b.WriteString(formatter.Dim("Séance libre: ajoute un exercice avec ctrl+e"))
		b.WriteString("\n")
	}

	if m.attempt.Finisher != nil {
		b.WriteString("\n")
		b.WriteString(formatter.StyleHeader.Render("Finisher"))
		fmt.Fprintf(&b, "\n  • %s %s%s\n", m.attempt.Finisher.Name, formatter.Dim(fmt.Sprintf("%d min", m.attempt.Finisher.Minutes)), noteSuffix(m.attempt.Finisher.Notes))
	}
	if m.attempt.Notes != "" {
		fmt.Fprintf(&b, "\n%s %s\n", formatter.StyleHeader.Render("Notes"), m.attempt.Notes)
	}

	b.WriteString("\n")
	switch m.phase {
	case phaseSets:
		fmt.Fprintf(&b, "Poids %s  Reps %s\n", m.weight.View(), m.reps.View())
	case phaseAddExercise:
		fmt.Fprintf(&b, "Exercice %s\n", m.name.View())
	case phaseDetails:
		b.WriteString(m.form.View())
		b.WriteString("\n")
	case phaseConfirmSave:
		fmt.Fprintf(&b, "Enregistrer %d séries ? %s\n", len(m.attempt.ValidatedSets()), formatter.Dim("(o/n)"))
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func noteSuffix(notes string) string {
	if notes == "" {
		return ""
	}
	return "  " + formatter.Dim("("+notes+")")
}
