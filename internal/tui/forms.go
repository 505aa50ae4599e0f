package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/input"
	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/tui/components"
)

type formKind int

const (
	formNone formKind = iota
	formAddLog
	formEditLog
	formDeleteLog
	formNewExercise
	formRenameExercise
	formDeleteExercise
	formSetup
)

// formValues holds the fields bound to the active huh form.
type formValues struct {
	targetID   int64 // set or exercise being edited/deleted
	exerciseID int64
	weight     string
	reps       string
	name       string
	confirm    bool

	theme string
	unit  string
}

func validateWeight(s string) error {
	_, err := input.ParseWeight(s)
	return err
}

func validateReps(s string) error {
	_, err := input.ParseReps(s)
	return err
}

func validateName(s string) error {
	_, err := input.ParseExercise(s)
	return err
}

func formatWeightInput(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// openForm builds the form for kind from the current selection.
// exerciseOptions lists the whole catalog in catalog order; the select
// filters it as the user types.
func exerciseOptions(exercises []model.Exercise) []huh.Option[int64] {
	opts := make([]huh.Option[int64], 0, len(exercises))
	for _, e := range exercises {
		opts = append(opts, huh.NewOption(e.Name, e.ID))
	}
	return opts
}

func (a *App) openForm(kind formKind) tea.Cmd {
	v := &formValues{}
	weightTitle := fmt.Sprintf("Weight (%s)", a.opts.WeightUnit)

	var form *huh.Form
	switch kind {
	case formAddLog:
		exercises := a.tr.Exercises()
		opts := exerciseOptions(exercises)
		if l, ok := a.cursorLog(); ok {
			v.exerciseID = l.ExerciseID
		} else if len(exercises) > 0 {
			v.exerciseID = exercises[0].ID
		}
		form = huh.NewForm(huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Exercise").
				Options(opts...).
				Filtering(true).
				Description("Type / to filter").
				Height(8).
				Value(&v.exerciseID),
			huh.NewInput().Title(weightTitle).Placeholder("80").Validate(validateWeight).Value(&v.weight),
			huh.NewInput().Title("Reps").Placeholder("5").Validate(validateReps).Value(&v.reps),
		))

	case formEditLog:
		l, _ := a.cursorLog()
		v.targetID = l.ID
		v.exerciseID = l.ExerciseID
		v.weight = formatWeightInput(l.Weight)
		v.reps = strconv.Itoa(l.Reps)
		form = huh.NewForm(huh.NewGroup(
			huh.NewNote().Title(a.tr.ExerciseName(l.ExerciseID)).Description(l.Date.Format("Mon Jan 2, 15:04")),
			huh.NewInput().Title(weightTitle).Validate(validateWeight).Value(&v.weight),
			huh.NewInput().Title("Reps").Validate(validateReps).Value(&v.reps),
		))

	case formDeleteLog:
		l, _ := a.cursorLog()
		v.targetID = l.ID
		form = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this set?").
				Description(a.tr.ExerciseName(l.ExerciseID) + "  " + cli.FormatSet(l, a.opts.WeightUnit)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&v.confirm),
		))

	case formNewExercise:
		form = huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("New exercise").Placeholder("Bench Press").
				CharLimit(input.MaxNameLen).Validate(validateName).Value(&v.name),
		))

	case formRenameExercise:
		e, _ := a.cursorExercise()
		v.targetID = e.ID
		v.name = e.Name
		form = huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Rename exercise").
				CharLimit(input.MaxNameLen).Validate(validateName).Value(&v.name),
		))

	case formDeleteExercise:
		e, _ := a.cursorExercise()
		v.targetID = e.ID
		form = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Delete " + e.Name + "?").
				Description("Logged sets are kept and shown as " + model.UnknownExerciseName + ".").
				Affirmative("Delete").
				Negative("Keep").
				Value(&v.confirm),
		))

	case formSetup:
		form = newSetupForm(v, a.opts.WeightUnit)

	default:
		return nil
	}

	a.form = form.WithTheme(huh.ThemeCharm()).WithShowHelp(true).WithWidth(a.formWidth())
	a.formKind = kind
	a.formVals = v
	return a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.formVals = nil
}

func (a App) formWidth() int {
	return max(min(a.contentWidth()-8, 60), 20)
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		kind, v := a.formKind, a.formVals
		a.closeForm()
		return a, a.submitForm(kind, v)
	}

	if a.form.State == huh.StateAborted {
		a.closeForm()
		a.setStatus("Cancelled", nil)
		return a, nil
	}

	return a, cmd
}

// submitForm turns a completed form into a tracker operation.
func (a *App) submitForm(kind formKind, v *formValues) tea.Cmd {
	switch kind {
	case formAddLog:
		l, err := input.ParseLog(v.exerciseID, v.weight, v.reps)
		if err != nil {
			a.setStatus("", err)
			return nil
		}
		entry := model.NewExerciseLog{
			ExerciseID: l.ExerciseID,
			Date:       model.AtClock(a.tr.Selected(), time.Now()),
			Weight:     l.Weight,
			Reps:       l.Reps,
		}
		status := fmt.Sprintf("Logged %s %s", a.tr.ExerciseName(l.ExerciseID),
			cli.FormatSet(model.ExerciseLog{Weight: l.Weight, Reps: l.Reps}, a.opts.WeightUnit))
		return a.run(func(ctx context.Context) (string, error) {
			_, _, err := a.tr.AddExerciseLog(ctx, entry)
			return status, err
		})

	case formEditLog:
		l, err := input.ParseLog(v.exerciseID, v.weight, v.reps)
		if err != nil {
			a.setStatus("", err)
			return nil
		}
		return a.run(func(ctx context.Context) (string, error) {
			_, err := a.tr.EditExerciseLog(ctx, v.targetID, l.Weight, l.Reps)
			return "Set updated", err
		})

	case formDeleteLog:
		if !v.confirm {
			return nil
		}
		return a.run(func(ctx context.Context) (string, error) {
			_, err := a.tr.DeleteExerciseLog(ctx, v.targetID)
			return "Set deleted", err
		})

	case formNewExercise:
		e, err := input.ParseExercise(v.name)
		if err != nil {
			a.setStatus("", err)
			return nil
		}
		return a.run(func(ctx context.Context) (string, error) {
			_, err := a.tr.AddExercise(ctx, e.Name)
			return "Added " + e.Name, err
		})

	case formRenameExercise:
		e, err := input.ParseExercise(v.name)
		if err != nil {
			a.setStatus("", err)
			return nil
		}
		return a.run(func(ctx context.Context) (string, error) {
			return "Renamed to " + e.Name, a.tr.EditExercise(ctx, v.targetID, e.Name)
		})

	case formDeleteExercise:
		if !v.confirm {
			return nil
		}
		return a.run(func(ctx context.Context) (string, error) {
			return "Exercise deleted", a.tr.DeleteExercise(ctx, v.targetID)
		})

	case formSetup:
		a.applySetup(v)
	}
	return nil
}

func (a App) viewForm() string {
	title := map[formKind]string{
		formAddLog:         "Log a set · " + cli.FormatDayLabel(a.tr.Selected(), time.Now()),
		formEditLog:        "Edit set",
		formDeleteLog:      "Delete set",
		formNewExercise:    "New exercise",
		formRenameExercise: "Rename exercise",
		formDeleteExercise: "Delete exercise",
		formSetup:          "Welcome to liftlog",
	}[a.formKind]

	card := components.ContentCard(title, a.form.View(), a.formWidth()+4)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}
