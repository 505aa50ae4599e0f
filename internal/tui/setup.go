package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/liftlog/internal/config"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

// SetupForm builds the first-run form: color theme and weight unit. The
// chosen values are written through themeName and unit.
func SetupForm(themeName, unit *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewNote().
			Title("First run").
			Description("Pick a theme and the unit you lift in.\nRun `liftlog setup` anytime to change them."),
		huh.NewSelect[string]().
			Title("Color theme").
			Options(huh.NewOptions(theme.Names()...)...).
			Value(themeName),
		huh.NewSelect[string]().
			Title("Weight unit").
			Options(
				huh.NewOption("Kilograms (kg)", "kg"),
				huh.NewOption("Pounds (lb)", "lb"),
			).
			Value(unit),
	))
}

func newSetupForm(v *formValues, unit string) *huh.Form {
	v.theme = theme.Active.Name
	v.unit = unit
	return SetupForm(&v.theme, &v.unit)
}

// applySetup activates the chosen settings and saves them. A failed save
// keeps them for this session only.
func (a *App) applySetup(v *formValues) {
	theme.SetActive(v.theme)
	a.opts.WeightUnit = v.unit
	a.opts.NeedSetup = false

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	cfg.Appearance.Theme = v.theme
	cfg.General.WeightUnit = v.unit

	if err := config.Save(cfg); err != nil {
		a.setStatus("", err)
		return
	}
	a.setStatus("Saved to "+config.ConfigPath(), nil)
}
