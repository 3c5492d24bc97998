package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	int64Entry := func(val *int64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseInt(text, 10, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	colourSelect := widget.NewSelect(wallColourNames(), func(selected string) {
		if c, ok := wallColourChoices[selected]; ok {
			cfg.DefaultShapeColor = c
		}
	})
	if name, ok := paletteName(cfg.DefaultShapeColor); ok {
		colourSelect.SetSelected(name)
	}

	exhaustive := widget.NewCheck("", func(on bool) { cfg.ExhaustivePlacement = on })
	exhaustive.SetChecked(cfg.ExhaustivePlacement)
	autoSave := widget.NewCheck("", func(on bool) { cfg.AutoSave = on })
	autoSave.SetChecked(cfg.AutoSave)

	d := &cfg.DefaultDimensions
	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Auto-Save", autoSave),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Width (cells)", intEntry(&d.WidthBack)),
		widget.NewFormItem("Default Height (cells)", intEntry(&d.HeightLeft)),
		widget.NewFormItem("Default Depth (cells)", intEntry(&d.DepthFront)),
		widget.NewFormItem("Default Block Colour", colourSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Random Placement Tries", intEntry(&cfg.PlacementAttempts)),
		widget.NewFormItem("Search Every Cell", exhaustive),
		widget.NewFormItem("Seed (0 = random)", int64Entry(&cfg.Seed)),
	}

	dlg := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if err := cfg.DefaultDimensions.Validate(); err != nil {
				dialog.ShowError(fmt.Errorf("default bay: %w", err), a.window)
				return
			}
			a.config = cfg
			a.app.Settings().SetTheme(ThemeForName(cfg.Theme))
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Defaults apply to the next new bay.", a.window)
			}
		},
		a.window,
	)
	dlg.Resize(fyne.NewSize(460, 480))
	dlg.Show()
}

// showBackupDialog displays the backup and restore dialog.
func (a *App) showBackupDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			st := a.session.State()
			if err := project.ExportAllData(path, a.config, a.templates, &st); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("shelfpack-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your settings, templates and current bay.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := project.ImportAllData(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.restoreBackup(backup)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings, templates and the current bay to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

func (a *App) restoreBackup(backup project.BackupData) {
	a.config = backup.Config
	if len(backup.Templates.Templates) > 0 {
		a.templates = backup.Templates
	} else {
		a.templates = model.NewTemplateStore()
	}
	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
		return
	}
	if err := project.SaveTemplates(project.DefaultTemplatePath(), a.templates); err != nil {
		a.logger.Printf("[TEMPLATES] %v", err)
	}
	if backup.State != nil {
		a.run(func() error { return a.session.Restore(*backup.State) })
	}
	a.app.Settings().SetTheme(ThemeForName(a.config.Theme))
	dialog.ShowInformation("Import Complete",
		fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(a.configPath, a.config)
}
