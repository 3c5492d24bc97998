package ui

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/export"
	bayimporter "github.com/piwi3910/shelfpack/internal/importer"
	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
)

var errEmptyBay = errors.New("the bay has no blocks")

func (a *App) saveBay() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		blob, err := project.Encode(a.session.State())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if _, err := writer.Write([]byte(blob)); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberFile(writer.URI().Path())
	}, a.window)
	d.SetFileName("bay.shelfpack")
	d.Show()
}

func (a *App) openBay() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		data, err := os.ReadFile(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		st, ok := project.Decode(string(data))
		if !ok {
			dialog.ShowError(fmt.Errorf("%s is not a valid bay file", path), a.window)
			return
		}
		a.run(func() error { return a.session.Restore(st) })
		a.rememberFile(path)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".shelfpack", ".json"}))
	d.Show()
}

func (a *App) rememberFile(path string) {
	a.config.AddRecentFile(path, maxRecentFiles)
	if err := a.saveConfig(); err != nil {
		a.logger.Printf("[CONFIG] %v", err)
	}
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(bayimporter.ImportCSV(reader.URI().Path()))
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(bayimporter.ImportExcel(reader.URI().Path()))
	}, a.window)
}

func (a *App) handleImportResult(result bayimporter.ImportResult) {
	if len(result.Errors) > 0 {
		dialog.ShowError(fmt.Errorf("Errors encountered during import:\n\n%s",
			strings.Join(result.Errors, "\n")), a.window)
	}
	for _, w := range result.Warnings {
		a.logger.Printf("[IMPORT] %s", w)
	}
	if len(result.Orders) == 0 {
		return
	}

	var batch engine.BatchResult
	a.run(func() error {
		batch = a.session.AddBatch(result.Orders)
		return nil
	})
	a.showBatchResult("Import Complete", batch, result.ShapeCount())
}

func (a *App) showBatchResult(title string, batch engine.BatchResult, requested int) {
	msg := fmt.Sprintf("Placed %d of %d blocks.", len(batch.Placed), requested)
	if len(batch.Errors) > 0 {
		msg += "\n\n" + strings.Join(batch.Errors, "\n")
	}
	dialog.ShowInformation(title, msg, a.window)
}

// ─── Templates ──────────────────────────────────────────────

func (a *App) showTemplateDialog() {
	names := a.templates.Names()
	if len(names) == 0 {
		dialog.ShowInformation("No templates", "Save a bay as a template first.", a.window)
		return
	}
	sel := widget.NewSelect(names, nil)
	sel.SetSelectedIndex(0)
	info := widget.NewLabel("")
	info.Wrapping = fyne.TextWrapWord
	sel.OnChanged = func(name string) {
		if t := a.templates.FindByName(name); t != nil {
			d := t.Dimensions
			info.SetText(fmt.Sprintf("%s\n%dx%dx%d cells, %d blocks", t.Description,
				d.WidthBack, d.HeightLeft, d.DepthFront, t.ShapeCount()))
		}
	}
	sel.OnChanged(sel.Selected)

	dialog.ShowForm("Apply Template", "Apply", "Cancel", []*widget.FormItem{
		widget.NewFormItem("Template", sel),
		widget.NewFormItem("", info),
	}, func(ok bool) {
		if !ok {
			return
		}
		t := a.templates.FindByName(sel.Selected)
		if t == nil {
			return
		}
		var batch engine.BatchResult
		a.run(func() error {
			var err error
			batch, err = a.session.ApplyTemplate(*t)
			return err
		})
		a.showBatchResult("Template Applied", batch, t.ShapeCount())
	}, a.window)
}

func (a *App) showSaveTemplateDialog() {
	name := widget.NewEntry()
	name.SetPlaceHolder("Pantry shelf")
	desc := widget.NewEntry()

	dialog.ShowForm("Save as Template", "Save", "Cancel", []*widget.FormItem{
		widget.NewFormItem("Name", name),
		widget.NewFormItem("Description", desc),
	}, func(ok bool) {
		if !ok {
			return
		}
		if strings.TrimSpace(name.Text) == "" {
			dialog.ShowError(fmt.Errorf("template name is required"), a.window)
			return
		}
		st := a.session.State()
		a.templates.Add(model.NewBayTemplate(name.Text, desc.Text, st.Dimensions, st.Colors,
			model.OrdersFromShapes(st.Shapes)))
		if err := project.SaveTemplates(project.DefaultTemplatePath(), a.templates); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
}

// ─── Export Functions ───────────────────────────────────────

func (a *App) exportPDF() {
	a.exportFile("bay.pdf", false, export.ExportPDF)
}

func (a *App) exportLabels() {
	a.exportFile("labels.pdf", true, export.ExportLabels)
}

func (a *App) exportDXF() {
	a.exportFile("bay.dxf", false, export.ExportDXF)
}

func (a *App) exportFile(defaultName string, needShapes bool, write func(string, engine.State) error) {
	st := a.session.State()
	if needShapes && len(st.Shapes) == 0 {
		dialog.ShowInformation("Nothing to export", errEmptyBay.Error(), a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path, st); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// ─── Colour ─────────────────────────────────────────────────

func (a *App) showColourPicker() {
	if _, ok := a.session.Active(); !ok {
		a.setStatus(engine.ErrInvalidSelection.Error())
		return
	}
	picker := dialog.NewColorPicker("Block Colour", "Pick a colour for the selected block", func(c color.Color) {
		r, g, b, _ := c.RGBA()
		a.run(func() error {
			return a.session.SetActiveColor(model.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
		})
	}, a.window)
	picker.Advanced = true
	picker.Show()
}
