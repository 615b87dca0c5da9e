// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"multicell/internal/app"
	"multicell/internal/export"
	"multicell/internal/render"
	"multicell/internal/version"
	"multicell/ui/canvas"
	"multicell/ui/prefs"
)

const (
	prefKeyLastDir = "lastDirectory"

	exportSize = 1200
	videoSize  = 800
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app      fyne.App
	store    *app.Store
	prefs    *prefs.Prefs
	canvas   *canvas.NetworkCanvas
	controls *controlsPanel

	statusBar *widget.Label

	undoItem *fyne.MenuItem
	redoItem *fyne.MenuItem
	mainMenu *fyne.MainMenu
}

// New creates a new main window.
func New(fyneApp fyne.App, store *app.Store, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Multicell")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		store:  store,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewNetworkCanvas(mw.store)
	mw.controls = newControlsPanel(mw.store, mw.canvas)
	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar, // top
		nil,     // bottom
		nil,     // left
		nil,     // right
		mw.canvas,
	)

	split := container.NewHSplit(
		mw.controls.Container(),
		canvasArea,
	)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1100, 760))
}

// createToolbar creates the toolbar with view controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.onZoomOut)
	zoomInBtn := widget.NewButton("+", mw.onZoomIn)
	resetBtn := widget.NewButton("Reset View", mw.onResetView)
	playBtn := widget.NewButton("Play", func() { mw.canvas.PlayAnimation() })
	regenBtn := widget.NewButton("Regenerate", func() { mw.store.Regenerate() })

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		resetBtn,
		widget.NewSeparator(),
		regenBtn,
		playBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Network", mw.onNewNetwork),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Snapshot...", mw.onOpenSnapshot),
		fyne.NewMenuItem("Save Snapshot...", mw.onSaveSnapshot),
		fyne.NewMenuItem("Import Positions...", mw.onImportPositions),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItem("Export SVG...", mw.onExportSVG),
		fyne.NewMenuItem("Export Animation...", mw.onExportVideo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy Share Link", mw.onCopyShareLink),
		fyne.NewMenuItem("Open Share Link...", mw.onOpenShareLink),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.undoItem = fyne.NewMenuItem("Undo", mw.onUndo)
	mw.redoItem = fyne.NewMenuItem("Redo", mw.onRedo)
	editMenu := fyne.NewMenu("Edit",
		mw.undoItem,
		mw.redoItem,
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		fyne.NewMenuItem("Reset View", mw.onResetView),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Theme", func() { mw.store.ToggleTheme() }),
		fyne.NewMenuItem("Play Animation", func() { mw.canvas.PlayAnimation() }),
	)

	presetsMenu := fyne.NewMenu("Presets",
		fyne.NewMenuItem("Save Preset...", mw.onSavePreset),
		fyne.NewMenuItem("Load Preset...", mw.onLoadPreset),
		fyne.NewMenuItem("Delete Preset...", mw.onDeletePreset),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, viewMenu, presetsMenu, helpMenu)
	mw.SetMainMenu(mw.mainMenu)
	mw.refreshUndoItems()
}

// setupEventHandlers registers for store events.
func (mw *MainWindow) setupEventHandlers() {
	mw.store.On(app.EventCellsChanged, func(interface{}) {
		mw.canvas.Refresh()
	})
	mw.store.On(app.EventConfigChanged, func(interface{}) {
		mw.controls.syncFromStore()
		mw.canvas.Refresh()
	})
	mw.store.On(app.EventColorsChanged, func(interface{}) {
		mw.canvas.Refresh()
	})
	mw.store.On(app.EventSelectionChanged, func(interface{}) {
		mw.canvas.Refresh()
		if sel := mw.store.Selection(); len(sel) > 0 {
			mw.updateStatus(fmt.Sprintf("Selected %d cell(s)", len(sel)))
		}
	})
	mw.store.On(app.EventViewChanged, func(interface{}) {
		mw.canvas.Refresh()
		mw.updateStatus(fmt.Sprintf("Zoom %.0f%%", mw.store.View().Zoom*100))
	})
	mw.store.On(app.EventHistoryChanged, func(interface{}) {
		mw.refreshUndoItems()
	})
}

func (mw *MainWindow) refreshUndoItems() {
	mw.undoItem.Disabled = !mw.store.CanUndo()
	mw.redoItem.Disabled = !mw.store.CanRedo()
	if mw.mainMenu != nil {
		mw.mainMenu.Refresh()
	}
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) getLastDir() fyne.ListableURI {
	dir := mw.prefs.String(prefKeyLastDir)
	if dir == "" {
		return nil
	}
	uri := storage.NewFileURI(dir)
	lister, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return lister
}

func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

func (mw *MainWindow) onNewNetwork() {
	mw.store.Regenerate()
	mw.store.ResetView()
	mw.updateStatus("New network generated")
}

func (mw *MainWindow) onOpenSnapshot() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		data, err := readAll(reader)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if !mw.store.ImportJSON(data) {
			dialog.ShowError(fmt.Errorf("%s is not a valid snapshot", filepath.Base(path)), mw.Window)
			return
		}
		mw.saveLastDir(path)
		mw.updateStatus("Snapshot loaded: " + filepath.Base(path))
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveSnapshot() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		data, err := mw.store.ExportJSON()
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if _, err := writer.Write(data); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.saveLastDir(writer.URI().Path())
		mw.updateStatus("Snapshot saved")
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.SetFileName("network.json")
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) onImportPositions() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		data, err := readAll(reader)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if !mw.store.ImportDelimited(data) {
			dialog.ShowError(fmt.Errorf("no usable rows in %s", filepath.Base(reader.URI().Path())), mw.Window)
			return
		}
		mw.saveLastDir(reader.URI().Path())
		mw.updateStatus(fmt.Sprintf("Imported %d cells", len(mw.store.Cells())))
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".tsv", ".txt"}))
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) scene() render.Scene {
	return render.Scene{
		Cells:  mw.store.Cells(),
		Config: mw.store.Config(),
		Colors: mw.store.Colors(),
	}
}

func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		data, err := export.EncodePNG(mw.scene(), exportSize, exportSize, export.DefaultPNGScale)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if _, err := writer.Write(data); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.saveLastDir(writer.URI().Path())
		mw.updateStatus("PNG exported")
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	fd.SetFileName("network.png")
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) onExportSVG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := export.WriteSVG(writer, mw.scene(), exportSize, exportSize); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.saveLastDir(writer.URI().Path())
		mw.updateStatus("SVG exported")
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".svg"}))
	fd.SetFileName("network.svg")
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) onExportVideo() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		mw.updateStatus("Exporting animation...")
		scene := mw.scene()
		go func() {
			err := export.CaptureVideo(context.Background(), scene, path, export.VideoOptions{
				Width:  videoSize,
				Height: videoSize,
			})
			if err != nil {
				log.Printf("Animation export failed: %v", err)
				mw.updateStatus("Animation export failed")
				return
			}
			mw.updateStatus("Animation exported: " + filepath.Base(path))
		}()
		mw.saveLastDir(path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".mp4"}))
	fd.SetFileName("network.mp4")
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) onCopyShareLink() {
	encoded, err := mw.store.EncodeShare()
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.Clipboard().SetContent(encoded)
	mw.updateStatus("Share link copied to clipboard")
}

func (mw *MainWindow) onOpenShareLink() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Paste share link data")
	items := []*widget.FormItem{widget.NewFormItem("Link", entry)}
	dialog.ShowForm("Open Share Link", "Open", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if !mw.store.ImportShare(entry.Text) {
			dialog.ShowError(fmt.Errorf("share link is not valid"), mw.Window)
			return
		}
		mw.updateStatus("Shared network loaded")
	}, mw.Window)
}

func (mw *MainWindow) onUndo() {
	if !mw.store.Undo() {
		mw.updateStatus("Nothing to undo")
	}
}

func (mw *MainWindow) onRedo() {
	if !mw.store.Redo() {
		mw.updateStatus("Nothing to redo")
	}
}

func (mw *MainWindow) onZoomIn()    { mw.store.ZoomIn() }
func (mw *MainWindow) onZoomOut()   { mw.store.ZoomOut() }
func (mw *MainWindow) onResetView() { mw.store.ResetView() }

func (mw *MainWindow) onSavePreset() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Preset name")
	items := []*widget.FormItem{widget.NewFormItem("Name", entry)}
	dialog.ShowForm("Save Preset", "Save", "Cancel", items, func(ok bool) {
		if !ok || entry.Text == "" {
			return
		}
		if err := mw.store.SavePreset(entry.Text); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Preset saved: " + entry.Text)
	}, mw.Window)
}

func (mw *MainWindow) onLoadPreset() {
	names := mw.store.ListPresets()
	if len(names) == 0 {
		dialog.ShowInformation("Load Preset", "No presets saved yet.", mw.Window)
		return
	}
	sel := widget.NewSelect(names, nil)
	sel.SetSelectedIndex(0)
	items := []*widget.FormItem{widget.NewFormItem("Preset", sel)}
	dialog.ShowForm("Load Preset", "Load", "Cancel", items, func(ok bool) {
		if !ok || sel.Selected == "" {
			return
		}
		if err := mw.store.LoadPreset(sel.Selected); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Preset loaded: " + sel.Selected)
	}, mw.Window)
}

func (mw *MainWindow) onDeletePreset() {
	names := mw.store.ListPresets()
	if len(names) == 0 {
		dialog.ShowInformation("Delete Preset", "No presets saved yet.", mw.Window)
		return
	}
	sel := widget.NewSelect(names, nil)
	sel.SetSelectedIndex(0)
	items := []*widget.FormItem{widget.NewFormItem("Preset", sel)}
	dialog.ShowForm("Delete Preset", "Delete", "Cancel", items, func(ok bool) {
		if !ok || sel.Selected == "" {
			return
		}
		if err := mw.store.DeletePreset(sel.Selected); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Preset deleted: " + sel.Selected)
	}, mw.Window)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Multicell",
		fmt.Sprintf("Multicell v%s\n\nAn interactive editor for multicellular\nnetwork diagrams.", version.Version),
		mw.Window)
}

func readAll(reader fyne.URIReadCloser) ([]byte, error) {
	return io.ReadAll(reader)
}
