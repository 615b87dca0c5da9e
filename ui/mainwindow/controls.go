package mainwindow

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"multicell/internal/app"
	"multicell/internal/network"
	"multicell/ui/canvas"
)

// controlsPanel holds the editing controls on the left of the window.
// Sliders commit on release so a drag lands as one history entry.
type controlsPanel struct {
	store  *app.Store
	canvas *canvas.NetworkCanvas

	// Guards against feedback loops while widgets are synced from state.
	updating bool

	layoutSelect   *widget.Select
	cellCount      *widget.Slider
	cellCountLabel *widget.Label
	spacing        *widget.Slider
	livingRadius   *widget.Slider
	functionRadius *widget.Slider
	lineWidth      *widget.Slider
	duration       *widget.Slider

	internalCheck *widget.Check
	externalCheck *widget.Check
	onTopCheck    *widget.Check
	gridCheck     *widget.Check
	snapCheck     *widget.Check

	weightSliders map[network.Category]*widget.Slider
	visChecks     map[network.Category]*widget.Check

	root fyne.CanvasObject
}

func newControlsPanel(store *app.Store, nc *canvas.NetworkCanvas) *controlsPanel {
	cp := &controlsPanel{
		store:         store,
		canvas:        nc,
		weightSliders: make(map[network.Category]*widget.Slider),
		visChecks:     make(map[network.Category]*widget.Check),
	}
	cp.build()
	cp.syncFromStore()
	return cp
}

// Container returns the panel for embedding in layouts.
func (cp *controlsPanel) Container() fyne.CanvasObject {
	return cp.root
}

func (cp *controlsPanel) build() {
	cp.layoutSelect = widget.NewSelect([]string{
		network.LayoutRandom,
		network.LayoutGrid,
		network.LayoutCircle,
		network.LayoutCluster,
	}, func(layout string) {
		if cp.updating {
			return
		}
		cp.store.SetConfig(func(c *network.Config) { c.Layout = layout })
		cp.store.Regenerate()
	})

	cp.cellCountLabel = widget.NewLabel("Cells: 6")
	cp.cellCount = widget.NewSlider(1, 20)
	cp.cellCount.Step = 1
	cp.cellCount.OnChanged = func(v float64) {
		cp.cellCountLabel.SetText(fmt.Sprintf("Cells: %d", int(v)))
	}
	cp.cellCount.OnChangeEnded = func(v float64) {
		if cp.updating {
			return
		}
		cp.store.SetConfig(func(c *network.Config) { c.CellCount = int(v) })
		cp.store.Regenerate()
	}

	cp.spacing = cp.configSlider(0.1, 2, 0.05, func(c *network.Config, v float64) { c.CellSpacing = v })
	cp.livingRadius = cp.configSlider(20, 200, 5, func(c *network.Config, v float64) { c.LivingRadius = v })
	cp.functionRadius = cp.configSlider(10, 100, 5, func(c *network.Config, v float64) { c.FunctionRadius = v })
	cp.lineWidth = cp.configSlider(0.5, 5, 0.1, func(c *network.Config, v float64) { c.LineWidth = v })
	cp.duration = cp.configSlider(0.5, 10, 0.5, func(c *network.Config, v float64) { c.AnimationDuration = v })

	cp.internalCheck = cp.configCheck("Internal lines", func(c *network.Config, v bool) { c.ShowInternalLines = v })
	cp.externalCheck = cp.configCheck("External lines", func(c *network.Config, v bool) { c.ShowExternalLines = v })
	cp.onTopCheck = cp.configCheck("Lines on top", func(c *network.Config, v bool) { c.LinesOnTop = v })
	cp.gridCheck = cp.configCheck("Show grid", func(c *network.Config, v bool) { c.GridEnabled = v })
	cp.snapCheck = cp.configCheck("Snap to grid", func(c *network.Config, v bool) { c.SnapToGrid = v })

	themeBtn := widget.NewButton("Toggle Theme", func() { cp.store.ToggleTheme() })

	categoryRows := make([]fyne.CanvasObject, 0, len(network.Categories))
	for _, cat := range network.Categories {
		cat := cat
		check := widget.NewCheck(string(cat), func(v bool) {
			if cp.updating {
				return
			}
			cp.store.SetVisibility(cat, v)
		})
		slider := widget.NewSlider(network.MinWeight, network.MaxWeight)
		slider.Step = 0.05
		slider.OnChangeEnded = func(v float64) {
			if cp.updating {
				return
			}
			cp.store.SetWeight(cat, v)
		}
		cp.visChecks[cat] = check
		cp.weightSliders[cat] = slider
		categoryRows = append(categoryRows, check, slider)
	}

	form := container.NewVBox(
		widget.NewLabel("Layout"),
		cp.layoutSelect,
		cp.cellCountLabel,
		cp.cellCount,
		widget.NewLabel("Spacing"),
		cp.spacing,
		widget.NewLabel("Living radius"),
		cp.livingRadius,
		widget.NewLabel("Function radius"),
		cp.functionRadius,
		widget.NewLabel("Line width"),
		cp.lineWidth,
		widget.NewLabel("Animation (s)"),
		cp.duration,
		widget.NewSeparator(),
		cp.internalCheck,
		cp.externalCheck,
		cp.onTopCheck,
		cp.gridCheck,
		cp.snapCheck,
		widget.NewSeparator(),
		themeBtn,
	)

	categories := widget.NewAccordion(
		widget.NewAccordionItem("Functions", container.NewVBox(categoryRows...)),
	)

	cp.root = container.NewVScroll(container.NewVBox(form, categories))
}

// configSlider builds a slider that commits one config change on release.
func (cp *controlsPanel) configSlider(min, max, step float64, apply func(*network.Config, float64)) *widget.Slider {
	s := widget.NewSlider(min, max)
	s.Step = step
	s.OnChangeEnded = func(v float64) {
		if cp.updating {
			return
		}
		cp.store.SetConfig(func(c *network.Config) { apply(c, v) })
	}
	return s
}

func (cp *controlsPanel) configCheck(label string, apply func(*network.Config, bool)) *widget.Check {
	c := widget.NewCheck(label, func(v bool) {
		if cp.updating {
			return
		}
		cp.store.SetConfig(func(cfg *network.Config) { apply(cfg, v) })
	})
	return c
}

// syncFromStore pushes current config values into the widgets, used at
// startup and after undo/redo or imports change the config underneath.
func (cp *controlsPanel) syncFromStore() {
	cfg := cp.store.Config()

	cp.updating = true
	defer func() { cp.updating = false }()

	cp.layoutSelect.SetSelected(cfg.Layout)
	cp.cellCount.SetValue(float64(cfg.CellCount))
	cp.cellCountLabel.SetText(fmt.Sprintf("Cells: %d", cfg.CellCount))
	cp.spacing.SetValue(cfg.CellSpacing)
	cp.livingRadius.SetValue(cfg.LivingRadius)
	cp.functionRadius.SetValue(cfg.FunctionRadius)
	cp.lineWidth.SetValue(cfg.LineWidth)
	cp.duration.SetValue(cfg.AnimationDuration)

	cp.internalCheck.SetChecked(cfg.ShowInternalLines)
	cp.externalCheck.SetChecked(cfg.ShowExternalLines)
	cp.onTopCheck.SetChecked(cfg.LinesOnTop)
	cp.gridCheck.SetChecked(cfg.GridEnabled)
	cp.snapCheck.SetChecked(cfg.SnapToGrid)

	for _, cat := range network.Categories {
		cp.visChecks[cat].SetChecked(cfg.Visibility[cat])
		cp.weightSliders[cat].SetValue(cfg.Weights[cat])
	}
}
