package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/HighwayAccidents/cmd/accidentviewer/uihelpers"
	"github.com/iafilius/HighwayAccidents/src/applog"
	"github.com/iafilius/HighwayAccidents/src/config"
	"github.com/iafilius/HighwayAccidents/src/dashboard"
	"github.com/iafilius/HighwayAccidents/src/scene"
	"github.com/iafilius/HighwayAccidents/src/session"
)

type uiState struct {
	app    fyne.App
	window fyne.Window
	cfg    *config.Config

	filePath string
	dash     *dashboard.Dashboard

	imgCanvas *canvas.Image
	overlay   *chartOverlay
	imgW      int
	imgH      int

	dayBar      *fyne.Container
	nextBtn     *widget.Button
	modeBtn     *widget.Button
	statusLabel *widget.Label
	fileLabel   *widget.Label
	showHints   bool
	// startHighlight is applied once after the first successful load
	startHighlight string
}

func main() {
	var (
		fileFlag       string
		configFlag     string
		screenshotsDir string
		formatFlag     string
		highlightFlag  string
		hintsFlag      bool
		logLevelFlag   string
	)
	flag.StringVar(&fileFlag, "file", "", "Path to accident.csv (overrides config data.file)")
	flag.StringVar(&configFlag, "config", "", "Path to YAML config (default $ACCIDENTS_CONFIG or "+config.DefaultPath+")")
	flag.StringVar(&screenshotsDir, "screenshots", "", "Render every day plus the expanded grid into this directory and exit")
	flag.StringVar(&formatFlag, "format", "png", "Screenshot format: png|svg")
	flag.StringVar(&highlightFlag, "highlight", "", "Start with a highlighted bar, e.g. \"I-5,Evening\"")
	flag.BoolVar(&hintsFlag, "hints", false, "Stamp usage hints onto the chart")
	flag.StringVar(&logLevelFlag, "log-level", "", "Log level: debug|info|warn|error (overrides config)")
	flag.Parse()

	cfg, err := config.Load(configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[viewer] config: %v\n", err)
		os.Exit(2)
	}
	if fileFlag != "" {
		cfg.Data.File = fileFlag
	}
	level := cfg.Log.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	if err := applog.Configure("accidentviewer", level); err != nil {
		fmt.Fprintf(os.Stderr, "[viewer] %v\n", err)
		os.Exit(2)
	}

	if screenshotsDir != "" {
		if err := RunScreenshotsMode(cfg, screenshotsDir, formatFlag, highlightFlag); err != nil {
			fmt.Fprintf(os.Stderr, "[viewer] screenshots: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[viewer] screenshots written to %s\n", screenshotsDir)
		return
	}

	a := app.NewWithID("com.highwayaccidents.viewer")
	w := a.NewWindow("Highway Accidents")
	w.Resize(fyne.NewSize(float32(cfg.Viewer.Width), float32(cfg.Viewer.Height)))

	state := &uiState{
		app:            a,
		window:         w,
		cfg:            cfg,
		filePath:       cfg.Data.File,
		showHints:      hintsFlag || cfg.Viewer.ShowHints,
		startHighlight: highlightFlag,
	}

	// top bar controls
	state.fileLabel = widget.NewLabel(uihelpers.TruncatePath(state.filePath, 60))
	state.dayBar = container.NewHBox()
	state.nextBtn = widget.NewButton("Next", func() {
		if state.dash == nil {
			return
		}
		state.dash.NextDay()
		afterDispatch(state)
	})
	state.modeBtn = widget.NewButton("Expand", func() {
		if state.dash == nil {
			return
		}
		state.dash.ToggleMode()
		afterDispatch(state)
	})
	hintsChk := widget.NewCheck("Hints", func(b bool) {
		state.showHints = b
		redrawChart(state)
	})
	hintsChk.SetChecked(state.showHints)
	state.statusLabel = widget.NewLabel("")

	state.imgCanvas = canvas.NewImageFromImage(blank(800, 400))
	state.imgCanvas.FillMode = canvas.ImageFillContain
	state.overlay = newChartOverlay(state)
	chartScroll := container.NewScroll(container.NewStack(state.imgCanvas, state.overlay))

	top := container.NewVBox(
		container.NewHBox(widget.NewLabel("File:"), state.fileLabel),
		container.NewHBox(widget.NewLabel("Filters:"), state.dayBar, widget.NewSeparator(), state.nextBtn, state.modeBtn, hintsChk),
	)
	w.SetContent(container.NewBorder(top, state.statusLabel, nil, nil, chartScroll))
	buildMenus(state)

	if c := w.Canvas(); c != nil {
		c.SetOnTypedKey(func(ev *fyne.KeyEvent) { handleKey(state, ev.Name) })
	}

	// Redraw the chart on window resize so it scales with width
	if w.Canvas() != nil {
		prevW := int(w.Canvas().Size().Width)
		done := make(chan struct{})
		w.SetOnClosed(func() { close(done) })
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					curW := int(c.Size().Width)
					if curW != prevW {
						prevW = curW
						fyne.Do(func() { redrawChart(state) })
					}
				}
			}
		}()
	}

	loadAll(state)
	w.ShowAndRun()
}

// menus and dialogs
func buildMenus(state *uiState) {
	if state == nil || state.window == nil {
		return
	}
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Chart…", func() { exportChartPNG(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Next Day", func() { handleKey(state, fyne.KeyN) }),
		fyne.NewMenuItem("Expand / Collapse", func() { handleKey(state, fyne.KeyE) }),
		fyne.NewMenuItem("Clear Highlight", func() { handleKey(state, fyne.KeyEscape) }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadAll(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadAll(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// handleKey maps plain keys onto dashboard events.
func handleKey(state *uiState, key fyne.KeyName) {
	if state == nil || state.dash == nil {
		return
	}
	switch key {
	case fyne.KeyRight, fyne.KeyN:
		state.dash.NextDay()
	case fyne.KeyE:
		state.dash.ToggleMode()
	case fyne.KeyEscape:
		state.dash.ClearHighlight()
	default:
		return
	}
	afterDispatch(state)
}

// file open dialog
func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		loadAll(state)
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".CSV"}))
	d.Show()
}

// load data and render
func loadAll(state *uiState) {
	if state.fileLabel != nil {
		state.fileLabel.SetText(uihelpers.TruncatePath(state.filePath, 60))
	}
	if state.filePath == "" {
		return
	}
	if _, err := os.Stat(state.filePath); err != nil {
		fmt.Printf("[viewer] %s not found; use File > Open\n", state.filePath)
		syncControls(state)
		return
	}
	w, h := chartSize(state)
	dash, _, err := openDashboard(state.cfg, state.filePath, w, h)
	if err != nil {
		if state.window != nil {
			dialog.ShowError(err, state.window)
		}
		return
	}
	state.dash = dash
	if state.startHighlight != "" {
		if c, err := parseCombo(state.startHighlight); err == nil {
			dash.Dispatch(session.Event{Kind: session.Select, Combo: c})
		} else {
			applog.Warnf("[viewer] %v", err)
		}
		state.startHighlight = ""
	}
	rebuildDayChecks(state)
	afterDispatch(state)
}

// rebuildDayChecks creates one checkbox per day present in the data, all enabled.
func rebuildDayChecks(state *uiState) {
	if state.dayBar == nil || state.dash == nil {
		return
	}
	state.dayBar.Objects = nil
	for _, day := range state.dash.State().Days {
		day := day
		chk := widget.NewCheck(day, nil)
		chk.SetChecked(state.dash.State().Enabled(day))
		chk.OnChanged = func(bool) {
			state.dash.ToggleDay(day)
			afterDispatch(state)
		}
		state.dayBar.Add(chk)
	}
	state.dayBar.Refresh()
}

// afterDispatch repaints the chart and brings the controls in line with the session.
func afterDispatch(state *uiState) {
	redrawChart(state)
	syncControls(state)
}

func syncControls(state *uiState) {
	if state.nextBtn == nil || state.modeBtn == nil || state.statusLabel == nil {
		return
	}
	if state.dash == nil {
		state.nextBtn.Disable()
		state.modeBtn.Disable()
		state.statusLabel.SetText("No data loaded")
		return
	}
	st := state.dash.State()
	state.modeBtn.Enable()
	if st.Mode == session.Expanded {
		state.modeBtn.SetText("Collapse")
		state.nextBtn.Disable()
	} else {
		state.modeBtn.SetText("Expand")
		if len(st.Days) > 0 {
			state.nextBtn.Enable()
		} else {
			state.nextBtn.Disable()
		}
	}
	state.statusLabel.SetText(state.dash.Status())
}

// redrawChart renders the scene without a tooltip; the overlay draws the tooltip.
func redrawChart(state *uiState) {
	if state == nil {
		return
	}
	w, h := chartSize(state)
	var img image.Image
	if state.dash != nil {
		state.dash.Resize(w, h)
		sc := state.dash.Scene()
		r, err := scene.Render(sc, nil)
		if err != nil {
			applog.Errorf("[viewer] render: %v", err)
		} else {
			img = r
			if state.showHints {
				img = scene.DrawHint(img, scene.Hint(sc.Mode))
			}
		}
	}
	if img == nil {
		img = blank(w, h)
	}
	state.imgW, state.imgH = img.Bounds().Dx(), img.Bounds().Dy()
	if state.imgCanvas != nil {
		state.imgCanvas.Image = img
		state.imgCanvas.SetMinSize(fyne.NewSize(float32(w), float32(h)))
		state.imgCanvas.Refresh()
	}
	if state.overlay != nil {
		state.overlay.Refresh()
	}
}

// chartSize computes the chart size from the current window width.
func chartSize(state *uiState) (int, int) {
	expanded := state != nil && state.dash != nil && state.dash.State().Mode == session.Expanded
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return uihelpers.ComputeChartDimensions(0, expanded)
	}
	sz := state.window.Canvas().Size()
	// Use ~95% of the available width, minus a small margin for scrollbars/padding
	return uihelpers.ComputeChartDimensions(int(sz.Width*0.95)-12, expanded)
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 245, G: 245, B: 245, A: 255})
		}
	}
	return img
}

// export PNG
func exportChartPNG(state *uiState) {
	if state == nil || state.window == nil {
		return
	}
	if state.dash == nil || state.imgCanvas == nil || state.imgCanvas.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	img := state.imgCanvas.Image
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(exportName(state.dash.State()))
	fs.Show()
}

func exportName(st session.State) string {
	if st.Mode == session.Expanded {
		return "accidents_all_days.png"
	}
	if day := st.CurrentDayName(); day != "" {
		return "accidents_" + strings.ToLower(day) + ".png"
	}
	return "accidents.png"
}
