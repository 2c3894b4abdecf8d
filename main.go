package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"toolbox/internal/apps"
	"toolbox/internal/archive"
	"toolbox/internal/config"
	"toolbox/internal/constants"
	"toolbox/internal/jobs"
	"toolbox/internal/launch"
	"toolbox/internal/logging"
	customtheme "toolbox/internal/theme"
	"toolbox/internal/ui"
)

const (
	allAppsLabel      = "All applications"
	closeFlushTimeout = 5 * time.Second
)

// AppCenter is the main toolbox window
type AppCenter struct {
	window   fyne.Window
	svc      *apps.Service
	launcher *launch.Launcher
	config   *config.Config
	store    config.Store // nil disables persisting window size
	cfgPath  string       // config file included in exports
	logger   *zap.Logger

	source    string // collection shown in the list, or allAppsLabel
	visible   []apps.Entry
	entryList *widget.List
	favStrip  *fyne.Container
	search    *widget.Entry
	picker    *widget.Select
	status    *widget.Label
	busy      *ui.BusyOverlay
	saves     *ui.SaveQueueDialog
}

// NewAppCenter creates the window. The registry is loaded once the app
// has started.
func NewAppCenter(a fyne.App, svc *apps.Service, launcher *launch.Launcher, cfg *config.Config, logger *zap.Logger) *AppCenter {
	ac := &AppCenter{
		window:   a.NewWindow(constants.ApplicationTitle),
		svc:      svc,
		launcher: launcher,
		config:   cfg,
		logger:   logger.Named("ui"),
		source:   allAppsLabel,
		busy:     ui.NewBusyOverlay("Loading applications..."),
		saves:    ui.NewSaveQueueDialog(svc.Jobs()),
	}

	svc.AttachDispatcher(apps.DispatcherFunc(fyne.Do))
	svc.Subscribe(func(ev apps.Event) {
		fyne.Do(func() { ac.handleEvent(ev) })
	})

	ac.setupUI()
	ac.busy.Show("")

	a.Lifecycle().SetOnStarted(func() {
		svc.Start(context.Background())
	})
	return ac
}

func (ac *AppCenter) setupUI() {
	ac.search = widget.NewEntry()
	ac.search.SetPlaceHolder("Search by name or description, globs like vs* work too")
	ac.search.OnChanged = func(string) { ac.refreshEntries() }

	ac.entryList = widget.NewList(
		func() int { return len(ac.visible) },
		func() fyne.CanvasObject {
			star := ui.NewTappableIcon(theme.RadioButtonIcon(), nil)
			name := widget.NewLabel("name")
			name.TextStyle.Bold = true
			desc := widget.NewLabel("description")
			run := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)
			del := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			return container.NewBorder(nil, nil,
				container.NewHBox(star, name),
				container.NewHBox(desc, run, del),
				nil)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ac.visible) {
				return
			}
			e := ac.visible[id]
			border := obj.(*fyne.Container)
			left := border.Objects[0].(*fyne.Container)
			right := border.Objects[1].(*fyne.Container)

			star := left.Objects[0].(*ui.TappableIcon)
			if e.IsFavorite {
				star.SetResource(theme.RadioButtonCheckedIcon())
			} else {
				star.SetResource(theme.RadioButtonIcon())
			}
			star.SetOnTapped(func() { ac.toggle(e) })
			left.Objects[1].(*widget.Label).SetText(e.Name)

			right.Objects[0].(*widget.Label).SetText(e.Description)
			run := right.Objects[1].(*widget.Button)
			run.OnTapped = func() { ac.launch(e) }
			del := right.Objects[2].(*widget.Button)
			del.OnTapped = func() { ac.remove(e) }
			if e.IsPreset() {
				run.Disable()
				del.Disable()
			} else {
				run.Enable()
				del.Enable()
			}
		},
	)

	ac.picker = widget.NewSelect([]string{allAppsLabel}, nil)
	ac.picker.SetSelected(allAppsLabel)
	ac.picker.OnChanged = func(s string) {
		ac.source = s
		ac.refreshEntries()
	}

	ac.favStrip = container.NewHBox()
	stripScroll := container.NewHScroll(ac.favStrip)
	stripScroll.SetMinSize(fyne.NewSize(0, constants.FavoritesStripHeight))

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			ui.ShowAddDialog(ac.window, func(path, name string) {
				go ac.addPath(path, name)
			})
		}),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			ac.svc.RegenerateLooping()
		}),
		widget.NewToolbarAction(theme.DownloadIcon(), ac.exportBundle),
		widget.NewToolbarAction(theme.HistoryIcon(), func() {
			ac.saves.Show(ac.window)
		}),
	)

	ac.status = widget.NewLabel("")

	header := container.NewVBox(
		toolbar,
		widget.NewLabelWithStyle("Favorites", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		stripScroll,
		container.NewBorder(nil, nil, nil, ac.picker, ac.search),
	)
	content := container.NewBorder(header, ac.status, nil, nil, ac.entryList)

	ac.window.SetContent(container.NewStack(content, ac.busy.Container()))
	ac.window.Resize(fyne.NewSize(float32(ac.config.Window.Width), float32(ac.config.Window.Height)))

	ac.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		paths := make([]string, 0, len(uris))
		for _, u := range uris {
			paths = append(paths, u.Path())
		}
		go func() {
			for _, p := range paths {
				ac.addPath(p, "")
			}
		}()
	})

	ac.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyF, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { ac.window.Canvas().Focus(ac.search) })
	ac.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyN, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) {
			ui.ShowAddDialog(ac.window, func(path, name string) { go ac.addPath(path, name) })
		})

	// Write pending saves before the window goes away
	ac.window.SetCloseIntercept(func() {
		ac.busy.Show("Saving...")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), closeFlushTimeout)
			defer cancel()
			if err := ac.svc.Flush(ctx); err != nil {
				ac.logger.Warn("pending saves not written before close", zap.Error(err))
			}
			fyne.Do(func() {
				ac.rememberWindowSize()
				ac.window.Close()
			})
		}()
	})
}

// rememberWindowSize writes the current window size back to the config file.
func (ac *AppCenter) rememberWindowSize() {
	if ac.store == nil {
		return
	}
	size := ac.window.Canvas().Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	ac.config.Window.Width = int(size.Width)
	ac.config.Window.Height = int(size.Height)
	if err := ac.store.Save(ac.config); err != nil {
		ac.logger.Warn("failed to save window size", zap.Error(err))
	}
}

// handleEvent runs on the UI thread.
func (ac *AppCenter) handleEvent(ev apps.Event) {
	switch ev.Kind {
	case apps.EventInitCompleted:
		ac.busy.Hide()
		res := ev.Init
		if !res.Success {
			ac.status.SetText(res.Message)
			ui.ShowMessageDialog(ac.window, "Startup", res.Message)
			return
		}
		ac.status.SetText(fmt.Sprintf("%d applications, %d favorites, %d collections",
			res.AllCount, res.FavoriteCount, res.CollectionCount))
	case apps.EventCollectionChanged:
		switch ev.Seq {
		case apps.SeqAll:
			ac.refreshEntries()
		case apps.SeqCollections:
			ac.refreshCollections()
		case apps.SeqFavorites:
			ac.refreshEntries()
		}
	case apps.EventLoopingRebuilt:
		ac.refreshFavorites()
	}
}

func (ac *AppCenter) refreshCollections() {
	options := []string{allAppsLabel}
	for _, c := range ac.svc.Collections() {
		options = append(options, c.Name)
	}
	ac.picker.SetOptions(options)
}

func (ac *AppCenter) refreshEntries() {
	entries := ac.svc.AllEntries()
	if ac.source != allAppsLabel {
		entries = nil
		for _, c := range ac.svc.Collections() {
			if c.Name == ac.source {
				entries = c.Apps
				break
			}
		}
	}
	ac.visible = apps.Filter(entries, ac.search.Text)
	ac.entryList.Refresh()
}

func (ac *AppCenter) refreshFavorites() {
	looping := ac.svc.LoopingFavorites()
	objs := make([]fyne.CanvasObject, 0, len(looping))
	for _, e := range looping {
		tile := ui.NewTile(e, float32(constants.DefaultIconSize)*1.5)
		tile.OnTapped = func() { ac.launch(e) }
		tile.OnSecondary = func() { ac.toggle(e) }
		objs = append(objs, tile)
	}
	ac.favStrip.Objects = objs
	ac.favStrip.Refresh()
}

// addPath runs off the UI thread; version info reads can be slow.
func (ac *AppCenter) addPath(path, name string) {
	res := ac.svc.AddApplication(context.Background(), path, name)
	fyne.Do(func() { ui.ShowAddResult(ac.window, res) })
}

func (ac *AppCenter) toggle(e apps.Entry) {
	if _, ok := ac.svc.ToggleFavorite(e); !ok {
		ac.logger.Warn("toggle on stale entry", zap.String("name", e.Name))
	}
}

func (ac *AppCenter) remove(e apps.Entry) {
	ui.ConfirmRemove(ac.window, e, func() {
		ac.svc.RemoveApplication(e)
	})
}

func (ac *AppCenter) launch(e apps.Entry) {
	if err := ac.launcher.Launch(e); err != nil {
		ui.ShowErrorDialog(ac.window, err)
	}
}

// exportBundle writes a tar.gz of the data files through the save queue so
// it runs after every pending save.
func (ac *AppCenter) exportBundle() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		target := wc.URI().Path()
		ac.svc.Jobs().Enqueue(jobs.KindExport, target, func(ctx context.Context) error {
			defer wc.Close()
			n, err := archive.Export(ctx, archive.Sources(ac.svc.DataDir(), ac.cfgPath), wc)
			fyne.Do(func() {
				if err != nil {
					ui.ShowErrorDialog(ac.window, err)
					return
				}
				ui.ShowMessageDialog(ac.window, "Export", fmt.Sprintf("Wrote %d files to %s", n, target))
			})
			return err
		})
	}, ac.window)
	d.SetFileName(constants.ApplicationName + "-data.tar.gz")
	d.Show()
}

type headlessOptions struct {
	add        string
	name       string
	list       bool
	export     string
	listBundle string
	configPath string // config file included in -export
}

func (o headlessOptions) active() bool {
	return o.add != "" || o.list || o.export != "" || o.listBundle != ""
}

// runHeadless serves the command line operations without opening a window.
func runHeadless(ctx context.Context, svc *apps.Service, opts headlessOptions, out io.Writer) int {
	res := svc.Initialize(ctx)
	svc.CompletePendingRestore()
	if !res.Success {
		fmt.Fprintln(os.Stderr, res.Message)
		return 1
	}

	code := 0
	if opts.add != "" {
		path := opts.add
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		r := svc.AddApplication(ctx, path, opts.name)
		fmt.Fprintln(out, r.Message)
		if !r.Success {
			code = 1
		}
	}
	if opts.list {
		printEntries(out, svc)
	}
	if opts.export != "" {
		if err := svc.Flush(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "flush: %v\n", err)
			return 1
		}
		n, err := archive.ExportFile(ctx, archive.Sources(svc.DataDir(), opts.configPath), opts.export)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "Wrote %d files to %s\n", n, opts.export)
	}
	if opts.listBundle != "" {
		names, err := archive.ListFile(ctx, opts.listBundle)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list bundle: %v\n", err)
			return 1
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
	}
	return code
}

func printEntries(out io.Writer, svc *apps.Service) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FAV\tNAME\tDESCRIPTION\tPATH")
	for _, e := range svc.AllEntries() {
		fav := ""
		if e.IsFavorite {
			fav = "*"
		}
		path := e.Path
		if path == "" {
			path = "(preset)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", fav, e.Name, e.Description, path)
	}
	tw.Flush()
}

func main() {
	var (
		debugMode bool
		dataDir   string
		opts      headlessOptions
	)
	flag.BoolVar(&debugMode, "d", false, "Enable debug logging")
	flag.StringVar(&dataDir, "data", "", "Directory holding user-apps.json and favorites.json")
	flag.StringVar(&opts.add, "add", "", "Register an application and exit")
	flag.StringVar(&opts.name, "name", "", "Display name used with -add")
	flag.BoolVar(&opts.list, "list", false, "List registered applications and exit")
	flag.StringVar(&opts.export, "export", "", "Write a tar.gz bundle of the data files and exit")
	flag.StringVar(&opts.listBundle, "list-bundle", "", "Print the files stored in a tar.gz bundle and exit")
	flag.Parse()

	// Load configuration
	configManager := config.NewManager(logging.NewDefault())
	cfg, err := configManager.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	opts.configPath = configManager.Path()
	if strings.TrimSpace(dataDir) != "" {
		cfg.Data.Dir = dataDir
	}

	logCfg := logging.Config{Level: cfg.Logging.Level, Development: cfg.Logging.Development}
	if debugMode {
		logCfg = logging.DevelopmentConfig()
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	jobManager := jobs.NewManager(logger.Named("jobs"), constants.SaveHistoryMax)
	defer jobManager.Close()

	svc, err := apps.NewService(apps.Options{
		DataDir: cfg.DataDir(),
		Logger:  logger,
		Jobs:    jobManager,
	})
	if err != nil {
		logger.Fatal("service setup failed", zap.Error(err))
	}
	defer svc.Close()

	if opts.active() {
		code := runHeadless(context.Background(), svc, opts, os.Stdout)
		svc.Close()
		jobManager.Close()
		logger.Sync()
		os.Exit(code)
	}

	a := app.NewWithID(constants.ApplicationID)
	a.Settings().SetTheme(customtheme.NewCustomTheme(cfg))

	ac := NewAppCenter(a, svc, launch.New(logger), cfg, logger)
	ac.store = configManager
	ac.cfgPath = configManager.Path()
	ac.window.ShowAndRun()
}
