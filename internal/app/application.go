package app

import (
	"fmt"
	"runtime"
	"time"

	"filtergram/internal/config"
	"filtergram/internal/controllers"
	"filtergram/internal/logger"
	"filtergram/internal/models"
	"filtergram/internal/pipeline"
	"filtergram/internal/processing/filters"
	"filtergram/internal/processing/render"
	"filtergram/internal/services"
	"filtergram/internal/shutdown"
	"filtergram/internal/views"

	"fyne.io/fyne/v2"
)

const (
	AppID      = "com.filtergram.app"
	AppVersion = "1.0.0"

	componentShutdownTimeout = 10 * time.Second
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	logger     logger.Logger
	pipeline   *pipeline.Pipeline
	library    *services.PhotoLibrary
	controller *controllers.MainController
	view       *views.MainView
	shutdown   *shutdown.Manager
}

// New wires every component into fyneApp. The window is created but not
// shown until Run.
func New(fyneApp fyne.App, cfg *config.Config, log logger.Logger) (*Application, error) {
	window := fyneApp.NewWindow(views.Title)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"album_dir":  cfg.AlbumDir,
		"format":     cfg.SaveFormat,
		"filter":     cfg.Filter().String(),
	})

	params := models.NewParameterSet()
	p, err := pipeline.New(filters.NewRegistry(), render.NewContext(log), params, cfg.Filter(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	images := services.NewImageService(cfg.MaxSourceDimension, log)
	library := services.NewPhotoLibrary(cfg.AlbumDir, cfg.SaveFormat, cfg.JPEGQuality, images, log)

	controller := controllers.NewMainController(p, images, library, log)
	view := views.NewMainView(window, *params, p.Kind(), services.ImageExtensions())

	manager := shutdown.NewManager(log, componentShutdownTimeout)
	manager.Register("pipeline", p)
	manager.Register("photo library", library)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     log,
		pipeline:   p,
		library:    library,
		controller: controller,
		view:       view,
		shutdown:   manager,
	}
	application.setupHandlers()

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) setupHandlers() {
	a.view.SetImageSelectedHandler(a.controller.ImageSelected)
	a.view.SetFilterChosenHandler(a.controller.FilterChosen)
	a.view.SetParameterChangeHandler(a.controller.ParameterChanged)
	a.view.SetSaveHandler(a.controller.Save)
	a.controller.SetView(a.view)

	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed", nil)
		a.shutdown.Shutdown()
	})
}

// Run shows the window and blocks until the application quits. A
// termination signal quits the application the same way closing the
// window does.
func (a *Application) Run() {
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.view.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
}

// Shutdown releases the pipeline and waits for pending saves.
func (a *Application) Shutdown() {
	a.shutdown.Shutdown()
}
