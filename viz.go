package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/beka-birhanu/pathviz/animation"
	"github.com/beka-birhanu/pathviz/config"
	"github.com/beka-birhanu/pathviz/infrastruture/solverclient"
	"github.com/beka-birhanu/pathviz/render"
	"github.com/beka-birhanu/pathviz/service"
	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/beka-birhanu/pathviz/ui"
	"github.com/beka-birhanu/pathviz/ui/panel"
	"github.com/spf13/cobra"
)

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Open the visualizer window",
	Long:  "Open the visualizer window. Solves run against SOLVER_URL when it is set and in-process otherwise.",
	Run:   vizCommand,
}

// newBackend picks the solver the session talks to.
func newBackend(l i.Logger) i.SolverBackend {
	if config.Envs.SolverURL != "" {
		backend, err := solverclient.New(&solverclient.Config{
			BaseURL: config.Envs.SolverURL,
			APIKey:  config.Envs.APIKey,
		})
		if err != nil {
			appLogger.Error(fmt.Sprintf("Creating solver client: %v", err))
			os.Exit(1)
		}
		appLogger.Info("Solving against " + config.Envs.SolverURL)
		return backend
	}

	svc, err := service.NewSolverService(&service.SolverServiceConfig{
		Generator: newGenerator(),
		Logger:    l,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solver service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Solving in-process")
	return svc
}

// newSession builds a session drawing on a canvas of the configured size.
func newSession(backend i.SolverBackend, notifier i.Notifier, seqOpts *animation.Options) *service.Session {
	gateway, err := service.NewGateway(&service.GatewayConfig{
		Backend: backend,
		Logger:  newLogger("GATEWAY", config.ColorBlue),
		Timeout: settings.SolveTimeout(),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating gateway: %v", err))
		os.Exit(1)
	}

	canvas, err := render.NewCanvas(settings.Canvas.Width, settings.Canvas.Height)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating canvas: %v", err))
		os.Exit(1)
	}
	renderer := render.NewRenderer(canvas, newTheme())

	session, err := service.NewSession(&service.SessionConfig{
		Gateway:     gateway,
		Renderer:    renderer,
		Sequencer:   animation.NewSequencer(renderer, seqOpts),
		Notifier:    notifier,
		Logger:      newLogger("SESSION", config.ColorMagenta),
		ClearPolicy: service.ClearPolicy(settings.Session.ClearPolicy),
		Width:       settings.Grid.Width,
		Height:      settings.Grid.Height,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session: %v", err))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Session %s ready", session.ID()))
	return session
}

func vizCommand(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notice := panel.NewNotice()
	backend := newBackend(newLogger("SOLVER", config.ColorCyan))
	session := newSession(backend, notice, &animation.Options{StepDelay: settings.StepDelay(), NoDelay: settings.StepDelay() == 0})

	appCtx, cancel := context.WithCancel(ctx)
	app, err := ui.NewApp(appCtx, &ui.Config{
		Session: session,
		Notice:  notice,
		Logger:  newLogger("UI", config.ColorYellow),
		Width:   settings.Grid.Width,
		Height:  settings.Grid.Height,
	})
	if err != nil {
		cancel()
		appLogger.Error(fmt.Sprintf("Creating window: %v", err))
		os.Exit(1)
	}

	err = ui.Run(app, "pathviz")
	cancel()
	app.Wait()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Window: %v", err))
		os.Exit(1)
	}
}
