package main

import (
	"fmt"
	"os"

	"github.com/beka-birhanu/pathviz/config"
	"github.com/beka-birhanu/pathviz/infrastruture/logger"
	"github.com/beka-birhanu/pathviz/render"
	"github.com/beka-birhanu/pathviz/solver"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	logLevel     string
	settingsPath string
	settings     config.Settings
	appLogger    *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pathviz",
	Short: "Grid path-search visualizer",
	Long:  "pathviz edits a grid, asks a solver for a DFS, BFS or A* route and replays the search cell by cell.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid log level '%s', using 'info'\n", logLevel)
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)

		appLogger = newLogger("APP", config.ColorGreen)

		settings, err = config.LoadSettings(settingsPath)
		return err
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "pathviz.toml", "Visualizer settings file; defaults apply when it is missing")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(vizCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func newLogger(component, color string) *logger.Logger {
	return logger.New(component, color, os.Stdout)
}

func newGenerator() *solver.Generator {
	gen, err := solver.NewGenerator(&solver.GeneratorOptions{
		Style:       settings.Generator.Style,
		WallDensity: settings.Generator.WallDensity,
		Seed:        settings.Generator.Seed,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating grid generator: %v", err))
		os.Exit(1)
	}
	return gen
}

func newTheme() render.Theme {
	theme, err := render.ParseTheme(settings.Theme)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Reading theme: %v", err))
		os.Exit(1)
	}
	return theme
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
