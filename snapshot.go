package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/beka-birhanu/pathviz/animation"
	"github.com/beka-birhanu/pathviz/config"
	"github.com/beka-birhanu/pathviz/service"
	"github.com/beka-birhanu/pathviz/solver"
	"github.com/beka-birhanu/pathviz/ui/panel"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

var (
	snapshotOut       string
	snapshotAlgorithm string
	snapshotWidth     int
	snapshotHeight    int
	snapshotMargin    int
	snapshotASCII     bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Generate a grid, solve it and write the final frame as PNG",
	Run:   snapshotCommand,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "pathviz.png", "PNG file to write")
	snapshotCmd.Flags().StringVarP(&snapshotAlgorithm, "algorithm", "a", "a-star", "Search algorithm (dfs, bfs, a-star)")
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", 0, "Grid width, 0 uses the settings file")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", 0, "Grid height, 0 uses the settings file")
	snapshotCmd.Flags().IntVar(&snapshotMargin, "margin", 10, "Frame margin in pixels")
	snapshotCmd.Flags().BoolVar(&snapshotASCII, "ascii", false, "Also print the grid as text")
}

func snapshotCommand(cmd *cobra.Command, args []string) {
	alg, err := solver.ParseAlgorithm(snapshotAlgorithm)
	if err != nil {
		appLogger.Error(err.Error())
		os.Exit(1)
	}
	width, height := settings.Grid.Width, settings.Grid.Height
	if snapshotWidth > 0 {
		width = snapshotWidth
	}
	if snapshotHeight > 0 {
		height = snapshotHeight
	}

	notice := panel.NewNotice()
	backend := newBackend(newLogger("SOLVER", config.ColorCyan))
	session := newSession(backend, notice, &animation.Options{NoDelay: true})

	ctx := cmd.Context()
	if err := session.Generate(ctx, width, height); err != nil {
		appLogger.Error(fmt.Sprintf("Generating grid: %v", err))
		os.Exit(1)
	}
	outcome, err := session.Solve(ctx, alg)
	if err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error(fmt.Sprintf("Solving: %v", err))
		os.Exit(1)
	}

	f, err := os.Create(snapshotOut)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s: %v", snapshotOut, err))
		os.Exit(1)
	}
	defer f.Close()
	if err := session.Canvas().WritePNG(f, snapshotMargin, newTheme().Background); err != nil {
		appLogger.Error(fmt.Sprintf("Writing %s: %v", snapshotOut, err))
		os.Exit(1)
	}

	if snapshotASCII {
		fmt.Println(session.Grid().String())
	}
	ends := session.Endpoints()
	fmt.Printf("%s %dx%d grid, %s from %s to %s\n", color.Cyan.Sprint("Solved"), width, height, alg, ends.Start, ends.Destination)
	if outcome == service.OutcomeAnimated {
		fmt.Println(color.Green.Sprint("Path found"))
	} else {
		fmt.Println(color.Red.Sprint(service.NoticeNoPath))
	}
	fmt.Printf("Wrote %s\n", snapshotOut)
}
