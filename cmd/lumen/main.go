// lumen - software-rendered 3D model viewer for the terminal
// View OBJ and GLB files with per-pixel Phong or Gouraud shading.
//
// Controls:
//
//	Mouse drag  - Orbit the camera (arcball)
//	Scroll, +/- - Zoom in/out
//	G           - Toggle Phong/Gouraud shading
//	X           - Toggle wireframe mode
//	R           - Reset view
//	?           - Toggle HUD overlay (FPS, filename, triangle count, mode)
//	Esc, Q      - Quit
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	cfg := DefaultConfig()
	if err := fang.Execute(
		context.Background(),
		newCommand(&cfg),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lumen [model.obj|model.glb]",
		Short: "Software-rendered 3D model viewer for the terminal",
		Long: `Lumen renders a triangle mesh on the CPU with a z-buffered rasterizer
and Phong lighting, and draws it to the terminal with half-block cells.
Without a model it shows a built-in primitive (see --primitive).

Controls:
  Mouse drag   orbit the camera
  Scroll, +/-  zoom
  g            toggle Phong/Gouraud shading
  x            toggle wireframe
  r            reset the view
  ?            toggle the HUD
  Esc, q       quit`,
		Example: `  lumen teapot.obj
  lumen --shading gouraud --bg '#000000' duck.glb
  lumen --snapshot out.png --width 800 --height 600 duck.glb`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Model = args[0]
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, closeLog, err := cfg.Logger()
			if err != nil {
				return err
			}
			defer closeLog()

			if cfg.Snapshot != "" {
				return runSnapshot(cmd.Context(), cfg, log)
			}
			return runViewer(cmd.Context(), cfg, log)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Primitive, "primitive", cfg.Primitive, "shape shown without a model: icosphere or cube")
	f.IntVar(&cfg.FPS, "fps", cfg.FPS, "target frames per second")
	f.StringVar(&cfg.Background, "bg", cfg.Background, "background color as hex")
	f.StringVar(&cfg.Color, "color", cfg.Color, "model base color as hex (default: from the model's material)")
	f.StringVar(&cfg.Shading, "shading", cfg.Shading, "shading mode: phong, gouraud or wireframe")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "rendering goroutines (0 = GOMAXPROCS)")
	f.Float64Var(&cfg.FOV, "fov", cfg.FOV, "vertical field of view in degrees")
	f.Float64Var(&cfg.Distance, "distance", cfg.Distance, "initial camera distance from the model center")
	f.Float64Var(&cfg.Shininess, "shininess", cfg.Shininess, "specular exponent")
	f.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "render one frame to this PNG file and exit")
	f.IntVar(&cfg.Width, "width", cfg.Width, "snapshot width in pixels")
	f.IntVar(&cfg.Height, "height", cfg.Height, "snapshot height in pixels")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	f.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "append logs to this file")

	return cmd
}
