package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/deskscene"
)

func init() {
	// glfw and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configFile := flag.String("config", "", "Path to a TOML config file")
	width := flag.Int("width", 0, "Window width (default 800)")
	height := flag.Int("height", 0, "Window height (default 600)")
	renderer := flag.String("renderer", "", "Renderer: wgpu or gl (default wgpu)")
	assetsDir := flag.String("assets", "", "Texture directory (default: working directory)")
	missing := flag.String("missing-textures", "", "Missing texture policy: fail or placeholder (default fail)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg := deskscene.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = deskscene.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(deskscene.Overrides{
		Width:     *width,
		Height:    *height,
		Renderer:  *renderer,
		AssetsDir: *assetsDir,
		Missing:   *missing,
		Debug:     *debug,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := deskscene.NewAppBuilder().
		UseModule(
			deskscene.LoggingModule{Prefix: "deskscene", Debug: cfg.Debug},
			deskscene.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Renderer.ClientAPI()),
			deskscene.TimeModule{},
			deskscene.InputModule{},
			deskscene.FrameModule{},
			deskscene.FlyingCameraModule{KeepAnglesOnReset: !cfg.Camera.ResetAngles},
			deskscene.AssetServerModule{Dir: cfg.Assets.Dir, Missing: cfg.Assets.Missing},
			deskscene.SceneModule{},
			deskscene.RendererModule{Name: cfg.Renderer},
		).
		Build()

	if err := app.Run(); err != nil {
		app.Logger().Errorf("%v", err)
		os.Exit(1)
	}
}
